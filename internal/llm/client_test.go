package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"google.golang.org/genai"

	"github.com/slideforge/pdf2pptx/internal/domain"
)

const validResponse = `{"background_color":"#FFFFFF","elements":[{"type":"title","text":"Hello","position":{"x_percent":10,"y_percent":5,"width_percent":80,"height_percent":15},"style":{"font_size":"32","font_color":"#000000","bold":true,"alignment":"center"},"bullet_level":0}]}`

type callResult struct {
	text string
	err  error
}

// fakeCaller replays a scripted sequence of responses and records which
// model each call targeted.
type fakeCaller struct {
	script []callResult
	calls  []string
}

func (f *fakeCaller) generate(_ context.Context, model, _ string, _ []byte) (string, error) {
	i := len(f.calls)
	f.calls = append(f.calls, model)
	if i >= len(f.script) {
		return "", errors.New("unexpected extra call")
	}
	return f.script[i].text, f.script[i].err
}

func newTestClient(caller modelCaller, models []string, maxRetries int) (*Client, *[]time.Duration) {
	sleeps := &[]time.Duration{}
	c := &Client{
		caller:      caller,
		models:      models,
		maxRetries:  maxRetries,
		backoffUnit: 15 * time.Second,
		logger:      domain.NewLogger(domain.LogLevelError),
		sleep: func(_ context.Context, d time.Duration) error {
			*sleeps = append(*sleeps, d)
			return nil
		},
	}
	return c, sleeps
}

func rateLimitErr() error {
	return genai.APIError{Code: 429, Message: "quota exceeded"}
}

func TestAnalyzeSlideSuccess(t *testing.T) {
	caller := &fakeCaller{script: []callResult{{text: validResponse}}}
	c, sleeps := newTestClient(caller, []string{"model-a", "model-b"}, 3)

	content, err := c.AnalyzeSlide(context.Background(), []byte("png"), 1)
	if err != nil {
		t.Fatalf("AnalyzeSlide failed: %v", err)
	}
	if len(content.Elements) != 1 || content.Elements[0].Text != "Hello" {
		t.Errorf("unexpected content: %+v", content)
	}
	if len(caller.calls) != 1 || caller.calls[0] != "model-a" {
		t.Errorf("calls = %v, want one call to model-a", caller.calls)
	}
	if len(*sleeps) != 0 {
		t.Errorf("no backoff expected on success, got %v", *sleeps)
	}
}

func TestAnalyzeSlideRateLimitBackoffEscalates(t *testing.T) {
	caller := &fakeCaller{script: []callResult{
		{err: rateLimitErr()},
		{err: rateLimitErr()},
		{text: validResponse},
	}}
	c, sleeps := newTestClient(caller, []string{"model-a", "model-b"}, 3)

	content, err := c.AnalyzeSlide(context.Background(), []byte("png"), 1)
	if err != nil {
		t.Fatalf("AnalyzeSlide failed: %v", err)
	}
	if content == nil {
		t.Fatal("expected content")
	}

	for _, model := range caller.calls {
		if model != "model-a" {
			t.Errorf("rate limiting must retry the same model, called %v", caller.calls)
			break
		}
	}
	want := []time.Duration{15 * time.Second, 30 * time.Second}
	if len(*sleeps) != len(want) {
		t.Fatalf("sleeps = %v, want %v", *sleeps, want)
	}
	for i := range want {
		if (*sleeps)[i] != want[i] {
			t.Errorf("sleep %d = %v, want %v", i, (*sleeps)[i], want[i])
		}
	}
}

func TestAnalyzeSlidePermanentErrorAdvancesModel(t *testing.T) {
	caller := &fakeCaller{script: []callResult{
		{err: genai.APIError{Code: 500, Message: "internal"}},
		{text: validResponse},
	}}
	c, sleeps := newTestClient(caller, []string{"model-a", "model-b"}, 3)

	content, err := c.AnalyzeSlide(context.Background(), []byte("png"), 1)
	if err != nil {
		t.Fatalf("AnalyzeSlide failed: %v", err)
	}
	if content == nil {
		t.Fatal("expected content")
	}
	wantCalls := []string{"model-a", "model-b"}
	if len(caller.calls) != 2 || caller.calls[0] != wantCalls[0] || caller.calls[1] != wantCalls[1] {
		t.Errorf("calls = %v, want %v", caller.calls, wantCalls)
	}
	if len(*sleeps) != 0 {
		t.Errorf("permanent errors must not back off, got %v", *sleeps)
	}
}

func TestAnalyzeSlideMalformedResponseIsTerminal(t *testing.T) {
	caller := &fakeCaller{script: []callResult{
		{text: "I could not find any structured content on this slide."},
	}}
	c, sleeps := newTestClient(caller, []string{"model-a", "model-b"}, 3)

	_, err := c.AnalyzeSlide(context.Background(), []byte("png"), 1)
	if err == nil {
		t.Fatal("expected an error for a malformed response")
	}
	var derr *domain.DomainError
	if !errors.As(err, &derr) || derr.Type != domain.ErrorTypeExtraction {
		t.Errorf("expected an extraction error, got %v", err)
	}
	if len(caller.calls) != 1 {
		t.Errorf("malformed responses must not trigger retries or fallback, got %d calls", len(caller.calls))
	}
	if len(*sleeps) != 0 {
		t.Errorf("malformed responses must not back off, got %v", *sleeps)
	}
}

func TestAnalyzeSlideExhaustsModelsAndRetries(t *testing.T) {
	caller := &fakeCaller{script: []callResult{
		{err: rateLimitErr()},
		{err: rateLimitErr()},
		{err: rateLimitErr()},
		{err: rateLimitErr()},
	}}
	c, sleeps := newTestClient(caller, []string{"model-a", "model-b"}, 2)

	_, err := c.AnalyzeSlide(context.Background(), []byte("png"), 3)
	if err == nil {
		t.Fatal("expected exhaustion error")
	}
	var derr *domain.DomainError
	if !errors.As(err, &derr) || derr.Type != domain.ErrorTypeExtraction {
		t.Errorf("expected an extraction error, got %v", err)
	}

	wantCalls := []string{"model-a", "model-a", "model-b", "model-b"}
	if len(caller.calls) != len(wantCalls) {
		t.Fatalf("calls = %v, want %v", caller.calls, wantCalls)
	}
	for i := range wantCalls {
		if caller.calls[i] != wantCalls[i] {
			t.Errorf("call %d = %s, want %s", i, caller.calls[i], wantCalls[i])
		}
	}
	// The final attempt of each model ends without a pointless wait.
	want := []time.Duration{15 * time.Second, 15 * time.Second}
	if len(*sleeps) != len(want) || (*sleeps)[0] != want[0] || (*sleeps)[1] != want[1] {
		t.Errorf("sleeps = %v, want %v", *sleeps, want)
	}
}

func TestAnalyzeSlideCanceledDuringBackoff(t *testing.T) {
	caller := &fakeCaller{script: []callResult{
		{err: rateLimitErr()},
	}}
	c, _ := newTestClient(caller, []string{"model-a"}, 3)
	c.sleep = func(ctx context.Context, _ time.Duration) error {
		return context.Canceled
	}

	_, err := c.AnalyzeSlide(context.Background(), []byte("png"), 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestNewClientValidation(t *testing.T) {
	ctx := context.Background()
	logger := domain.NewLogger(domain.LogLevelError)

	if _, err := NewClient(ctx, "", []string{"m"}, 3, time.Second, logger); err == nil {
		t.Error("expected an error for an empty API key")
	}
	if _, err := NewClient(ctx, "key", nil, 3, time.Second, logger); err == nil {
		t.Error("expected an error for an empty model list")
	}
}

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"api error 429", genai.APIError{Code: 429}, true},
		{"api error resource exhausted", genai.APIError{Code: 403, Status: "RESOURCE_EXHAUSTED"}, true},
		{"api error 500", genai.APIError{Code: 500, Status: "INTERNAL"}, false},
		{"plain 429 text", errors.New("rpc failed with status 429"), true},
		{"plain quota text", errors.New("RESOURCE_EXHAUSTED: per-minute quota"), true},
		{"unrelated", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRateLimited(tt.err); got != tt.want {
				t.Errorf("isRateLimited(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
