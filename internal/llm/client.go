// Package llm extracts structured slide content from page images with the
// Gemini vision API. One call covers one page: the client walks an ordered
// model fallback list, retries rate-limited requests with escalating backoff,
// and treats a structurally invalid response as terminal for the page.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/slideforge/pdf2pptx/internal/domain"
)

// modelCaller issues one generation request against one named model.
// Separated from Client so retry behavior is testable without the network.
type modelCaller interface {
	generate(ctx context.Context, model, prompt string, png []byte) (string, error)
}

type geminiCaller struct {
	client *genai.Client
}

func (g *geminiCaller) generate(ctx context.Context, model, prompt string, png []byte) (string, error) {
	content := &genai.Content{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{Text: prompt},
			{InlineData: &genai.Blob{MIMEType: "image/png", Data: png}},
		},
	}

	res, err := g.client.Models.GenerateContent(ctx, model, []*genai.Content{content}, nil)
	if err != nil {
		return "", err
	}
	return res.Text(), nil
}

// Client analyzes slide images. It holds no per-page state; every
// AnalyzeSlide call is independent.
type Client struct {
	caller      modelCaller
	models      []string
	maxRetries  int
	backoffUnit time.Duration
	logger      *domain.Logger
	sleep       func(context.Context, time.Duration) error
}

// NewClient creates a Gemini-backed client. models is the fallback order
// (most generous rate limit first); maxRetries bounds attempts per model.
func NewClient(ctx context.Context, apiKey string, models []string, maxRetries int, backoffUnit time.Duration, logger *domain.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, domain.ConfigError("API key is not set", nil)
	}
	if len(models) == 0 {
		return nil, domain.ConfigError("no models configured", nil)
	}
	if logger == nil {
		logger = domain.DefaultLogger
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, domain.APIError("failed to create Gemini client", err)
	}

	return &Client{
		caller:      &geminiCaller{client: gc},
		models:      models,
		maxRetries:  maxRetries,
		backoffUnit: backoffUnit,
		logger:      logger.WithPrefix("llm"),
		sleep:       ctxSleep,
	}, nil
}

// AnalyzeSlide extracts structured content from one page image. The page
// number is 1-based and used only for logging. The iteration is a two-level
// walk over (model, attempt) with four exits: success, terminal structural
// failure, per-model abandonment on a permanent error, and full exhaustion.
func (c *Client) AnalyzeSlide(ctx context.Context, png []byte, pageNum int) (*domain.SlideContent, error) {
	var lastErr error

	for _, model := range c.models {
		for attempt := 1; attempt <= c.maxRetries; attempt++ {
			raw, err := c.caller.generate(ctx, model, slidePrompt, png)
			if err == nil {
				content, perr := parseSlideContent(raw)
				if perr != nil {
					// A malformed response from one model is
					// assumed likely to recur: terminal for the
					// page, no retry, no model fallback.
					c.logger.Warn("page %d: %s returned a malformed response: %v", pageNum, model, perr)
					return nil, perr
				}
				return content, nil
			}

			lastErr = err

			if !isRateLimited(err) {
				c.logger.Warn("page %d: %s failed (%v), trying next model", pageNum, model, err)
				break
			}

			if attempt == c.maxRetries {
				break
			}

			wait := c.backoffUnit * time.Duration(attempt)
			c.logger.Warn("page %d: %s rate limited, waiting %s (attempt %d/%d)", pageNum, model, wait, attempt, c.maxRetries)
			if err := c.sleep(ctx, wait); err != nil {
				return nil, err
			}
		}
	}

	return nil, domain.ExtractionError(fmt.Sprintf("page %d: all models and retries exhausted", pageNum), lastErr)
}

// ctxSleep blocks for d or until the context is canceled.
func ctxSleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// isRateLimited classifies an error as a transient quota rejection. The SDK's
// structured error is checked first; the substring fallback covers transport
// errors that never reach the API error type.
func isRateLimited(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED"
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
