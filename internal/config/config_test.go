package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GEMINI_API_KEY",
		"PDF2PPTX_INPUT",
		"PDF2PPTX_OUTPUT",
		"PDF2PPTX_MODELS",
		"PDF2PPTX_MAX_RETRIES",
		"PDF2PPTX_RATE_LIMIT_DELAY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.InputPath != DefaultInputPath {
		t.Errorf("InputPath = %q, want %q", cfg.InputPath, DefaultInputPath)
	}
	if cfg.OutputPath != DefaultOutputPath {
		t.Errorf("OutputPath = %q, want %q", cfg.OutputPath, DefaultOutputPath)
	}
	if cfg.APIKey != "" {
		t.Errorf("APIKey = %q, want empty", cfg.APIKey)
	}
	if len(cfg.Models) != 3 || cfg.Models[0] != "gemini-2.5-flash-lite" {
		t.Errorf("Models = %v", cfg.Models)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.RateLimitDelay != 10*time.Second {
		t.Errorf("RateLimitDelay = %v, want 10s", cfg.RateLimitDelay)
	}
	if cfg.BackoffUnit != 15*time.Second {
		t.Errorf("BackoffUnit = %v, want 15s", cfg.BackoffUnit)
	}
	if cfg.AnalysisDPI != 100 || cfg.BackgroundDPI != 200 {
		t.Errorf("DPI = %d/%d, want 100/200", cfg.AnalysisDPI, cfg.BackgroundDPI)
	}
	if cfg.MaxAnalysisDim != 1200 {
		t.Errorf("MaxAnalysisDim = %d, want 1200", cfg.MaxAnalysisDim)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("PDF2PPTX_INPUT", "decks/q3.pdf")
	t.Setenv("PDF2PPTX_OUTPUT", "out/q3.pptx")
	t.Setenv("PDF2PPTX_MODELS", " gemini-2.5-pro , gemini-2.5-flash ,")
	t.Setenv("PDF2PPTX_MAX_RETRIES", "5")
	t.Setenv("PDF2PPTX_RATE_LIMIT_DELAY", "0")

	cfg := Load()

	if cfg.APIKey != "test-key" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.InputPath != "decks/q3.pdf" || cfg.OutputPath != "out/q3.pptx" {
		t.Errorf("paths = %q / %q", cfg.InputPath, cfg.OutputPath)
	}
	if len(cfg.Models) != 2 || cfg.Models[0] != "gemini-2.5-pro" || cfg.Models[1] != "gemini-2.5-flash" {
		t.Errorf("Models = %v", cfg.Models)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", cfg.MaxRetries)
	}
	if cfg.RateLimitDelay != 0 {
		t.Errorf("RateLimitDelay = %v, want 0", cfg.RateLimitDelay)
	}
}

func TestLoadRejectsMalformedNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("PDF2PPTX_MAX_RETRIES", "not-a-number")
	t.Setenv("PDF2PPTX_RATE_LIMIT_DELAY", "-5")

	cfg := Load()

	if cfg.MaxRetries != DefaultMaxRetries {
		t.Errorf("MaxRetries = %d, want default %d", cfg.MaxRetries, DefaultMaxRetries)
	}
	if cfg.RateLimitDelay != DefaultRateLimitDelay {
		t.Errorf("RateLimitDelay = %v, want default %v", cfg.RateLimitDelay, DefaultRateLimitDelay)
	}
}

func TestSplitModels(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"a,b,c", 3},
		{"a", 1},
		{" , ,", 3}, // nothing usable falls back to the defaults
	}

	for _, tt := range tests {
		if got := splitModels(tt.input); len(got) != tt.want {
			t.Errorf("splitModels(%q) = %v, want %d entries", tt.input, got, tt.want)
		}
	}
}
