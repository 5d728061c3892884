package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults mirror the behavior of the converter this tool replaces: fixed
// input/output locations, the free-tier friendly model order, and pacing
// tuned to a 10 RPM quota.
const (
	DefaultInputPath  = "input/slides.pdf"
	DefaultOutputPath = "output/output.pptx"

	DefaultMaxRetries     = 3
	DefaultRateLimitDelay = 10 * time.Second
	DefaultBackoffUnit    = 15 * time.Second

	DefaultAnalysisDPI    = 100
	DefaultBackgroundDPI  = 200
	DefaultMaxAnalysisDim = 1200
)

// DefaultModels is the fallback order for extraction, most generous free-tier
// rate limit first.
var DefaultModels = []string{
	"gemini-2.5-flash-lite",
	"gemini-2.5-flash",
	"gemini-2.0-flash",
}

// Config holds all runtime settings for a conversion run.
type Config struct {
	InputPath  string
	OutputPath string

	APIKey string
	Models []string

	MaxRetries     int
	RateLimitDelay time.Duration
	BackoffUnit    time.Duration

	AnalysisDPI    int
	BackgroundDPI  int
	MaxAnalysisDim int
}

// Load builds a Config from the environment. A local .env file is read first
// if present; values in it never override variables already set in the
// environment.
func Load() *Config {
	_ = godotenv.Load() // missing .env is fine

	cfg := &Config{
		InputPath:      envOr("PDF2PPTX_INPUT", DefaultInputPath),
		OutputPath:     envOr("PDF2PPTX_OUTPUT", DefaultOutputPath),
		APIKey:         os.Getenv("GEMINI_API_KEY"),
		Models:         DefaultModels,
		MaxRetries:     envIntOr("PDF2PPTX_MAX_RETRIES", DefaultMaxRetries),
		RateLimitDelay: envSecondsOr("PDF2PPTX_RATE_LIMIT_DELAY", DefaultRateLimitDelay),
		BackoffUnit:    DefaultBackoffUnit,
		AnalysisDPI:    DefaultAnalysisDPI,
		BackgroundDPI:  DefaultBackgroundDPI,
		MaxAnalysisDim: DefaultMaxAnalysisDim,
	}

	if models := os.Getenv("PDF2PPTX_MODELS"); models != "" {
		cfg.Models = splitModels(models)
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func envSecondsOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return time.Duration(n) * time.Second
}

func splitModels(s string) []string {
	var models []string
	for _, m := range strings.Split(s, ",") {
		if m = strings.TrimSpace(m); m != "" {
			models = append(models, m)
		}
	}
	if len(models) == 0 {
		return DefaultModels
	}
	return models
}
