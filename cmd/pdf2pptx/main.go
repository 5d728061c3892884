package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/slideforge/pdf2pptx/internal/config"
	"github.com/slideforge/pdf2pptx/internal/domain"
	"github.com/slideforge/pdf2pptx/internal/extract"
	"github.com/slideforge/pdf2pptx/internal/llm"
	"github.com/slideforge/pdf2pptx/internal/pdf"
)

const version = "1.0.0"

var (
	outputPath  string
	showVersion bool
	verbose     bool
)

func init() {
	flag.StringVar(&outputPath, "output", "", "Output file path (default: output/output.pptx)")
	flag.StringVar(&outputPath, "o", "", "Output file path (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	flag.Usage = usage
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Printf("pdf2pptx version %s\n", version)
		os.Exit(0)
	}

	cfg := config.Load()
	if flag.NArg() > 0 {
		cfg.InputPath = flag.Arg(0)
	}
	if outputPath != "" {
		cfg.OutputPath = outputPath
	}

	logLevel := domain.LogLevelInfo
	if verbose {
		logLevel = domain.LogLevelDebug
	}
	logger := domain.NewLogger(logLevel)

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("PDF to Editable PPTX Converter")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Input:  %s\n", cfg.InputPath)
	fmt.Printf("Output: %s\n", cfg.OutputPath)
	fmt.Println()

	ctx := context.Background()

	renderer, err := pdf.NewRenderer(cfg.InputPath, cfg.MaxAnalysisDim)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	defer renderer.Close()

	// A missing credential is not fatal: the run degrades to image-only
	// slides with no text reconstruction.
	var analyzer domain.SlideAnalyzer
	if cfg.APIKey == "" {
		logger.Warn("GEMINI_API_KEY not set - using image-only mode")
		fmt.Println("To enable editable slides, set GEMINI_API_KEY in the environment or a .env file.")
	} else {
		client, err := llm.NewClient(ctx, cfg.APIKey, cfg.Models, cfg.MaxRetries, cfg.BackoffUnit, logger)
		if err != nil {
			logger.Warn("extraction unavailable (%v) - using image-only mode", err)
		} else {
			analyzer = client
		}
	}

	service := extract.NewService(renderer, analyzer, cfg, logger)

	startTime := time.Now()
	summary, err := service.Process(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("PPTX created: %s\n", cfg.OutputPath)
	fmt.Printf("Total slides:    %d\n", summary.TotalSlides)
	fmt.Printf("Editable slides: %d\n", summary.EditableSlides)
	if len(summary.FailedPages) > 0 {
		fmt.Printf("Fallback slides (image only): %v\n", summary.FailedPages)
	}
	fmt.Printf("Total time: %v\n", time.Since(startTime).Round(time.Second))
}

func usage() {
	fmt.Fprintf(os.Stderr, `pdf2pptx - Convert a PDF slide deck into an editable PowerPoint file

Usage:
  pdf2pptx [options] [pdf-file]

The input defaults to input/slides.pdf when no file is given.

Options:
  -o, --output <file>   Output file path (default: output/output.pptx)
  --version             Show version information
  --verbose             Enable verbose logging

Environment Variables:
  GEMINI_API_KEY           Gemini API key (optional; image-only mode without it)
  PDF2PPTX_INPUT           Default input path override
  PDF2PPTX_OUTPUT          Default output path override
  PDF2PPTX_MODELS          Comma-separated model fallback order
  PDF2PPTX_MAX_RETRIES     Attempts per model on rate limits (default 3)
  PDF2PPTX_RATE_LIMIT_DELAY  Seconds to wait between pages (default 10)

Examples:
  pdf2pptx deck.pdf
  pdf2pptx -o slides.pptx deck.pdf

`)
}
