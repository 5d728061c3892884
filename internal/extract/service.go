// Package extract drives the page-by-page conversion pipeline:
// render -> analyze -> reconstruct, with per-page degradation to an
// image-only slide and fixed pacing between pages.
package extract

import (
	"context"
	"image"
	"time"

	"github.com/slideforge/pdf2pptx/internal/config"
	"github.com/slideforge/pdf2pptx/internal/domain"
	"github.com/slideforge/pdf2pptx/internal/pdf"
	"github.com/slideforge/pdf2pptx/internal/pptx"
	"github.com/slideforge/pdf2pptx/internal/slide"
)

// Aspect ratios above this threshold select the wide (16:9) slide preset.
const wideAspectThreshold = 1.5

// Service orchestrates a single conversion run. Pages are processed strictly
// in order; the only state carried across pages is the accumulating document
// and the failed-page list.
type Service struct {
	renderer domain.PageRenderer
	analyzer domain.SlideAnalyzer // nil selects the image-only path
	cfg      *config.Config
	logger   *domain.Logger
	sleep    func(context.Context, time.Duration) error
}

// NewService wires a pipeline. A nil analyzer is valid and selects the
// image-only mode in which no extraction is attempted for any page.
func NewService(renderer domain.PageRenderer, analyzer domain.SlideAnalyzer, cfg *config.Config, logger *domain.Logger) *Service {
	if logger == nil {
		logger = domain.DefaultLogger
	}
	return &Service{
		renderer: renderer,
		analyzer: analyzer,
		cfg:      cfg,
		logger:   logger.WithPrefix("pipeline"),
		sleep:    ctxSleep,
	}
}

// Process converts every page and writes the presentation to the configured
// output path. Extraction failures degrade to image-only slides and never
// abort the run.
func (s *Service) Process(ctx context.Context) (*domain.Summary, error) {
	doc, err := s.NewDocument()
	if err != nil {
		return nil, err
	}

	summary, err := s.buildSlides(ctx, doc)
	if err != nil {
		return nil, err
	}

	if err := doc.WriteFile(s.cfg.OutputPath); err != nil {
		return nil, err
	}
	s.logger.Info("wrote %s (%d slides, %d editable)", s.cfg.OutputPath, summary.TotalSlides, summary.EditableSlides)

	return summary, nil
}

// Build converts every page into slides on doc without persisting, for
// callers that own the output document.
func (s *Service) Build(ctx context.Context, doc *pptx.Document) (*domain.Summary, error) {
	return s.buildSlides(ctx, doc)
}

// NewDocument sizes the output document from the first page's aspect ratio.
// All pages share this geometry regardless of their own dimensions.
func (s *Service) NewDocument() (*pptx.Document, error) {
	w, h, err := s.renderer.PageSizePt()
	if err != nil {
		return nil, err
	}

	size := pptx.SizeStandard
	if h > 0 && w/h > wideAspectThreshold {
		size = pptx.SizeWide
	}
	return pptx.New(size), nil
}

func (s *Service) buildSlides(ctx context.Context, doc *pptx.Document) (*domain.Summary, error) {
	builder := slide.NewBuilder(doc, s.logger)
	pageCount := s.renderer.PageCount()
	summary := &domain.Summary{}

	if s.analyzer == nil {
		s.logger.Warn("extraction unavailable, falling back to image-only slides")
	} else {
		s.logger.Info("processing %d pages (background image + editable text overlay)", pageCount)
	}

	for pageNum := 0; pageNum < pageCount; pageNum++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if err := s.processPage(ctx, builder, summary, pageNum); err != nil {
			return nil, err
		}
		summary.TotalSlides++

		// Inter-page pacing keeps the request rate inside the API
		// quota independent of the retry backoff. Not needed after
		// the last page, and pointless without an analyzer.
		if s.analyzer != nil && pageNum < pageCount-1 && s.cfg.RateLimitDelay > 0 {
			if err := s.sleep(ctx, s.cfg.RateLimitDelay); err != nil {
				return nil, err
			}
		}
	}

	return summary, nil
}

// processPage runs the per-page state machine:
// render -> extract -> (reconstruct with background | image-only fallback).
func (s *Service) processPage(ctx context.Context, builder *slide.Builder, summary *domain.Summary, pageNum int) error {
	page := pageNum + 1

	backgroundPNG, err := s.renderPNG(ctx, pageNum, s.cfg.BackgroundDPI, false)
	if err != nil {
		return err
	}

	if s.analyzer == nil {
		builder.AddImageSlide(backgroundPNG)
		return nil
	}

	analysisPNG, err := s.renderPNG(ctx, pageNum, s.cfg.AnalysisDPI, true)
	if err != nil {
		return err
	}

	s.logger.Info("analyzing page %d", page)
	content, err := s.analyzer.AnalyzeSlide(ctx, analysisPNG, page)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Warn("page %d: extraction failed (%v), using image fallback", page, err)
		summary.FailedPages = append(summary.FailedPages, page)
		builder.AddImageSlide(backgroundPNG)
		return nil
	}

	if len(content.Elements) == 0 {
		s.logger.Warn("page %d: no elements extracted, using image fallback", page)
		summary.FailedPages = append(summary.FailedPages, page)
		builder.AddImageSlide(backgroundPNG)
		return nil
	}

	s.logger.Info("page %d: extracted %d elements", page, len(content.Elements))
	builder.AddContentSlide(content, backgroundPNG)
	summary.EditableSlides++
	return nil
}

func (s *Service) renderPNG(ctx context.Context, pageNum, dpi int, forAI bool) ([]byte, error) {
	img, err := s.renderer.RenderPage(ctx, pageNum, dpi, forAI)
	if err != nil {
		return nil, err
	}
	return encodePNG(img)
}

func encodePNG(img image.Image) ([]byte, error) {
	return pdf.EncodePNG(img)
}

func ctxSleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
