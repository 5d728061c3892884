package domain

import (
	"context"
	"image"
)

// PageRenderer turns PDF pages into raster images.
type PageRenderer interface {
	// PageCount returns the number of pages in the document.
	PageCount() int

	// PageSizePt returns the first page's width and height in points,
	// used once to choose the output slide geometry.
	PageSizePt() (width, height float64, err error)

	// RenderPage rasterizes a page (0-based) at the given DPI. With forAI
	// set, the result is downscaled to a bounded dimension to limit API
	// payload size; otherwise the raster is returned untouched.
	RenderPage(ctx context.Context, pageNum int, dpi int, forAI bool) (image.Image, error)

	// Close releases the underlying document.
	Close() error
}

// SlideAnalyzer extracts structured slide content from a page raster. Any
// returned error means extraction failed for that page; a nil error always
// carries a fully populated SlideContent, never a partial one.
type SlideAnalyzer interface {
	AnalyzeSlide(ctx context.Context, png []byte, pageNum int) (*SlideContent, error)
}
