package pdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/gen2brain/go-fitz"
	xdraw "golang.org/x/image/draw"

	"github.com/slideforge/pdf2pptx/internal/domain"
)

// Renderer rasterizes PDF pages using go-fitz. One Renderer owns one open
// document; it is not safe for concurrent use, matching the strictly
// sequential page loop of the pipeline.
type Renderer struct {
	doc            *fitz.Document
	pageCount      int
	maxAnalysisDim int
}

// NewRenderer validates and opens a PDF. maxAnalysisDim bounds the longer
// side of analysis renders; values < 1 fall back to no downscaling.
func NewRenderer(path string, maxAnalysisDim int) (*Renderer, error) {
	if err := ValidatePDFPath(path); err != nil {
		return nil, err
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, domain.ConversionError("failed to open PDF", err)
	}

	pageCount := doc.NumPage()
	if pageCount == 0 {
		doc.Close()
		return nil, domain.ValidationError("PDF has no pages", nil)
	}

	return &Renderer{
		doc:            doc,
		pageCount:      pageCount,
		maxAnalysisDim: maxAnalysisDim,
	}, nil
}

// PageCount returns the number of pages in the open document.
func (r *Renderer) PageCount() int {
	return r.pageCount
}

// PageSizePt returns the first page's width and height in points.
func (r *Renderer) PageSizePt() (float64, float64, error) {
	bounds, err := r.doc.Bound(0)
	if err != nil {
		return 0, 0, domain.ConversionError("failed to read page bounds", err)
	}
	return float64(bounds.Dx()), float64(bounds.Dy()), nil
}

// RenderPage rasterizes a page (0-based) at the given DPI. Analysis renders
// are downscaled when either dimension exceeds the configured cap.
func (r *Renderer) RenderPage(ctx context.Context, pageNum int, dpi int, forAI bool) (image.Image, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if pageNum < 0 || pageNum >= r.pageCount {
		return nil, domain.ValidationError(fmt.Sprintf("page %d out of range (document has %d pages)", pageNum+1, r.pageCount), nil)
	}

	rgba, err := r.doc.ImageDPI(pageNum, float64(dpi))
	if err != nil {
		return nil, domain.ConversionError(fmt.Sprintf("failed to render page %d", pageNum+1), err)
	}

	var img image.Image = rgba
	if forAI && r.maxAnalysisDim > 0 {
		img = Downscale(img, r.maxAnalysisDim)
	}
	return img, nil
}

// Close releases the underlying document.
func (r *Renderer) Close() error {
	if r.doc != nil {
		err := r.doc.Close()
		r.doc = nil
		return err
	}
	return nil
}

// Downscale shrinks img so that neither dimension exceeds maxDim, preserving
// aspect ratio with Catmull-Rom resampling. Images already within bounds are
// returned as-is.
func Downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	ratio := float64(maxDim) / float64(w)
	if hr := float64(maxDim) / float64(h); hr < ratio {
		ratio = hr
	}
	nw := int(float64(w) * ratio)
	nh := int(float64(h) * ratio)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Src, nil)
	return dst
}

// EncodePNG encodes an image as lossless PNG for transmission or embedding.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, domain.ConversionError("failed to encode PNG", err)
	}
	return buf.Bytes(), nil
}
