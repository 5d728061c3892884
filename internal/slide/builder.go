// Package slide reconstructs editable slides from extracted content: it maps
// percentage-based element boxes onto slide geometry, layers text boxes over
// a background image, and resolves styling with documented defaults. Nothing
// here fails; malformed input always degrades to a default.
package slide

import (
	"strings"

	"github.com/slideforge/pdf2pptx/internal/domain"
	"github.com/slideforge/pdf2pptx/internal/pptx"
)

// Box geometry limits. Boxes below the minimum are bumped up; boxes
// overflowing the slide are pulled in, keeping a small margin at the edge.
var (
	minBoxWidthBump  = pptx.Inches(1)
	minBoxWidth      = pptx.Inches(2)
	minBoxHeightBump = pptx.Inches(0.4)
	minBoxHeight     = pptx.Inches(0.6)
	edgeMargin       = pptx.Inches(0.2)
)

// Builder appends reconstructed slides to a presentation.
type Builder struct {
	doc    *pptx.Document
	logger *domain.Logger
}

// NewBuilder creates a builder targeting doc.
func NewBuilder(doc *pptx.Document, logger *domain.Logger) *Builder {
	if logger == nil {
		logger = domain.DefaultLogger
	}
	return &Builder{doc: doc, logger: logger.WithPrefix("slide")}
}

// AddImageSlide appends a slide containing only a full-bleed picture. Used
// both for per-page extraction fallback and for the image-only pipeline mode.
func (b *Builder) AddImageSlide(backgroundPNG []byte) *pptx.Slide {
	size := b.doc.Size()
	s := b.doc.AddSlide()
	s.AddPicture(backgroundPNG, 0, 0, size.CX, size.CY)
	return s
}

// AddContentSlide appends one fully formed slide: a full-bleed background
// picture (demoted beneath all other shapes) or a solid background color,
// then one editable text box per non-empty element.
func (b *Builder) AddContentSlide(content *domain.SlideContent, backgroundPNG []byte) *pptx.Slide {
	size := b.doc.Size()
	s := b.doc.AddSlide()

	if backgroundPNG != nil {
		pic := s.AddPicture(backgroundPNG, 0, 0, size.CX, size.CY)
		s.SendToBack(pic)
	} else {
		s.SetBackground(resolveColor(content.BackgroundColor, colorWhite))
	}

	for _, elem := range content.Elements {
		b.addElement(s, elem, size)
	}
	return s
}

func (b *Builder) addElement(s *pptx.Slide, elem domain.SlideElement, size pptx.SlideSize) {
	text := strings.TrimSpace(elem.Text)
	if text == "" {
		return
	}

	left, top, width, height := elementBox(elem.Position, size)
	tb := s.AddTextBox(left, top, width, height)

	alignment := resolveAlignment(elem.Style.Alignment)
	fontSize := resolveFontSize(elem.Style.FontSize, elem.Kind)
	fontColor := resolveColor(elem.Style.FontColor, colorBlack)
	bold := elem.Style.Bold || elem.Kind == domain.KindTitle || elem.Kind == domain.KindHeading

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		line, isBulletLine := stripBulletGlyph(line)
		if line == "" {
			continue
		}

		p := tb.AddParagraph()
		p.Alignment = alignment
		if elem.BulletLevel > 0 || isBulletLine || elem.Kind == domain.KindBullet {
			p.Indent = bulletIndent(elem.BulletLevel)
		}

		r := p.AddRun(line)
		r.SizePt = fontSize
		r.Color = fontColor
		r.Bold = bold
		r.Italic = elem.Style.Italic
		r.Font = fontFamily
	}

	// Every line may have been blank or bullet-glyph-only; drop the box
	// rather than emit an empty shape.
	if len(tb.Paragraphs) == 0 {
		b.removeShape(s, tb)
	}
}

// elementBox converts a percentage position into an absolute EMU bounding
// box, enforcing minimum dimensions and clamping to the slide with an edge
// margin.
func elementBox(pos domain.Position, size pptx.SlideSize) (left, top, width, height int64) {
	left = int64(clampPercent(pos.X) / 100 * float64(size.CX))
	top = int64(clampPercent(pos.Y) / 100 * float64(size.CY))
	width = int64(clampPercent(pos.Width) / 100 * float64(size.CX))
	height = int64(clampPercent(pos.Height) / 100 * float64(size.CY))

	if width < minBoxWidthBump {
		width = minBoxWidth
	}
	if height < minBoxHeightBump {
		height = minBoxHeight
	}

	if left < 0 {
		left = edgeMargin
	}
	if top < 0 {
		top = edgeMargin
	}
	if left+width > size.CX {
		width = size.CX - left - edgeMargin
	}
	if top+height > size.CY {
		height = size.CY - top - edgeMargin
	}
	return left, top, width, height
}

// stripBulletGlyph removes a leading bullet marker and reports whether one
// was present.
func stripBulletGlyph(line string) (string, bool) {
	if !strings.HasPrefix(line, "•") && !strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "*") {
		return line, false
	}
	return strings.TrimSpace(strings.TrimLeft(line, "•-* ")), true
}

// bulletIndent maps a declared bullet level to a paragraph indent level.
// Level 0 elements that still render as bullets indent at the first level.
func bulletIndent(declared int) int {
	if declared < 1 {
		declared = 1
	}
	return declared - 1
}

func (b *Builder) removeShape(s *pptx.Slide, target pptx.Shape) {
	shapes := s.Shapes()
	for i, shape := range shapes {
		if shape == target {
			s.RemoveShape(i)
			return
		}
	}
}
