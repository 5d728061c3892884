// Package pptx writes PowerPoint (.pptx) files by assembling OOXML package
// parts directly into a zip archive. It supports exactly what slide
// reconstruction needs: full-bleed pictures, solid background fills, and text
// boxes with per-run styling, on an explicit z-ordered shape list.
package pptx

// English Metric Units. OOXML positions all drawing geometry in EMU.
const (
	emusPerInch = 914400
)

// Inches converts inches to EMU.
func Inches(in float64) int64 {
	return int64(in * emusPerInch)
}

// SlideSize is one of the two fixed slide geometry presets.
type SlideSize struct {
	CX, CY int64
	Kind   string // OOXML p:sldSz type attribute
}

var (
	// SizeWide is the 16:9 preset (13.333 x 7.5 in).
	SizeWide = SlideSize{CX: 12192000, CY: 6858000, Kind: "screen16x9"}
	// SizeStandard is the 4:3 preset (10 x 7.5 in).
	SizeStandard = SlideSize{CX: 9144000, CY: 6858000, Kind: "screen4x3"}
)

// Alignment is a paragraph alignment.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Document is an in-memory presentation being assembled. It is finalized with
// WriteFile once all slides have been added.
type Document struct {
	size   SlideSize
	slides []*Slide
}

// New creates an empty presentation with the given slide geometry.
func New(size SlideSize) *Document {
	return &Document{size: size}
}

// Size returns the slide geometry preset of the document.
func (d *Document) Size() SlideSize {
	return d.size
}

// SlideCount returns the number of slides added so far.
func (d *Document) SlideCount() int {
	return len(d.slides)
}

// Slides returns the slides in presentation order.
func (d *Document) Slides() []*Slide {
	return d.slides
}

// AddSlide appends an empty slide and returns it.
func (d *Document) AddSlide() *Slide {
	s := &Slide{doc: d}
	d.slides = append(d.slides, s)
	return s
}

// Slide holds an ordered list of drawable shapes. Slice order is z-order:
// index 0 renders first and therefore sits at the bottom.
type Slide struct {
	doc        *Document
	background *[3]uint8
	shapes     []Shape
}

// Shape is a drawable element on a slide.
type Shape interface {
	shape()
}

// Picture is a raster image placed on the slide.
type Picture struct {
	PNG          []byte
	X, Y, CX, CY int64
}

func (*Picture) shape() {}

// TextBox is an editable text container.
type TextBox struct {
	X, Y, CX, CY int64
	Paragraphs   []*Paragraph
}

func (*TextBox) shape() {}

// Paragraph is one line of a text box with alignment and bullet indenting.
type Paragraph struct {
	Alignment Alignment
	Indent    int // 0 = no indent
	Runs      []*Run
}

// Run is a styled span of text.
type Run struct {
	Text   string
	SizePt int
	Color  [3]uint8
	Bold   bool
	Italic bool
	Font   string
}

// Shapes returns the slide's shapes in z-order (bottom first).
func (s *Slide) Shapes() []Shape {
	return s.shapes
}

// Background returns the solid background fill, or nil if none was set.
func (s *Slide) Background() *[3]uint8 {
	return s.background
}

// SetBackground fills the slide background with a solid color. It has no
// visible effect when a full-bleed picture covers the slide.
func (s *Slide) SetBackground(rgb [3]uint8) {
	c := rgb
	s.background = &c
}

// AddPicture places a PNG image on the slide at the given EMU geometry.
func (s *Slide) AddPicture(png []byte, x, y, cx, cy int64) *Picture {
	p := &Picture{PNG: png, X: x, Y: y, CX: cx, CY: cy}
	s.shapes = append(s.shapes, p)
	return p
}

// AddTextBox places an empty text box on the slide at the given EMU geometry.
func (s *Slide) AddTextBox(x, y, cx, cy int64) *TextBox {
	t := &TextBox{X: x, Y: y, CX: cx, CY: cy}
	s.shapes = append(s.shapes, t)
	return t
}

// RemoveShape deletes the shape at index i, preserving the order of the rest.
func (s *Slide) RemoveShape(i int) {
	if i < 0 || i >= len(s.shapes) {
		return
	}
	s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
}

// SendToBack splices the picture to index 0 of the shape list so every other
// shape renders on top of it.
func (s *Slide) SendToBack(p *Picture) {
	for i, shape := range s.shapes {
		if shape == Shape(p) {
			if i == 0 {
				return
			}
			copy(s.shapes[1:i+1], s.shapes[:i])
			s.shapes[0] = p
			return
		}
	}
}

// AddParagraph appends an empty paragraph to the text box.
func (t *TextBox) AddParagraph() *Paragraph {
	p := &Paragraph{Alignment: AlignLeft}
	t.Paragraphs = append(t.Paragraphs, p)
	return p
}

// AddRun appends a styled run to the paragraph.
func (p *Paragraph) AddRun(text string) *Run {
	r := &Run{Text: text, SizePt: 18, Color: [3]uint8{0, 0, 0}, Font: "Arial"}
	p.Runs = append(p.Runs, r)
	return r
}
