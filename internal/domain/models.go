package domain

import "encoding/json"

// ElementKind classifies one visual unit extracted from a slide.
type ElementKind string

const (
	KindTitle    ElementKind = "title"
	KindSubtitle ElementKind = "subtitle"
	KindHeading  ElementKind = "heading"
	KindBody     ElementKind = "body"
	KindBullet   ElementKind = "bullet"
	KindCaption  ElementKind = "caption"
)

// SlideContent is the parsed result of analyzing one PDF page. It is created
// by the content extractor from a model response and consumed once by the
// slide builder; it is never persisted.
type SlideContent struct {
	BackgroundColor string         `json:"background_color"`
	Elements        []SlideElement `json:"elements"`
}

// SlideElement is one visual unit on a slide: text, a percentage-based
// bounding box relative to the slide dimensions, and styling hints.
type SlideElement struct {
	Kind        ElementKind `json:"type"`
	Text        string      `json:"text"`
	Position    Position    `json:"position"`
	Style       Style       `json:"style"`
	BulletLevel int         `json:"bullet_level"`
}

// Position holds the element bounding box as percentages (0-100) of the slide
// width and height. Out-of-range values from the model are clamped by the
// consumer.
type Position struct {
	X      float64 `json:"x_percent"`
	Y      float64 `json:"y_percent"`
	Width  float64 `json:"width_percent"`
	Height float64 `json:"height_percent"`
}

// Style carries the visual styling the model estimated for an element.
type Style struct {
	FontSize  FontSize `json:"font_size"`
	FontColor string   `json:"font_color"`
	Bold      bool     `json:"bold"`
	Italic    bool     `json:"italic"`
	Alignment string   `json:"alignment"`
}

// FontSize tolerates both JSON numbers and strings like "24pt"; the model is
// not consistent about which it returns. Malformed values decode to the empty
// string and resolve to the default size downstream rather than failing.
type FontSize string

func (f *FontSize) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FontSize(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FontSize(n.String())
		return nil
	}
	*f = ""
	return nil
}

// Summary reports the outcome of a conversion run.
type Summary struct {
	TotalSlides    int
	EditableSlides int
	FailedPages    []int
}
