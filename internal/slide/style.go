package slide

import (
	"strconv"
	"strings"

	"github.com/slideforge/pdf2pptx/internal/domain"
	"github.com/slideforge/pdf2pptx/internal/pptx"
)

const (
	defaultFontSize = 18
	minFontSize     = 10
	maxFontSize     = 60

	fontFamily = "Arial"
)

var (
	colorBlack = [3]uint8{0, 0, 0}
	colorWhite = [3]uint8{255, 255, 255}
)

// parseHexColor parses "#RRGGBB" (leading # optional). Anything other than
// exactly 6 hex digits is rejected.
func parseHexColor(s string) ([3]uint8, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return [3]uint8{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return [3]uint8{}, false
	}
	return [3]uint8{uint8(v >> 16), uint8(v >> 8), uint8(v)}, true
}

// resolveColor parses a hex color, degrading to the fallback on malformed or
// missing input.
func resolveColor(s string, fallback [3]uint8) [3]uint8 {
	if rgb, ok := parseHexColor(s); ok {
		return rgb
	}
	return fallback
}

// resolveFontSize turns the model's declared size into a final point size:
// parse (tolerating a trailing "pt", defaulting on any failure), apply
// kind-specific floors and ceilings, then clamp to the global range.
func resolveFontSize(raw domain.FontSize, kind domain.ElementKind) int {
	size := defaultFontSize
	s := strings.TrimSpace(string(raw))
	s = strings.TrimSuffix(s, "pt")
	s = strings.TrimSpace(s)
	if s != "" {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			size = int(f)
		}
	}

	switch kind {
	case domain.KindTitle:
		if size < 32 {
			size = 32
		}
	case domain.KindSubtitle:
		if size < 24 {
			size = 24
		}
	case domain.KindHeading:
		if size < 22 {
			size = 22
		}
	case domain.KindCaption:
		if size > 14 {
			size = 14
		}
	}

	if size < minFontSize {
		size = minFontSize
	}
	if size > maxFontSize {
		size = maxFontSize
	}
	return size
}

// resolveAlignment maps the declared alignment onto a paragraph alignment,
// defaulting to left for unrecognized values.
func resolveAlignment(s string) pptx.Alignment {
	switch s {
	case "center":
		return pptx.AlignCenter
	case "right":
		return pptx.AlignRight
	default:
		return pptx.AlignLeft
	}
}

// clampPercent bounds a model-supplied percentage to [0,100].
func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
