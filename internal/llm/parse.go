package llm

import (
	"encoding/json"
	"strings"

	"github.com/slideforge/pdf2pptx/internal/domain"
)

// parseSlideContent turns a raw model response into structured slide content.
// Models frequently wrap JSON in markdown fences despite instructions; those
// are tolerated, and as a last resort the first balanced JSON object in the
// text is used.
func parseSlideContent(raw string) (*domain.SlideContent, error) {
	text := stripCodeFences(raw)

	var content domain.SlideContent
	if err := json.Unmarshal([]byte(text), &content); err != nil {
		obj := firstJSONObject(text)
		if obj == "" {
			return nil, domain.ExtractionError("response contains no JSON object", err)
		}
		if err2 := json.Unmarshal([]byte(obj), &content); err2 != nil {
			return nil, domain.ExtractionError("response JSON does not match slide content shape", err2)
		}
	}
	return &content, nil
}

// stripCodeFences removes a leading markdown fence (optionally tagged, e.g.
// "```json") and a trailing fence.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		if nl := strings.Index(s, "\n"); nl != -1 {
			s = s[nl+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
	}

	return strings.TrimSpace(s)
}

// firstJSONObject scans for the first balanced top-level {...} span.
func firstJSONObject(s string) string {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, r := range s {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}

		switch r {
		case '"':
			if start != -1 {
				inString = true
			}
		case '{':
			if start == -1 {
				start = i
			}
			depth++
		case '}':
			if start != -1 {
				depth--
				if depth == 0 {
					return s[start : i+1]
				}
			}
		}
	}
	return ""
}
