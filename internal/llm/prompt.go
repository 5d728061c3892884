package llm

// slidePrompt instructs the vision model to return the slide's full content
// as a single JSON object with positions as slide-relative percentages.
const slidePrompt = `Analyze this presentation slide image and extract ALL content with precise styling information.

Return a JSON object with this EXACT structure:
{
    "background_color": "#HEXCOLOR",
    "elements": [
        {
            "type": "title" | "subtitle" | "heading" | "body" | "bullet" | "caption",
            "text": "exact text content",
            "position": {
                "x_percent": 0-100,
                "y_percent": 0-100,
                "width_percent": 0-100,
                "height_percent": 0-100
            },
            "style": {
                "font_size": number (in points, estimate based on visual size),
                "font_color": "#HEXCOLOR",
                "bold": true/false,
                "italic": true/false,
                "alignment": "left" | "center" | "right"
            },
            "bullet_level": 0-3 (0 = no bullet, 1+ = bullet indent level)
        }
    ]
}

IMPORTANT RULES:
1. Extract ALL text visible on the slide - don't miss anything
2. Preserve the EXACT text content including punctuation and special characters
3. Estimate positions as percentages of slide dimensions (0-100)
4. Identify text hierarchy: titles are usually larger at top, body text smaller below
5. Detect bullet points and their indent levels
6. Extract accurate colors - background and text colors (use hex format #RRGGBB)
7. Title/heading text is usually 28-48pt, body text 16-24pt, captions 10-14pt
8. For multi-line text blocks, include all lines in the "text" field separated by newlines
9. Return ONLY valid JSON, no markdown code blocks, no explanation`
