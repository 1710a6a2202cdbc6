// internal/ai/extract.go
package ai

import "strings"

// StripJSONFence removes a markdown code fence around a JSON payload. Models
// sometimes wrap JSON in ```json ... ``` even when asked for a raw document;
// tolerate that rather than failing the whole request. Built by hand because
// nothing heavier than string slicing is needed here.
func StripJSONFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	} else {
		return s
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ExtractSVG cuts the <svg ...>...</svg> document out of a model response,
// dropping any fences or prose around it. Returns "" when no complete SVG
// element is present.
func ExtractSVG(s string) string {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "```") {
		var kept []string
		inBlock := false
		for _, line := range strings.Split(s, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "```") {
				inBlock = !inBlock
				continue
			}
			if inBlock {
				kept = append(kept, line)
			}
		}
		s = strings.Join(kept, "\n")
	}

	start := strings.Index(s, "<svg")
	end := strings.LastIndex(s, "</svg>")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return s[start : end+len("</svg>")]
}
