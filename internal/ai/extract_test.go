// internal/ai/extract_test.go
package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripJSONFence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain json untouched",
			input: `{"title": "Rehber"}`,
			want:  `{"title": "Rehber"}`,
		},
		{
			name:  "json fence",
			input: "```json\n{\"title\": \"Rehber\"}\n```",
			want:  `{"title": "Rehber"}`,
		},
		{
			name:  "bare fence",
			input: "```\n[1, 2, 3]\n```",
			want:  "[1, 2, 3]",
		},
		{
			name:  "surrounding whitespace",
			input: "  \n```json\n{}\n```  \n",
			want:  "{}",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "unterminated fence",
			input: "```json\n{\"a\": 1}",
			want:  `{"a": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripJSONFence(tt.input))
		})
	}
}

func TestExtractSVG(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare svg",
			input: `<svg viewBox="0 0 100 100"><rect/></svg>`,
			want:  `<svg viewBox="0 0 100 100"><rect/></svg>`,
		},
		{
			name:  "svg inside fence",
			input: "Elbette, işte resim:\n```svg\n<svg><circle/></svg>\n```\nUmarım beğenirsiniz.",
			want:  "<svg><circle/></svg>",
		},
		{
			name:  "prose around svg",
			input: "İşte adım resmi: <svg><path/></svg> bitti.",
			want:  "<svg><path/></svg>",
		},
		{
			name:  "no svg at all",
			input: "Üzgünüm, resim üretemedim.",
			want:  "",
		},
		{
			name:  "unclosed svg",
			input: "<svg><rect/>",
			want:  "",
		},
		{
			name:  "closing tag before opening",
			input: "</svg> garbage <svg",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSVG(tt.input))
		})
	}
}
