package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripMarkdownFences(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "html fence",
			content: "```html\n<div>hello</div>\n```",
			want:    "<div>hello</div>",
		},
		{
			name:    "bare fence",
			content: "```\n<p>hi</p>\n```",
			want:    "<p>hi</p>",
		},
		{
			name:    "no fence passthrough",
			content: "  <html><body></body></html>  ",
			want:    "<html><body></body></html>",
		},
		{
			name:    "unclosed fence",
			content: "```HTML\n<section>tail",
			want:    "<section>tail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripMarkdownFences(tt.content))
		})
	}
}
