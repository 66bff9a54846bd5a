package services

import (
	"strings"
)

// StripMarkdownFences removes a markdown code fence the model sometimes wraps
// generated HTML in, despite instructions not to. Fragments without fences
// pass through untouched apart from whitespace trimming.
func StripMarkdownFences(content string) string {
	content = strings.TrimSpace(content)

	if !strings.Contains(content, "```") {
		return content
	}

	parts := strings.Split(content, "```")
	if len(parts) < 2 {
		return content
	}

	inner := parts[1]

	if strings.HasPrefix(inner, "html") {
		inner = inner[4:]
	} else if strings.HasPrefix(inner, "HTML") {
		inner = inner[4:]
	}

	return strings.TrimSpace(inner)
}

func applyFuncOptions[T any](entity T, opts ...func(entity T) error) error {
	for _, opt := range opts {
		err := opt(entity)
		if err != nil {
			return err
		}
	}
	return nil
}

func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
