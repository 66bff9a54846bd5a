package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/webfolio-ai/webfolio/internal/models"
)

func TestInjectReplacesPlaceholders(t *testing.T) {
	html := `<img src="{{PROJECT_IMAGE_1}}"/><img src="{{PROJECT_IMAGE_2}}"/>`
	projects := []models.Project{
		{Name: "One", ImageURL: "https://cdn.example.com/one.png"},
		{Name: "Two"},
	}

	out := NewImageInjector().Inject(html, projects)

	assert.Contains(t, out, "https://cdn.example.com/one.png")
	assert.Contains(t, out, defaultProjectImageURL)
	assert.NotContains(t, out, "{{PROJECT_IMAGE_")
}

func TestInjectLeavesUnknownPlaceholders(t *testing.T) {
	html := `<img src="{{PROJECT_IMAGE_5}}"/>`

	out := NewImageInjector().Inject(html, []models.Project{{Name: "Only"}})

	// No fifth project, nothing to substitute.
	assert.Contains(t, out, "{{PROJECT_IMAGE_5}}")
}
