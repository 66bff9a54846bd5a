package services

import (
	"fmt"
	"strings"

	"github.com/webfolio-ai/webfolio/internal/models"
)

const defaultProjectImageURL = "https://placehold.co/800x500?text=Project"

// ImagePlaceholder is the exact token the generation prompt asks the model to
// emit for project n's image. Injection is plain string substitution, so it
// can never invalidate a structural verdict computed before it runs.
func ImagePlaceholder(n int) string {
	return fmt.Sprintf("{{PROJECT_IMAGE_%d}}", n)
}

type IImageInjector interface {
	Inject(html string, projects []models.Project) string
}

type ImageInjector struct {
	fallbackURL string
}

func NewImageInjector() *ImageInjector {
	return &ImageInjector{fallbackURL: defaultProjectImageURL}
}

func (i *ImageInjector) Inject(html string, projects []models.Project) string {
	for idx, p := range projects {
		url := p.ImageURL
		if url == "" {
			url = i.fallbackURL
		}
		html = strings.ReplaceAll(html, ImagePlaceholder(idx+1), url)
	}
	return html
}
