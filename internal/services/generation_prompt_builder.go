package services

import (
	"fmt"
	"strings"

	"github.com/webfolio-ai/webfolio/internal/models"
)

type IGenerationPromptBuilder interface {
	Build(req models.GenerationRequest) string
}

type GenerationPromptBuilder struct{}

func NewGenerationPromptBuilder() *GenerationPromptBuilder {
	return &GenerationPromptBuilder{}
}

// Build renders the full-document prompt for the initial generation call.
// Project images are referenced by placeholder; real URLs are substituted
// only after the document passes the completeness check.
func (b *GenerationPromptBuilder) Build(req models.GenerationRequest) string {
	var projectsInfo []string
	for i, p := range req.Projects {
		entry := fmt.Sprintf("%d. %s", i+1, p.Name)
		if p.Description != "" {
			entry += fmt.Sprintf(" — %s", p.Description)
		}
		if len(p.Technologies) > 0 {
			entry += fmt.Sprintf(" (tech: %s)", strings.Join(p.Technologies, ", "))
		}
		if p.LiveURL != "" {
			entry += fmt.Sprintf(" [live: %s]", p.LiveURL)
		}
		if p.RepoURL != "" {
			entry += fmt.Sprintf(" [repo: %s]", p.RepoURL)
		}
		entry += fmt.Sprintf("\n   Use the image placeholder %s for this project's screenshot.", ImagePlaceholder(i+1))
		projectsInfo = append(projectsInfo, entry)
	}
	projectsText := "No projects provided; build a hero, about and contact section only."
	if len(projectsInfo) > 0 {
		projectsText = strings.Join(projectsInfo, "\n")
	}

	bio := req.Profile.Bio
	if bio == "" {
		bio = fmt.Sprintf("%s, %s", req.Profile.Name, req.Profile.Title)
	}

	return fmt.Sprintf(`You are an expert web developer. Generate a COMPLETE single-page portfolio website as one self-contained HTML document.

## Person
- Name: %s
- Title: %s
- Bio: %s
- Email: %s
- Location: %s

## Projects
%s

## Style preferences
%s

## Hard requirements
- One single HTML file: <!DOCTYPE html>, <html>, <head> with a <style> block, <body>, and a <script> block for interactions.
- All CSS inline in the <style> block, all JS inline in the <script> block. No external frameworks.
- Responsive layout, semantic sections (hero, about, projects, contact).
- Keep project image placeholders exactly as given; do not invent image URLs.
- The page must end with a footer containing exactly this attribution line:
%s
- Close every tag you open. The document must end with </body></html>.
- Return ONLY the HTML document. No explanations, no markdown fences.`,
		req.Profile.Name,
		req.Profile.Title,
		bio,
		req.Profile.Email,
		req.Profile.Location,
		projectsText,
		req.Style.Summary(),
		FooterText(req.Profile.Name),
	)
}
