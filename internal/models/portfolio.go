package models

import (
	"fmt"
	"strings"
)

const maxProjects = 12

// Profile is the personal information a portfolio is generated from.
type Profile struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Bio      string `json:"bio,omitempty"`
	Email    string `json:"email,omitempty"`
	Location string `json:"location,omitempty"`
}

// Project is one portfolio entry. ImageURL is substituted into the generated
// document after the completeness verdict, never before.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	ImageURL     string   `json:"image_url,omitempty"`
	LiveURL      string   `json:"live_url,omitempty"`
	RepoURL      string   `json:"repo_url,omitempty"`
}

// StyleOptions are the user's visual preferences.
type StyleOptions struct {
	Theme        string `json:"theme,omitempty"`
	PrimaryColor string `json:"primary_color,omitempty"`
	FontStyle    string `json:"font_style,omitempty"`
	Layout       string `json:"layout,omitempty"`
}

// GenerationRequest is the typed payload validated once at the API boundary.
// The generation core only ever sees a validated request.
type GenerationRequest struct {
	Profile  Profile      `json:"profile"`
	Projects []Project    `json:"projects"`
	Style    StyleOptions `json:"style"`
}

func (r *GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Profile.Name) == "" {
		return fmt.Errorf("profile name is required")
	}
	if strings.TrimSpace(r.Profile.Title) == "" {
		return fmt.Errorf("profile title is required")
	}
	if len(r.Projects) > maxProjects {
		return fmt.Errorf("too many projects: %d (max %d)", len(r.Projects), maxProjects)
	}
	for i, p := range r.Projects {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("project %d has no name", i+1)
		}
	}
	return nil
}

// GenerationContext is the slice of the request a continuation prompt restates
// so the model keeps context without receiving the full payload again.
type GenerationContext struct {
	PersonName       string `json:"person_name"`
	Title            string `json:"title"`
	ProjectCount     int    `json:"project_count"`
	StylePreferences string `json:"style_preferences"`
}

func (r *GenerationRequest) Context() GenerationContext {
	return GenerationContext{
		PersonName:       r.Profile.Name,
		Title:            r.Profile.Title,
		ProjectCount:     len(r.Projects),
		StylePreferences: r.Style.Summary(),
	}
}

// Summary renders the style preferences as a short comma-joined phrase.
func (s StyleOptions) Summary() string {
	var parts []string
	if s.Theme != "" {
		parts = append(parts, s.Theme+" theme")
	}
	if s.PrimaryColor != "" {
		parts = append(parts, "primary color "+s.PrimaryColor)
	}
	if s.FontStyle != "" {
		parts = append(parts, s.FontStyle+" typography")
	}
	if s.Layout != "" {
		parts = append(parts, s.Layout+" layout")
	}
	if len(parts) == 0 {
		return "modern, minimal"
	}
	return strings.Join(parts, ", ")
}
