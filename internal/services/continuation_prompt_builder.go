package services

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/webfolio-ai/webfolio/internal/htmlcheck"
	"github.com/webfolio-ai/webfolio/internal/models"
)

// IContinuationPromptBuilder renders the instruction that makes the model
// resume a truncated document instead of restarting it. Pure string
// templating; the orchestrator only depends on its plain-text output.
type IContinuationPromptBuilder interface {
	Build(partialHTML string, genCtx models.GenerationContext) string
}

type ContinuationPromptBuilder struct{}

func NewContinuationPromptBuilder() *ContinuationPromptBuilder {
	return &ContinuationPromptBuilder{}
}

var footerEmojis = []string{"🚀", "✨", "💻", "🎨", "⚡"}

// FooterText is the attribution line every generated portfolio must end with.
// The emoji varies; the surrounding sentence structure does not.
func FooterText(personName string) string {
	emoji := footerEmojis[rand.IntN(len(footerEmojis))]
	return fmt.Sprintf("© %d %s · Built with %s by %s", time.Now().Year(), personName, emoji, htmlcheck.AttributionMarker)
}

func (b *ContinuationPromptBuilder) Build(partialHTML string, genCtx models.GenerationContext) string {
	verdict := htmlcheck.Analyze(partialHTML)

	var missing []string
	if !verdict.Structure.HasFooter {
		missing = append(missing, "- The footer with the required attribution line")
	}
	if !verdict.Structure.HasBodyClose {
		missing = append(missing, "- The closing </body> tag")
	}
	if !verdict.Structure.HasHTMLClose {
		missing = append(missing, "- The closing </html> tag")
	}
	missing = append(missing, fmt.Sprintf("- Tag balance is %.2f (1.00 means every opened tag is closed); close any still-open tags", verdict.Stats.TagBalance))

	return fmt.Sprintf(`You previously generated an HTML portfolio that was cut off before it finished.
DO NOT restart or regenerate the document. Continue EXACTLY from where the partial document below ends.

=== PARTIAL HTML START ===
%s
=== PARTIAL HTML END ===

## What is still missing
%s

## Required footer
The document must end with a footer containing exactly this attribution line:
%s

## Original generation parameters (for context, do not restate them in the output)
- Name: %s
- Title: %s
- Projects: %d
- Style: %s

Return ONLY the continuation content that completes the document. Do not repeat any part of the partial document. Do not wrap the output in markdown fences.`,
		partialHTML,
		strings.Join(missing, "\n"),
		FooterText(genCtx.PersonName),
		genCtx.PersonName,
		genCtx.Title,
		genCtx.ProjectCount,
		genCtx.StylePreferences,
	)
}
