package models

import "github.com/webfolio-ai/webfolio/internal/htmlcheck"

// GenerationResult is the only structure the generation core returns across
// its boundary. Every failure mode of the orchestrator resolves to one of
// these; no lower-level error escapes.
type GenerationResult struct {
	Success bool `json:"success"`
	// HTML is set iff Success.
	HTML string `json:"html,omitempty"`
	// Incomplete is true iff Success is false but a partial document exists.
	Incomplete       bool                         `json:"incomplete"`
	PartialHTML      string                       `json:"partial_html,omitempty"`
	CompletionStatus *htmlcheck.CompletionVerdict `json:"completion_status,omitempty"`
	AttemptsMade     int                          `json:"attempts_made"`
}

type PortfolioStatus string

const (
	StatusPending    PortfolioStatus = "PENDING"
	StatusGenerating PortfolioStatus = "GENERATING"
	StatusComplete   PortfolioStatus = "COMPLETE"
	StatusIncomplete PortfolioStatus = "INCOMPLETE"
	StatusFailed     PortfolioStatus = "FAILED"
)

// StatusFor maps a generation result onto the portfolio lifecycle.
func StatusFor(res *GenerationResult) PortfolioStatus {
	switch {
	case res == nil:
		return StatusFailed
	case res.Success:
		return StatusComplete
	case res.Incomplete:
		return StatusIncomplete
	default:
		return StatusFailed
	}
}
