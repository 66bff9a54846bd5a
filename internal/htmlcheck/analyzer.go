package htmlcheck

import (
	"fmt"
	"regexp"
	"strings"
)

// AttributionMarker is the agency attribution every generated portfolio must
// carry in its footer. The analyzer matches it case-insensitively.
const AttributionMarker = "WebFolio"

const (
	// A document shorter than this cannot hold a viable portfolio.
	minViableContentLength = 1000
	// Below this length a truncated document has too little structure to
	// resume from, so continuation is not attempted.
	minContinuableLength = 500

	minTagBalance         = 0.8
	maxMinorIssues        = 2
	issuePenaltyThreshold = 5
)

// StructureFlags records which structural landmarks are present in a document.
type StructureFlags struct {
	HasDoctype     bool `json:"has_doctype"`
	HasHTMLOpen    bool `json:"has_html_open"`
	HasHTMLClose   bool `json:"has_html_close"`
	HasHeadSection bool `json:"has_head_section"`
	HasBodyOpen    bool `json:"has_body_open"`
	HasBodyClose   bool `json:"has_body_close"`
	HasStyleBlock  bool `json:"has_style_block"`
	HasScriptBlock bool `json:"has_script_block"`
	HasFooter      bool `json:"has_footer"`
}

// DocumentStats holds raw tag counts used for the balance heuristic.
type DocumentStats struct {
	Length          int     `json:"length"`
	OpenTags        int     `json:"open_tags"`
	CloseTags       int     `json:"close_tags"`
	SelfClosingTags int     `json:"self_closing_tags"`
	TagBalance      float64 `json:"tag_balance"`
}

// CompletionVerdict is the analyzer's judgement of whether a generated
// document is finished, how finished it is, and whether a truncated one is
// worth continuing.
type CompletionVerdict struct {
	IsComplete          bool           `json:"is_complete"`
	EstimatedCompletion int            `json:"estimated_completion"`
	Issues              []string       `json:"issues"`
	CanContinue         bool           `json:"can_continue"`
	Structure           StructureFlags `json:"structure"`
	Stats               DocumentStats  `json:"stats"`
}

var (
	// Tags opened with a name, closing tags excluded by the leading letter.
	// Self-closing tags also match and are classified by their "/>" suffix.
	openTagRe  = regexp.MustCompile(`(?i)<[a-z][a-z0-9]*[^>]*>`)
	closeTagRe = regexp.MustCompile(`(?i)</[a-z][a-z0-9]*\s*>`)
	// A "<" that never gets its ">" before the end of the document.
	trailingOpenRe = regexp.MustCompile(`<[^>]*$`)
)

// Analyze inspects a candidate HTML document and produces a CompletionVerdict.
// It never fails: empty or whitespace-only input yields the fixed fallback
// verdict. The checks are deliberately cheap substring/regex heuristics, not a
// real HTML parse; the goal is a retry-vs-ship signal, not validation.
func Analyze(html string) *CompletionVerdict {
	trimmed := strings.TrimSpace(html)
	if trimmed == "" {
		return &CompletionVerdict{
			IsComplete:          false,
			EstimatedCompletion: 0,
			Issues:              []string{"No HTML content provided"},
			CanContinue:         false,
		}
	}

	lower := strings.ToLower(trimmed)
	marker := strings.ToLower(AttributionMarker)

	structure := StructureFlags{
		HasDoctype:     strings.Contains(lower, "<!doctype"),
		HasHTMLOpen:    strings.Contains(lower, "<html"),
		HasHTMLClose:   strings.Contains(lower, "</html>"),
		HasHeadSection: strings.Contains(lower, "<head"),
		HasBodyOpen:    strings.Contains(lower, "<body"),
		HasBodyClose:   strings.Contains(lower, "</body>"),
		HasStyleBlock:  strings.Contains(lower, "<style"),
		HasScriptBlock: strings.Contains(lower, "<script"),
		HasFooter:      strings.Contains(lower, marker) || strings.Contains(lower, "<footer"),
	}

	hasContent := len(trimmed) > minViableContentLength

	stats := countTags(trimmed)
	stats.Length = len(trimmed)

	endsAbruptly := !strings.HasSuffix(lower, "</html>") &&
		!strings.HasSuffix(lower, "</body>") &&
		!strings.HasSuffix(lower, "-->")

	unterminatedTag := trailingOpenRe.MatchString(trimmed)
	unterminatedComment := strings.LastIndex(trimmed, "<!--") > strings.LastIndex(trimmed, "-->")

	var issues []string
	addIssue := func(cond bool, msg string) {
		if cond {
			issues = append(issues, msg)
		}
	}

	// Doctype is only flagged when an <html> tag exists, so bare fragments
	// are not penalized for it.
	addIssue(structure.HasHTMLOpen && !structure.HasDoctype, "Missing DOCTYPE declaration")
	addIssue(!structure.HasHTMLOpen, "Missing opening <html> tag")
	addIssue(!structure.HasHeadSection, "Missing <head> section")
	addIssue(!structure.HasBodyOpen, "Missing opening <body> tag")
	addIssue(!structure.HasStyleBlock && !strings.Contains(lower, "<link"), "Missing styling (no <style> or <link> found)")
	addIssue(!structure.HasFooter, "Missing required footer attribution")
	addIssue(!structure.HasBodyClose, "Missing closing </body> tag")
	addIssue(!structure.HasHTMLClose, "Missing closing </html> tag")
	addIssue(unterminatedTag, "Document ends with an unterminated tag")
	addIssue(unterminatedComment, "Document contains an unterminated comment")
	addIssue(endsAbruptly, "Document ends abruptly")
	addIssue(stats.TagBalance < minTagBalance, fmt.Sprintf("Unclosed tags detected (balance %.2f)", stats.TagBalance))

	score := estimateCompletion(structure, hasContent, len(issues))

	isComplete := len(issues) == 0 ||
		(structure.HasHTMLClose && structure.HasBodyClose && structure.HasFooter && len(issues) <= maxMinorIssues)

	canContinue := structure.HasHTMLOpen && structure.HasBodyOpen && len(trimmed) > minContinuableLength

	return &CompletionVerdict{
		IsComplete:          isComplete,
		EstimatedCompletion: score,
		Issues:              issues,
		CanContinue:         canContinue,
		Structure:           structure,
		Stats:               stats,
	}
}

func countTags(html string) DocumentStats {
	stats := DocumentStats{}

	for _, tag := range openTagRe.FindAllString(html, -1) {
		stats.OpenTags++
		if strings.HasSuffix(tag, "/>") {
			stats.SelfClosingTags++
		}
	}
	stats.CloseTags = len(closeTagRe.FindAllString(html, -1))

	expected := stats.OpenTags - stats.SelfClosingTags
	if expected < 1 {
		expected = 1
	}
	stats.TagBalance = float64(stats.CloseTags) / float64(expected)

	return stats
}

// estimateCompletion builds the 0..100 score from fixed per-marker weights,
// then applies the issue-count penalty and the missing-closer cap.
func estimateCompletion(s StructureFlags, hasContent bool, issueCount int) int {
	score := 0
	if s.HasDoctype {
		score += 5
	}
	if s.HasHTMLOpen {
		score += 10
	}
	if s.HasHeadSection {
		score += 10
	}
	if s.HasBodyOpen {
		score += 15
	}
	if s.HasStyleBlock {
		score += 20
	}
	if hasContent {
		score += 20
	}
	if s.HasFooter {
		score += 10
	}
	if s.HasBodyClose {
		score += 5
	}
	if s.HasHTMLClose {
		score += 5
	}

	if issueCount > issuePenaltyThreshold {
		score -= 20
		if score < 10 {
			score = 10
		}
	}
	if (!s.HasBodyClose || !s.HasHTMLClose) && score > 75 {
		score = 75
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
