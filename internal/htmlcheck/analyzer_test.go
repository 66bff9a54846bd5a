package htmlcheck

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeDoc() string {
	filler := strings.Repeat("<p>Building useful things for the web, one project at a time.</p>\n", 25)
	return `<!DOCTYPE html>
<html>
<head><title>Jane Doe</title><style>body{font-family:sans-serif}</style></head>
<body>
<h1>Jane Doe</h1>
` + filler + `<footer>© 2026 Jane Doe · Built with 🚀 by WebFolio</footer>
</body>
</html>`
}

func TestAnalyzeCompleteDocument(t *testing.T) {
	verdict := Analyze(completeDoc())

	require.NotNil(t, verdict)
	assert.True(t, verdict.IsComplete)
	assert.Equal(t, 100, verdict.EstimatedCompletion)
	assert.Empty(t, verdict.Issues)
	assert.True(t, verdict.CanContinue)
	assert.True(t, verdict.Structure.HasDoctype)
	assert.True(t, verdict.Structure.HasFooter)
	assert.InDelta(t, 1.0, verdict.Stats.TagBalance, 0.01)
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	doc := completeDoc()
	first := Analyze(doc)
	second := Analyze(doc)
	assert.Equal(t, first, second)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t\n"} {
		verdict := Analyze(input)
		require.NotNil(t, verdict)
		assert.False(t, verdict.IsComplete)
		assert.Equal(t, 0, verdict.EstimatedCompletion)
		assert.Equal(t, []string{"No HTML content provided"}, verdict.Issues)
		assert.False(t, verdict.CanContinue)
	}
}

func TestAnalyzeLenientCompleteRule(t *testing.T) {
	// Missing DOCTYPE and <head> are two issues, but the three hard markers
	// (footer, </body>, </html>) are present, so the document still ships.
	filler := strings.Repeat("<p>Design systems, accessibility audits and frontend tooling.</p>\n", 25)
	doc := `<html>
<body>
<style>body{margin:0}</style>
<h1>Sam Lee</h1>
` + filler + `<footer>© 2026 Sam Lee · Built with ✨ by WebFolio</footer>
</body>
</html>`

	verdict := Analyze(doc)

	assert.Len(t, verdict.Issues, 2)
	assert.True(t, verdict.IsComplete)
}

func TestAnalyzeCanContinueLengthGate(t *testing.T) {
	short := "<html><body><p>Hello there</p>"
	require.Less(t, len(short), 500)

	verdict := Analyze(short)

	assert.False(t, verdict.CanContinue)
	assert.False(t, verdict.IsComplete)
}

func TestAnalyzeCanContinueTruncatedDocument(t *testing.T) {
	doc := `<!DOCTYPE html><html><head><style>body{}</style></head><body>` +
		strings.Repeat("<p>Shipped a realtime dashboard for fleet telemetry.</p>", 15)
	require.Greater(t, len(doc), 500)

	verdict := Analyze(doc)

	assert.False(t, verdict.IsComplete)
	assert.True(t, verdict.CanContinue)
}

func TestAnalyzeMissingClosersCapsScore(t *testing.T) {
	// Everything present except the closing tags: raw score would be 90,
	// the missing-closer cap brings it to 75.
	doc := `<!DOCTYPE html><html><head><style>body{}</style></head><body>` +
		strings.Repeat("<p>Case studies, talks and open source contributions.</p>", 25) +
		`<footer>Built with 💻 by WebFolio</footer>`

	verdict := Analyze(doc)

	assert.Equal(t, 75, verdict.EstimatedCompletion)
	assert.False(t, verdict.IsComplete)
}

func TestAnalyzeManyIssuesPenalty(t *testing.T) {
	// Plain prose with no markup at all trips nearly every check; the
	// issue-count penalty floors the score at 10.
	doc := strings.Repeat("just some text without any markup whatsoever ", 30)
	require.Greater(t, len(doc), 1000)

	verdict := Analyze(doc)

	assert.Greater(t, len(verdict.Issues), 5)
	assert.Equal(t, 10, verdict.EstimatedCompletion)
	assert.False(t, verdict.CanContinue)
}

func TestAnalyzeUnterminatedTag(t *testing.T) {
	doc := `<html><body><div class="hero`

	verdict := Analyze(doc)

	assert.Contains(t, verdict.Issues, "Document ends with an unterminated tag")
}

func TestAnalyzeUnterminatedComment(t *testing.T) {
	doc := `<html><body><p>hi</p><!-- footer goes here`

	verdict := Analyze(doc)

	assert.Contains(t, verdict.Issues, "Document contains an unterminated comment")
}

func TestAnalyzeDoctypeOnlyFlaggedWithHTMLTag(t *testing.T) {
	fragment := "<div><p>just a fragment</p></div>"

	verdict := Analyze(fragment)

	assert.NotContains(t, verdict.Issues, "Missing DOCTYPE declaration")
}

func TestAnalyzeTagCounting(t *testing.T) {
	doc := `<html><body><p>one</p><img src="x.png"/><br/><div>open`

	verdict := Analyze(doc)

	assert.Equal(t, 6, verdict.Stats.OpenTags)
	assert.Equal(t, 2, verdict.Stats.SelfClosingTags)
	assert.Equal(t, 1, verdict.Stats.CloseTags)
	assert.InDelta(t, 0.25, verdict.Stats.TagBalance, 0.01)
}
