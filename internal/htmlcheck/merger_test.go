package htmlcheck

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeStripsDuplicatedBoilerplate(t *testing.T) {
	partial := `<!DOCTYPE html><html><head><style>body{}</style></head><body><h1>Hi</h1>`
	continuation := `<!DOCTYPE html>
<html lang="en">
<head><title>restated</title></head>
<body>
<p>the rest of the page</p>
</body>
</html>`

	merged := Merge(partial, continuation)

	assert.Equal(t, 1, strings.Count(strings.ToLower(merged), "<!doctype"))
	assert.Equal(t, 1, strings.Count(strings.ToLower(merged), "<html"))
	assert.Equal(t, 1, strings.Count(strings.ToLower(merged), "<head"))
	assert.Equal(t, 1, strings.Count(strings.ToLower(merged), "<body"))
	assert.Contains(t, merged, "the rest of the page")
	assert.NotContains(t, merged, "restated")
}

func TestMergeAppendsMissingClosers(t *testing.T) {
	partial := `<html><body><p>unfinished`
	continuation := `words that never close anything`

	merged := Merge(partial, continuation)

	assert.Contains(t, merged, "</body>")
	assert.Contains(t, merged, "</html>")
}

func TestMergeKeepsExistingClosers(t *testing.T) {
	partial := `<html><body><p>start</p>`
	continuation := `<p>end</p></body></html>`

	merged := Merge(partial, continuation)

	assert.Equal(t, 1, strings.Count(merged, "</body>"))
	assert.Equal(t, 1, strings.Count(merged, "</html>"))
}

func TestMergeNeverShrinks(t *testing.T) {
	cases := []struct {
		partial      string
		continuation string
	}{
		{"<html><body><p>abc", "def</p></body></html>"},
		{"<html><body><p>abc</p></body></html>", ""},
		{"<html><body>", "<body><p>dup body</p>"},
	}

	for _, tc := range cases {
		merged := Merge(tc.partial, tc.continuation)
		assert.GreaterOrEqual(t, len(merged), len(tc.partial))
		assert.Contains(t, strings.ToLower(merged), "</body>")
		assert.Contains(t, strings.ToLower(merged), "</html>")
	}
}
