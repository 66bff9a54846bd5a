package htmlcheck

import (
	"regexp"
	"strings"
)

// Continuation fragments often re-emit structural boilerplate instead of only
// the missing tail. These match such artifacts at the very start of a fragment.
var (
	leadingDoctypeRe  = regexp.MustCompile(`(?i)^<!doctype[^>]*>\s*`)
	leadingHTMLOpenRe = regexp.MustCompile(`(?i)^<html[^>]*>\s*`)
	leadingHeadRe     = regexp.MustCompile(`(?is)^<head[^>]*>.*?</head>\s*`)
	leadingBodyOpenRe = regexp.MustCompile(`(?i)^<body[^>]*>\s*`)
)

// Merge stitches a continuation fragment onto a partial document. Duplicated
// leading boilerplate is stripped from the fragment and the result is
// guaranteed to contain both closing tags. This is a best-effort concatenation,
// not an HTML-aware merge.
func Merge(partial, continuation string) string {
	fragment := strings.TrimSpace(continuation)
	fragment = leadingDoctypeRe.ReplaceAllString(fragment, "")
	fragment = leadingHTMLOpenRe.ReplaceAllString(fragment, "")
	fragment = leadingHeadRe.ReplaceAllString(fragment, "")
	fragment = leadingBodyOpenRe.ReplaceAllString(fragment, "")

	merged := strings.TrimSpace(partial) + "\n" + fragment

	if !strings.Contains(strings.ToLower(merged), "</body>") {
		merged += "\n</body>"
	}
	if !strings.Contains(strings.ToLower(merged), "</html>") {
		merged += "\n</html>"
	}
	return merged
}
