package textutil

import "regexp"

var (
	controlRegex = regexp.MustCompile(`[\n\t\r]`)
	// greedy on purpose: everything from the first "<" to the last ">" on
	// a line collapses into a single space, even when that span covers
	// several independent tags. Downstream exports depend on this exact
	// behavior, lossy as it is.
	tagSpanRegex  = regexp.MustCompile(`<.*>`)
	spaceRunRegex = regexp.MustCompile(` +`)
)

// CleanQuestionText flattens a question or option label into a single line
// of plain text: control characters become spaces, html-ish tag spans
// collapse, runs of spaces are squeezed.
func CleanQuestionText(text string) string {
	t := controlRegex.ReplaceAllString(text, " ")
	t = tagSpanRegex.ReplaceAllString(t, " ")
	t = spaceRunRegex.ReplaceAllString(t, " ")
	return t
}
