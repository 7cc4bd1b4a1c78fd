// Package think renders the structured-reasoning template returned by the
// think tool.
package think

import "strings"

const (
	OpenMarker  = "<thinking>"
	CloseMarker = "</thinking>"
)

// Directives are printed one per line after the opening marker.
var Directives = []string{
	"Think extraordinarily deeply about this problem.",
	"Break this down step-by-step, showing all your reasoning.",
	"Consider multiple alternative approaches before deciding.",
	"Explicitly identify and examine your assumptions.",
	"Look for edge cases and potential failure modes.",
	"Evaluate trade-offs between different solutions.",
	"Challenge your initial intuitions with counterarguments.",
	"Synthesize your insights before delivering a conclusion.",
}

// FinalAnswerLine follows the closing marker.
const FinalAnswerLine = "[After careful analysis, provide your final answer here]"

// '&' must stay first or the entities produced by later rules get escaped again.
var htmlEscapes = [][2]string{
	{"&", "&amp;"},
	{"<", "&lt;"},
	{">", "&gt;"},
	{`"`, "&quot;"},
	{"'", "&#039;"},
}

// EscapeHTML replaces the five HTML-significant characters with entities.
// It is not idempotent: escaped input is escaped again.
func EscapeHTML(s string) string {
	for _, r := range htmlEscapes {
		s = strings.ReplaceAll(s, r[0], r[1])
	}
	return s
}

// Format wraps the escaped prompt in the thinking template. It never fails;
// an empty prompt still yields both markers.
func Format(prompt string) string {
	var b strings.Builder
	b.WriteString(OpenMarker)
	b.WriteByte('\n')
	for _, d := range Directives {
		b.WriteString(d)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(EscapeHTML(prompt))
	b.WriteString("\n\n")
	b.WriteString(CloseMarker)
	b.WriteString("\n\n")
	b.WriteString(FinalAnswerLine)
	return b.String()
}
