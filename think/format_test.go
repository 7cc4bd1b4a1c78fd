package think

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

const quicksortTemplate = `<thinking>
Think extraordinarily deeply about this problem.
Break this down step-by-step, showing all your reasoning.
Consider multiple alternative approaches before deciding.
Explicitly identify and examine your assumptions.
Look for edge cases and potential failure modes.
Evaluate trade-offs between different solutions.
Challenge your initial intuitions with counterarguments.
Synthesize your insights before delivering a conclusion.

How does quicksort work?

</thinking>

[After careful analysis, provide your final answer here]`

func TestFormat_Verbatim(t *testing.T) {
	assert.Equal(t, quicksortTemplate, Format("How does quicksort work?"))
}

func TestFormat_PromptBetweenMarkersOnce(t *testing.T) {
	prompts := []string{
		"What is the time complexity of quicksort?",
		"Why zq?",
		"multi\nline prompt",
		"unicode: naïve café ✓",
	}
	for _, p := range prompts {
		out := Format(p)
		open := strings.Index(out, OpenMarker)
		end := strings.Index(out, CloseMarker)
		assert.True(t, open == 0, "prompt %q", p)
		assert.True(t, end > open, "prompt %q", p)
		assert.Equal(t, 1, strings.Count(out, p), "prompt %q", p)

		at := strings.Index(out, p)
		assert.True(t, at > open && at < end, "prompt %q", p)
	}
}

func TestFormat_EmptyPrompt(t *testing.T) {
	out := Format("")
	assert.Contains(t, out, OpenMarker)
	assert.Contains(t, out, CloseMarker)
	assert.True(t, strings.HasSuffix(out, FinalAnswerLine))
}

func TestFormat_EscapesPrompt(t *testing.T) {
	out := Format("Is <div> an HTML tag?")
	assert.Contains(t, out, "Is &lt;div&gt; an HTML tag?")
	assert.NotContains(t, out, "<div>")
}

func TestFormat_NoRawSpecialCharactersFromPrompt(t *testing.T) {
	prompt := `Tom & Jerry's "<b>bold</b>" move`
	out := Format(prompt)

	body := strings.TrimPrefix(out, OpenMarker)
	body = body[:strings.Index(body, CloseMarker)]
	for _, c := range []string{"<", ">", `"`, "'"} {
		assert.NotContains(t, body, c)
	}
	assert.Contains(t, out, "Tom &amp; Jerry&#039;s &quot;&lt;b&gt;bold&lt;/b&gt;&quot; move")
}

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "plain", want: "plain"},
		{in: "&", want: "&amp;"},
		{in: "<", want: "&lt;"},
		{in: ">", want: "&gt;"},
		{in: `"`, want: "&quot;"},
		{in: "'", want: "&#039;"},
		{in: `&<>"'`, want: "&amp;&lt;&gt;&quot;&#039;"},
		{in: "a && b", want: "a &amp;&amp; b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeHTML(tt.in), "input %q", tt.in)
	}
}

func TestEscapeHTML_NotIdempotent(t *testing.T) {
	once := EscapeHTML("<p>")
	assert.Equal(t, "&lt;p&gt;", once)
	assert.Equal(t, "&amp;lt;p&amp;gt;", EscapeHTML(once))
}
