package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// TruncationMarker is appended to text cut at the character limit.
const TruncationMarker = "..."

// Result is plain text extracted from an HTML document.
type Result struct {
	Text      string
	Truncated bool
}

// Len returns the length of Text in characters (runes).
func (r Result) Len() int {
	return utf8.RuneCountInString(r.Text)
}

var (
	scriptRe     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	tagRe        = regexp.MustCompile(`<[^>]+>`)
	// Unicode spaces too: ideographic space, raw NBSP, NEL, vertical tab.
	whitespaceRe = regexp.MustCompile(`[\s\p{Z}\x{0085}\v]+`)
)

// Text converts an HTML document to a single line of plain text of at most
// maxChars characters plus TruncationMarker. A non-positive maxChars disables
// truncation.
//
// Script and style elements go first so their bodies never surface as text.
// Entities are decoded last so that &nbsp; survives whitespace collapsing.
func Text(doc string, maxChars int) Result {
	doc = scriptRe.ReplaceAllString(doc, "")
	doc = styleRe.ReplaceAllString(doc, "")
	text := tagRe.ReplaceAllString(doc, " ")
	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	text = html.UnescapeString(text)
	return truncate(text, maxChars)
}

func truncate(text string, maxChars int) Result {
	if maxChars <= 0 || utf8.RuneCountInString(text) <= maxChars {
		return Result{Text: text}
	}
	runes := []rune(text)
	return Result{Text: string(runes[:maxChars]) + TruncationMarker, Truncated: true}
}
