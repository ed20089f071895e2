package extract

// Extractor converts an HTML document into bounded plain text.
// Implementations can swap stripping tactics without changing callers.
type Extractor interface {
	Extract(doc string, maxChars int) Result
}

// PatternExtractor strips markup with fixed patterns; see Text.
type PatternExtractor struct{}

func (PatternExtractor) Extract(doc string, maxChars int) Result {
	return Text(doc, maxChars)
}
