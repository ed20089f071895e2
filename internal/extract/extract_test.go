package extract

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestText_StripsScriptAndTags(t *testing.T) {
	got := Text("<html><body><script>bad()</script>Hello World</body></html>", 5000)
	if got.Text != "Hello World" {
		t.Fatalf("expected %q, got %q", "Hello World", got.Text)
	}
	if got.Len() != 11 || got.Truncated {
		t.Fatalf("unexpected result: %+v len=%d", got, got.Len())
	}
}

func TestText_ScriptAndStyleNeverLeak(t *testing.T) {
	doc := `<HTML><head>
<STYLE type="text/css">
  body { color: red }  /* hello */
</STYLE>
<script type="text/javascript">
  console.log("hello");
</Script>
</head><body><p>visible</p></body></HTML>`
	got := Text(doc, 0)
	if strings.Contains(got.Text, "hello") {
		t.Fatalf("script/style content leaked: %q", got.Text)
	}
	if got.Text != "visible" {
		t.Fatalf("expected only visible text, got %q", got.Text)
	}
}

func TestText_TagsBecomeSpaces(t *testing.T) {
	got := Text("<td>one</td><td>two</td>", 0)
	if got.Text != "one two" {
		t.Fatalf("expected words separated, got %q", got.Text)
	}
}

func TestText_DecodesEntitiesAfterCollapse(t *testing.T) {
	got := Text("<p>Fish &amp;   Chips&nbsp;&nbsp;Co</p>\n\n<p>&lt;b&gt;</p>", 0)
	want := "Fish & Chips\u00a0\u00a0Co <b>"
	if got.Text != want {
		t.Fatalf("expected %q, got %q", want, got.Text)
	}
}

func TestText_Truncates(t *testing.T) {
	got := Text("<p>"+strings.Repeat("あ", 20)+"</p>", 5)
	if !got.Truncated {
		t.Fatalf("expected truncation")
	}
	if got.Text != "あああああ"+TruncationMarker {
		t.Fatalf("unexpected truncated text: %q", got.Text)
	}
	if got.Len() != 5+utf8.RuneCountInString(TruncationMarker) {
		t.Fatalf("unexpected length %d", got.Len())
	}
}

func TestText_BoundedLength(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		strings.Repeat("<b>word</b> ", 500),
		"<div>" + strings.Repeat("x", 10000) + "</div>",
	}
	for _, in := range inputs {
		for _, max := range []int{1, 10, 100, 5000} {
			got := Text(in, max)
			if got.Len() > max+len(TruncationMarker) {
				t.Fatalf("length %d exceeds bound for max=%d", got.Len(), max)
			}
		}
	}
}

func TestText_IdempotentOnPlainText(t *testing.T) {
	for _, in := range []string{"Hello World", "  spaced\tout\n text ", "tom & jerry"} {
		once := Text(in, 5000)
		twice := Text(once.Text, 5000)
		if once.Text != twice.Text {
			t.Fatalf("not idempotent: %q then %q", once.Text, twice.Text)
		}
	}
}

func TestPatternExtractor(t *testing.T) {
	var e Extractor = PatternExtractor{}
	if got := e.Extract("<i>x</i>", 10); got.Text != "x" {
		t.Fatalf("unexpected: %q", got.Text)
	}
}

func TestText_CollapsesUnicodeWhitespace(t *testing.T) {
	cases := map[string]string{
		"<p>東京\u3000\u3000天気</p>": "東京 天気",
		"a\u00a0\u00a0 b":            "a b",
		"x\v\vy":                     "x y",
		"em\u2003\u2003space\u0085": "em space",
	}
	for in, want := range cases {
		if got := Text(in, 0).Text; got != want {
			t.Fatalf("Text(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestText_NbspEntitySurvivesCollapse(t *testing.T) {
	got := Text("a&nbsp;&nbsp;b", 0).Text
	if got != "a\u00a0\u00a0b" {
		t.Fatalf("expected decoded entities kept, got %q", got)
	}
}
