package bridge

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hyperifyio/skillbridge/internal/skills"
)

// Field caps for free text copied out of external records.
const (
	snippetChars = 200
	bodyChars    = 2000
)

// nullable maps the empty string to JSON null.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// isoTime renders t as RFC 3339, or JSON null when absent.
func isoTime(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

// displayAddress renders an address for display, or JSON null when absent.
func displayAddress(a *skills.Address) *string {
	if a == nil {
		return nil
	}
	return nullable(a.String())
}

func displayAddresses(list []skills.Address) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.String())
	}
	return out
}

// truncate cuts s to at most n characters.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// argOr returns args[i] or def when absent.
func argOr(args []string, i int, def string) string {
	if i < len(args) {
		return args[i]
	}
	return def
}

// intArg parses args[i] as a non-negative integer, or returns def when absent.
func intArg(args []string, i int, def int, name string) (int, error) {
	if i >= len(args) {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(args[i]))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: not an integer", name, args[i])
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid %s %d: must not be negative", name, n)
	}
	return n, nil
}
