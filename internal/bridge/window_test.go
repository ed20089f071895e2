package bridge

import (
	"testing"
	"time"
)

func TestWindowFor(t *testing.T) {
	now := time.Date(2026, 10, 17, 15, 30, 0, 0, time.UTC)
	day := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		phrase   string
		from, to int
		max      int
	}{
		{"today", 0, 1, 20},
		{"tomorrow", 1, 2, 20},
		{"this week", 0, 7, 30},
		{"next week", 7, 14, 30},
	}
	for _, tc := range cases {
		w := WindowFor(tc.phrase, now)
		if w.Min == nil || w.Max == nil {
			t.Fatalf("%s: expected a bounded window", tc.phrase)
		}
		if !w.Min.Equal(day.AddDate(0, 0, tc.from)) || !w.Max.Equal(day.AddDate(0, 0, tc.to)) {
			t.Fatalf("%s: got [%v, %v)", tc.phrase, w.Min, w.Max)
		}
		if w.MaxResults != tc.max {
			t.Fatalf("%s: cap %d, want %d", tc.phrase, w.MaxResults, tc.max)
		}
	}
}

func TestWindowFor_UnknownPhraseIsUnscoped(t *testing.T) {
	w := WindowFor("banana", time.Now())
	if w.Min != nil || w.Max != nil || w.MaxResults != 20 {
		t.Fatalf("unexpected window: %+v", w)
	}
}

func TestWindowFor_UsesLocalDay(t *testing.T) {
	jst := time.FixedZone("JST", 9*3600)
	now := time.Date(2026, 10, 17, 23, 0, 0, 0, time.UTC) // 08:00 on the 18th in JST
	w := WindowFor("today", now.In(jst))
	want := time.Date(2026, 10, 18, 0, 0, 0, 0, jst)
	if !w.Min.Equal(want) {
		t.Fatalf("expected start %v, got %v", want, w.Min)
	}
}
