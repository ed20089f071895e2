// Package gcal implements skills.Calendar on the Google Calendar REST API.
package gcal

import (
	"context"
	"fmt"
	"strings"
	"time"

	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/hyperifyio/skillbridge/internal/skills"
)

// Scope is the OAuth scope required by this backend.
const Scope = calendar.CalendarEventsScope

const dateLayout = "2006-01-02"

// Layouts accepted for local date-times, tried after RFC 3339.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Backend reads and writes events of one calendar.
type Backend struct {
	svc        *calendar.Service
	calendarID string
	loc        *time.Location
	now        func() time.Time
}

// New creates a backend for calendarID ("primary" when empty). Dates without
// an offset are interpreted in loc (time.Local when nil).
func New(ctx context.Context, calendarID string, loc *time.Location, opts ...option.ClientOption) (*Backend, error) {
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("calendar service: %w", err)
	}
	if calendarID == "" {
		calendarID = "primary"
	}
	if loc == nil {
		loc = time.Local
	}
	return &Backend{svc: svc, calendarID: calendarID, loc: loc, now: time.Now}, nil
}

// List returns single (expanded) events ordered by start time. A window with
// neither bound lists upcoming events from now, since the API would otherwise
// start from the oldest event on the calendar.
func (b *Backend) List(ctx context.Context, w skills.TimeWindow) ([]skills.Event, error) {
	call := b.svc.Events.List(b.calendarID).SingleEvents(true).OrderBy("startTime").Context(ctx)
	if w.MaxResults > 0 {
		call = call.MaxResults(int64(w.MaxResults))
	}
	min := w.Min
	if min == nil && w.Max == nil {
		now := b.now()
		min = &now
	}
	if min != nil {
		call = call.TimeMin(min.Format(time.RFC3339))
	}
	if w.Max != nil {
		call = call.TimeMax(w.Max.Format(time.RFC3339))
	}
	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	out := make([]skills.Event, 0, len(resp.Items))
	for _, e := range resp.Items {
		out = append(out, b.toEvent(e))
	}
	return out, nil
}

// Create inserts a timed or all-day event. Without an end, timed events last
// one hour and all-day events one day.
func (b *Backend) Create(ctx context.Context, in skills.NewEvent) (skills.Event, error) {
	start, startAt, allDay, err := b.parseWhen(in.Start)
	if err != nil {
		return skills.Event{}, fmt.Errorf("parse start time: %w", err)
	}
	var end *calendar.EventDateTime
	if strings.TrimSpace(in.End) == "" {
		if allDay {
			end = &calendar.EventDateTime{Date: startAt.AddDate(0, 0, 1).Format(dateLayout)}
		} else {
			end = &calendar.EventDateTime{DateTime: startAt.Add(time.Hour).Format(time.RFC3339)}
		}
	} else {
		var endAllDay bool
		end, _, endAllDay, err = b.parseWhen(in.End)
		if err != nil {
			return skills.Event{}, fmt.Errorf("parse end time: %w", err)
		}
		if endAllDay != allDay {
			return skills.Event{}, fmt.Errorf("start and end must both be dates or both be date-times")
		}
	}
	ev := &calendar.Event{
		Summary:     in.Summary,
		Description: in.Description,
		Start:       start,
		End:         end,
	}
	created, err := b.svc.Events.Insert(b.calendarID, ev).Context(ctx).Do()
	if err != nil {
		return skills.Event{}, fmt.Errorf("insert event: %w", err)
	}
	return b.toEvent(created), nil
}

// QuickAdd lets the API parse a natural language description.
func (b *Backend) QuickAdd(ctx context.Context, text string) (skills.Event, error) {
	created, err := b.svc.Events.QuickAdd(b.calendarID, text).Context(ctx).Do()
	if err != nil {
		return skills.Event{}, fmt.Errorf("quick add: %w", err)
	}
	return b.toEvent(created), nil
}

func (b *Backend) parseWhen(s string) (*calendar.EventDateTime, time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &calendar.EventDateTime{DateTime: t.Format(time.RFC3339)}, t, false, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, b.loc); err == nil {
			return &calendar.EventDateTime{DateTime: t.Format(time.RFC3339)}, t, false, nil
		}
	}
	if t, err := time.ParseInLocation(dateLayout, s, b.loc); err == nil {
		return &calendar.EventDateTime{Date: t.Format(dateLayout)}, t, true, nil
	}
	return nil, time.Time{}, false, fmt.Errorf("unrecognized date/time %q", s)
}

func (b *Backend) toEvent(e *calendar.Event) skills.Event {
	out := skills.Event{
		ID:          e.Id,
		Summary:     e.Summary,
		Description: e.Description,
		Location:    e.Location,
		HTMLLink:    e.HtmlLink,
	}
	out.Start, out.AllDay = b.eventTime(e.Start)
	out.End, _ = b.eventTime(e.End)
	return out
}

func (b *Backend) eventTime(dt *calendar.EventDateTime) (*time.Time, bool) {
	if dt == nil {
		return nil, false
	}
	if dt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, dt.DateTime); err == nil {
			return &t, false
		}
	}
	if dt.Date != "" {
		if t, err := time.ParseInLocation(dateLayout, dt.Date, b.loc); err == nil {
			return &t, true
		}
	}
	return nil, false
}
