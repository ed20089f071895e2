package bridge

import (
	"context"
	"strings"

	"github.com/hyperifyio/skillbridge/internal/skills"
)

type eventSummary struct {
	ID          string  `json:"id"`
	Summary     string  `json:"summary"`
	Start       *string `json:"start"`
	End         *string `json:"end"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	AllDay      bool    `json:"all_day"`
}

type calendarListResult struct {
	Events []eventSummary `json:"events"`
	Count  int            `json:"count"`
	Period string         `json:"period"`
}

type eventCreated struct {
	ID       string  `json:"id"`
	Summary  string  `json:"summary"`
	Start    *string `json:"start"`
	HTMLLink *string `json:"html_link"`
}

// calendarList joins its arguments so multi-word periods such as "this week"
// work unquoted.
func (s *Service) calendarList(ctx context.Context, args []string) (any, error) {
	period := defaultPeriod
	if len(args) > 0 {
		period = strings.Join(args, " ")
	}
	events, err := s.Calendar.List(ctx, WindowFor(period, s.now()))
	if err != nil {
		return nil, err
	}
	out := calendarListResult{Events: make([]eventSummary, 0, len(events)), Period: period}
	for _, e := range events {
		summary := e.Summary
		if summary == "" {
			summary = "No title"
		}
		out.Events = append(out.Events, eventSummary{
			ID:          e.ID,
			Summary:     summary,
			Start:       isoTime(e.Start),
			End:         isoTime(e.End),
			Location:    nullable(e.Location),
			Description: nullable(truncate(e.Description, snippetChars)),
			AllDay:      e.AllDay,
		})
	}
	out.Count = len(out.Events)
	return out, nil
}

func (s *Service) calendarCreate(ctx context.Context, args []string) (any, error) {
	ev, err := s.Calendar.Create(ctx, skills.NewEvent{
		Summary:     args[0],
		Start:       args[1],
		End:         argOr(args, 2, ""),
		Description: argOr(args, 3, ""),
	})
	if err != nil {
		return nil, err
	}
	return created(ev), nil
}

func (s *Service) calendarQuickAdd(ctx context.Context, args []string) (any, error) {
	ev, err := s.Calendar.QuickAdd(ctx, strings.Join(args, " "))
	if err != nil {
		return nil, err
	}
	return created(ev), nil
}

func created(ev skills.Event) eventCreated {
	return eventCreated{
		ID:       ev.ID,
		Summary:  ev.Summary,
		Start:    isoTime(ev.Start),
		HTMLLink: nullable(ev.HTMLLink),
	}
}
