package bridge

import (
	"context"
	"time"

	"github.com/hyperifyio/skillbridge/internal/extract"
	"github.com/hyperifyio/skillbridge/internal/fetch"
	"github.com/hyperifyio/skillbridge/internal/search"
	"github.com/hyperifyio/skillbridge/internal/skills"
	"github.com/hyperifyio/skillbridge/internal/weather"
)

// WeatherClient looks up a weather report for a location.
type WeatherClient interface {
	Lookup(ctx context.Context, location string) (weather.Report, error)
}

// PageFetcher performs the single GET behind "web fetch".
type PageFetcher interface {
	Get(ctx context.Context, url string) (fetch.Response, error)
}

const (
	DefaultLocation      = "Tokyo"
	DefaultReminderList  = "Jibot"
	defaultMailResults   = 10
	defaultSearchResults = 5
	defaultFetchChars    = 5000
)

// Service holds the collaborators the handlers call into.
type Service struct {
	Mail      skills.Mail
	Calendar  skills.Calendar
	Reminders skills.Reminders
	Weather   WeatherClient
	Search    search.Provider
	Pages     PageFetcher
	Extractor extract.Extractor

	DefaultLocation string
	DefaultList     string
	// Now anchors relative calendar periods. Defaults to time.Now.
	Now func() time.Time
}

// Registry builds the routing table for every skill handler.
func (s *Service) Registry() (*Registry, error) {
	r := NewRegistry()
	routes := []Route{
		{Skill: "gmail", Action: "search", Label: "Gmail search failed: ", Synopsis: "<query> [max_results=10]", Handler: s.mailSearch},
		{Skill: "gmail", Action: "read", MinArgs: 1, Usage: "Message ID required", Label: "Gmail read failed: ", Synopsis: "<message_id>", Handler: s.mailRead},
		{Skill: "calendar", Action: "list", Label: "Calendar list failed: ", Synopsis: "[today|tomorrow|this week|next week]", Handler: s.calendarList},
		{Skill: "calendar", Action: "create", MinArgs: 2, Usage: "Usage: calendar create <summary> <start_time> [end_time] [description]", Label: "Calendar create failed: ", Synopsis: "<summary> <start_time> [end_time] [description]", Handler: s.calendarCreate},
		{Skill: "calendar", Action: "quick", MinArgs: 1, Usage: "Event description required", Label: "Calendar quick_add failed: ", Synopsis: "<text...>", Handler: s.calendarQuickAdd},
		{Skill: "reminders", Action: "list", Label: "Reminders list failed: ", Synopsis: "[list_name=Jibot]", Handler: s.remindersList},
		{Skill: "reminders", Action: "add", MinArgs: 1, Usage: "Reminder title required", Label: "Reminders add failed: ", Synopsis: "<title> [list_name=Jibot] [notes] [due_date]", Handler: s.remindersAdd},
		{Skill: "weather", Action: AnyAction, Label: "Weather fetch failed: ", Synopsis: "[location=Tokyo]", Handler: s.weatherGet},
		{Skill: "web", Action: "search", Label: "Web search failed: ", Synopsis: "<query> [max_results=5]", Handler: s.webSearch},
		{Skill: "web", Action: "fetch", MinArgs: 1, Usage: "URL required", Label: "Web fetch failed: ", Synopsis: "<url> [max_chars=5000]", Handler: s.webFetch},
	}
	for _, rt := range routes {
		if err := r.Register(rt); err != nil {
			return nil, err
		}
	}
	if err := r.Alias("mail", "gmail"); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) defaultLocation() string {
	if s.DefaultLocation != "" {
		return s.DefaultLocation
	}
	return DefaultLocation
}

func (s *Service) defaultList() string {
	if s.DefaultList != "" {
		return s.DefaultList
	}
	return DefaultReminderList
}
