package bridge

import (
	"context"
	"errors"
	"time"

	"github.com/hyperifyio/skillbridge/internal/fetch"
	"github.com/hyperifyio/skillbridge/internal/search"
	"github.com/hyperifyio/skillbridge/internal/skills"
	"github.com/hyperifyio/skillbridge/internal/weather"
)

type fakeMail struct {
	messages []skills.Message
	byID     map[string]skills.Message
	gotQuery string
	gotMax   int
	err      error
}

func (f *fakeMail) Search(ctx context.Context, query string, max int) ([]skills.Message, error) {
	f.gotQuery, f.gotMax = query, max
	return f.messages, f.err
}

func (f *fakeMail) Get(ctx context.Context, id string) (skills.Message, error) {
	if f.err != nil {
		return skills.Message{}, f.err
	}
	m, ok := f.byID[id]
	if !ok {
		return skills.Message{}, errors.New("not found")
	}
	return m, nil
}

type fakeCalendar struct {
	events    []skills.Event
	gotWindow skills.TimeWindow
	gotNew    skills.NewEvent
	gotQuick  string
	err       error
}

func (f *fakeCalendar) List(ctx context.Context, w skills.TimeWindow) ([]skills.Event, error) {
	f.gotWindow = w
	return f.events, f.err
}

func (f *fakeCalendar) Create(ctx context.Context, in skills.NewEvent) (skills.Event, error) {
	f.gotNew = in
	if f.err != nil {
		return skills.Event{}, f.err
	}
	start := time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC)
	return skills.Event{ID: "ev1", Summary: in.Summary, Start: &start, HTMLLink: "https://calendar.example/ev1"}, nil
}

func (f *fakeCalendar) QuickAdd(ctx context.Context, text string) (skills.Event, error) {
	f.gotQuick = text
	if f.err != nil {
		return skills.Event{}, f.err
	}
	return skills.Event{ID: "ev2", Summary: text}, nil
}

type fakeReminders struct {
	items   []skills.Reminder
	gotList string
	gotNew  skills.NewReminder
	err     error
}

func (f *fakeReminders) List(ctx context.Context, list string) ([]skills.Reminder, error) {
	f.gotList = list
	return f.items, f.err
}

func (f *fakeReminders) Add(ctx context.Context, in skills.NewReminder) (skills.Reminder, error) {
	f.gotNew = in
	if f.err != nil {
		return skills.Reminder{}, f.err
	}
	return skills.Reminder{ID: "r1", Title: in.Title}, nil
}

type fakeWeather struct {
	gotLocation string
	err         error
}

func (f *fakeWeather) Lookup(ctx context.Context, location string) (weather.Report, error) {
	f.gotLocation = location
	if f.err != nil {
		return weather.Report{}, f.err
	}
	return weather.Report{Location: location, Summary: location + ": sunny", Detail: location + "\nsunny"}, nil
}

type fakeSearch struct {
	results  []search.Result
	gotQuery string
	gotLimit int
	err      error
}

func (f *fakeSearch) Search(ctx context.Context, q string, limit int) ([]search.Result, error) {
	f.gotQuery, f.gotLimit = q, limit
	return f.results, f.err
}

func (f *fakeSearch) Name() string { return "fake" }

type fakePages struct {
	body   string
	gotURL string
	err    error
}

func (f *fakePages) Get(ctx context.Context, url string) (fetch.Response, error) {
	f.gotURL = url
	if f.err != nil {
		return fetch.Response{}, f.err
	}
	return fetch.Response{URL: url, StatusCode: 200, Body: f.body}, nil
}

type fixture struct {
	mail      *fakeMail
	calendar  *fakeCalendar
	reminders *fakeReminders
	weather   *fakeWeather
	search    *fakeSearch
	pages     *fakePages
	svc       *Service
}

var fixedNow = time.Date(2026, 10, 17, 15, 30, 0, 0, time.UTC)

func newFixture() *fixture {
	f := &fixture{
		mail:      &fakeMail{byID: map[string]skills.Message{}},
		calendar:  &fakeCalendar{},
		reminders: &fakeReminders{},
		weather:   &fakeWeather{},
		search:    &fakeSearch{},
		pages:     &fakePages{},
	}
	f.svc = &Service{
		Mail:      f.mail,
		Calendar:  f.calendar,
		Reminders: f.reminders,
		Weather:   f.weather,
		Search:    f.search,
		Pages:     f.pages,
		Now:       func() time.Time { return fixedNow },
	}
	return f
}

func (f *fixture) dispatch(argv ...string) Envelope {
	reg, err := f.svc.Registry()
	if err != nil {
		panic(err)
	}
	return NewDispatcher(reg).Dispatch(context.Background(), argv)
}
