package app

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/skillbridge/internal/bridge"
	"github.com/hyperifyio/skillbridge/internal/extract"
	"github.com/hyperifyio/skillbridge/internal/fetch"
	"github.com/hyperifyio/skillbridge/internal/search"
	"github.com/hyperifyio/skillbridge/internal/skills"
	"github.com/hyperifyio/skillbridge/internal/skills/gcal"
	"github.com/hyperifyio/skillbridge/internal/skills/gmail"
	"github.com/hyperifyio/skillbridge/internal/skills/google"
	"github.com/hyperifyio/skillbridge/internal/skills/reminders"
	"github.com/hyperifyio/skillbridge/internal/weather"
)

// goos selects the Reminders backend; tests override it.
var goos = runtime.GOOS

// App wires configured backends to the dispatcher.
type App struct {
	dispatcher *bridge.Dispatcher
}

// New builds every skill backend from cfg. Backends that cannot be set up
// (missing Google credentials, not on macOS) are replaced by stand-ins that
// fail at call time, so the remaining skills keep working. Google backends
// are only resolved when a mail or calendar route first runs.
func New(ctx context.Context, cfg Config) (*App, error) {
	loc, err := loadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone: %w", err)
	}

	svc := &bridge.Service{
		Weather: &weather.Client{
			BaseURL: cfg.WeatherURL,
			Client: &fetch.Client{
				HTTPClient: newHTTPClient(cfg.LookupTimeout),
				UserAgent:  fetch.CurlUserAgent,
				Timeout:    cfg.LookupTimeout,
			},
		},
		Search: newSearchProvider(cfg),
		Pages: &fetch.Client{
			HTTPClient:      newHTTPClient(cfg.FetchTimeout),
			UserAgent:       fetch.BrowserUserAgent,
			Timeout:         cfg.FetchTimeout,
			FollowRedirects: true,
		},
		Extractor:       extract.PatternExtractor{},
		DefaultLocation: cfg.WeatherLocation,
		DefaultList:     cfg.RemindersList,
		Now:             func() time.Time { return time.Now().In(loc) },
	}
	g := &googleBackends{cfg: cfg, loc: loc}
	svc.Mail, svc.Calendar = g, g
	svc.Reminders = newRemindersBackend()

	reg, err := svc.Registry()
	if err != nil {
		return nil, fmt.Errorf("build routes: %w", err)
	}
	return &App{dispatcher: bridge.NewDispatcher(reg)}, nil
}

// Dispatch runs one invocation and returns its envelope.
func (a *App) Dispatch(ctx context.Context, argv []string) bridge.Envelope {
	return a.dispatcher.Dispatch(ctx, argv)
}

func newSearchProvider(cfg Config) search.Provider {
	client := &fetch.Client{
		HTTPClient: newHTTPClient(cfg.LookupTimeout),
		UserAgent:  fetch.BrowserUserAgent,
		Timeout:    cfg.LookupTimeout,
	}
	if cfg.SearchProvider == ProviderSearxNG {
		return &search.SearxNG{BaseURL: cfg.SearxURL, APIKey: cfg.SearxKey, Client: client}
	}
	return &search.DuckDuckGo{BaseURL: cfg.SearchURL, Client: client}
}

// googleClientOptions resolves credentials; tests override it.
var googleClientOptions = google.ClientOptions

// googleBackends implements skills.Mail and skills.Calendar, building the
// Gmail and Calendar services on first use.
type googleBackends struct {
	cfg  Config
	loc  *time.Location
	once sync.Once
	mail skills.Mail
	cal  skills.Calendar
}

func (g *googleBackends) resolve(ctx context.Context) {
	g.once.Do(func() {
		g.mail, g.cal = newGoogleBackends(ctx, g.cfg, g.loc)
	})
}

func (g *googleBackends) Search(ctx context.Context, query string, maxResults int) ([]skills.Message, error) {
	g.resolve(ctx)
	return g.mail.Search(ctx, query, maxResults)
}

func (g *googleBackends) Get(ctx context.Context, id string) (skills.Message, error) {
	g.resolve(ctx)
	return g.mail.Get(ctx, id)
}

func (g *googleBackends) List(ctx context.Context, w skills.TimeWindow) ([]skills.Event, error) {
	g.resolve(ctx)
	return g.cal.List(ctx, w)
}

func (g *googleBackends) Create(ctx context.Context, in skills.NewEvent) (skills.Event, error) {
	g.resolve(ctx)
	return g.cal.Create(ctx, in)
}

func (g *googleBackends) QuickAdd(ctx context.Context, text string) (skills.Event, error) {
	g.resolve(ctx)
	return g.cal.QuickAdd(ctx, text)
}

func newGoogleBackends(ctx context.Context, cfg Config, loc *time.Location) (skills.Mail, skills.Calendar) {
	creds := google.Credentials{CredentialsFile: cfg.GoogleCredentials, TokenFile: cfg.GoogleToken}
	opts, err := googleClientOptions(ctx, creds, gmail.Scope, gcal.Scope)
	if err != nil {
		log.Debug().Err(err).Msg("google backends unavailable")
		u := skills.Unavailable{Reason: err.Error()}
		return u, u
	}

	var (
		mail skills.Mail
		cal  skills.Calendar
	)
	if m, err := gmail.New(ctx, opts...); err != nil {
		log.Debug().Err(err).Msg("gmail backend unavailable")
		mail = skills.Unavailable{Reason: err.Error()}
	} else {
		mail = m
	}
	if c, err := gcal.New(ctx, cfg.CalendarID, loc, opts...); err != nil {
		log.Debug().Err(err).Msg("calendar backend unavailable")
		cal = skills.Unavailable{Reason: err.Error()}
	} else {
		cal = c
	}
	return mail, cal
}

func newRemindersBackend() skills.Reminders {
	if goos != "darwin" {
		return skills.UnavailableReminders{Reason: "Reminders requires macOS"}
	}
	return &reminders.Backend{Run: reminders.ExecRunner}
}
