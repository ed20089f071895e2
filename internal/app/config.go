package app

import "time"

// Defaults applied before the config file, environment and flags.
const (
	DefaultEnvFile        = ".env"
	DefaultWeatherURL     = "https://wttr.in"
	DefaultLocation       = "Tokyo"
	DefaultSearchProvider = "duckduckgo"
	DefaultSearchURL      = "https://html.duckduckgo.com/html/"
	DefaultRemindersList  = "Jibot"
	DefaultCalendarID     = "primary"
	DefaultTimezone       = "Local"
	DefaultLookupTimeout  = 10 * time.Second
	DefaultFetchTimeout   = 15 * time.Second
)

// Search providers accepted by --search.provider.
const (
	ProviderDuckDuckGo = "duckduckgo"
	ProviderSearxNG    = "searxng"
)

// Config holds runtime configuration for one invocation.
type Config struct {
	ConfigPath string
	EnvFiles   []string
	Verbose    bool

	// Weather
	WeatherURL      string
	WeatherLocation string

	// Search
	SearchProvider string
	SearchURL      string
	SearxURL       string
	SearxKey       string

	// Reminders
	RemindersList string

	// Google
	GoogleCredentials string
	GoogleToken       string
	CalendarID        string
	Timezone          string

	// Timeouts for short lookups (weather, search) and page fetches.
	LookupTimeout time.Duration
	FetchTimeout  time.Duration
}

// DefaultConfig returns the configuration used when nothing else is set.
func DefaultConfig() Config {
	return Config{
		EnvFiles:        []string{DefaultEnvFile},
		WeatherURL:      DefaultWeatherURL,
		WeatherLocation: DefaultLocation,
		SearchProvider:  DefaultSearchProvider,
		SearchURL:       DefaultSearchURL,
		RemindersList:   DefaultRemindersList,
		CalendarID:      DefaultCalendarID,
		Timezone:        DefaultTimezone,
		LookupTimeout:   DefaultLookupTimeout,
		FetchTimeout:    DefaultFetchTimeout,
	}
}
