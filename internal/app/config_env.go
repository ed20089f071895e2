package app

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ApplyEnvOverrides overrides cfg fields with environment variables when the
// corresponding variables are set. It runs after the config file so env takes
// precedence over file values, while flags applied afterwards still win.
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}

	setString := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v := strings.TrimSpace(os.Getenv(k)); v != "" {
				*dst = v
				return
			}
		}
	}
	setString(&cfg.WeatherURL, "WEATHER_URL")
	setString(&cfg.WeatherLocation, "WEATHER_LOCATION")
	setString(&cfg.SearchProvider, "SEARCH_PROVIDER")
	setString(&cfg.SearchURL, "SEARCH_URL")
	// Support both SEARX_URL and SEARXNG_URL; prefer SEARX_URL if set
	setString(&cfg.SearxURL, "SEARX_URL", "SEARXNG_URL")
	setString(&cfg.SearxKey, "SEARX_KEY", "SEARXNG_KEY")
	setString(&cfg.RemindersList, "REMINDERS_LIST")
	setString(&cfg.GoogleCredentials, "GOOGLE_CREDENTIALS_FILE")
	setString(&cfg.GoogleToken, "GOOGLE_TOKEN_FILE")
	setString(&cfg.CalendarID, "CALENDAR_ID")
	setString(&cfg.Timezone, "TZ_NAME")

	setDuration := func(dst *time.Duration, key string) {
		s := strings.TrimSpace(os.Getenv(key))
		if s == "" {
			return
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			log.Warn().Str("env", key).Str("value", s).Msg("ignoring invalid duration")
			return
		}
		*dst = d
	}
	setDuration(&cfg.LookupTimeout, "LOOKUP_TIMEOUT")
	setDuration(&cfg.FetchTimeout, "FETCH_TIMEOUT")

	// Booleans override when env present and truthy/falsey
	setBool := func(dst *bool, key string) {
		switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
		case "1", "true", "yes", "on":
			*dst = true
		case "0", "false", "no", "off":
			*dst = false
		}
	}
	setBool(&cfg.Verbose, "VERBOSE")
}
