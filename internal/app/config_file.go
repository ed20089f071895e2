package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema.
// Nested sections map naturally to the dotted flag names.
type FileConfig struct {
	Verbose bool `yaml:"verbose" json:"verbose"`

	Weather struct {
		URL      string `yaml:"url" json:"url"`
		Location string `yaml:"location" json:"location"`
	} `yaml:"weather" json:"weather"`

	Search struct {
		Provider string `yaml:"provider" json:"provider"`
		URL      string `yaml:"url" json:"url"`
	} `yaml:"search" json:"search"`

	Searx struct {
		URL string `yaml:"url" json:"url"`
		Key string `yaml:"key" json:"key"`
	} `yaml:"searx" json:"searx"`

	Reminders struct {
		List string `yaml:"list" json:"list"`
	} `yaml:"reminders" json:"reminders"`

	Google struct {
		Credentials string `yaml:"credentials" json:"credentials"`
		Token       string `yaml:"token" json:"token"`
	} `yaml:"google" json:"google"`

	Calendar struct {
		ID string `yaml:"id" json:"id"`
	} `yaml:"calendar" json:"calendar"`

	Timezone string `yaml:"timezone" json:"timezone"`

	Timeouts struct {
		Lookup Duration `yaml:"lookup" json:"lookup"`
		Fetch  Duration `yaml:"fetch" json:"fetch"`
	} `yaml:"timeouts" json:"timeouts"`
}

// Duration accepts Go duration strings such as "10s" in YAML and JSON.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return d.parse(s)
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	return d.parse(s)
}

func (d *Duration) parse(s string) error {
	v, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays the non-empty values of fc onto cfg. It runs on top
// of the defaults, before environment overrides and flags.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	set := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = v
		}
	}
	if fc.Verbose {
		cfg.Verbose = true
	}
	set(&cfg.WeatherURL, fc.Weather.URL)
	set(&cfg.WeatherLocation, fc.Weather.Location)
	set(&cfg.SearchProvider, fc.Search.Provider)
	set(&cfg.SearchURL, fc.Search.URL)
	set(&cfg.SearxURL, fc.Searx.URL)
	set(&cfg.SearxKey, fc.Searx.Key)
	set(&cfg.RemindersList, fc.Reminders.List)
	set(&cfg.GoogleCredentials, fc.Google.Credentials)
	set(&cfg.GoogleToken, fc.Google.Token)
	set(&cfg.CalendarID, fc.Calendar.ID)
	set(&cfg.Timezone, fc.Timezone)
	if fc.Timeouts.Lookup > 0 {
		cfg.LookupTimeout = time.Duration(fc.Timeouts.Lookup)
	}
	if fc.Timeouts.Fetch > 0 {
		cfg.FetchTimeout = time.Duration(fc.Timeouts.Fetch)
	}
}

// ValidateConfig checks settings that would otherwise fail only once a
// handler runs.
func ValidateConfig(cfg Config) error {
	switch strings.TrimSpace(cfg.SearchProvider) {
	case ProviderDuckDuckGo:
	case ProviderSearxNG:
		if strings.TrimSpace(cfg.SearxURL) == "" {
			return errors.New("config: searx.url is required when search.provider is searxng")
		}
	default:
		return fmt.Errorf("config: unknown search.provider %q", cfg.SearchProvider)
	}
	if cfg.LookupTimeout <= 0 || cfg.FetchTimeout <= 0 {
		return errors.New("config: timeouts must be positive")
	}
	if strings.TrimSpace(cfg.WeatherURL) == "" {
		return errors.New("config: weather.url is required")
	}
	if _, err := loadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("config: timezone: %w", err)
	}
	if (cfg.GoogleCredentials == "") != (cfg.GoogleToken == "") {
		return errors.New("config: google.credentials and google.token must be set together")
	}
	return nil
}

func loadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == DefaultTimezone {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}
