package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hyperifyio/skillbridge/internal/app"
	"github.com/hyperifyio/skillbridge/internal/bridge"
)

// options mirrors the global flags. Only flags the user actually set are
// applied on top of file and environment configuration.
type options struct {
	configPath        string
	envFiles          []string
	verbose           bool
	weatherURL        string
	weatherLocation   string
	searchProvider    string
	searchURL         string
	searxURL          string
	searxKey          string
	remindersList     string
	googleCredentials string
	googleToken       string
	calendarID        string
	timezone          string
}

// run executes one invocation and returns the process exit code. Every path
// that does not print help writes exactly one envelope to stdout.
func run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	var (
		opts options
		code = -1
	)
	defaults := app.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "skillbridge [flags] <skill> <action> [args...]",
		Short: "Run one personal-assistant skill and print a JSON result",
		Long: `skillbridge dispatches a single skill action (mail, calendar, reminders,
weather, web) and prints one JSON object {"success", "data"|"error"} on stdout.`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       app.Version(),
		RunE: func(cmd *cobra.Command, args []string) error {
			code = execute(cmd.Context(), cmd.Flags(), opts, args, stdout)
			return nil
		},
	}
	cmd.SetArgs(argv)
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)
	cmd.SetContext(ctx)

	bindFlags(cmd.Flags(), &opts, defaults)
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		printHelp(c, stderr)
	})

	// cobra answers its hidden completion commands itself, even after global
	// flags. Here they are ordinary skill tokens and go through dispatch.
	var (
		pre    options
		preSet = pflag.NewFlagSet("skillbridge", pflag.ContinueOnError)
	)
	preSet.SetOutput(io.Discard)
	bindFlags(preSet, &pre, defaults)
	if err := preSet.Parse(argv); err == nil && isCompletionToken(preSet.Arg(0)) {
		return execute(ctx, preSet, pre, preSet.Args(), stdout)
	}
	if err := cmd.Execute(); err != nil {
		// Flag parsing failures still produce an envelope.
		return bridge.Emit(stdout, bridge.Failure(err.Error()))
	}
	if code < 0 {
		// help or version was printed
		return 0
	}
	return code
}

// bindFlags defines the global flags on f. Flags are only recognised before
// the skill token, so arguments such as "-5" reach the handler untouched.
func bindFlags(f *pflag.FlagSet, opts *options, defaults app.Config) {
	f.SetInterspersed(false)
	f.StringVar(&opts.configPath, "config", "", "Path to a YAML or JSON config file (env SKILLBRIDGE_CONFIG)")
	f.StringSliceVar(&opts.envFiles, "env-file", defaults.EnvFiles, "Dotenv files loaded before reading the environment")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging on stderr")
	f.StringVar(&opts.weatherURL, "weather.url", defaults.WeatherURL, "wttr.in compatible weather service")
	f.StringVar(&opts.weatherLocation, "weather.location", defaults.WeatherLocation, "Default weather location")
	f.StringVar(&opts.searchProvider, "search.provider", defaults.SearchProvider, "Web search provider: duckduckgo or searxng")
	f.StringVar(&opts.searchURL, "search.url", defaults.SearchURL, "DuckDuckGo HTML endpoint")
	f.StringVar(&opts.searxURL, "searx.url", "", "SearxNG base URL")
	f.StringVar(&opts.searxKey, "searx.key", "", "SearxNG API key (optional)")
	f.StringVar(&opts.remindersList, "reminders.list", defaults.RemindersList, "Default Reminders list")
	f.StringVar(&opts.googleCredentials, "google.credentials", "", "OAuth client credentials JSON for Gmail and Calendar")
	f.StringVar(&opts.googleToken, "google.token", "", "Saved OAuth token JSON for Gmail and Calendar")
	f.StringVar(&opts.calendarID, "calendar.id", defaults.CalendarID, "Calendar to read and write")
	f.StringVar(&opts.timezone, "timezone", defaults.Timezone, "IANA zone for relative dates")
}

func isCompletionToken(s string) bool {
	return s == cobra.ShellCompRequestCmd || s == cobra.ShellCompNoDescRequestCmd
}

func execute(ctx context.Context, flags *pflag.FlagSet, opts options, args []string, stdout io.Writer) int {
	cfg, err := resolveConfig(flags, opts)
	if err != nil {
		return bridge.Emit(stdout, bridge.Failure(err.Error()))
	}
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = log.With().Str("invocation", uuid.NewString()).Logger()

	start := time.Now()
	a, err := app.New(ctx, cfg)
	if err != nil {
		return bridge.Emit(stdout, bridge.Failure(err.Error()))
	}
	env := a.Dispatch(ctx, args)
	log.Debug().Strs("argv", args).Bool("success", env.Success).Dur("elapsed", time.Since(start)).Msg("invocation finished")
	return bridge.Emit(stdout, env)
}

// resolveConfig layers defaults, config file, environment and explicit flags
// in increasing precedence.
func resolveConfig(flags *pflag.FlagSet, opts options) (app.Config, error) {
	cfg := app.DefaultConfig()
	cfg.EnvFiles = opts.envFiles
	if err := app.LoadEnvFiles(cfg.EnvFiles...); err != nil {
		return cfg, fmt.Errorf("load env files: %w", err)
	}

	cfg.ConfigPath = opts.configPath
	if !flags.Changed("config") {
		cfg.ConfigPath = strings.TrimSpace(os.Getenv("SKILLBRIDGE_CONFIG"))
	}
	if cfg.ConfigPath != "" {
		fc, err := app.LoadConfigFile(cfg.ConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", cfg.ConfigPath, err)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvOverrides(&cfg)

	setString := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	if flags.Changed("verbose") {
		cfg.Verbose = opts.verbose
	}
	setString("weather.url", &cfg.WeatherURL, opts.weatherURL)
	setString("weather.location", &cfg.WeatherLocation, opts.weatherLocation)
	setString("search.provider", &cfg.SearchProvider, opts.searchProvider)
	setString("search.url", &cfg.SearchURL, opts.searchURL)
	setString("searx.url", &cfg.SearxURL, opts.searxURL)
	setString("searx.key", &cfg.SearxKey, opts.searxKey)
	setString("reminders.list", &cfg.RemindersList, opts.remindersList)
	setString("google.credentials", &cfg.GoogleCredentials, opts.googleCredentials)
	setString("google.token", &cfg.GoogleToken, opts.googleToken)
	setString("calendar.id", &cfg.CalendarID, opts.calendarID)
	setString("timezone", &cfg.Timezone, opts.timezone)

	if err := app.ValidateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// printHelp lists the global flags and every route with its arguments.
func printHelp(c *cobra.Command, w io.Writer) {
	fmt.Fprintf(w, "%s\n\nUsage:\n  %s\n\nSkills:\n", c.Long, c.Use)
	// Routes do not depend on configured backends, so an empty service
	// describes them.
	reg, err := (&bridge.Service{}).Registry()
	if err != nil {
		fmt.Fprintf(w, "  (routes unavailable: %v)\n", err)
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, rt := range reg.Routes() {
		action := rt.Action
		if action == bridge.AnyAction {
			action = "<any>"
		}
		fmt.Fprintf(tw, "  %s %s\t%s\n", rt.Skill, action, rt.Synopsis)
	}
	_ = tw.Flush()

	aliases := reg.Aliases()
	if len(aliases) > 0 {
		names := make([]string, 0, len(aliases))
		for alias, skill := range aliases {
			names = append(names, alias+" = "+skill)
		}
		sort.Strings(names)
		fmt.Fprintf(w, "\nAliases:\n  %s\n", strings.Join(names, "\n  "))
	}
	fmt.Fprintf(w, "\nFlags:\n%s", c.Flags().FlagUsages())
}
