package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppCfg struct{ Env, Port string }

// UpstreamCfg configures the SpaceX REST client.
type UpstreamCfg struct {
	BaseURL    string
	Timeout    time.Duration
	RatePerSec float64
	Burst      int
}

// FeedCfg configures every list controller created by the session registry.
type FeedCfg struct {
	PageSize       int
	LoadMoreDelay  time.Duration
	SearchDebounce time.Duration
}

type SessionCfg struct {
	IdleTTL   time.Duration
	ReapEvery time.Duration
}

type LogCfg struct{ Level, Format string }

type Cfg struct {
	App      AppCfg
	Upstream UpstreamCfg
	Feed     FeedCfg
	Session  SessionCfg
	Log      LogCfg
}

// Load reads configuration from the environment (and an optional .env file)
// and exits the process on invalid settings.
func Load() Cfg {
	// .env is optional; real environment variables take precedence
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := Cfg{
		App: AppCfg{
			Env:  v.GetString("APP_ENV"),
			Port: v.GetString("APP_PORT"),
		},
		Upstream: UpstreamCfg{
			BaseURL:    strings.TrimSpace(v.GetString("SPACEX_API_URL")),
			Timeout:    v.GetDuration("HTTP_TIMEOUT"),
			RatePerSec: v.GetFloat64("UPSTREAM_RATE_PER_SEC"),
			Burst:      v.GetInt("UPSTREAM_BURST"),
		},
		Feed: FeedCfg{
			PageSize:       v.GetInt("PAGE_SIZE"),
			LoadMoreDelay:  v.GetDuration("LOAD_MORE_DELAY"),
			SearchDebounce: v.GetDuration("SEARCH_DEBOUNCE"),
		},
		Session: SessionCfg{
			IdleTTL:   v.GetDuration("SESSION_IDLE_TTL"),
			ReapEvery: v.GetDuration("SESSION_REAP_EVERY"),
		},
		Log: LogCfg{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("SPACEX_API_URL", "https://api.spacexdata.com")
	v.SetDefault("HTTP_TIMEOUT", "30s")
	v.SetDefault("UPSTREAM_RATE_PER_SEC", 5.0)
	v.SetDefault("UPSTREAM_BURST", 10)
	v.SetDefault("PAGE_SIZE", 20)
	v.SetDefault("LOAD_MORE_DELAY", "250ms")
	v.SetDefault("SEARCH_DEBOUNCE", "500ms")
	v.SetDefault("SESSION_IDLE_TTL", "30m")
	v.SetDefault("SESSION_REAP_EVERY", "1m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

// Validate checks the settings Load cannot repair on its own.
func (c Cfg) Validate() error {
	var errs []error

	u, err := url.Parse(c.Upstream.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("SPACEX_API_URL must be an absolute URL, got %q", c.Upstream.BaseURL))
	}
	if c.Upstream.Timeout <= 0 {
		errs = append(errs, errors.New("HTTP_TIMEOUT must be positive"))
	}
	if c.Upstream.RatePerSec <= 0 || c.Upstream.Burst < 1 {
		errs = append(errs, errors.New("UPSTREAM_RATE_PER_SEC and UPSTREAM_BURST must be positive"))
	}
	if c.Feed.PageSize < 1 {
		errs = append(errs, errors.New("PAGE_SIZE must be >= 1"))
	}
	if c.Feed.LoadMoreDelay < 0 || c.Feed.SearchDebounce < 0 {
		errs = append(errs, errors.New("LOAD_MORE_DELAY and SEARCH_DEBOUNCE must not be negative"))
	}
	if c.Session.IdleTTL <= 0 || c.Session.ReapEvery <= 0 {
		errs = append(errs, errors.New("SESSION_IDLE_TTL and SESSION_REAP_EVERY must be positive"))
	}
	if c.App.Port == "" {
		errs = append(errs, errors.New("APP_PORT is required"))
	}

	return errors.Join(errs...)
}
