package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCfg() Cfg {
	return Cfg{
		App:      AppCfg{Env: "test", Port: "8080"},
		Upstream: UpstreamCfg{BaseURL: "https://api.spacexdata.com", Timeout: 30 * time.Second, RatePerSec: 5, Burst: 10},
		Feed:     FeedCfg{PageSize: 20, LoadMoreDelay: 250 * time.Millisecond, SearchDebounce: 500 * time.Millisecond},
		Session:  SessionCfg{IdleTTL: 30 * time.Minute, ReapEvery: time.Minute},
		Log:      LogCfg{Level: "info", Format: "json"},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validCfg().Validate())

	tests := []struct {
		name   string
		mutate func(*Cfg)
		want   string
	}{
		{"relative base url", func(c *Cfg) { c.Upstream.BaseURL = "api/v5" }, "SPACEX_API_URL"},
		{"zero timeout", func(c *Cfg) { c.Upstream.Timeout = 0 }, "HTTP_TIMEOUT"},
		{"zero burst", func(c *Cfg) { c.Upstream.Burst = 0 }, "UPSTREAM_BURST"},
		{"zero page size", func(c *Cfg) { c.Feed.PageSize = 0 }, "PAGE_SIZE"},
		{"negative debounce", func(c *Cfg) { c.Feed.SearchDebounce = -time.Second }, "SEARCH_DEBOUNCE"},
		{"no session ttl", func(c *Cfg) { c.Session.IdleTTL = 0 }, "SESSION_IDLE_TTL"},
		{"no port", func(c *Cfg) { c.App.Port = "" }, "APP_PORT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCfg()
			tt.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("SPACEX_API_URL", "http://localhost:9999")
	t.Setenv("PAGE_SIZE", "5")
	t.Setenv("LOAD_MORE_DELAY", "200ms")
	t.Setenv("SEARCH_DEBOUNCE", "1s")

	cfg := Load()

	assert.Equal(t, "http://localhost:9999", cfg.Upstream.BaseURL)
	assert.Equal(t, 5, cfg.Feed.PageSize)
	assert.Equal(t, 200*time.Millisecond, cfg.Feed.LoadMoreDelay)
	assert.Equal(t, time.Second, cfg.Feed.SearchDebounce)
	assert.Equal(t, 30*time.Minute, cfg.Session.IdleTTL)
	assert.Equal(t, "8080", cfg.App.Port)
}
