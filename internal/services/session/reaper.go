package session

import (
	"context"
	"time"

	"launchlist/internal/config"

	"github.com/rs/zerolog/log"
)

// Reaper closes sessions whose client went away without closing them.
type Reaper struct {
	reg       *Registry
	idleTTL   time.Duration
	pollEvery time.Duration
}

// NewReaper creates a reaper for reg
func NewReaper(reg *Registry, cfg config.SessionCfg) *Reaper {
	r := &Reaper{reg: reg, idleTTL: cfg.IdleTTL, pollEvery: cfg.ReapEvery}
	if r.idleTTL == 0 {
		r.idleTTL = 30 * time.Minute
	}
	if r.pollEvery == 0 {
		r.pollEvery = time.Minute
	}
	return r
}

// Run reaps idle sessions until ctx is cancelled
func (r *Reaper) Run(ctx context.Context) {
	log.Info().
		Dur("poll_every", r.pollEvery).
		Dur("idle_ttl", r.idleTTL).
		Msg("session reaper started")

	ticker := time.NewTicker(r.pollEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("session reaper stopping")
			return
		case <-ticker.C:
			if n := r.reg.CloseIdle(r.idleTTL); n > 0 {
				log.Debug().Int("closed", n).Int("open", r.reg.Len()).Msg("reaped idle sessions")
			}
		}
	}
}
