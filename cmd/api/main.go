package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"launchlist/internal/config"
	httpx "launchlist/internal/http"
	"launchlist/internal/provider/spacex"
	"launchlist/internal/services/launchpad"
	"launchlist/internal/services/session"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()
	config.ConfigureLogging(cfg.Log, cfg.App.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Upstream client shared by every session
	client := spacex.New(cfg.Upstream)

	sessions := session.NewRegistry(client, cfg.Feed)
	defer sessions.CloseAll()
	reaper := session.NewReaper(sessions, cfg.Session)

	r := httpx.NewRouter(httpx.RouterDependencies{
		Config:           cfg,
		Sessions:         sessions,
		LaunchpadService: launchpad.NewService(client),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		reaper.Run(gctx)
		return nil
	})

	g.Go(func() error {
		log.Info().
			Str("upstream", cfg.Upstream.BaseURL).
			Msgf("launch list API listening on :%s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server failed")
		sessions.CloseAll()
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
