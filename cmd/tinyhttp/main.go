package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dqx0.com/go/tinyhttp/httpx"
	"dqx0.com/go/tinyhttp/internal/config"
	"dqx0.com/go/tinyhttp/internal/obs"
	"dqx0.com/go/tinyhttp/internal/routes"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	level, _ := obs.ParseLevel(cfg.LogLevel)
	log := obs.NewLogger(os.Stderr, level, cfg.LogFormat)
	if cfg.Directory == "" {
		log.Warn().Msg("no --directory given, /files/ requests will fail")
	}

	counters := obs.NewCounters()
	s := &httpx.Server{
		Addr:           cfg.Addr,
		Handler:        routes.New(cfg.Directory),
		Logger:         &log,
		Meter:          counters,
		ReadBufferSize: cfg.ReadBufferSize,
		IdleTimeout:    cfg.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	errc := make(chan error, 1)
	go func() { errc <- s.ListenAndServe() }()

	select {
	case err := <-errc:
		log.Fatal().Err(err).Msg("serve")
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	if err := <-errc; err != nil && !errors.Is(err, httpx.ErrServerClosed) {
		log.Error().Err(err).Msg("serve")
	}
	ev := log.Info()
	for k, v := range counters.Snapshot() {
		ev = ev.Float64(k, v)
	}
	ev.Msg("metrics")
}
