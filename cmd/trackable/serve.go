package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/trackable-go/trackable/pkg/collector"
	"github.com/trackable-go/trackable/pkg/trackable"
	"github.com/trackable-go/trackable/pkg/trackserver"
)

const archiveShutdownTimeout = 10 * time.Second

type ServeCLI struct {
	Listen  string        `help:"Address to listen on" short:"l" env:"PORT" default:"0.0.0.0:8080"`
	Timeout time.Duration `help:"Per-request timeout" default:"60s"`
	ArchiveFlags `embed:""`
}

func (c *ServeCLI) Run(logger *slog.Logger, tracker *trackable.Tracker) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sink, flush, err := c.eventLogger(ctx, logger)
	if err != nil {
		return err
	}
	defer flush()

	handler := trackserver.New(trackserver.Config{
		Tracker:     tracker,
		Logger:      logger,
		EventLogger: sink,
		Tally:       collector.NewTally(),
		Timeout:     c.Timeout,
	})

	srv := &http.Server{
		Addr:              c.Listen,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "address", c.Listen)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
