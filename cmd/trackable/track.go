package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/trackable-go/trackable/pkg/ixid"
	"github.com/trackable-go/trackable/pkg/trackable"
)

type TrackCLI struct {
	URL      string `arg:"" help:"URL to tag"`
	App      string `help:"Application name" env:"TRACKABLE_APP"`
	Page     string `help:"Page name"`
	Label    string `help:"Label"`
	Property string `help:"Property"`
	UserID   string `name:"user-id" help:"User id (schema 2 only)"`
	Raw      bool   `help:"Print the decoded token payload instead of the URL"`
}

func (c *TrackCLI) Run(logger *slog.Logger, tracker *trackable.Tracker, out io.Writer) error {
	t := c.tracking()
	if t.IsZero() {
		logger.Warn("no tracking fields set; the token will be empty", "url", c.URL)
	}
	logger.Debug("track", "url", c.URL, "tracking", t)

	if c.Raw {
		_, err := fmt.Fprintln(out, ixid.EncodePayload(t, ixid.WithSchema(tracker.Schema())))
		return err
	}

	tagged, err := tracker.Track(c.URL, t)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	_, err = fmt.Fprintln(out, tagged)
	return err
}

// tracking treats flags left empty as absent fields.
func (c *TrackCLI) tracking() ixid.Tracking {
	return ixid.Tracking{
		App:      flagValue(c.App),
		Page:     flagValue(c.Page),
		Label:    flagValue(c.Label),
		Property: flagValue(c.Property),
		UserID:   flagValue(c.UserID),
	}
}

func flagValue(s string) *string {
	if s == "" {
		return nil
	}
	return ixid.String(s)
}
