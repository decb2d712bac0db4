package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/cbroglie/mustache"
	"github.com/trackable-go/trackable/pkg/collector"
	"github.com/trackable-go/trackable/pkg/ixid"
	"github.com/trackable-go/trackable/pkg/trackable"
)

type ReportCLI struct {
	Inputs   []string `arg:"" optional:"" name:"input" help:"Files or s3://bucket/key objects with one URL per line (default: stdin)"`
	Template string   `help:"Mustache template for the summary (default: JSON)"`
	Strict   bool     `help:"Fail on the first URL with a malformed token"`
}

func (c *ReportCLI) Run(logger *slog.Logger, tracker *trackable.Tracker, out io.Writer) error {
	ctx := context.Background()
	tally := collector.NewTally()

	if len(c.Inputs) == 0 {
		if err := c.tallyLines(logger, tracker, tally, "stdin", os.Stdin); err != nil {
			return err
		}
	}
	for _, input := range c.Inputs {
		r, err := openInput(ctx, input)
		if err != nil {
			return err
		}
		err = c.tallyLines(logger, tracker, tally, input, r)
		r.Close()
		if err != nil {
			return err
		}
	}

	return renderSummary(out, tally.Snapshot(), c.Template)
}

func (c *ReportCLI) tallyLines(logger *slog.Logger, tracker *trackable.Tracker, tally *collector.Tally, name string, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		rawURL := strings.TrimSpace(scanner.Text())
		if rawURL == "" || strings.HasPrefix(rawURL, "#") {
			continue
		}

		res, err := tracker.Decode(rawURL)
		if err != nil {
			if c.Strict {
				return fmt.Errorf("%s:%d: %w", name, line, err)
			}
			var decodeErr *ixid.DecodeError
			if errors.As(err, &decodeErr) {
				logger.Warn("malformed tracking token", "input", name, "line", line, "token", decodeErr.Token)
			} else {
				logger.Warn("invalid url", "input", name, "line", line, "error", err)
			}
			tally.AddInvalid()
			continue
		}
		tally.Add(res.Found, res.Tracking)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	return nil
}

func renderSummary(out io.Writer, summary collector.Summary, tmpl string) error {
	if tmpl == "" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	// Round-trip through JSON so templates use the same names as the JSON form.
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	var view map[string]any
	if err := json.Unmarshal(data, &view); err != nil {
		return err
	}

	rendered, err := mustache.Render(tmpl, view)
	if err != nil {
		return fmt.Errorf("rendering template: %w", err)
	}
	_, err = fmt.Fprintln(out, rendered)
	return err
}

func openInput(ctx context.Context, input string) (io.ReadCloser, error) {
	if bucket, key, ok := parseS3URI(input); ok {
		return openS3Object(ctx, bucket, key)
	}
	f, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	return f, nil
}
