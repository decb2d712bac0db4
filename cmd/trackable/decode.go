package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/cbroglie/mustache"
	"github.com/trackable-go/trackable/pkg/ixid"
	"github.com/trackable-go/trackable/pkg/trackable"
)

type DecodeCLI struct {
	URL      string `arg:"" help:"URL to decode, or a plain payload with --raw"`
	Raw      bool   `help:"Treat the argument as a payload printed by track --raw"`
	JSON     bool   `name:"json" help:"Print the result as JSON"`
	Template string `help:"Mustache template for the result; fields are url, found and each tracking field by name"`
}

func (c *DecodeCLI) Run(logger *slog.Logger, tracker *trackable.Tracker, out io.Writer) error {
	res, err := c.decode(tracker)
	if err != nil {
		return err
	}
	logger.Debug("decoded", "url", res.URL, "found", res.Found)

	switch {
	case c.JSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case c.Template != "":
		rendered, err := mustache.Render(c.Template, resultContext(res))
		if err != nil {
			return fmt.Errorf("rendering template: %w", err)
		}
		_, err = fmt.Fprintln(out, rendered)
		return err
	}

	if !c.Raw {
		fmt.Fprintf(out, "url: %s\n", res.URL)
	}
	if !res.Found {
		fmt.Fprintln(out, "tracking: none")
		return nil
	}
	for _, f := range tracker.Schema().Fields {
		if v := res.Tracking.Get(f); v != nil {
			fmt.Fprintf(out, "%s: %s\n", f, *v)
		}
	}
	return nil
}

func (c *DecodeCLI) decode(tracker *trackable.Tracker) (trackable.Result, error) {
	if !c.Raw {
		return tracker.Decode(c.URL)
	}
	t := ixid.DecodePayload(c.URL, ixid.WithSchema(tracker.Schema()))
	return trackable.Result{Tracking: t, Found: !t.IsZero()}, nil
}

func resultContext(res trackable.Result) map[string]any {
	ctx := map[string]any{
		"url":   res.URL,
		"found": res.Found,
	}
	for name, v := range res.Tracking.Map() {
		ctx[name] = v
	}
	return ctx
}
