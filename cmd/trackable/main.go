// Command trackable embeds and extracts ixid tracking tokens in image URLs,
// tallies tracked URLs and runs the HTTP collector.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lmittmann/tint"
	"github.com/trackable-go/trackable/pkg/config"
	"github.com/trackable-go/trackable/pkg/ixid"
	"github.com/trackable-go/trackable/pkg/trackable"
)

type CLI struct {
	Verbose int    `short:"v" type:"counter" help:"Increase log verbosity (-v info, -vv debug)"`
	Config  string `short:"c" help:"Config file (YAML, JSON or CUE)" env:"TRACKABLE_CONFIG"`
	Schema  int    `help:"Tracking schema version" enum:"1,2" default:"2"`

	Track  TrackCLI  `cmd:"" help:"Add a tracking token to a URL"`
	Decode DecodeCLI `cmd:"" help:"Extract the tracking token from a URL"`
	Report ReportCLI `cmd:"" help:"Tally tracked URLs, one per line"`
	Serve  ServeCLI  `cmd:"" help:"Run the HTTP collector"`
	Lambda LambdaCLI `cmd:"" help:"Run the HTTP collector as an AWS Lambda function"`
}

const configEnv = "TRACKABLE_CONFIG"

// configPath finds the config file before kong parses anything, so the file
// can be installed as a resolver whether it was named by flag or by env.
func configPath(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return os.Getenv(configEnv)
		case arg == "-c" || arg == "--config":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(arg, "--config="):
			return strings.TrimPrefix(arg, "--config=")
		case strings.HasPrefix(arg, "-c") && !strings.HasPrefix(arg, "--"):
			return strings.TrimPrefix(strings.TrimPrefix(arg, "-c"), "=")
		}
	}
	return os.Getenv(configEnv)
}

// newParser builds the kong parser for cli, with the config file for args
// (if any) as a resolver.
func newParser(cli *CLI, args []string, opts ...kong.Option) (*kong.Kong, error) {
	opts = append([]kong.Option{
		kong.Name("trackable"),
		kong.Description("Embed and extract ixid tracking tokens in image URLs."),
		kong.UsageOnError(),
	}, opts...)

	if path := configPath(args); path != "" {
		if path != "-" {
			path = kong.ExpandPath(path)
		}
		val, err := config.LoadValue(path)
		if err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
		opts = append(opts, kong.Resolvers(config.Resolver(val)))
	}
	return kong.New(cli, opts...)
}

func main() {
	var cli CLI
	args := os.Args[1:]

	parser, err := newParser(&cli, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "trackable:", err)
		os.Exit(1)
	}
	ctx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)

	logger := newLogger(os.Stderr, cli.Verbose)

	tracker, err := newTracker(cli.Schema, logger)
	ctx.FatalIfErrorf(err)

	ctx.BindTo(os.Stdout, (*io.Writer)(nil))
	err = ctx.Run(logger, tracker)
	ctx.FatalIfErrorf(err)
}

func newLogger(w io.Writer, verbose int) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbose == 1:
		level = slog.LevelInfo
	case verbose >= 2:
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
	}))
}

func newTracker(version int, logger *slog.Logger) (*trackable.Tracker, error) {
	schema, ok := ixid.SchemaByVersion(version)
	if !ok {
		return nil, fmt.Errorf("unknown schema version %d", version)
	}
	return trackable.New(trackable.WithSchema(schema), trackable.WithLogger(logger)), nil
}
