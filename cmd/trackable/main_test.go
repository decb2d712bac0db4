package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/lmittmann/tint"
	"github.com/stretchr/testify/require"
	"github.com/trackable-go/trackable/pkg/ixid"
	"github.com/trackable-go/trackable/pkg/trackable"
)

const photoURL = "https://images.unsplash.com/photo-123?w=200"

func testLogger(t *testing.T) *slog.Logger {
	return slog.New(tint.NewHandler(t.Output(), &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: "15:04:05",
	}))
}

func testTracker(t *testing.T) *trackable.Tracker {
	tracker, err := newTracker(2, testLogger(t))
	require.NoError(t, err)
	return tracker
}

func parseCLI(t *testing.T, args ...string) *CLI {
	t.Helper()
	var cli CLI
	parser, err := newParser(&cli, args, kong.Exit(func(int) { t.Fatal("kong exited") }))
	require.NoError(t, err)
	_, err = parser.Parse(args)
	require.NoError(t, err)
	return &cli
}

func TestNewTracker(t *testing.T) {
	tracker, err := newTracker(1, testLogger(t))
	require.NoError(t, err)
	require.Equal(t, ixid.SchemaV1, tracker.Schema())

	_, err = newTracker(3, testLogger(t))
	require.Error(t, err)
}

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer

	newLogger(&buf, 0).Info("hidden")
	require.Empty(t, buf.String())

	newLogger(&buf, 1).Info("shown")
	require.Contains(t, buf.String(), "shown")

	buf.Reset()
	newLogger(&buf, 1).Debug("hidden")
	require.Empty(t, buf.String())

	newLogger(&buf, 2).Debug("debug")
	require.Contains(t, buf.String(), "debug")
}

func TestCLI_Defaults(t *testing.T) {
	cli := parseCLI(t, "serve")

	require.Equal(t, 2, cli.Schema)
	require.Equal(t, "0.0.0.0:8080", cli.Serve.Listen)
	require.Equal(t, 60*time.Second, cli.Serve.Timeout)
	require.Equal(t, "events", cli.Serve.ArchivePrefix)
	require.Empty(t, cli.Serve.ArchiveBucket)
}

func TestCLI_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trackable.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
schema: 1
serve:
  listen: ":9090"
  archive_bucket: analytics-events
track:
  app: My App
`), 0o644))

	cli := parseCLI(t, "--config", path, "serve")
	require.Equal(t, 1, cli.Schema)
	require.Equal(t, ":9090", cli.Serve.Listen)
	require.Equal(t, "analytics-events", cli.Serve.ArchiveBucket)

	cli = parseCLI(t, "-c", path, "track", photoURL, "--page", "search")
	require.Equal(t, "My App", cli.Track.App)
	require.Equal(t, "search", cli.Track.Page)
}

func TestCLI_FlagsBeatConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trackable.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"serve": {"listen": ":9090"}}`), 0o644))

	cli := parseCLI(t, "--config", path, "serve", "--listen", ":1234")
	require.Equal(t, ":1234", cli.Serve.Listen)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trackable.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCLI_ConfigFromEnv(t *testing.T) {
	path := writeConfig(t, "serve:\n  listen: \":9090\"\n")
	t.Setenv("TRACKABLE_CONFIG", path)

	cli := parseCLI(t, "serve")
	require.Equal(t, ":9090", cli.Serve.Listen)
	require.Equal(t, path, cli.Config)
}

func TestCLI_EnvBeatsConfig(t *testing.T) {
	path := writeConfig(t, "serve:\n  listen: \":9090\"\n  archive_prefix: from-file\n")
	t.Setenv("PORT", ":7070")

	cli := parseCLI(t, "-c", path, "serve")
	require.Equal(t, ":7070", cli.Serve.Listen)
	require.Equal(t, "from-file", cli.Serve.ArchivePrefix)

	cli = parseCLI(t, "-c", path, "serve", "--listen", ":1234")
	require.Equal(t, ":1234", cli.Serve.Listen)
}

func TestCLI_MissingConfig(t *testing.T) {
	var cli CLI
	_, err := newParser(&cli, []string{"--config", filepath.Join(t.TempDir(), "nope.yaml"), "serve"})
	require.Error(t, err)
}

func TestConfigPath(t *testing.T) {
	t.Setenv("TRACKABLE_CONFIG", "env.yaml")

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"serve"}, "env.yaml"},
		{[]string{"-c", "a.yaml", "serve"}, "a.yaml"},
		{[]string{"--config", "b.yaml", "serve"}, "b.yaml"},
		{[]string{"--config=c.yaml", "serve"}, "c.yaml"},
		{[]string{"-cd.yaml", "serve"}, "d.yaml"},
		{[]string{"track", "--", "-c"}, "env.yaml"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, configPath(tt.args), "%v", tt.args)
	}
}
