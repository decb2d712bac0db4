package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cuelang.org/go/cue"
	"github.com/stretchr/testify/require"
	"github.com/trackable-go/trackable/pkg/config"
)

type serveSettings struct {
	Listen        string `json:"listen"`
	ArchiveBucket string `json:"archive_bucket"`
}

type settings struct {
	Schema  int           `json:"schema"`
	Verbose int           `json:"verbose"`
	Serve   serveSettings `json:"serve"`
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile_YAML(t *testing.T) {
	path := writeFile(t, "trackable.yaml", `
schema: 1
verbose: 2
serve:
  listen: ":9090"
  archive_bucket: analytics-events
`)

	cfg, err := config.LoadFromFile[settings](path)
	require.NoError(t, err)
	require.Equal(t, 1, cfg.Schema)
	require.Equal(t, 2, cfg.Verbose)
	require.Equal(t, ":9090", cfg.Serve.Listen)
	require.Equal(t, "analytics-events", cfg.Serve.ArchiveBucket)
}

func TestLoadFromFile_JSON(t *testing.T) {
	path := writeFile(t, "trackable.json", `{"schema": 2, "serve": {"listen": ":8081"}}`)

	cfg, err := config.LoadFromFile[settings](path)
	require.NoError(t, err)
	require.Equal(t, 2, cfg.Schema)
	require.Equal(t, ":8081", cfg.Serve.Listen)
	require.Empty(t, cfg.Serve.ArchiveBucket)
}

func TestLoadValue_CUE(t *testing.T) {
	path := writeFile(t, "trackable.cue", `
schema: 2
serve: listen: ":7070"
`)

	val, err := config.LoadValue(path)
	require.NoError(t, err)

	listen, err := val.LookupPath(cue.ParsePath("serve.listen")).String()
	require.NoError(t, err)
	require.Equal(t, ":7070", listen)
}

func TestLoadValue_MissingFile(t *testing.T) {
	_, err := config.LoadValue(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadValue_BadYAML(t *testing.T) {
	path := writeFile(t, "broken.yaml", "serve: [unterminated\n")

	_, err := config.LoadValue(path)
	require.Error(t, err)
}

func TestLoadValueFromReader(t *testing.T) {
	val, err := config.LoadValueFromReader(strings.NewReader("schema: 1\n"))
	require.NoError(t, err)

	schema, err := val.LookupPath(cue.ParsePath("schema")).Int64()
	require.NoError(t, err)
	require.EqualValues(t, 1, schema)
}
