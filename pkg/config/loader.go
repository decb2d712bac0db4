// Package config loads trackable configuration files.
//
// YAML, JSON and CUE are all read through CUE, so a config file can be a plain
// data file or a CUE package with constraints. The loaded value feeds kong as
// a flag resolver: a flag not given on the command line is looked up as
// `<command>.<flag_name>` and then as `<flag_name>`, with dashes in flag names
// written as underscores.
//
//	verbose: 1
//	schema: 2
//	serve:
//	  listen: ":9090"
//	  archive_bucket: "analytics-events"
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/encoding/yaml"
)

// LoadValueFromReader parses YAML (or JSON) from r.
func LoadValueFromReader(r io.Reader) (cue.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return cue.Value{}, fmt.Errorf("failed to read config: %w", err)
	}
	return buildYAML(cuecontext.New(), "", data)
}

// LoadValue loads a config file or CUE package directory. "-" reads YAML
// from stdin.
//
// .cue files and directories go through load.Instances so CUE imports work;
// .json is compiled directly; anything else is parsed as YAML.
func LoadValue(path string) (cue.Value, error) {
	if path == "-" {
		return LoadValueFromReader(os.Stdin)
	}

	info, err := os.Stat(path)
	if err != nil {
		return cue.Value{}, fmt.Errorf("failed to stat config: %w", err)
	}

	ctx := cuecontext.New()
	if info.IsDir() || strings.EqualFold(filepath.Ext(path), ".cue") {
		return loadInstance(ctx, path, info.IsDir())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cue.Value{}, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		val := ctx.CompileBytes(data, cue.Filename(path))
		if err := val.Err(); err != nil {
			return cue.Value{}, fmt.Errorf("failed to build config: %w", err)
		}
		return val, nil
	}
	return buildYAML(ctx, path, data)
}

// LoadFromFile loads path and decodes it into T.
func LoadFromFile[T any](path string) (*T, error) {
	val, err := LoadValue(path)
	if err != nil {
		return nil, err
	}

	var out T
	if err := val.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &out, nil
}

func buildYAML(ctx *cue.Context, name string, data []byte) (cue.Value, error) {
	file, err := yaml.Extract(name, data)
	if err != nil {
		return cue.Value{}, fmt.Errorf("failed to parse config: %w", err)
	}
	val := ctx.BuildFile(file)
	if err := val.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("failed to build config: %w", err)
	}
	return val, nil
}

func loadInstance(ctx *cue.Context, path string, isDir bool) (cue.Value, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return cue.Value{}, fmt.Errorf("failed to resolve config path: %w", err)
	}

	cfg := &load.Config{Dir: filepath.Dir(absPath), DataFiles: true}
	args := []string{absPath}
	if isDir {
		cfg.Dir = absPath
		args = []string{"."}
	}

	instances := load.Instances(args, cfg)
	if len(instances) == 0 {
		return cue.Value{}, fmt.Errorf("no instances loaded from %s", path)
	}
	if err := instances[0].Err; err != nil {
		return cue.Value{}, fmt.Errorf("failed to load config: %w", err)
	}

	val := ctx.BuildInstance(instances[0])
	if err := val.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("failed to build config: %w", err)
	}
	return val, nil
}
