package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"github.com/alecthomas/kong"
)

// Resolver returns a kong.Resolver that reads flag defaults from val.
// A flag whose environment variable is set keeps the env value, so the
// order is flag, env, file, default.
func Resolver(val cue.Value) kong.Resolver {
	return kong.ResolverFunc(func(_ *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		if flag.Tag != nil {
			for _, env := range flag.Tag.Envs {
				if _, ok := os.LookupEnv(env); ok {
					return nil, nil
				}
			}
		}

		name := strings.ReplaceAll(flag.Name, "-", "_")

		var paths []string
		if node := parent.Node(); node != nil && node.Type == kong.CommandNode {
			paths = append(paths, node.Name+"."+name)
		}
		paths = append(paths, name)

		for _, p := range paths {
			v := val.LookupPath(cue.ParsePath(p))
			if !v.Exists() {
				continue
			}
			s, err := scalar(v)
			if err != nil {
				return nil, fmt.Errorf("config %s: %w", p, err)
			}
			return s, nil
		}
		return nil, nil
	})
}

// scalar renders v the way it would be typed on the command line.
func scalar(v cue.Value) (string, error) {
	switch v.IncompleteKind() {
	case cue.StringKind:
		return v.String()
	case cue.BoolKind:
		b, err := v.Bool()
		return strconv.FormatBool(b), err
	case cue.IntKind:
		i, err := v.Int64()
		return strconv.FormatInt(i, 10), err
	case cue.FloatKind, cue.NumberKind:
		f, err := v.Float64()
		return strconv.FormatFloat(f, 'f', -1, 64), err
	case cue.ListKind:
		var items []string
		iter, err := v.List()
		if err != nil {
			return "", err
		}
		for iter.Next() {
			s, err := scalar(iter.Value())
			if err != nil {
				return "", err
			}
			items = append(items, s)
		}
		return strings.Join(items, ","), nil
	}
	return "", fmt.Errorf("unsupported value kind %s", v.IncompleteKind())
}
