package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// loadYAML is a [kong.ConfigurationLoader] for YAML files holding default
// flag values, one key per flag:
//
//	log-level: debug
//	strip-history: true
//	prepend: |
//	  A=y
//
// Keys may use hyphens or underscores. Command-line flags override values
// from the file. An empty file yields no defaults.
func loadYAML(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}

	conf := make(config, len(raw))
	for key, val := range raw {
		conf[key] = flagValue(val)
	}

	return conf, nil
}

// flagValue converts decoded YAML scalars into the forms kong accepts.
// Kong parses numbers from strings and sequences from comma-separated text.
func flagValue(val any) any {
	switch v := val.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		list := make([]string, len(v))
		for i, elem := range v {
			list[i] = fmt.Sprint(flagValue(elem))
		}

		return strings.Join(list, ",")
	default:
		return v
	}
}

// config implements [kong.Resolver] over a flat map of flag values.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	if value, ok := c[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	return nil, nil
}
