package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// AppName is used for configuration directories.
const AppName = "sitepdf"

// DefaultConfigFile is the per-project configuration file name.
const DefaultConfigFile = ".sitepdf.yaml"

// DefaultConfigPaths returns the configuration files consulted on every
// run: the user's XDG config file and the project file in the working
// directory. Missing files are ignored.
func DefaultConfigPaths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, AppName, "config.yaml"),
		DefaultConfigFile,
	}
}

// YAMLLoader is a kong.ConfigurationLoader for YAML files whose top level
// keys are flag names:
//
//	content-selector: article
//	next-selector: a.next
//	exclude-selector:
//	  - .ads
//	  - nav
//
// Underscores are accepted in place of dashes.
func YAMLLoader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	normalized := make(map[string]any, len(values))
	for k, v := range values {
		normalized[strings.ReplaceAll(strings.ToLower(k), "_", "-")] = v
	}

	var f kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		raw, ok := normalized[flag.Name]
		if !ok {
			return nil, nil
		}
		return flagValue(flag.Name, raw)
	}
	return f, nil
}

// flagValue turns a YAML value into something kong's mappers accept:
// strings for scalars, []any of strings for lists.
func flagValue(name string, raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			switch item.(type) {
			case []any, map[string]any:
				return nil, fmt.Errorf("config key %q: nested values are not supported", name)
			}
			out = append(out, fmt.Sprint(item))
		}
		return out, nil
	case map[string]any:
		return nil, fmt.Errorf("config key %q: nested values are not supported", name)
	default:
		return fmt.Sprint(v), nil
	}
}
