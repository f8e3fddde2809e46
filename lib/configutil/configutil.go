// Package configutil loads JSON5 configuration files layered over defaults.
package configutil

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// LocalPath returns the path of the machine-local override for name,
// config.json5 becomes config.local.json5.
func LocalPath(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + ".local" + ext
}

// ReadConfig layers the following sources, later ones win:
//  1. defaults
//  2. <name>.<ext>
//  3. <name>.local.<ext>
//
// Missing files are skipped. Zero values in a file never clear a default.
func ReadConfig[T any](name string, defaults T) (T, error) {
	out := defaults
	for _, path := range []string{name, LocalPath(name)} {
		layer, found, err := readLayer[T](path)
		if err != nil {
			return defaults, err
		}
		if !found {
			continue
		}
		err = mergo.Merge(&out, layer, mergo.WithOverride)
		if err != nil {
			return defaults, fmt.Errorf("merge %s: %w", path, err)
		}
		slog.Debug("merged config layer", "path", path)
	}
	return out, nil
}

func readLayer[T any](path string) (T, bool, error) {
	var layer T
	contents, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return layer, false, nil
	}
	if err != nil {
		return layer, false, err
	}
	if len(strings.TrimSpace(string(contents))) == 0 {
		return layer, false, nil
	}
	err = json5.Unmarshal(contents, &layer)
	if err != nil {
		return layer, false, fmt.Errorf("parse %s: %w", path, err)
	}
	return layer, true, nil
}
