// Package config resolves settings that live outside the command line: the optional
// config file, per-user data locations and language codes.
package config

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// AppName names the per-user directories
const AppName = "videonormalizer"

// DefaultPaths lists the config files consulted when --config is not given.
// Missing files are skipped.
func DefaultPaths() []string {
	return []string{
		"~/.config/" + AppName + "/config.toml",
		"~/.config/" + AppName + "/config.yaml",
	}
}

// Loader parses a TOML or YAML document into a kong.Resolver. Keys are flag names;
// underscores and dashes are interchangeable. Command-line flags always win.
func Loader(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	values, err := Parse(data)
	if err != nil {
		return nil, err
	}

	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		v, ok := values[normalizeKey(flag.Name)]
		if !ok {
			return nil, nil
		}
		return v, nil
	}), nil
}

// Parse decodes a config document, trying TOML first and YAML second, and flattens it
// into flag-name keys with string values
func Parse(data []byte) (map[string]string, error) {
	raw := map[string]any{}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]string{}, nil
	}

	tomlErr := toml.Unmarshal(data, &raw)
	if tomlErr != nil {
		raw = map[string]any{}
		if yamlErr := yaml.Unmarshal(data, &raw); yamlErr != nil {
			return nil, fmt.Errorf("config is neither TOML (%v) nor YAML (%v)", tomlErr, yamlErr)
		}
	}

	out := make(map[string]string, len(raw))
	if err := flatten("", raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

// flatten copies scalar values into out. Tables are allowed for grouping only:
// [convert] quality = 20 is the same as quality = 20, so a key may appear once overall.
func flatten(prefix string, in map[string]any, out map[string]string) error {
	for _, k := range slices.Sorted(maps.Keys(in)) {
		v := in[k]
		key := normalizeKey(k)
		switch val := v.(type) {
		case map[string]any:
			if err := flatten(key, val, out); err != nil {
				return err
			}
		case []any:
			return fmt.Errorf("config key %q: lists are not supported", joinKey(prefix, key))
		case nil:
		default:
			if _, dup := out[key]; dup {
				return fmt.Errorf("config key %q is set more than once", joinKey(prefix, key))
			}
			out[key] = fmt.Sprint(val)
		}
	}
	return nil
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(k), "_", "-"))
}

// DataDir returns $XDG_DATA_HOME/videonormalizer or ~/.local/share/videonormalizer
func DataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", AppName), nil
}

// DefaultHistoryPath is where the conversion ledger lives unless overridden
func DefaultHistoryPath() string {
	dir, err := DataDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppName, "history.db")
	}
	return filepath.Join(dir, "history.db")
}

// DefaultLogPath is where the rotating log file lives unless overridden
func DefaultLogPath() string {
	dir, err := DataDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppName, AppName+".log")
	}
	return filepath.Join(dir, AppName+".log")
}

// LockPath returns the lock file guarding root. It lives in the user cache directory
// so that runs never create files inside the library itself.
func LockPath(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", root, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	cache, err := os.UserCacheDir()
	if err != nil {
		return "", errors.Join(errors.New("locate cache directory"), err)
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(cache, AppName, "locks", hex.EncodeToString(sum[:8])+".lock"), nil
}
