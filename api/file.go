// Package api holds the file helpers shared by adastra's configuration
// kinds.
package api

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/macropower/adastra/pkg/yaml"
)

// AppName names the configuration directory.
const AppName = "adastra"

var (
	ErrIsDirectory = errors.New("path is a directory")
	ErrNotRegular  = errors.New("path is not a regular file")
	ErrNoConfigDir = errors.New("no user config directory")
)

// ConfigDir returns the adastra configuration directory: $XDG_CONFIG_HOME,
// then ~/.config, then the temp directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".config", AppName)
	}

	dir := filepath.Join(os.TempDir(), AppName)

	slog.Warn("using temp config directory",
		slog.String("path", dir),
		slog.Any("error", fmt.Errorf("%w: %w", ErrNoConfigDir, err)),
	)

	return dir
}

// ConfigPath returns the path of filename inside [ConfigDir].
func ConfigPath(filename string) string {
	return filepath.Join(ConfigDir(), filename)
}

// ReadFile reads a regular file.
func ReadFile(path string) ([]byte, error) {
	err := checkRegular(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: user supplied path.
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// MarshalYAML encodes obj with the [yaml] package defaults.
func MarshalYAML(obj any) ([]byte, error) {
	b, err := yaml.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	return b, nil
}

// WriteDefaultFile writes data to path unless a file is already there.
// With force, an existing file is first renamed to a timestamped backup.
// kind names the file in log output.
func WriteDefaultFile(path string, data []byte, force bool, kind string) error {
	err := checkRegular(path)

	exists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if exists && !force {
		slog.Debug("file exists, not overwriting",
			slog.String("type", kind),
			slog.String("path", path),
		)

		return nil
	}

	err = os.MkdirAll(filepath.Dir(path), 0o700)
	if err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	if exists {
		backup := fmt.Sprintf("%s.%d.old", path, time.Now().UnixNano())

		slog.Info("backing up existing file",
			slog.String("type", kind),
			slog.String("path", backup),
		)

		err = os.Rename(path, backup)
		if err != nil {
			return fmt.Errorf("back up %s file: %w", kind, err)
		}
	}

	slog.Info("write default file",
		slog.String("type", kind),
		slog.String("path", path),
	)

	err = os.WriteFile(path, data, 0o600)
	if err != nil {
		return fmt.Errorf("write %s file: %w", kind, err)
	}

	return nil
}

func checkRegular(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("%s: %w", path, ErrIsDirectory)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s: %w", path, ErrNotRegular)
	}

	return nil
}
