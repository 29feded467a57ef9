package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/macropower/adastra/api/v1beta1/configs"
	"github.com/macropower/adastra/pkg/ui/theme"
)

// Result is a loaded configuration.
type Result struct {
	Config *configs.Config
	Theme  *theme.Theme
	// Path is the file the configuration was read from. It is empty when the
	// defaults were used.
	Path string
}

// Load reads the [configs.Config] at path. A missing file yields the
// defaults. Invalid files fail; the returned [Result] still carries the
// theme named in the file so the error can be styled with it.
func Load(path string, opts ...LoaderOpt) (*Result, error) {
	opts = append([]LoaderOpt{WithThemeFromData()}, opts...)

	l, err := NewLoaderFromFile(path, newConfig, configs.DefaultValidator, opts...)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("no config file, using defaults", slog.String("path", path))

		cfg := configs.New()

		return &Result{Config: cfg, Theme: cfg.Theme()}, nil
	}

	if err != nil {
		return &Result{Theme: theme.Default}, fmt.Errorf("load config: %w", err)
	}

	return load(l, path)
}

// LoadBytes is like [Load] for an in-memory document.
func LoadBytes(data []byte, opts ...LoaderOpt) (*Result, error) {
	opts = append([]LoaderOpt{WithThemeFromData()}, opts...)

	return load(NewLoaderFromBytes(data, newConfig, configs.DefaultValidator, opts...), "")
}

func load(l *Loader[*configs.Config], path string) (*Result, error) {
	res := &Result{Theme: l.Theme(), Path: path}

	err := l.Validate()
	if err != nil {
		return res, fmt.Errorf("validate config: %w", err)
	}

	cfg, err := l.Load()
	if err != nil {
		return res, fmt.Errorf("load config: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return res, fmt.Errorf("validate config: %w", err)
	}

	res.Config = cfg

	return res, nil
}

func newConfig() *configs.Config {
	return &configs.Config{}
}
