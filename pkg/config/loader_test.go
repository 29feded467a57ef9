package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/adastra/api/v1beta1/configs"
	"github.com/macropower/adastra/pkg/config"
	"github.com/macropower/adastra/pkg/ui/theme"
	"github.com/macropower/adastra/pkg/yaml"
)

const header = "apiVersion: adastra.jacobcolvin.com/v1beta1\nkind: Configuration\n"

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func newConfig() *configs.Config { return &configs.Config{} }

func TestNewLoaderFromFile(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		path    func(t *testing.T) string
		wantErr bool
	}{
		"valid file": {
			path: func(t *testing.T) string {
				t.Helper()

				return writeFile(t, header)
			},
		},
		"missing file": {
			path: func(t *testing.T) string {
				t.Helper()

				return filepath.Join(t.TempDir(), "missing.yaml")
			},
			wantErr: true,
		},
		"directory": {
			path: func(t *testing.T) string {
				t.Helper()

				return t.TempDir()
			},
			wantErr: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			l, err := config.NewLoaderFromFile(tc.path(t), newConfig, configs.DefaultValidator)
			if tc.wantErr {
				require.Error(t, err)
				assert.Nil(t, l)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestLoader_Validate(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input   string
		wantErr string
	}{
		"minimal": {
			input: header,
		},
		"full": {
			input: header + "screen:\n  height: 24\n  overflow: clip\nreveal:\n  seed: 7\n  step: 0\nui:\n  theme: dark\n",
		},
		"unknown field": {
			input:   header + "colour: red\n",
			wantErr: "colour",
		},
		"bad enum": {
			input:   header + "screen:\n  overflow: wrap\n",
			wantErr: "$.screen.overflow",
		},
		"wrong kind": {
			input:   "apiVersion: adastra.jacobcolvin.com/v1beta1\nkind: Policy\n",
			wantErr: "$.kind",
		},
		"syntax error": {
			input:   header + "screen: [\n",
			wantErr: "[",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			l := config.NewLoaderFromBytes([]byte(tc.input), newConfig, configs.DefaultValidator)

			err := l.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)

			var yerr *yaml.Error
			require.ErrorAs(t, err, &yerr)
			assert.NotEmpty(t, yerr.Source, "errors carry the source for annotation")
		})
	}
}

type rejectAll struct{}

func (rejectAll) Validate(any) error { return errors.New("rejected") }

func TestLoader_WithValidator(t *testing.T) {
	t.Parallel()

	l := config.NewLoaderFromBytes([]byte(header), newConfig, configs.DefaultValidator,
		config.WithValidator(rejectAll{}))
	require.EqualError(t, l.Validate(), "rejected")

	l = config.NewLoaderFromBytes([]byte(header), newConfig, nil)
	require.NoError(t, l.Validate())
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	l := config.NewLoaderFromBytes([]byte(header+"screen:\n  height: 12\n"), newConfig, configs.DefaultValidator)

	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, configs.Kind, cfg.GetKind())
	assert.Equal(t, 12, cfg.Screen.Height)
	assert.Equal(t, 10, cfg.Screen.MenuRow, "rows default relative to the height")
	assert.Equal(t, 11, cfg.Screen.ErrorRow)
	require.NotNil(t, cfg.Reveal)
	assert.True(t, cfg.Reveal.IsEnabled())
	assert.Equal(t, "auto", cfg.UI.Theme)
}

func TestLoader_Theme(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"valid document": {
			input: header + "ui:\n  theme: dracula\n",
			want:  "dracula",
		},
		"quoted in broken document": {
			input: header + "ui:\n  theme: 'monokai'\nscreen: [\n",
			want:  "monokai",
		},
		"no theme": {
			input: header,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			l := config.NewLoaderFromBytes([]byte(tc.input), newConfig, configs.DefaultValidator,
				config.WithThemeFromData())

			want := theme.Default
			if tc.want != "" {
				want = theme.New(tc.want)
			}

			assert.Equal(t, want.Name, l.Theme().Name)
		})
	}

	l := config.NewLoaderFromBytes([]byte(header+"ui:\n  theme: dracula\n"), newConfig, configs.DefaultValidator)
	assert.Equal(t, theme.Default.Name, l.Theme().Name, "the theme is only read on request")
}
