package log_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/adastra/pkg/log"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want    slog.Level
		wantErr bool
	}{
		"error":   {want: slog.LevelError},
		"WARN":    {want: slog.LevelWarn},
		"warning": {want: slog.LevelWarn},
		"info":    {want: slog.LevelInfo},
		"":        {want: slog.LevelInfo},
		"debug":   {want: slog.LevelDebug},
		"trace":   {wantErr: true},
	}

	for in, tc := range tcs {
		t.Run(in, func(t *testing.T) {
			t.Parallel()

			got, err := log.ParseLevel(in)
			if tc.wantErr {
				require.ErrorIs(t, err, log.ErrUnknownLogLevel)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, f := range log.Formats() {
		got, err := log.ParseFormat(f)
		require.NoError(t, err)
		assert.Equal(t, log.Format(f), got)
	}

	got, err := log.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, log.FormatText, got)

	_, err = log.ParseFormat("xml")
	require.ErrorIs(t, err, log.ErrUnknownLogFormat)
}

func TestNewHandler(t *testing.T) {
	t.Parallel()

	ascii := termenv.Ascii

	tcs := map[string]struct {
		opts     log.Options
		contains string
		wantErr  bool
	}{
		"json": {
			opts:     log.Options{Level: "info", Format: "json"},
			contains: `"msg":"drawn"`,
		},
		"logfmt": {
			opts:     log.Options{Level: "info", Format: "logfmt"},
			contains: "msg=drawn",
		},
		"text": {
			opts:     log.Options{Level: "info", Format: "text", Color: &ascii},
			contains: "drawn",
		},
		"bad level": {
			opts:    log.Options{Level: "loud"},
			wantErr: true,
		},
		"bad format": {
			opts:    log.Options{Format: "xml"},
			wantErr: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer

			h, err := log.NewHandler(&out, tc.opts)
			if tc.wantErr {
				require.ErrorIs(t, err, log.ErrInvalidArgument)

				return
			}

			require.NoError(t, err)

			l := slog.New(h)
			l.Debug("hidden")
			l.Info("drawn", slog.Int("rows", 22))

			assert.Contains(t, out.String(), tc.contains)
			assert.NotContains(t, out.String(), "hidden")
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Default(), log.FromContext(context.Background()))

	l := slog.New(slog.DiscardHandler)
	ctx := log.IntoContext(t.Context(), l)
	assert.Same(t, l, log.FromContext(ctx))
}
