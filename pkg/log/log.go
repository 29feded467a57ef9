// Package log builds the [slog.Handler] used by the adastra CLI.
package log

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"go.opentelemetry.io/otel/trace"

	charmlog "github.com/charmbracelet/log"
)

type (
	// Format selects an output encoding.
	Format string
	// Level is the textual form of a [slog.Level].
	Level string

	ctxKey struct{}
)

const (
	FormatJSON   Format = "json"
	FormatLogfmt Format = "logfmt"
	FormatText   Format = "text"

	LevelError Level = "error"
	LevelWarn  Level = "warn"
	LevelInfo  Level = "info"
	LevelDebug Level = "debug"
)

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrUnknownLogLevel  = errors.New("unknown log level")
	ErrUnknownLogFormat = errors.New("unknown log format")
)

// Formats lists the accepted --log-format values.
func Formats() []string {
	return []string{string(FormatJSON), string(FormatLogfmt), string(FormatText)}
}

// Levels lists the accepted --log-level values.
func Levels() []string {
	return []string{string(LevelError), string(LevelWarn), string(LevelInfo), string(LevelDebug)}
}

// Options describe a handler.
type Options struct {
	Level  string
	Format string
	// Color forces the terminal color profile of the text format. When nil
	// it is detected from the environment.
	Color *termenv.Profile
}

// NewHandler parses opts and returns a handler writing to w.
func NewHandler(w io.Writer, opts Options) (slog.Handler, error) {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	f, err := ParseFormat(opts.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	switch f {
	case FormatJSON:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{AddSource: true, Level: lvl}), nil
	case FormatLogfmt:
		return slog.NewTextHandler(w, &slog.HandlerOptions{AddSource: true, Level: lvl}), nil
	}

	profile := termenv.ColorProfile()
	if opts.Color != nil {
		profile = *opts.Color
	}

	return newTextHandler(w, lvl, profile), nil
}

// ParseLevel converts a level name; matching is case-insensitive and
// "warning" is accepted as an alias.
func ParseLevel(s string) (slog.Level, error) {
	switch Level(strings.ToLower(s)) {
	case LevelError:
		return slog.LevelError, nil
	case LevelWarn, "warning":
		return slog.LevelWarn, nil
	case LevelInfo, "":
		return slog.LevelInfo, nil
	case LevelDebug:
		return slog.LevelDebug, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownLogLevel, s)
}

// ParseFormat converts a format name. An empty name selects [FormatText].
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatText, nil
	}

	f := Format(strings.ToLower(s))
	if slices.Contains(Formats(), string(f)) {
		return f, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownLogFormat, s)
}

func newTextHandler(w io.Writer, lvl slog.Level, profile termenv.Profile) slog.Handler {
	l := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmlog.Level(lvl),
		Formatter:       charmlog.TextFormatter,
		ReportTimestamp: true,
		ReportCaller:    true,
		TimeFormat:      time.StampMilli,
	})
	l.SetColorProfile(profile)

	return l
}

// IntoContext stores l in ctx for [FromContext].
func IntoContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored by [IntoContext]. Otherwise it
// returns the default logger, tagged with a short trace id when ctx carries
// a valid span.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}

	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return slog.Default()
	}

	id := sc.TraceID().String()

	return slog.With(slog.String("trace_id", id[:8]))
}
