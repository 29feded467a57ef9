package yaml

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/printer"
	"github.com/goccy/go-yaml/token"
)

func NewPathBuilder() *yaml.PathBuilder {
	return &yaml.PathBuilder{}
}

// ErrorWrapper applies a fixed set of [ErrorOpt]s to every [*Error] it wraps.
type ErrorWrapper struct {
	Opts []ErrorOpt
}

func NewErrorWrapper(opts ...ErrorOpt) *ErrorWrapper {
	return &ErrorWrapper{
		Opts: opts,
	}
}

// Wrap adds context to err if it is an [*Error].
// Any other error is returned unmodified.
func (ew *ErrorWrapper) Wrap(err error, opts ...ErrorOpt) error {
	if err == nil {
		return nil
	}

	var yamlErr *Error
	if errors.As(err, &yamlErr) {
		for _, opt := range ew.Opts {
			opt(yamlErr)
		}

		for _, opt := range opts {
			opt(yamlErr)
		}

		return yamlErr
	}

	return err
}

// Error is a YAML error with the location it refers to. The location is
// either a [*yaml.Path] (schema errors) or a [*token.Token] (syntax errors).
type Error struct {
	Err     error
	Path    *yaml.Path
	Token   *token.Token
	Source  []byte
	Colored bool
}

func NewError(err error, opts ...ErrorOpt) *Error {
	e := &Error{Err: err}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

type ErrorOpt func(e *Error)

func WithPath(path *yaml.Path) ErrorOpt {
	return func(e *Error) {
		e.Path = path
	}
}

func WithToken(tk *token.Token) ErrorOpt {
	return func(e *Error) {
		e.Token = tk
	}
}

func WithSource(source []byte) ErrorOpt {
	return func(e *Error) {
		e.Source = source
	}
}

// WithColor enables ANSI colors in the annotated source.
func WithColor(colored bool) ErrorOpt {
	return func(e *Error) {
		e.Colored = colored
	}
}

func (e Error) Unwrap() error {
	return e.Err
}

func (e Error) Error() string {
	if e.Err == nil {
		return ""
	}

	switch {
	case e.Token != nil:
		var pp printer.Printer

		return fmt.Sprintf("[%d:%d] %v:\n%s",
			e.Token.Position.Line, e.Token.Position.Column, e.Err,
			pp.PrintErrorToken(e.Token, e.Colored))

	case e.Path != nil && len(e.Source) > 0:
		src, err := e.Path.AnnotateSource(e.Source, e.Colored)
		if err != nil {
			slog.Warn("failed to annotate yaml with error",
				slog.String("path", e.Path.String()),
				slog.Any("error", err),
			)

			break
		}

		return fmt.Sprintf("error at %s: %v:\n%s", e.Path.String(), e.Err, src)

	case e.Path == nil:
		return e.Err.Error()
	}

	return fmt.Sprintf("error at %s: %v", e.Path.String(), e.Err)
}
