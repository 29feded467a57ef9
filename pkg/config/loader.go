package config

import (
	"bytes"
	"log/slog"
	"regexp"

	"github.com/macropower/adastra/api"
	"github.com/macropower/adastra/api/v1beta1"
	"github.com/macropower/adastra/pkg/ui/theme"
	"github.com/macropower/adastra/pkg/yaml"
)

// Validator checks a decoded document.
type Validator interface {
	Validate(data any) error
}

// LoaderOpt configures a [Loader].
type LoaderOpt func(*loaderOptions)

type loaderOptions struct {
	validator    Validator
	extractTheme bool
	color        bool
}

// WithValidator replaces the kind's default validator.
func WithValidator(v Validator) LoaderOpt {
	return func(o *loaderOptions) {
		o.validator = v
	}
}

// WithThemeFromData reads ui.theme from the document, even when the
// document is invalid, so errors can be styled with the user's theme.
func WithThemeFromData() LoaderOpt {
	return func(o *loaderOptions) {
		o.extractTheme = true
	}
}

// WithColor colors annotated source in errors.
func WithColor(colored bool) LoaderOpt {
	return func(o *loaderOptions) {
		o.color = colored
	}
}

// Loader decodes a configuration document of kind T.
type Loader[T v1beta1.Object] struct {
	validator Validator
	newFunc   func() T
	theme     *theme.Theme
	errs      *yaml.ErrorWrapper
	data      []byte
}

// NewLoaderFromBytes creates a [Loader] for data. newFunc returns an empty T
// to decode into.
func NewLoaderFromBytes[T v1beta1.Object](
	data []byte,
	newFunc func() T,
	defaultValidator Validator,
	opts ...LoaderOpt,
) *Loader[T] {
	o := &loaderOptions{validator: defaultValidator}
	for _, opt := range opts {
		opt(o)
	}

	t := theme.Default
	if o.extractTheme {
		t = themeFromData(data)
	}

	return &Loader[T]{
		data:      data,
		newFunc:   newFunc,
		validator: o.validator,
		theme:     t,
		errs: yaml.NewErrorWrapper(
			yaml.WithSource(data),
			yaml.WithColor(o.color),
		),
	}
}

// NewLoaderFromFile creates a [Loader] for the file at path.
func NewLoaderFromFile[T v1beta1.Object](
	path string,
	newFunc func() T,
	defaultValidator Validator,
	opts ...LoaderOpt,
) (*Loader[T], error) {
	data, err := api.ReadFile(path)
	if err != nil {
		return nil, err //nolint:wrapcheck // Already wrapped.
	}

	return NewLoaderFromBytes(data, newFunc, defaultValidator, opts...), nil
}

// Validate checks the document against the schema.
func (l *Loader[T]) Validate() error {
	var doc any

	err := yaml.Unmarshal(l.data, &doc)
	if err != nil {
		return l.errs.Wrap(err)
	}

	if l.validator == nil {
		return nil
	}

	return l.errs.Wrap(l.validator.Validate(doc))
}

// Load decodes the document and fills in defaults.
//
//nolint:ireturn // Returns the type parameter.
func (l *Loader[T]) Load() (T, error) {
	obj := l.newFunc()

	err := yaml.Unmarshal(l.data, obj)
	if err != nil {
		var zero T

		return zero, l.errs.Wrap(err)
	}

	obj.EnsureDefaults()

	return obj, nil
}

// Theme returns the theme to style errors with.
func (l *Loader[T]) Theme() *theme.Theme {
	return l.theme
}

var (
	uiSectionRe = regexp.MustCompile(`(?m)^ui:[ \t]*$((?:\n[ \t]+.*)*)`)
	themeKeyRe  = regexp.MustCompile(`\n[ \t]+theme:[ \t]*(?:"([^"#\n]+)"|'([^'#\n]+)'|([^\s#]+))`)
)

func themeFromData(data []byte) *theme.Theme {
	var name string

	path := yaml.NewPathBuilder().Root().Child("ui").Child("theme").Build()

	err := path.Read(bytes.NewReader(data), &name)
	if err == nil && name != "" {
		return theme.New(name)
	}

	// The document may not parse at all, so look for the key textually.
	name = themeFromText(data)
	if name != "" {
		slog.Debug("read theme from unparsed config", slog.String("theme", name))

		return theme.New(name)
	}

	return theme.Default
}

func themeFromText(data []byte) string {
	ui := uiSectionRe.FindSubmatch(data)
	if ui == nil {
		return ""
	}

	m := themeKeyRe.FindSubmatch(ui[1])
	if m == nil {
		return ""
	}

	for _, g := range m[1:] {
		if len(g) > 0 {
			return string(bytes.TrimSpace(g))
		}
	}

	return ""
}
