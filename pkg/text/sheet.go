// Package text supplies every string shown on screen.
//
// Messages are looked up by key in a [Sheet]. A message is a single string,
// which is wrapped into [compose.Lines] when it contains newlines or does not
// fit the content width, a list of pre-wrapped lines, or a keyed table.
package text

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"golang.org/x/text/unicode/norm"

	goccyyaml "github.com/goccy/go-yaml"

	"github.com/macropower/adastra/pkg/compose"
	"github.com/macropower/adastra/pkg/yaml"
)

// WrapWidth is the width messages are wrapped to. It matches the field of
// left-aligned content on an 80 column screen.
const WrapWidth = 76

// ListSeparator separates the items of a list message.
const ListSeparator = ", "

// Placeholder is replaced by the value passed to [Sheet.Get].
const Placeholder = "{value}"

// ErrUnknownKey is returned for keys that are not in the sheet.
var ErrUnknownKey = errors.New("unknown text key")

//go:embed texts.yaml
var defaultData []byte

// DefaultData returns the embedded default sheet.
func DefaultData() []byte {
	return slices.Clone(defaultData)
}

// Source looks up display text by key.
type Source interface {
	// Get returns the message for key with value substituted.
	Get(key, value string) (compose.Content, error)
	// List returns the items of a comma separated message.
	List(key string) ([]string, error)
}

type entry struct {
	content compose.Content
	message string
	raw     bool
}

// Sheet is a [Source] backed by a YAML document.
type Sheet struct {
	entries map[string]entry
	keys    []string
	width   int
}

// SheetOpt configures a [Sheet].
type SheetOpt func(*Sheet)

// WithWrapWidth overrides [WrapWidth].
func WithWrapWidth(n int) SheetOpt {
	return func(s *Sheet) {
		s.width = max(1, n)
	}
}

// Parse reads a sheet from YAML. The document must be a mapping; values are
// strings, lists of strings or mappings of strings to lists of strings.
func Parse(data []byte, opts ...SheetOpt) (*Sheet, error) {
	var doc any

	err := yaml.UnmarshalOrdered(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("parse text sheet: %w", err)
	}

	items, ok := doc.(goccyyaml.MapSlice)
	if !ok && doc != nil {
		return nil, fmt.Errorf("parse text sheet: want a mapping, got %T", doc)
	}

	s := &Sheet{
		entries: make(map[string]entry, len(items)),
		width:   WrapWidth,
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, item := range items {
		key := fmt.Sprint(item.Key)

		if msg, ok := item.Value.(string); ok {
			s.add(key, entry{message: norm.NFC.String(msg), raw: true})

			continue
		}

		c, err := compose.ContentOf(item.Value)
		if err != nil {
			return nil, fmt.Errorf("parse text sheet: key %q: %w", key, err)
		}

		s.add(key, entry{content: c})
	}

	return s, nil
}

// Load reads a sheet from a file.
func Load(path string, opts ...SheetOpt) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read text sheet: %w", err)
	}

	return Parse(data, opts...)
}

// Default returns the embedded sheet.
func Default() *Sheet {
	s, err := Parse(defaultData)
	if err != nil {
		panic(err)
	}

	return s
}

func (s *Sheet) add(key string, e entry) {
	if _, ok := s.entries[key]; !ok {
		s.keys = append(s.keys, key)
	}

	s.entries[key] = e
}

// Keys returns every key in document order.
func (s *Sheet) Keys() []string {
	return slices.Clone(s.keys)
}

// Get returns the message for key. When value is not empty, it replaces
// every [Placeholder] in the message.
//
// A message with a newline, or wider than the wrap width, is returned as
// [compose.Lines]: each source line is wrapped on its own and empty lines
// become a single space. Other messages are returned as [compose.Text].
func (s *Sheet) Get(key, value string) (compose.Content, error) {
	e, err := s.lookup(key)
	if err != nil {
		return nil, err
	}

	if !e.raw {
		return substitute(e.content, value), nil
	}

	msg := e.message
	if value != "" {
		msg = norm.NFC.String(strings.ReplaceAll(msg, Placeholder, value))
	}

	if !strings.Contains(msg, "\n") && ansi.StringWidth(msg) <= s.width {
		return compose.Text(msg), nil
	}

	return s.wrapLines(msg), nil
}

// String is like [Sheet.Get] for callers that need a single line. Wrapped
// messages are joined with spaces.
func (s *Sheet) String(key, value string) (string, error) {
	c, err := s.Get(key, value)
	if err != nil {
		return "", err
	}

	switch c := c.(type) {
	case compose.Text:
		return string(c), nil
	case compose.Lines:
		return strings.TrimSpace(strings.Join(c, " ")), nil
	}

	return "", fmt.Errorf("text %q is a %T, not a single message", key, c)
}

// List splits the message for key on [ListSeparator]. List entries are
// returned as-is.
func (s *Sheet) List(key string) ([]string, error) {
	e, err := s.lookup(key)
	if err != nil {
		return nil, err
	}

	if !e.raw {
		if lines, ok := e.content.(compose.Lines); ok {
			return slices.Clone(lines), nil
		}

		return nil, fmt.Errorf("text %q is a %T, not a list", key, e.content)
	}

	return strings.Split(e.message, ListSeparator), nil
}

func (s *Sheet) lookup(key string) (entry, error) {
	e, ok := s.entries[key]
	if !ok {
		return entry{}, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	return e, nil
}

func (s *Sheet) wrapLines(msg string) compose.Lines {
	var out compose.Lines

	for row := range strings.SplitSeq(msg, "\n") {
		switch {
		case row == "":
			out = append(out, " ")

		case ansi.StringWidth(row) > s.width:
			// Break on words first, then hard-wrap words that are still
			// too long.
			wrapped := wrap.String(wordwrap.String(row, s.width), s.width)
			for l := range strings.SplitSeq(wrapped, "\n") {
				out = append(out, strings.TrimRight(l, " "))
			}

		default:
			out = append(out, row)
		}
	}

	return out
}

// substitute copies c with value replacing every [Placeholder].
func substitute(c compose.Content, value string) compose.Content {
	rep := func(s string) string {
		if value == "" {
			return s
		}

		return norm.NFC.String(strings.ReplaceAll(s, Placeholder, value))
	}

	switch c := c.(type) {
	case compose.Lines:
		out := make(compose.Lines, len(c))
		for i, l := range c {
			out[i] = rep(l)
		}

		return out

	case compose.Table:
		out := make(compose.Table, len(c))
		for i, e := range c {
			values := make([]string, len(e.Values))
			for j, v := range e.Values {
				values[j] = rep(v)
			}

			out[i] = compose.TableEntry{Key: rep(e.Key), Values: values}
		}

		return out
	}

	return c
}
