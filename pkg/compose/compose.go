// Package compose turns structured content into finished screen rows.
//
// The [Compositor] formats [Text], [Lines] and [Table] content into rows of
// exactly the layout width and commits them to a [screen.Buffer]. Rows are
// composed in full before anything is written, so a failed write never
// leaves a partially updated screen.
//
// The [MenuLine] formatter handles the two reserved rows below the content
// area: the menu row and the error row.
package compose

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"

	"github.com/macropower/adastra/pkg/screen"
)

const (
	// TableKeyWidth is the width of the key column of a [Table].
	TableKeyWidth = 16

	// Cells taken by the border and margin around a table value:
	// border, space, key column, border.
	tableChrome = 1 + 1 + TableKeyWidth + 1
)

// Compositor writes [Content] into a [screen.Buffer].
type Compositor struct {
	buf      *screen.Buffer
	layout   screen.Layout
	overflow Overflow
}

// Opt configures a [Compositor].
type Opt func(*Compositor)

// WithOverflow sets the policy for lines that do not fit their field.
func WithOverflow(o Overflow) Opt {
	return func(c *Compositor) {
		c.overflow = o
	}
}

// New creates a [Compositor] for buf.
func New(buf *screen.Buffer, opts ...Opt) *Compositor {
	c := &Compositor{
		buf:      buf,
		layout:   buf.Layout(),
		overflow: OverflowReject,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Write renders content and commits the rows starting at p.Row.
func (c *Compositor) Write(content Content, p Placement) error {
	rows, err := c.Render(content, p)
	if err != nil {
		return err
	}

	err = c.buf.SetRows(p.Row, rows)
	if errors.Is(err, screen.ErrRowWidthMismatch) {
		// Only reachable with an explicit ANSIOffset that does not match
		// the text.
		return fmt.Errorf("internal compositor error (check ANSI offset %d): %w", p.ANSIOffset, err)
	}

	return err
}

// Render formats content without writing it. The returned rows are meant
// for rows p.Row through p.Row+len(rows)-1.
func (c *Compositor) Render(content Content, p Placement) ([]string, error) {
	if content == nil {
		return nil, fmt.Errorf("%w: <nil>", ErrUnsupportedContentKind)
	}

	err := c.checkRange(p.Row, content.Rows())
	if err != nil {
		return nil, err
	}

	switch v := content.(type) {
	case Text:
		row, err := c.line(string(v), p)
		if err != nil {
			return nil, err
		}

		return []string{row}, nil

	case Lines:
		rows := make([]string, 0, len(v))
		for i, text := range v {
			row, err := c.line(text, p)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i, err)
			}

			rows = append(rows, row)
		}

		return rows, nil

	case Table:
		return c.table(v)
	}

	return nil, fmt.Errorf("%w: %T", ErrUnsupportedContentKind, content)
}

func (c *Compositor) checkRange(start, n int) error {
	last := start + max(n, 1) - 1
	if start < 1 || last >= c.layout.MenuRow {
		return fmt.Errorf("%w: rows %d to %d must be within [1, %d)",
			ErrOutOfRange, start, last, c.layout.MenuRow)
	}

	return nil
}

func (c *Compositor) line(text string, p Placement) (string, error) {
	b := c.layout.Border
	inner := c.layout.InnerWidth()

	switch p.Align {
	case AlignLeft:
		field := c.layout.Width - 4

		text, offset, err := c.fit(text, p.ANSIOffset, field)
		if err != nil {
			return "", err
		}

		return b + " " + padRight(text, offset, field) + " " + b, nil

	case AlignCenter:
		text, offset, err := c.fit(text, p.ANSIOffset, inner)
		if err != nil {
			return "", err
		}

		left := CenterPad(inner, visibleWidth(text, offset))

		return b + padRight(strings.Repeat(" ", left)+text, offset, inner) + b, nil

	case AlignLogo:
		margin := strings.Repeat(" ", c.layout.LogoMargin)

		text, offset, err := c.fit(text, p.ANSIOffset, inner-c.layout.LogoMargin)
		if err != nil {
			return "", err
		}

		return b + padRight(margin+text, offset, inner) + b, nil
	}

	return "", fmt.Errorf("unknown alignment %v", p.Align)
}

func (c *Compositor) table(t Table) ([]string, error) {
	b := c.layout.Border
	field := c.layout.Width - tableChrome
	if field < 1 {
		return nil, fmt.Errorf("%w: width %d leaves no room for table values",
			ErrContentTooWide, c.layout.Width)
	}

	indent := strings.Repeat(" ", TableKeyWidth+1)
	rows := make([]string, 0, t.Rows())

	for _, e := range t {
		key := padRight(ansi.Truncate(e.Key, TableKeyWidth, ""), 0, TableKeyWidth)

		values := e.Values
		if len(values) == 0 {
			values = []string{""}
		}

		for i, v := range values {
			v, _, err := c.fit(v, 0, field)
			if err != nil {
				return nil, fmt.Errorf("key %q value %d: %w", e.Key, i, err)
			}

			v = padRight(v, 0, field)
			if i == 0 {
				rows = append(rows, b+" "+key+v+b)
			} else {
				rows = append(rows, b+indent+v+b)
			}
		}
	}

	return rows, nil
}

// fit applies the overflow policy to text for a field of the given width.
// It returns the text to place and the ANSI offset that still applies to it.
func (c *Compositor) fit(text string, offset, field int) (string, int, error) {
	return fitField(text, offset, field, c.overflow)
}

func fitField(text string, offset, field int, overflow Overflow) (string, int, error) {
	w := visibleWidth(text, offset)
	if w <= field {
		return text, offset, nil
	}

	if overflow == OverflowClip {
		// Truncation may drop escape sequences, so measure again afterwards.
		return ansi.Truncate(text, max(0, field), ""), 0, nil
	}

	return "", 0, fmt.Errorf("%w: %q is %d cells, field is %d",
		ErrContentTooWide, ansi.Strip(text), w, field)
}

// CenterPad returns the left padding that centers a line of the given
// visible width in a field, rounding up when the remainder is odd.
func CenterPad(field, width int) int {
	return max(0, (field-width+1)/2)
}

// visibleWidth is the number of cells text occupies. A positive offset is
// taken as the count of non-printing characters in text; zero measures the
// escape sequences directly.
func visibleWidth(text string, offset int) int {
	if offset > 0 {
		return utf8.RuneCountInString(text) - offset
	}

	return ansi.StringWidth(text)
}

func padRight(text string, offset, field int) string {
	return text + strings.Repeat(" ", max(0, field-visibleWidth(text, offset)))
}

func padLeft(text string, offset, field int) string {
	return strings.Repeat(" ", max(0, field-visibleWidth(text, offset))) + text
}
