package compose

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/macropower/adastra/pkg/screen"
)

// Decoration around the menu text, unless set with [WithDecoration].
const (
	DefaultMenuPrefix = "▶ "
	DefaultMenuSuffix = "◀ "
)

// MenuLine formats the menu and error rows. Both rows sit outside the
// content area, so they are written here rather than by the [Compositor].
type MenuLine struct {
	buf        *screen.Buffer
	menuStyle  lipgloss.Style
	errorStyle lipgloss.Style
	prefix     string
	suffix     string
	layout     screen.Layout
	overflow   Overflow
}

// MenuLineOpt configures a [MenuLine].
type MenuLineOpt func(*MenuLine)

// WithMenuStyle sets the style wrapped around the menu text and its
// decoration. The border glyphs are never styled.
func WithMenuStyle(s lipgloss.Style) MenuLineOpt {
	return func(m *MenuLine) {
		m.menuStyle = s
	}
}

// WithErrorStyle sets the style wrapped around the error text.
func WithErrorStyle(s lipgloss.Style) MenuLineOpt {
	return func(m *MenuLine) {
		m.errorStyle = s
	}
}

// WithDecoration sets the markers printed before and after the menu text.
func WithDecoration(prefix, suffix string) MenuLineOpt {
	return func(m *MenuLine) {
		m.prefix = prefix
		m.suffix = suffix
	}
}

// WithMenuOverflow sets the policy for menu and error text that does not
// fit its row.
func WithMenuOverflow(o Overflow) MenuLineOpt {
	return func(m *MenuLine) {
		m.overflow = o
	}
}

// NewMenuLine creates a [MenuLine] for buf.
func NewMenuLine(buf *screen.Buffer, opts ...MenuLineOpt) *MenuLine {
	m := &MenuLine{
		buf:        buf,
		layout:     buf.Layout(),
		menuStyle:  lipgloss.NewStyle(),
		errorStyle: lipgloss.NewStyle(),
		prefix:     DefaultMenuPrefix,
		suffix:     DefaultMenuSuffix,
		overflow:   OverflowReject,
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// SetMenu writes left-aligned menu text between the decoration markers.
func (m *MenuLine) SetMenu(text string) error {
	field := m.layout.InnerWidth() - ansi.StringWidth(m.prefix) - ansi.StringWidth(m.suffix)

	text, _, err := fitField(text, 0, field, m.overflow)
	if err != nil {
		return err
	}

	inner := m.menuStyle.Render(m.prefix + padRight(text, 0, field) + m.suffix)

	return m.buf.SetRow(m.layout.MenuRow, m.layout.Border+inner+m.layout.Border)
}

// SetError writes right-aligned error text.
func (m *MenuLine) SetError(text string) error {
	field := m.layout.Width - 4

	text, _, err := fitField(text, 0, field, m.overflow)
	if err != nil {
		return err
	}

	inner := m.errorStyle.Render(" " + padLeft(text, 0, field) + " ")

	return m.buf.SetRow(m.layout.ErrorRow, m.layout.Border+inner+m.layout.Border)
}

// ClearMenu resets the menu row to a blank bordered row.
func (m *MenuLine) ClearMenu() error {
	return m.buf.ClearRows(m.layout.MenuRow)
}

// ClearError resets the error row to a solid border row.
func (m *MenuLine) ClearError() {
	m.buf.ClearErrorRow()
}
