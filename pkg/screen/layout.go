package screen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Canonical frame dimensions, used by [DefaultLayout].
const (
	DefaultWidth      = 80
	DefaultHeight     = 22
	DefaultBorder     = "▓"
	DefaultMenuRow    = 20
	DefaultErrorRow   = 21
	DefaultLogoMargin = 24
)

// ErrInvalidLayout indicates that a [Layout] cannot describe a screen.
var ErrInvalidLayout = errors.New("invalid layout")

// Layout holds the fixed geometry of a screen. It is a plain value; a
// [Buffer] copies it on construction and never changes it.
type Layout struct {
	Border     string
	Width      int
	Height     int
	MenuRow    int
	ErrorRow   int
	LogoMargin int
}

// DefaultLayout returns the canonical 80x22 layout.
func DefaultLayout() Layout {
	return Layout{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Border:     DefaultBorder,
		MenuRow:    DefaultMenuRow,
		ErrorRow:   DefaultErrorRow,
		LogoMargin: DefaultLogoMargin,
	}
}

// Validate checks that the layout is usable.
func (l Layout) Validate() error {
	switch {
	case l.Width < 6:
		return fmt.Errorf("%w: width %d is smaller than 6", ErrInvalidLayout, l.Width)
	case l.Height < 4:
		return fmt.Errorf("%w: height %d is smaller than 4", ErrInvalidLayout, l.Height)
	case ansi.StringWidth(l.Border) != 1 || ansi.Strip(l.Border) != l.Border:
		return fmt.Errorf("%w: border %q must be a single plain glyph", ErrInvalidLayout, l.Border)
	case l.MenuRow < 2 || l.MenuRow >= l.Height:
		return fmt.Errorf("%w: menu row %d not in [2, %d)", ErrInvalidLayout, l.MenuRow, l.Height)
	case l.ErrorRow < 1 || l.ErrorRow >= l.Height:
		return fmt.Errorf("%w: error row %d not in [1, %d)", ErrInvalidLayout, l.ErrorRow, l.Height)
	case l.MenuRow == l.ErrorRow:
		return fmt.Errorf("%w: menu and error rows are both %d", ErrInvalidLayout, l.MenuRow)
	case l.LogoMargin < 0 || l.LogoMargin > l.Width-2:
		return fmt.Errorf("%w: logo margin %d not in [0, %d]", ErrInvalidLayout, l.LogoMargin, l.Width-2)
	}

	return nil
}

// ContentRows returns the rows cleared by [Buffer.ClearContent], which is
// every row between the top border and the frame row above the menu.
// A new slice is allocated on each call.
func (l Layout) ContentRows() []int {
	rows := make([]int, 0, max(0, l.MenuRow-2))
	for i := 1; i < l.MenuRow-1; i++ {
		rows = append(rows, i)
	}

	return rows
}

// InnerWidth is the number of cells between the two border glyphs.
func (l Layout) InnerWidth() int {
	return l.Width - 2
}

// BlankRow is a bordered row with an empty interior.
func (l Layout) BlankRow() string {
	return l.Border + strings.Repeat(" ", l.InnerWidth()) + l.Border
}

// BorderRow is a row made only of border glyphs.
func (l Layout) BorderRow() string {
	return strings.Repeat(l.Border, l.Width)
}

// IsInterior reports whether row i may be cleared to a blank row.
func (l Layout) IsInterior(i int) bool {
	return i >= 1 && i < l.Height-1
}
