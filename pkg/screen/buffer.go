// Package screen holds the fixed-size row buffer that everything else draws
// into.
//
// A [Buffer] always contains exactly [Layout.Height] rows, and every row is
// exactly [Layout.Width] cells wide once ANSI escape sequences are discounted.
// The buffer never pads or truncates: callers such as the compositor must
// produce rows of the correct width, and any row that does not fit is
// rejected with [ErrRowWidthMismatch].
package screen

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/x/ansi"
)

var (
	// ErrIndexOutOfBounds indicates a row index outside of the buffer.
	ErrIndexOutOfBounds = errors.New("row index out of bounds")
	// ErrRowWidthMismatch indicates a row whose display width is not the
	// layout width.
	ErrRowWidthMismatch = errors.New("row width mismatch")
)

// Buffer is the ordered sequence of rows that make up one screen.
// Individual methods are safe for concurrent use, but a sequence of calls
// (e.g. write then draw) must be serialized by the owner.
type Buffer struct {
	rows   []string
	layout Layout
	mu     sync.RWMutex
}

// New creates a [Buffer] initialized to the empty frame.
func New(layout Layout) (*Buffer, error) {
	err := layout.Validate()
	if err != nil {
		return nil, err
	}

	b := &Buffer{
		layout: layout,
		rows:   make([]string, layout.Height),
	}
	b.reset()

	return b, nil
}

// MustNew is like [New] but panics on an invalid layout.
func MustNew(layout Layout) *Buffer {
	b, err := New(layout)
	if err != nil {
		panic(err)
	}

	return b
}

// Layout returns the layout the buffer was created with.
func (b *Buffer) Layout() Layout {
	return b.layout
}

// Row returns the row at index i.
func (b *Buffer) Row(i int) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	err := b.checkIndex(i)
	if err != nil {
		return "", err
	}

	return b.rows[i], nil
}

// SetRow replaces the row at index i.
func (b *Buffer) SetRow(i int, row string) error {
	return b.SetRows(i, []string{row})
}

// SetRows replaces len(rows) consecutive rows starting at index start.
// Every row is checked before any is written, so on error the buffer is
// left unchanged.
func (b *Buffer) SetRows(start int, rows []string) error {
	if len(rows) == 0 {
		return b.checkIndex(start)
	}

	for offset, row := range rows {
		i := start + offset

		err := b.checkIndex(i)
		if err != nil {
			return err
		}

		w := ansi.StringWidth(row)
		if w != b.layout.Width {
			return fmt.Errorf("%w: row %d is %d cells wide, want %d",
				ErrRowWidthMismatch, i, w, b.layout.Width)
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	copy(b.rows[start:], rows)

	return nil
}

// ClearRows resets each interior row in indexes to a blank bordered row.
// The outer border rows cannot be cleared; use [Buffer.Reset] instead.
func (b *Buffer) ClearRows(indexes ...int) error {
	for _, i := range indexes {
		if !b.layout.IsInterior(i) {
			return fmt.Errorf("%w: %d is not an interior row in [1, %d)",
				ErrIndexOutOfBounds, i, b.layout.Height-1)
		}
	}

	blank := b.layout.BlankRow()

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, i := range indexes {
		b.rows[i] = blank
	}

	return nil
}

// ClearContent clears every row above the menu frame.
func (b *Buffer) ClearContent() {
	// ContentRows are always interior rows of a valid layout.
	_ = b.ClearRows(b.layout.ContentRows()...)
}

// ClearErrorRow resets the error row. Unlike [Buffer.ClearRows], the error
// row is reset to a solid border row rather than a blank one.
func (b *Buffer) ClearErrorRow() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.rows[b.layout.ErrorRow] = b.layout.BorderRow()
}

// Reset restores the initial empty frame.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.reset()
}

// Fill sets every row to a solid border row.
func (b *Buffer) Fill() {
	b.mu.Lock()
	defer b.mu.Unlock()

	border := b.layout.BorderRow()
	for i := range b.rows {
		b.rows[i] = border
	}
}

// Snapshot returns a copy of all rows.
func (b *Buffer) Snapshot() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return slices.Clone(b.rows)
}

func (b *Buffer) checkIndex(i int) error {
	if i < 0 || i >= b.layout.Height {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfBounds, i, b.layout.Height)
	}

	return nil
}

func (b *Buffer) reset() {
	border := b.layout.BorderRow()
	blank := b.layout.BlankRow()

	for i := range b.rows {
		switch {
		case i == 0, i >= b.layout.MenuRow-1, i == b.layout.ErrorRow:
			b.rows[i] = border
		default:
			b.rows[i] = blank
		}
	}
}
