// Package term is the boundary between the screen buffer and the terminal.
//
// A [Renderer] prints the buffer, an [InputGate] discards keystrokes typed
// while nothing is reading, and a [Prompter] shows the input prompt below a
// freshly drawn screen.
package term

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/macropower/adastra/pkg/screen"
)

const (
	// CursorHome moves the cursor to row 1, column 1.
	CursorHome = "\x1b[H"
	// ClearScreen erases the scrollback and the visible screen, then homes
	// the cursor.
	ClearScreen = "\x1b[3J\x1b[2J" + CursorHome
)

// Renderer writes a [screen.Buffer] to a terminal.
type Renderer struct {
	w     io.Writer
	buf   *screen.Buffer
	plain bool
	mu    sync.Mutex
}

// RendererOpt configures a [Renderer].
type RendererOpt func(*Renderer)

// WithPlain disables all cursor and clear sequences, for output that is not
// a terminal.
func WithPlain(plain bool) RendererOpt {
	return func(r *Renderer) {
		r.plain = plain
	}
}

// NewRenderer creates a [Renderer] that prints buf to w.
func NewRenderer(w io.Writer, buf *screen.Buffer, opts ...RendererOpt) *Renderer {
	r := &Renderer{w: w, buf: buf}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Draw prints every row of the buffer, each followed by a newline.
// A shallow draw only moves the cursor home first; a full draw clears the
// screen and scrollback.
func (r *Renderer) Draw(shallow bool) error {
	rows := r.buf.Snapshot()

	var sb strings.Builder
	switch {
	case r.plain:
	case shallow:
		sb.WriteString(CursorHome)
	default:
		sb.WriteString(ClearScreen)
	}

	for _, row := range rows {
		sb.WriteString(row)
		sb.WriteByte('\n')
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := io.WriteString(r.w, sb.String())
	if err != nil {
		return fmt.Errorf("draw screen: %w", err)
	}

	return nil
}
