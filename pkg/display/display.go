// Package display is the surface that screen-driving code talks to.
//
// A [Display] owns one [screen.Buffer] and serializes every mutation and
// draw, so a host with several goroutines never prints a half-written
// screen. Content is written with [Display.Screen] (or [Display.Text] for
// keyed messages), the reserved rows with [Display.Menu] and
// [Display.Error], and input is read with [Display.Prompt], which always
// redraws first.
package display

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/macropower/adastra/pkg/compose"
	"github.com/macropower/adastra/pkg/reveal"
	"github.com/macropower/adastra/pkg/screen"
	"github.com/macropower/adastra/pkg/text"
)

// Text keys looked up by [Display].
const (
	KeyLogo        = "logo"
	KeyPromptEnter = "prompt_enter"
)

// Prompter reads a line of input after drawing the screen.
type Prompter interface {
	Prompt(suffix string) (string, error)
}

// Display composes and draws one screen.
type Display struct {
	buf        *screen.Buffer
	comp       *compose.Compositor
	menu       *compose.MenuLine
	drawer     reveal.Drawer
	prompter   Prompter
	texts      text.Source
	flusher    reveal.Flusher
	logger     *slog.Logger
	logoStyle  func(string) string
	compOpts   []compose.Opt
	menuOpts   []compose.MenuLineOpt
	revealOpts []reveal.Opt
	mu         sync.Mutex
}

// Opt configures a [Display].
type Opt func(*Display)

// WithCompositorOpts passes options to the content [compose.Compositor].
func WithCompositorOpts(opts ...compose.Opt) Opt {
	return func(d *Display) {
		d.compOpts = append(d.compOpts, opts...)
	}
}

// WithMenuLineOpts passes options to the [compose.MenuLine].
func WithMenuLineOpts(opts ...compose.MenuLineOpt) Opt {
	return func(d *Display) {
		d.menuOpts = append(d.menuOpts, opts...)
	}
}

// WithRevealOpts passes options to each [reveal.Animator].
func WithRevealOpts(opts ...reveal.Opt) Opt {
	return func(d *Display) {
		d.revealOpts = append(d.revealOpts, opts...)
	}
}

// WithFlusher sets what discards input typed during the reveal.
func WithFlusher(f reveal.Flusher) Opt {
	return func(d *Display) {
		d.flusher = f
	}
}

// WithLogoStyle sets a function applied to every logo line, typically a
// lipgloss style's Render method.
func WithLogoStyle(fn func(string) string) Opt {
	return func(d *Display) {
		d.logoStyle = fn
	}
}

// WithLogger sets the logger passed to the reveal.
func WithLogger(l *slog.Logger) Opt {
	return func(d *Display) {
		d.logger = l
	}
}

// New creates a [Display] for buf. Frames are drawn with dr, input is read
// with p, and keyed messages come from texts.
func New(buf *screen.Buffer, dr reveal.Drawer, p Prompter, texts text.Source, opts ...Opt) *Display {
	d := &Display{
		buf:      buf,
		drawer:   dr,
		prompter: p,
		texts:    texts,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.comp = compose.New(buf, d.compOpts...)
	d.menu = compose.NewMenuLine(buf, d.menuOpts...)

	return d
}

// Buffer returns the underlying buffer.
func (d *Display) Buffer() *screen.Buffer {
	return d.buf
}

// Screen writes content at p.
func (d *Display) Screen(c compose.Content, p compose.Placement) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.comp.Write(c, p)
}

// Text writes the message for key at p.
func (d *Display) Text(key, value string, p compose.Placement) error {
	c, err := d.texts.Get(key, value)
	if err != nil {
		return err
	}

	return d.Screen(c, p)
}

// Menu sets the menu row.
func (d *Display) Menu(s string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.menu.SetMenu(s)
}

// Error sets the error row.
func (d *Display) Error(s string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.menu.SetError(s)
}

// Clear blanks the given rows, or the whole content area when no rows are
// given.
func (d *Display) Clear(rows ...int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(rows) == 0 {
		d.buf.ClearContent()

		return nil
	}

	return d.buf.ClearRows(rows...)
}

// ClearMenu blanks the menu row.
func (d *Display) ClearMenu() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.menu.ClearMenu()
}

// ClearError resets the error row to a solid border.
func (d *Display) ClearError() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.menu.ClearError()
}

// Reset restores the empty frame.
func (d *Display) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.buf.Reset()
}

// Draw prints the screen.
func (d *Display) Draw(shallow bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.drawer.Draw(shallow)
}

// Prompt redraws the screen and reads one line of input.
func (d *Display) Prompt(suffix string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.prompter.Prompt(suffix)
}

// PromptEnter redraws the screen and waits for ENTER.
func (d *Display) PromptEnter() error {
	c, err := d.texts.Get(KeyPromptEnter, "")
	if err != nil {
		return err
	}

	s, ok := c.(compose.Text)
	if !ok {
		return fmt.Errorf("text %q must be a single line, got %T", KeyPromptEnter, c)
	}

	_, err = d.Prompt(string(s))

	return err
}

// Logo clears the content area and writes the logo, vertically centered.
// When firstLaunch is true the logo is revealed with a [reveal.Animator];
// either way the screen holds the finished logo when Logo returns.
func (d *Display) Logo(ctx context.Context, firstLaunch bool) error {
	c, err := d.texts.Get(KeyLogo, "")
	if err != nil {
		return err
	}

	lines, err := logoLines(c)
	if err != nil {
		return err
	}

	if d.logoStyle != nil {
		for i, l := range lines {
			lines[i] = d.logoStyle(l)
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	l := d.buf.Layout()
	area := len(l.ContentRows())
	row := 1 + max(0, (area-len(lines))/2)

	d.buf.ClearContent()

	err = d.comp.Write(lines, compose.Placement{Row: row, Align: compose.AlignLogo})
	if err != nil {
		return fmt.Errorf("write logo: %w", err)
	}

	if !firstLaunch {
		return nil
	}

	opts := []reveal.Opt{reveal.WithLogger(d.logger)}
	if d.flusher != nil {
		opts = append(opts, reveal.WithFlusher(d.flusher))
	}

	opts = append(opts, d.revealOpts...)

	return reveal.New(d.buf, d.drawer, opts...).Run(ctx)
}

func logoLines(c compose.Content) (compose.Lines, error) {
	switch c := c.(type) {
	case compose.Lines:
		return slices.Clone(c), nil
	case compose.Text:
		return compose.Lines{string(c)}, nil
	}

	return nil, fmt.Errorf("text %q must be lines, got %T", KeyLogo, c)
}
