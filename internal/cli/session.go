package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/macropower/adastra/pkg/compose"
	"github.com/macropower/adastra/pkg/config"
	"github.com/macropower/adastra/pkg/display"
	"github.com/macropower/adastra/pkg/log"
	"github.com/macropower/adastra/pkg/screen"
	adterm "github.com/macropower/adastra/pkg/term"
	"github.com/macropower/adastra/pkg/text"
)

// session is one command's screen: the buffer, the display driving it and
// the terminal plumbing around it.
type session struct {
	display *display.Display
	buf     *screen.Buffer
	texts   *text.Sheet
	stderr  io.Writer
	hold    *log.Hold
	prev    *slog.Logger
	// tty is true when stdout is a terminal. Otherwise frames are printed
	// once, without cursor movement.
	tty bool
}

func newSession(cmd *cobra.Command, ra *RootArgs) (*session, error) {
	res, err := ra.Config()
	if err != nil {
		return nil, err
	}

	cfg := res.Config
	th := cfg.Theme()

	layout, err := cfg.Screen.Layout()
	if err != nil {
		return nil, err //nolint:wrapcheck // Already validated on load.
	}

	overflow, err := cfg.Screen.OverflowPolicy()
	if err != nil {
		return nil, err
	}

	sheet, err := loadTexts(cfg.Texts)
	if err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	in := cmd.InOrStdin()

	s := &session{
		buf:    screen.MustNew(layout),
		texts:  sheet,
		stderr: cmd.ErrOrStderr(),
		tty:    isTerminal(out),
	}

	if s.tty {
		err := s.holdLogs(ra)
		if err != nil {
			return nil, err
		}
	}

	r := adterm.NewRenderer(out, s.buf, adterm.WithPlain(!s.tty))
	p := adterm.NewPrompter(in, out, r,
		adterm.WithPromptStyle(th.PromptStyle),
		adterm.WithPromptPrefix(cfg.Screen.Prompt),
	)

	opts := []display.Opt{
		display.WithCompositorOpts(compose.WithOverflow(overflow)),
		display.WithMenuLineOpts(
			compose.WithMenuStyle(th.MenuStyle),
			compose.WithErrorStyle(th.ErrorStyle),
			compose.WithDecoration(cfg.Screen.MenuPrefix, cfg.Screen.MenuSuffix),
			compose.WithMenuOverflow(overflow),
		),
		display.WithRevealOpts(cfg.Reveal.Opts()...),
		display.WithLogoStyle(th.LogoStyle.Render),
	}

	if f, ok := in.(*os.File); ok {
		opts = append(opts, display.WithFlusher(adterm.NewInputGate(f, slog.Default())))
	}

	s.display = display.New(s.buf, r, p, sheet, append(opts, display.WithLogger(slog.Default()))...)

	return s, nil
}

// holdLogs keeps log records in memory while the screen is on the terminal.
func (s *session) holdLogs(ra *RootArgs) error {
	s.hold = log.NewHold(0)

	h, err := log.NewHandler(s.hold, log.Options{Level: ra.LogLevel, Format: ra.LogFormat})
	if err != nil {
		return fmt.Errorf("create log handler: %w", err)
	}

	s.prev = slog.Default()
	slog.SetDefault(slog.New(h))

	return nil
}

// Close restores logging and prints any held records.
func (s *session) Close() {
	if s.hold == nil {
		return
	}

	slog.SetDefault(s.prev)

	slog.Debug("flush held logs", slog.Int("count", s.hold.Len()), slog.Int("dropped", s.hold.Dropped()))

	_, err := s.hold.WriteTo(s.stderr)
	if err != nil {
		slog.Error("flush held logs", slog.Any("err", err))
	}
}

func loadTexts(path string) (*text.Sheet, error) {
	if path == "" {
		return text.Default(), nil
	}

	s, err := text.Load(path)
	if err != nil {
		return nil, fmt.Errorf("texts %q: %w", path, err)
	}

	return s, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // File descriptors fit in an int.
}
