package term

import (
	"log/slog"

	"golang.org/x/term"
)

// Fder is implemented by [*os.File].
type Fder interface {
	Fd() uintptr
}

// InputGate discards input that is waiting to be read. Flushing is
// best-effort: it does nothing when the input is not a terminal or the
// platform has no flush primitive.
type InputGate struct {
	logger *slog.Logger
	fd     int
	tty    bool
}

// NewInputGate creates an [InputGate] for in.
func NewInputGate(in Fder, logger *slog.Logger) *InputGate {
	if logger == nil {
		logger = slog.Default()
	}

	fd := int(in.Fd()) //nolint:gosec // File descriptors fit in an int.

	return &InputGate{
		logger: logger,
		fd:     fd,
		tty:    term.IsTerminal(fd),
	}
}

// Flush discards any keystrokes already typed.
func (g *InputGate) Flush() {
	if g == nil || !g.tty {
		return
	}

	err := flushInput(g.fd)
	if err != nil {
		g.logger.Debug("flush input", slog.Int("fd", g.fd), slog.Any("err", err))
	}
}
