package term

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// DefaultPromptPrefix is shown before every input prompt.
const DefaultPromptPrefix = "▓▓▓ ⁞⁞ "

// Drawer renders the screen.
type Drawer interface {
	Draw(shallow bool) error
}

// Prompter reads one line of input below a freshly drawn screen.
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	drawer Drawer
	prefix string
	style  lipgloss.Style
	mu     sync.Mutex
}

// PrompterOpt configures a [Prompter].
type PrompterOpt func(*Prompter)

// WithPromptStyle sets the style of the prompt text.
func WithPromptStyle(s lipgloss.Style) PrompterOpt {
	return func(p *Prompter) {
		p.style = s
	}
}

// WithPromptPrefix replaces [DefaultPromptPrefix].
func WithPromptPrefix(prefix string) PrompterOpt {
	return func(p *Prompter) {
		p.prefix = prefix
	}
}

// NewPrompter creates a [Prompter] reading from in and writing to out.
// The screen is drawn with d before each prompt.
func NewPrompter(in io.Reader, out io.Writer, d Drawer, opts ...PrompterOpt) *Prompter {
	p := &Prompter{
		in:     bufio.NewReader(in),
		out:    out,
		drawer: d,
		prefix: DefaultPromptPrefix,
		style:  lipgloss.NewStyle(),
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Prompt draws the screen, prints the prompt prefix followed by suffix and
// returns the next line of input with surrounding whitespace removed.
// [io.EOF] is returned only when no input was read at all.
func (p *Prompter) Prompt(suffix string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.drawer.Draw(false)
	if err != nil {
		return "", err
	}

	_, err = io.WriteString(p.out, p.style.Render(p.prefix+suffix))
	if err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}

	line, err := p.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err //nolint:wrapcheck // Callers check for io.EOF.
	}

	return strings.TrimSpace(line), nil
}
