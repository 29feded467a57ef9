package display_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/adastra/pkg/compose"
	"github.com/macropower/adastra/pkg/display"
	"github.com/macropower/adastra/pkg/reveal"
	"github.com/macropower/adastra/pkg/screen"
	"github.com/macropower/adastra/pkg/term"
	"github.com/macropower/adastra/pkg/text"
)

const sheet = `
logo:
  - '/\  /\'
  - '\/  \/'
prompt_enter: "Press ENTER "
greeting: "Hello, {value}"
`

type harness struct {
	d   *display.Display
	buf *screen.Buffer
	out *bytes.Buffer
}

func newHarness(t *testing.T, input string, opts ...display.Opt) *harness {
	t.Helper()

	s, err := text.Parse([]byte(sheet))
	require.NoError(t, err)

	buf := screen.MustNew(screen.DefaultLayout())
	out := &bytes.Buffer{}
	r := term.NewRenderer(out, buf)
	p := term.NewPrompter(strings.NewReader(input), out, r)

	opts = append([]display.Opt{
		display.WithRevealOpts(
			reveal.WithDelay(0),
			reveal.WithInterval(0),
			reveal.WithSeed(7),
		),
	}, opts...)

	return &harness{
		d:   display.New(buf, r, p, s, opts...),
		buf: buf,
		out: out,
	}
}

func TestDisplay_ScreenAndMenu(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")

	require.NoError(t, h.d.Text("greeting", "Vega", compose.At(3)))
	require.NoError(t, h.d.Menu("Start"))
	require.NoError(t, h.d.Error("bad"))

	rows := h.buf.Snapshot()
	assert.Equal(t, "▓ Hello, Vega"+strings.Repeat(" ", 66)+"▓", rows[3])
	assert.Equal(t, "▓▶ Start"+strings.Repeat(" ", 69)+"◀ ▓", ansi.Strip(rows[20]))
	assert.True(t, strings.HasSuffix(ansi.Strip(rows[21]), "bad ▓"))

	h.d.ClearError()
	require.NoError(t, h.d.ClearMenu())
	require.NoError(t, h.d.Clear())

	l := h.buf.Layout()
	rows = h.buf.Snapshot()
	assert.Equal(t, l.BlankRow(), rows[3])
	assert.Equal(t, l.BlankRow(), rows[20])
	assert.Equal(t, l.BorderRow(), rows[21])
}

func TestDisplay_Clear(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")

	require.NoError(t, h.d.Screen(compose.Lines{"a", "b"}, compose.At(4)))
	require.NoError(t, h.d.Clear(4))

	rows := h.buf.Snapshot()
	assert.Equal(t, h.buf.Layout().BlankRow(), rows[4])
	assert.Equal(t, "▓ b"+strings.Repeat(" ", 76)+"▓", rows[5])

	require.ErrorIs(t, h.d.Clear(0), screen.ErrIndexOutOfBounds)
}

func TestDisplay_Prompt(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "yes\n\n")

	got, err := h.d.Prompt("Continue? ")
	require.NoError(t, err)
	assert.Equal(t, "yes", got)
	assert.True(t, strings.HasPrefix(h.out.String(), term.ClearScreen), "prompts draw a full screen first")
	assert.True(t, strings.HasSuffix(h.out.String(), "▓▓▓ ⁞⁞ Continue? "))

	require.NoError(t, h.d.PromptEnter())
	assert.True(t, strings.HasSuffix(h.out.String(), "▓▓▓ ⁞⁞ Press ENTER "))
}

func TestDisplay_Logo(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		firstLaunch bool
		wantFrames  bool
	}{
		"first launch reveals": {firstLaunch: true, wantFrames: true},
		"later launches do not": {firstLaunch: false, wantFrames: false},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			h := newHarness(t, "", display.WithLogoStyle(func(s string) string {
				return "\x1b[1m" + s + "\x1b[0m"
			}))

			require.NoError(t, h.d.Screen(compose.Text("stale"), compose.At(1)))
			require.NoError(t, h.d.Logo(t.Context(), tc.firstLaunch))

			rows := h.buf.Snapshot()
			l := h.buf.Layout()

			// Two logo lines centered in 18 content rows.
			assert.Equal(t, l.BlankRow(), rows[1])
			assert.Equal(t, "▓"+strings.Repeat(" ", 24)+`/\  /\`+strings.Repeat(" ", 48)+"▓", ansi.Strip(rows[9]))
			assert.Equal(t, "▓"+strings.Repeat(" ", 24)+`\/  \/`+strings.Repeat(" ", 48)+"▓", ansi.Strip(rows[10]))
			assert.Contains(t, rows[9], "\x1b[1m")

			assert.Equal(t, tc.wantFrames, strings.Contains(h.out.String(), term.CursorHome))
		})
	}
}

func TestDisplay_LogoCanceled(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	require.ErrorIs(t, h.d.Logo(ctx, true), context.Canceled)
	assert.Contains(t, ansi.Strip(h.buf.Snapshot()[9]), `/\  /\`)
}

func TestDisplay_MissingText(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")

	require.ErrorIs(t, h.d.Text("missing", "", compose.At(1)), text.ErrUnknownKey)
}
