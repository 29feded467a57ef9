package compose_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/adastra/pkg/compose"
	"github.com/macropower/adastra/pkg/screen"
)

func TestMenuLine_SetMenu(t *testing.T) {
	t.Parallel()

	buf := screen.MustNew(screen.DefaultLayout())
	m := compose.NewMenuLine(buf, compose.WithMenuStyle(lipgloss.NewStyle().Bold(true)))

	require.NoError(t, m.SetMenu("Start"))

	r := row(t, buf, 20)
	assert.Equal(t, 80, ansi.StringWidth(r))
	assert.Equal(t, "▓▶ Start"+sp(69)+"◀ ▓", ansi.Strip(r))
	assert.True(t, strings.HasPrefix(r, "▓") && strings.HasSuffix(r, "▓"), "border glyphs are never styled")
}

func TestMenuLine_Decoration(t *testing.T) {
	t.Parallel()

	buf := screen.MustNew(screen.DefaultLayout())
	m := compose.NewMenuLine(buf, compose.WithDecoration("[", "]"))

	require.NoError(t, m.SetMenu("Quit"))
	assert.Equal(t, "▓[Quit"+sp(72)+"]▓", row(t, buf, 20))
}

func TestMenuLine_SetError(t *testing.T) {
	t.Parallel()

	buf := screen.MustNew(screen.DefaultLayout())
	m := compose.NewMenuLine(buf)

	require.NoError(t, m.SetError("bad"))
	assert.Equal(t, "▓ "+sp(73)+"bad ▓", row(t, buf, 21))

	m.ClearError()
	assert.Equal(t, strings.Repeat("▓", 80), row(t, buf, 21))
}

func TestMenuLine_ClearMenu(t *testing.T) {
	t.Parallel()

	l := screen.DefaultLayout()
	buf := screen.MustNew(l)
	m := compose.NewMenuLine(buf)

	require.NoError(t, m.SetMenu("Start"))
	require.NoError(t, m.ClearMenu())
	assert.Equal(t, l.BlankRow(), row(t, buf, l.MenuRow))
}

func TestMenuLine_Overflow(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("m", 90)

	buf := screen.MustNew(screen.DefaultLayout())
	before := buf.Snapshot()

	strict := compose.NewMenuLine(buf)
	require.ErrorIs(t, strict.SetMenu(long), compose.ErrContentTooWide)
	require.ErrorIs(t, strict.SetError(long), compose.ErrContentTooWide)
	assert.Equal(t, before, buf.Snapshot())

	clip := compose.NewMenuLine(buf, compose.WithMenuOverflow(compose.OverflowClip))
	require.NoError(t, clip.SetMenu(long))
	require.NoError(t, clip.SetError(long))
	assert.Equal(t, "▓▶ "+strings.Repeat("m", 74)+"◀ ▓", row(t, buf, 20))
	assert.Equal(t, "▓ "+strings.Repeat("m", 76)+" ▓", row(t, buf, 21))
}
