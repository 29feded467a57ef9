package reveal

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// cell is one printable grapheme of a row together with the escape
// sequences that precede it.
type cell struct {
	prefix string
	glyph  string
	width  int
}

// line is a row split into cells. The tail holds escape sequences after
// the last printable grapheme.
type line struct {
	cells []cell
	tail  string
}

func (l line) String() string {
	var sb strings.Builder
	for _, c := range l.cells {
		sb.WriteString(c.prefix)
		sb.WriteString(c.glyph)
	}

	sb.WriteString(l.tail)

	return sb.String()
}

func splitLine(s string) line {
	p := ansi.GetParser()
	defer ansi.PutParser(p)

	var (
		l       line
		pending strings.Builder
		state   byte
	)

	for len(s) > 0 {
		seq, width, n, newState := ansi.DecodeSequence(s, state, p)
		if n <= 0 {
			// Not expected from the decoder; consume one byte so the
			// loop always terminates.
			n = 1
			seq = s[:1]
		}

		state = newState
		s = s[n:]

		if width == 0 {
			pending.WriteString(seq)
			continue
		}

		l.cells = append(l.cells, cell{
			prefix: pending.String(),
			glyph:  seq,
			width:  width,
		})
		pending.Reset()
	}

	l.tail = pending.String()

	return l
}

type coord struct {
	row, col int
}

// grids holds the target and working copies of the screen.
type grids struct {
	target  []line
	working []line
	pool    []coord
}

// newGrids splits rows into the target grid and derives a working grid in
// which every interior cell shows the fill glyph. The outer rows and the
// first and last cell of each row are the frame and are copied as-is.
func newGrids(rows []string, fill string) *grids {
	g := &grids{
		target:  make([]line, len(rows)),
		working: make([]line, len(rows)),
	}

	for r, row := range rows {
		t := splitLine(row)
		w := line{
			cells: make([]cell, len(t.cells)),
			tail:  t.tail,
		}

		copy(w.cells, t.cells)

		g.target[r] = t
		g.working[r] = w

		if r == 0 || r == len(rows)-1 {
			continue
		}

		for c := 1; c < len(t.cells)-1; c++ {
			w.cells[c].glyph = strings.Repeat(fill, t.cells[c].width)
			g.pool = append(g.pool, coord{row: r, col: c})
		}
	}

	return g
}

func (g *grids) reveal(p coord) {
	g.working[p.row].cells[p.col] = g.target[p.row].cells[p.col]
}

func (g *grids) rows() []string {
	out := make([]string, len(g.working))
	for i, l := range g.working {
		out[i] = l.String()
	}

	return out
}

func (g *grids) done() bool {
	return len(g.pool) == 0
}
