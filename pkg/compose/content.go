package compose

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedContentKind indicates content that is not [Text],
	// [Lines] or [Table].
	ErrUnsupportedContentKind = errors.New("unsupported content kind")
	// ErrMalformedTableValue indicates a table entry whose values are not
	// a list of strings.
	ErrMalformedTableValue = errors.New("malformed table value")
	// ErrOutOfRange indicates content that would not fit between the top
	// border and the menu row.
	ErrOutOfRange = errors.New("content out of range")
	// ErrContentTooWide indicates a line longer than its field.
	ErrContentTooWide = errors.New("content too wide")
)

// Content is something the [Compositor] can turn into rows.
// It is implemented by [Text], [Lines] and [Table] only.
type Content interface {
	// Rows returns the number of rows the content occupies.
	Rows() int

	content()
}

// Text is a single line.
type Text string

// Lines is an ordered block of lines, one per row.
type Lines []string

// Table is an ordered list of keyed values. Each entry prints its key on
// the first row and one value per row after that.
type Table []TableEntry

// TableEntry is one key of a [Table].
type TableEntry struct {
	Key    string
	Values []string
}

func (Text) Rows() int { return 1 }

func (l Lines) Rows() int { return len(l) }

func (t Table) Rows() int {
	n := 0
	for _, e := range t {
		n += e.rows()
	}

	return n
}

func (e TableEntry) rows() int {
	return max(1, len(e.Values))
}

func (Text) content()  {}
func (Lines) content() {}
func (Table) content() {}

// Align selects how a line is placed in its row.
type Align int

const (
	// AlignLeft places text after a single space of margin.
	AlignLeft Align = iota
	// AlignCenter centers text between the borders.
	AlignCenter
	// AlignLogo places text after the layout's fixed logo margin.
	AlignLogo
)

// AllAligns lists the names accepted by [ParseAlign].
var AllAligns = []string{"left", "center", "logo"}

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignLogo:
		return "logo"
	}

	return fmt.Sprintf("Align(%d)", int(a))
}

// ParseAlign converts a name from [AllAligns] to an [Align].
func ParseAlign(s string) (Align, error) {
	switch strings.ToLower(s) {
	case "left", "":
		return AlignLeft, nil
	case "center", "centre":
		return AlignCenter, nil
	case "logo":
		return AlignLogo, nil
	}

	return 0, fmt.Errorf("unknown alignment %q, want one of %v", s, AllAligns)
}

// Placement describes where content goes.
type Placement struct {
	// Row is the index of the first row to write.
	Row int
	// Align is ignored for [Table] content, which has its own layout.
	Align Align
	// ANSIOffset is the number of non-printing characters in each line.
	// When zero, the offset is measured from the line itself.
	ANSIOffset int
}

// At is a shorthand for a left-aligned [Placement] at row.
func At(row int) Placement {
	return Placement{Row: row}
}

// Overflow selects what happens to a line that is longer than its field.
type Overflow int

const (
	// OverflowReject fails with [ErrContentTooWide].
	OverflowReject Overflow = iota
	// OverflowClip truncates the line to fit.
	OverflowClip
)

// AllOverflows lists the names accepted by [ParseOverflow].
var AllOverflows = []string{"reject", "clip"}

func (o Overflow) String() string {
	switch o {
	case OverflowReject:
		return "reject"
	case OverflowClip:
		return "clip"
	}

	return fmt.Sprintf("Overflow(%d)", int(o))
}

// ParseOverflow converts a name from [AllOverflows] to an [Overflow].
func ParseOverflow(s string) (Overflow, error) {
	switch strings.ToLower(s) {
	case "reject", "":
		return OverflowReject, nil
	case "clip":
		return OverflowClip, nil
	}

	return 0, fmt.Errorf("unknown overflow policy %q, want one of %v", s, AllOverflows)
}
