// Package theme derives the screen's lipgloss styles from a chroma style.
package theme

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var (
	ErrInvalidName    = errors.New("invalid theme name")
	ErrRegisterStyles = errors.New("register styles")
)

var Default = New("auto")

// Names lists the aliases accepted by [New] in addition to every
// registered chroma style name.
var Names = []string{"auto", "dark", "light"}

type Theme struct {
	// MenuStyle is used for the menu row and its decoration.
	MenuStyle lipgloss.Style
	// ErrorStyle is used for the error row.
	ErrorStyle lipgloss.Style
	// PromptStyle is used for the input prompt below the screen.
	PromptStyle lipgloss.Style
	LogoStyle   lipgloss.Style
	TitleStyle  lipgloss.Style
	SubtleStyle lipgloss.Style

	ChromaStyle *chroma.Style
	Name        string
}

func New(theme string) *Theme {
	name := getStyle(theme)
	style := newChromaStyle(name)

	var (
		menuStyle = lipgloss.NewStyle().
				Foreground(style.lipglossFromToken(chroma.GenericInserted)).
				Bold(true)

		errorStyle = lipgloss.NewStyle().
				Foreground(style.lipglossFromToken(chroma.GenericDeleted)).
				Bold(true)

		promptStyle = menuStyle

		logoStyle = lipgloss.NewStyle().
				Foreground(style.lipglossFromToken(chroma.NameTag)).
				Bold(true)

		titleStyle = lipgloss.NewStyle().
				Foreground(style.lipglossFromTokenWithFactor(chroma.NameTag, 0.3))

		subtleStyle = lipgloss.NewStyle().
				Foreground(style.lipglossFromToken(chroma.Comment))
	)

	return &Theme{
		MenuStyle:   menuStyle,
		ErrorStyle:  errorStyle,
		PromptStyle: promptStyle,
		LogoStyle:   logoStyle,
		TitleStyle:  titleStyle,
		SubtleStyle: subtleStyle,

		ChromaStyle: style.style,
		Name:        style.style.Name,
	}
}

// Register adds a chroma style that can then be selected by name.
func Register(name string, entries chroma.StyleEntries) error {
	if name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidName)
	}

	customTheme, err := chroma.NewStyle(name, entries)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRegisterStyles, err)
	}

	styles.Register(customTheme)

	return nil
}

type chromaStyle struct {
	style *chroma.Style
}

func newChromaStyle(theme string) chromaStyle {
	s := styles.Get(theme)
	if s == nil {
		// If the style is not found, fallback to the default style.
		s = styles.Fallback
	}

	return chromaStyle{
		style: s,
	}
}

func (cs chromaStyle) lipglossFromToken(c chroma.TokenType) lipgloss.Color {
	s := cs.style.Get(c)

	return lipgloss.Color(s.Colour.String()) //nolint:misspell // Chroma naming.
}

func (cs chromaStyle) lipglossFromTokenWithFactor(c chroma.TokenType, factor float64) lipgloss.Color {
	s := cs.style.Get(c)

	sc := s.Colour.BrightenOrDarken(factor) //nolint:misspell // Chroma naming.

	return lipgloss.Color(sc.String())
}

func getStyle(style string) string {
	switch style {
	case "dark":
		return "github-dark"
	case "light":
		return "github"
	case "auto", "":
		return getDefaultStyle()
	default:
		return style
	}
}

func getDefaultStyle() string {
	if !term.IsTerminal(int(os.Stdout.Fd())) { //nolint:gosec // File descriptors fit in an int.
		return "" // Fallback.
	}

	if termenv.HasDarkBackground() {
		return "github-dark"
	}

	return "github"
}
