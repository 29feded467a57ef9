package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"

	"github.com/macropower/adastra/pkg/yaml"
)

// ErrorHandler prints err below fang's error header, followed by a hint:
// --help for usage errors, or how to restore the default configuration
// when the configuration file is invalid.
func ErrorHandler(w io.Writer, styles fang.Styles, err error) {
	mustN(fmt.Fprintln(w, styles.ErrorHeader.String()))
	mustN(fmt.Fprintln(w, lipgloss.NewStyle().MarginLeft(2).Render(err.Error())))
	mustN(fmt.Fprintln(w))

	var yerr *yaml.Error

	switch {
	case isUsageError(err):
		printHint(w, styles, "Try", "--help", "for usage.")
	case errors.As(err, &yerr):
		printHint(w, styles, "Run", cmdName+" config --write --force", "to restore the default configuration.")
	}
}

func printHint(w io.Writer, styles fang.Styles, verb, flag, rest string) {
	text := styles.ErrorText.UnsetWidth()

	mustN(fmt.Fprintln(w, lipgloss.JoinHorizontal(
		lipgloss.Left,
		text.Render(verb),
		styles.Program.Flag.Render(flag),
		text.UnsetMargins().UnsetTransform().PaddingLeft(1).Render(rest),
	)))
	mustN(fmt.Fprintln(w))
}

// Cobra does not type its usage errors, so match on the message.
// See: https://github.com/spf13/cobra/pull/2266
func isUsageError(err error) bool {
	s := err.Error()
	for _, prefix := range []string{
		"flag needs an argument:",
		"unknown flag:",
		"unknown shorthand flag:",
		"unknown command",
		"invalid argument",
		"accepts ",
		"requires ",
	} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}

	return false
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func mustN(_ int, err error) {
	must(err)
}
