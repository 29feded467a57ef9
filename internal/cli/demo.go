package cli

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/macropower/adastra/pkg/compose"
)

// Text keys used by the demo.
const (
	KeyMenuMain     = "menu_main"
	KeyMenuMainHint = "menu_main_hint"
	KeyErrInvalid   = "error_invalid"
	KeyWelcome      = "welcome"
	KeyIntro        = "intro"
	KeyCrew         = "crew"
)

const (
	defaultName = "Commander"
	// Longest input echoed back on the error row.
	maxEcho = 24
)

type DemoArgs struct {
	*RootArgs

	NoReveal bool
}

func NewDemoCmd(ra *RootArgs) *cobra.Command {
	da := &DemoArgs{RootArgs: ra}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a small menu loop on the screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd, da)
		},
	}

	cmd.Flags().BoolVar(&da.NoReveal, "no-reveal", false, "Skip the reveal animation")

	return cmd
}

func runDemo(cmd *cobra.Command, da *DemoArgs) error {
	s, err := newSession(cmd, da.RootArgs)
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := da.Config()
	if err != nil {
		return err
	}

	items, err := s.texts.List(KeyMenuMain)
	if err != nil {
		return err //nolint:wrapcheck // Already descriptive.
	}

	hint, err := s.texts.String(KeyMenuMainHint, "")
	if err != nil {
		return err //nolint:wrapcheck // Already descriptive.
	}

	d := s.display

	err = showSplash(cmd.Context(), s, res.Config.Reveal.IsEnabled() && !da.NoReveal && s.tty)
	if err != nil {
		return err
	}

	err = d.Menu(hint)
	if err != nil {
		return err //nolint:wrapcheck // Already descriptive.
	}

	for {
		in, err := d.Prompt("")
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err //nolint:wrapcheck // Already descriptive.
		}

		d.ClearError()

		switch choose(in, items) {
		case 0:
			err = demoStart(s)
		case 1:
			err = demoCrew(s)
		case 2:
			return nil
		default:
			err = demoInvalid(s, in)
		}

		if err != nil {
			return err
		}
	}
}

func demoStart(s *session) error {
	d := s.display

	name, err := d.Prompt("Name? ")
	if err != nil && !errors.Is(err, io.EOF) {
		return err //nolint:wrapcheck // Already descriptive.
	}

	if name == "" {
		name = defaultName
	}

	err = d.Clear()
	if err != nil {
		return err //nolint:wrapcheck // Already descriptive.
	}

	err = d.Text(KeyWelcome, name, compose.At(2))
	if err != nil {
		return err //nolint:wrapcheck // Already descriptive.
	}

	return d.Text(KeyIntro, "", compose.At(4)) //nolint:wrapcheck // Already descriptive.
}

func demoCrew(s *session) error {
	err := s.display.Clear()
	if err != nil {
		return err //nolint:wrapcheck // Already descriptive.
	}

	return s.display.Text(KeyCrew, "", compose.At(2)) //nolint:wrapcheck // Already descriptive.
}

func demoInvalid(s *session, in string) error {
	msg, err := s.texts.String(KeyErrInvalid, ansi.Truncate(in, maxEcho, "..."))
	if err != nil {
		return err //nolint:wrapcheck // Already descriptive.
	}

	return s.display.Error(msg) //nolint:wrapcheck // Already descriptive.
}

// choose returns the index of the item selected by in, either by its
// 1-based number or its case-insensitive name, or -1.
func choose(in string, items []string) int {
	if n, err := strconv.Atoi(in); err == nil {
		if n >= 1 && n <= len(items) {
			return n - 1
		}

		return -1
	}

	for i, item := range items {
		if strings.EqualFold(in, item) {
			return i
		}
	}

	return -1
}
