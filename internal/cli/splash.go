package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/macropower/adastra/pkg/compose"
	"github.com/macropower/adastra/pkg/text"
)

// KeySubtitle is the text shown under the splash logo.
const KeySubtitle = "subtitle"

type SplashArgs struct {
	*RootArgs

	NoReveal bool
}

func NewSplashCmd(ra *RootArgs) *cobra.Command {
	sa := &SplashArgs{RootArgs: ra}

	cmd := &cobra.Command{
		Use:   "splash",
		Short: "Show the splash logo and wait for ENTER",
		Example: `  # Reveal the logo, as on a first launch:
  adastra splash

  # Show the finished logo right away:
  adastra splash --no-reveal`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSplash(cmd, sa)
		},
	}

	cmd.Flags().BoolVar(&sa.NoReveal, "no-reveal", false, "Skip the reveal animation")

	return cmd
}

func runSplash(cmd *cobra.Command, sa *SplashArgs) error {
	s, err := newSession(cmd, sa.RootArgs)
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := sa.Config()
	if err != nil {
		return err
	}

	firstLaunch := res.Config.Reveal.IsEnabled() && !sa.NoReveal && s.tty

	err = showSplash(cmd.Context(), s, firstLaunch)
	if err != nil {
		return err
	}

	if !s.tty {
		return s.display.Draw(false)
	}

	err = s.display.PromptEnter()
	if errors.Is(err, io.EOF) {
		return nil
	}

	return err
}

// showSplash writes the logo and the subtitle. An interrupted reveal is not
// an error; the logo is complete either way.
func showSplash(ctx context.Context, s *session, firstLaunch bool) error {
	err := s.display.Logo(ctx, firstLaunch)
	if errors.Is(err, context.Canceled) {
		slog.Debug("reveal interrupted")
	} else if err != nil {
		return err
	}

	row := max(1, s.buf.Layout().MenuRow-3)

	err = s.display.Text(KeySubtitle, "", compose.Placement{Row: row, Align: compose.AlignCenter})
	if errors.Is(err, text.ErrUnknownKey) {
		return nil
	}

	return err
}
