package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/macropower/adastra/api"
	"github.com/macropower/adastra/pkg/compose"
	"github.com/macropower/adastra/pkg/watch"
)

type RenderArgs struct {
	*RootArgs

	Align string
	Menu  string
	Error string
	Row   int
	Watch bool
}

func NewRenderCmd(ra *RootArgs) *cobra.Command {
	rr := &RenderArgs{RootArgs: ra}

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Compose a YAML content file onto the screen",
		Long: `Compose a YAML content file onto the screen.

The file holds one document: a string, a list of lines, or a mapping of
keys to one or more values, which is laid out as a table.`,
		Example: `  # Draw a table starting at row 3:
  adastra render crew.yaml --row 3

  # Center a list and set the menu row:
  adastra render lines.yaml --align center --menu "Start, Quit"

  # Redraw whenever the file changes:
  adastra render crew.yaml --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, rr, args[0])
		},
	}

	f := cmd.Flags()
	f.IntVar(&rr.Row, "row", 1, "First row to write")
	f.StringVar(&rr.Align, "align", "left", fmt.Sprintf("Alignment, one of: %s", compose.AllAligns))
	f.StringVar(&rr.Menu, "menu", "", "Text for the menu row")
	f.StringVar(&rr.Error, "error", "", "Text for the error row")
	f.BoolVarP(&rr.Watch, "watch", "w", false, "Redraw when the file changes")

	must(cmd.RegisterFlagCompletionFunc("align",
		cobra.FixedCompletions(compose.AllAligns, cobra.ShellCompDirectiveNoFileComp),
	))

	return cmd
}

func runRender(cmd *cobra.Command, rr *RenderArgs, path string) error {
	align, err := compose.ParseAlign(rr.Align)
	if err != nil {
		return fmt.Errorf("invalid argument: %w", err)
	}

	s, err := newSession(cmd, rr.RootArgs)
	if err != nil {
		return err
	}
	defer s.Close()

	p := compose.Placement{Row: rr.Row, Align: align}

	draw := func(context.Context) error {
		return renderFile(s, rr, path, p)
	}

	err = draw(cmd.Context())
	if err != nil || !rr.Watch {
		return err
	}

	w, err := watch.NewFile(path)
	if err != nil {
		return err //nolint:wrapcheck // Already wrapped.
	}

	slog.Info("watching for changes", slog.String("path", w.Path()))

	err = w.Run(cmd.Context(), draw)
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err //nolint:wrapcheck // Already wrapped.
}

func renderFile(s *session, rr *RenderArgs, path string, p compose.Placement) error {
	data, err := api.ReadFile(path)
	if err != nil {
		return err //nolint:wrapcheck // Already wrapped.
	}

	slog.Debug("render content file",
		slog.String("path", path),
		slog.String("size", humanize.Bytes(uint64(len(data)))),
	)

	c, err := compose.DecodeContent(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	d := s.display
	d.Reset()

	err = d.Screen(c, p)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if rr.Menu != "" {
		err = d.Menu(rr.Menu)
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}
	}

	if rr.Error != "" {
		err = d.Error(rr.Error)
		if err != nil {
			return fmt.Errorf("error row: %w", err)
		}
	}

	return d.Draw(false)
}
