package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/macropower/adastra/api"
	"github.com/macropower/adastra/pkg/text"
)

type TextsArgs struct {
	*RootArgs

	Out   string
	Write bool
	Force bool
	Keys  bool
}

func NewTextsCmd(ra *RootArgs) *cobra.Command {
	ta := &TextsArgs{RootArgs: ra}

	cmd := &cobra.Command{
		Use:   "texts",
		Short: "Print the built-in text sheet, or write it out for editing",
		Example: `  # Write the built-in sheet, then point the config's texts field at it:
  adastra texts --write

  # List the keys of the active sheet:
  adastra texts --keys`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTexts(cmd, ta)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&ta.Write, "write", false, "Write the built-in sheet and exit")
	f.BoolVar(&ta.Force, "force", false, "With --write, back up and replace an existing file")
	f.StringVar(&ta.Out, "out", "", "Path for --write (default is texts.yaml next to the config file)")
	f.BoolVar(&ta.Keys, "keys", false, "List the keys of the active sheet")

	must(cmd.MarkFlagFilename("out", "yaml", "yml"))

	return cmd
}

func runTexts(cmd *cobra.Command, ta *TextsArgs) error {
	if ta.Write {
		path := ta.Out
		if path == "" {
			path = api.ConfigPath("texts.yaml")
		}

		return api.WriteDefaultFile(path, text.DefaultData(), ta.Force, "text sheet") //nolint:wrapcheck // Already wrapped.
	}

	res, err := ta.Config()
	if err != nil {
		return err
	}

	if !ta.Keys {
		return printYAML(cmd, string(text.DefaultData()), res.Theme.ChromaStyle.Name)
	}

	sheet, err := loadTexts(res.Config.Texts)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(sheet.Keys(), "\n"))
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
