package cli

import (
	"fmt"
	"log/slog"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/spf13/cobra"

	"github.com/macropower/adastra/api/v1beta1/configs"
)

type ConfigArgs struct {
	*RootArgs

	Write bool
	Force bool
}

func NewConfigCmd(ra *RootArgs) *cobra.Command {
	ca := &ConfigArgs{RootArgs: ra}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the active configuration, or write the default one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd, ca)
		},
	}

	cmd.Flags().BoolVar(&ca.Write, "write", false, "Write the default configuration file and exit")
	cmd.Flags().BoolVar(&ca.Force, "force", false, "With --write, back up and replace an existing file")

	return cmd
}

func runConfig(cmd *cobra.Command, ca *ConfigArgs) error {
	if ca.Write {
		path := ca.ConfigPath
		if path == "" {
			path = configs.GetPath()
		}

		return configs.WriteDefault(path, ca.Force) //nolint:wrapcheck // Already wrapped.
	}

	res, err := ca.Config()
	if err != nil {
		return err
	}

	slog.Debug("active configuration", slog.String("path", res.Path))

	b, err := res.Config.MarshalYAML()
	if err != nil {
		return err //nolint:wrapcheck // Already wrapped.
	}

	return printYAML(cmd, string(b), res.Theme.ChromaStyle.Name)
}

// printYAML writes src to stdout, highlighted when stdout is a terminal.
func printYAML(cmd *cobra.Command, src, style string) error {
	out := cmd.OutOrStdout()

	if isTerminal(out) {
		err := quick.Highlight(out, src, "yaml", "terminal256", style)
		if err == nil {
			return nil
		}

		slog.Debug("highlight yaml", slog.Any("err", err))
	}

	_, err := fmt.Fprint(out, src)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
