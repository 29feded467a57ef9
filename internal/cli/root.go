// Package cli implements the adastra command line.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/macropower/adastra/api/v1beta1/configs"
	"github.com/macropower/adastra/pkg/config"
	"github.com/macropower/adastra/pkg/log"
)

const (
	cmdName = "adastra"
	cmdDesc = `Compose and draw fixed-size 80 column terminal screens.`
)

// RootArgs are the flags shared by every command.
type RootArgs struct {
	LogLevel   string
	LogFormat  string
	ConfigPath string

	loaded *config.Result
}

func NewRootArgs() *RootArgs {
	return &RootArgs{}
}

func (ra *RootArgs) AddFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&ra.LogLevel, "log-level", "info", fmt.Sprintf("Log level, one of: %s", log.Levels()))
	pf.StringVar(&ra.LogFormat, "log-format", "text", fmt.Sprintf("Log format, one of: %s", log.Formats()))
	pf.StringVar(&ra.ConfigPath, "config", "", "Path to the adastra configuration file")

	must(cmd.RegisterFlagCompletionFunc("log-format",
		cobra.FixedCompletions(log.Formats(), cobra.ShellCompDirectiveNoFileComp),
	))
	must(cmd.RegisterFlagCompletionFunc("log-level",
		cobra.FixedCompletions(log.Levels(), cobra.ShellCompDirectiveNoFileComp),
	))
	must(cmd.MarkPersistentFlagFilename("config", "yaml", "yml"))
}

// Config returns the active configuration, loading it on first use.
func (ra *RootArgs) Config() (*config.Result, error) {
	if ra.loaded != nil {
		return ra.loaded, nil
	}

	path := ra.ConfigPath
	if path == "" {
		path = configs.GetPath()
	}

	res, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}

	ra.loaded = res

	return res, nil
}

func NewRootCmd() *cobra.Command {
	args := NewRootArgs()

	cmd := &cobra.Command{
		Use:               cmdName,
		Short:             cmdDesc,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging(args),
	}

	args.AddFlags(cmd)

	cmd.AddCommand(
		NewSplashCmd(args),
		NewRenderCmd(args),
		NewDemoCmd(args),
		NewConfigCmd(args),
		NewTextsCmd(args),
	)

	bindEnvVars(cmd)

	return cmd
}

func setupLogging(ra *RootArgs) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		h, err := log.NewHandler(cmd.ErrOrStderr(), log.Options{
			Level:  ra.LogLevel,
			Format: ra.LogFormat,
		})
		if err != nil {
			return fmt.Errorf("create log handler: %w", err)
		}

		slog.SetDefault(slog.New(h))

		return nil
	}
}
