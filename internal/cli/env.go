package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// bindEnvVars sets every flag of cmd and its subcommands from ADASTRA_<FLAG>
// (upper case, dashes as underscores) unless the flag was given on the
// command line. The variable name is added to the flag usage.
func bindEnvVars(cmd *cobra.Command) {
	bind := func(flag *pflag.Flag) { bindFlagToEnv(flag) }

	cmd.PersistentFlags().VisitAll(bind)
	cmd.LocalNonPersistentFlags().VisitAll(bind)

	for _, sub := range cmd.Commands() {
		bindEnvVars(sub)
	}
}

func bindFlagToEnv(flag *pflag.Flag) {
	name := flagToEnvName(flag.Name)

	if !strings.Contains(flag.Usage, name) {
		flag.Usage = fmt.Sprintf("%s ($%s)", flag.Usage, name)
	}

	if flag.Changed {
		return
	}

	v, ok := os.LookupEnv(name)
	if !ok {
		return
	}

	err := flag.Value.Set(v)
	if err != nil {
		slog.Error("set flag from environment",
			slog.String("flag", flag.Name),
			slog.String("env", name),
			slog.String("value", v),
			slog.Any("error", err),
		)
	}
}

func flagToEnvName(flagName string) string {
	return strings.ToUpper(cmdName + "_" + strings.ReplaceAll(flagName, "-", "_"))
}
