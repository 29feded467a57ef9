package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"

	"github.com/macropower/adastra/internal/cli"
	"github.com/macropower/adastra/pkg/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	shutdown, err := cli.SetupTracing(ctx)
	if err != nil {
		slog.Warn("tracing disabled", slog.Any("err", err))
	}

	info := version.Get()

	err = fang.Execute(ctx, cli.NewRootCmd(),
		fang.WithVersion(info.Version),
		fang.WithCommit(info.Revision),
		fang.WithColorSchemeFunc(cli.ColorSchemeFunc),
		fang.WithErrorHandler(cli.ErrorHandler),
	)

	stop()

	serr := shutdown(context.Background())
	if serr != nil {
		slog.Warn("flush traces", slog.Any("err", serr))
	}

	if err != nil {
		os.Exit(1)
	}
}
