// Package cli provides the command-line interfaces of the LPB tools.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"lpbcli/internal/app"
	"lpbcli/internal/config"
	lpberrors "lpbcli/internal/errors"
	"lpbcli/internal/infrastructure"
	"lpbcli/pkg/contracts"
)

// Execute runs cmd and returns the process exit code. Errors are printed
// to the command's error stream as "Error: ...".
func Execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return 1
	}
	return 0
}

// newCommand applies the settings shared by every tool
func newCommand(use, short, long string) *cobra.Command {
	return &cobra.Command{
		Use:           use,
		Short:         short,
		Long:          long,
		Version:       contracts.GetFullVersionString(),
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
}

// bootstrap loads configuration and the process logger. The returned
// cleanup closes the log file and must be called once the run ends.
func bootstrap(configFile string) (*app.Application, func(), error) {
	const op = "cli.bootstrap"

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, lpberrors.NewConfigError(op, "failed to load configuration", err)
	}

	logger, closeLog, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, nil, lpberrors.NewConfigError(op, "failed to initialize logger", err)
	}
	slog.SetDefault(logger)

	cleanup := func() {
		if err := closeLog(); err != nil {
			slog.Warn("Failed to close log file", slog.String("error", err.Error()))
		}
	}
	return app.New(cfg, logger), cleanup, nil
}
