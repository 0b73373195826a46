package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-formbind/internal/config"
)

// app carries what PersistentPreRunE resolves for every subcommand.
type app struct {
	verbose    bool
	configPath string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "formbind",
		Short: "Bind HTML form parameters with explicit null and empty semantics",
		Long: `formbind serves and exercises form parameter binding.

An absent field binds to null, a field sent without a value is rejected, and
an empty value is only accepted by string parameters.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger == nil {
				zapCfg := zap.NewProductionConfig()
				if a.verbose {
					zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
				}
				logger, err := zapCfg.Build()
				if err != nil {
					return fmt.Errorf("failed to initialize logger: %w", err)
				}
				a.logger = logger
			}

			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "formbind.yaml", "configuration file")

	root.AddCommand(
		newServeCmd(a),
		newManifestCmd(a),
		newLintCmd(a),
		newSubmitCmd(a, nil),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
