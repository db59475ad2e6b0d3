package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pogomcp/internal/app"
)

type rootOptions struct {
	configPath string
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "pogomcpd",
		Short:         "Pokemon GO metadata MCP server backed by collector snapshots",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to YAML config file")

	root.AddCommand(
		newServeCmd(opts),
		newCheckCmd(opts),
	)

	return root
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().String("dataDir", "", "directory holding collector snapshot files")
	cmd.Flags().Duration("freshnessWindow", 0, "how long a loaded snapshot stays fresh")
	cmd.Flags().String("logLevel", "", "log level: debug, info, warn, error")
}

// resolve loads the config with the command's flags layered on top, then
// builds the logger the rest of the process uses.
func resolve(cmd *cobra.Command, opts *rootOptions) (app.Config, *zap.Logger, error) {
	cfg, err := app.LoadConfig(opts.configPath, cmd.Flags())
	if err != nil {
		return app.Config{}, nil, err
	}
	logger, err := app.NewLogger(cfg.LogLevel)
	if err != nil {
		return app.Config{}, nil, err
	}
	return cfg, logger, nil
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP tools over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := resolve(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, cancel := signalAwareContext(cmd.Context())
			defer cancel()

			return app.New(logger).Serve(ctx, cfg)
		},
	}
	addConfigFlags(cmd)
	cmd.Flags().Bool("watchDataDir", true, "reload categories when snapshot files change")
	return cmd
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Load every snapshot file once and report what it holds",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := resolve(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			return app.New(logger).Check(cmd.Context(), cfg)
		},
	}
	addConfigFlags(cmd)
	return cmd
}

func signalAwareContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
