package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/justentropy-lol/entropy-assistant/api"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve [addr]",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP REST API server for the documentation assistant.

The address can be given as a positional argument or via --addr:

  entropy-assistant serve :8080
  entropy-assistant serve --addr 0.0.0.0:3400`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", api.DefaultAddr, "server address (host:port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := serveAddr
	if len(args) > 0 {
		addr = args[0]
	}
	if err := validateAddr(addr); err != nil {
		return fmt.Errorf("invalid address %q: %w", addr, err)
	}

	a, err := setup()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a.logger.Info("starting HTTP API server",
		"version", AppVersion,
		"repo", a.cfg.RepoOwner+"/"+a.cfg.RepoName,
	)

	server := api.NewServer(a.bot, a.store, a.logger)
	return server.Run(ctx, addr)
}
