// Package cmd implements the entropy-assistant command line interface.
//
// Commands:
//   - (default) / chat: interactive documentation Q&A session
//   - ask: answer a single question and exit
//   - serve: expose the assistant over HTTP
//   - version: show build and configuration information
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "entropy-assistant",
	Short: "Entropy Documentation AI Assistant",
	Long: `Entropy Documentation AI Assistant.

Ask questions about mining nothing. Get answers about everything.
Answers come strictly from the justentropy-lol/entropy-docs repository,
with citations back to the source files.

Running without a subcommand starts an interactive chat session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// No subcommand: enter chat mode
		return runChat(cmd, args)
	},
	SilenceUsage: true,
}

// Execute runs the root command. Called from main().
func Execute() error {
	return rootCmd.Execute()
}
