package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askPlain bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question about the Entropy documentation",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askPlain, "plain", false, "print the raw answer without terminal styling")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}

	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return fmt.Errorf("question cannot be empty")
	}

	answer := a.bot.Answer(context.Background(), question)

	if askPlain {
		fmt.Println(answer)
		return nil
	}
	fmt.Println(newMarkdownRenderer(80).Render(answer))
	return nil
}
