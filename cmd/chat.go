package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/justentropy-lol/entropy-assistant/internal/assistant"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive documentation Q&A session",
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

const chatBanner = `ENTROPY Documentation AI Assistant

Generate entropy. Earn $ENT. You know it.
Ask questions about mining nothing. Get answers about everything.

Commands: /questions  show popular questions
          /clear      clear conversation history
          /quit       exit
`

func runChat(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}

	return chatLoop(context.Background(), a, os.Stdin, os.Stdout)
}

// chatLoop runs the read-ask-print loop. Split from runChat so tests can
// drive it with a scripted reader.
func chatLoop(ctx context.Context, a *app, in io.Reader, out io.Writer) error {
	fmt.Fprint(out, chatBanner, "\n")

	renderer := newMarkdownRenderer(100)
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/quit" || line == "/exit":
			fmt.Fprintln(out, "It's. Just. Entropy. LOL.")
			return nil
		case line == "/clear":
			a.bot.History().Clear()
			fmt.Fprintln(out, "Conversation history cleared.")
			continue
		case line == "/questions":
			printSuggestedQuestions(out)
			continue
		}

		answer := a.bot.Answer(ctx, line)
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderer.Render(answer))
		fmt.Fprintln(out)
	}
}

func printSuggestedQuestions(out io.Writer) {
	fmt.Fprintln(out, "Popular questions:")
	for i, q := range assistant.SuggestedQuestions() {
		fmt.Fprintf(out, "  %d. %s\n", i+1, q)
	}
}
