package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"faqdesk/internal/config"
	httpserver "faqdesk/internal/infrastructure/http"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Look up a question directly against the knowledge document",
	Long: `Ask runs the similarity lookup once and prints the stored answer, without
the conversation or contact-capture flow.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAsk(cmd.Context(), strings.Join(args, " "))
	},
}

func runAsk(ctx context.Context, question string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	a, err := buildApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	m, err := a.kb.QuickAnswer(ctx, question)
	if err != nil {
		return fmt.Errorf("looking up answer: %w", err)
	}

	if !m.Hit {
		fmt.Println(httpserver.NotFoundNotice)
		return nil
	}
	fmt.Println(m.Answer)
	return nil
}
