package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"faqdesk/internal/adapters/filewatcher"
	"faqdesk/internal/config"
	"faqdesk/internal/domain/usecases"
	httpserver "faqdesk/internal/infrastructure/http"
	"faqdesk/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the chatbot HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	a, err := buildApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Build the index eagerly so an unreadable or empty document surfaces
	// before the first request.
	if _, err := a.kb.Index(ctx); err != nil {
		return fmt.Errorf("building knowledge index: %w", err)
	}

	watcher, err := filewatcher.NewFSNotifyWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Stop()
	if err := a.kb.WatchDocument(ctx, watcher); err != nil {
		return fmt.Errorf("watching document: %w", err)
	}

	sessions := session.NewStore(usecases.Greeting)
	srv := httpserver.NewServer(
		a.controller,
		a.kb,
		sessions,
		cfg.QuickQuestions,
		cfg.HTTPAddr,
		a.logger,
	)
	return srv.Start(ctx)
}
