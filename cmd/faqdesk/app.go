package main

import (
	"fmt"
	"io"
	"log/slog"

	"faqdesk/internal/adapters/contact"
	"faqdesk/internal/adapters/enquiry"
	"faqdesk/internal/adapters/index"
	"faqdesk/internal/adapters/llm"
	"faqdesk/internal/adapters/loader"
	"faqdesk/internal/adapters/parser"
	"faqdesk/internal/config"
	"faqdesk/internal/domain/ports"
	"faqdesk/internal/domain/usecases"
	applog "faqdesk/internal/log"
)

// app bundles the assembled application components.
type app struct {
	kb         *usecases.KnowledgeBase
	controller *usecases.Controller
	logger     *slog.Logger
	closer     io.Closer // non-nil for stores that hold resources
}

func (a *app) Close() error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

// buildApp wires adapters into usecases from validated configuration.
func buildApp(cfg *config.Config) (*app, error) {
	logger := applog.New(applog.Config{Level: cfg.LogLevel, JSON: cfg.LogJSON})

	kb := usecases.NewKnowledgeBase(
		loader.NewTextLoader(),
		parser.NewQAParser(),
		index.NewBuilder(),
		cfg.DocumentPath,
		logger,
	)

	var llmSvc ports.LLMService
	switch cfg.Provider {
	case config.ProviderOllama:
		adapter, err := llm.NewOllamaAdapter(cfg.OllamaHost, cfg.Model)
		if err != nil {
			return nil, fmt.Errorf("creating ollama adapter: %w", err)
		}
		llmSvc = adapter
	default:
		llmSvc = llm.NewOpenAIAdapter(cfg.OpenAIBaseURL, cfg.Model, cfg.APIKey)
	}

	var store ports.EnquiryStore
	var closer io.Closer
	switch cfg.EnquiryStore {
	case config.StoreSQLite:
		sqlStore, err := enquiry.NewSQLiteStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("opening enquiry store: %w", err)
		}
		store, closer = sqlStore, sqlStore
	default:
		store = enquiry.NewCSVStore(cfg.EnquiryLog)
	}

	controller := usecases.NewController(
		kb,
		llmSvc,
		contact.NewExtractor(),
		store,
		cfg.MaxContactAttempts,
		logger,
	)

	return &app{
		kb:         kb,
		controller: controller,
		logger:     logger,
		closer:     closer,
	}, nil
}
