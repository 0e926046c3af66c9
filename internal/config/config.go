// Package config provides application configuration management.
//
// Sources, highest priority first: environment variables (FAQDESK_* plus the
// OPENAI_API_KEY credential), an optional config.yaml in ~/.faqdesk or the
// working directory, then defaults. Validation is fail-fast: a missing
// knowledge document or missing credential halts startup before any
// interaction is served.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

var (
	// ErrMissingDocument indicates the knowledge document does not exist.
	ErrMissingDocument = errors.New("knowledge document not found")

	// ErrMissingAPIKey indicates the text-generation credential is absent.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrInvalidProvider indicates an unknown text-generation provider.
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrInvalidStore indicates an unknown enquiry store kind.
	ErrInvalidStore = errors.New("invalid enquiry store")

	// ErrInvalidMaxAttempts indicates a negative contact-capture cap.
	ErrInvalidMaxAttempts = errors.New("invalid max contact attempts")
)

// Text-generation provider identifiers.
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// Enquiry store kinds.
const (
	StoreCSV    = "csv"
	StoreSQLite = "sqlite"
)

// Config stores application configuration.
type Config struct {
	DocumentPath string `mapstructure:"document_path"`
	HTTPAddr     string `mapstructure:"http_addr"`

	EnquiryStore string `mapstructure:"enquiry_store"` // "csv" or "sqlite"
	EnquiryLog   string `mapstructure:"enquiry_log"`   // csv file path
	DataDir      string `mapstructure:"data_dir"`      // sqlite location

	Provider      string `mapstructure:"provider"` // "openai" or "ollama"
	Model         string `mapstructure:"model"`
	OpenAIBaseURL string `mapstructure:"openai_base_url"`
	OllamaHost    string `mapstructure:"ollama_host"`

	// MaxContactAttempts caps the contact re-prompt loop; 0 keeps
	// re-prompting indefinitely.
	MaxContactAttempts int `mapstructure:"max_contact_attempts"`

	QuickQuestions []string `mapstructure:"quick_questions"`

	LogLevel string `mapstructure:"log_level"`
	LogJSON  bool   `mapstructure:"log_json"`

	// APIKey comes from OPENAI_API_KEY only, never from the config file.
	APIKey string `mapstructure:"-"`
}

// Load reads configuration from defaults, an optional config file and the
// environment, then validates it.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".faqdesk"))
	}
	v.AddConfigPath(".")

	setDefaults(v)

	v.SetEnvPrefix("FAQDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("config file not found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	cfg.APIKey = os.Getenv("OPENAI_API_KEY")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}
	return &cfg, nil
}

// setDefaults registers sensible defaults for a quick start.
func setDefaults(v *viper.Viper) {
	v.SetDefault("document_path", "knowledge.txt")
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("enquiry_store", StoreCSV)
	v.SetDefault("enquiry_log", filepath.Join("data", "enquiries.csv"))
	v.SetDefault("data_dir", "./data")
	v.SetDefault("provider", ProviderOpenAI)
	v.SetDefault("model", "")
	v.SetDefault("openai_base_url", "")
	v.SetDefault("ollama_host", "")
	v.SetDefault("max_contact_attempts", 0)
	v.SetDefault("quick_questions", []string{
		"What services do you provide?",
		"How can I contact the team?",
		"What are the working hours?",
	})
	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)
}

// Validate checks the configuration, failing fast on anything that would
// leave the chatbot unable to serve.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("configuration is nil")
	}

	if _, err := os.Stat(c.DocumentPath); err != nil {
		return fmt.Errorf("%w: %s", ErrMissingDocument, c.DocumentPath)
	}

	switch c.Provider {
	case ProviderOpenAI:
		if c.APIKey == "" {
			return fmt.Errorf("%w: set OPENAI_API_KEY", ErrMissingAPIKey)
		}
	case ProviderOllama:
		// Local provider, no credential.
	default:
		return fmt.Errorf("%w: %q", ErrInvalidProvider, c.Provider)
	}

	switch c.EnquiryStore {
	case StoreCSV, StoreSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStore, c.EnquiryStore)
	}

	if c.MaxContactAttempts < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxAttempts, c.MaxContactAttempts)
	}
	return nil
}
