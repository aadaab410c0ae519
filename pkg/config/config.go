package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all folio configuration.
type Config struct {
	Listen    string          `yaml:"listen"`
	DBPath    string          `yaml:"db_path"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	Assistant AssistantConfig `yaml:"assistant"`
	Cache     CacheConfig     `yaml:"cache"`
	Contact   ContactConfig   `yaml:"contact"`
}

// GeminiConfig configures the Gemini backend provider.
// APIKey and PreferredModel are normally supplied through ${GEMINI_API_KEY}
// and ${GEMINI_MODEL} expansion in the config file.
type GeminiConfig struct {
	APIKey         string        `yaml:"api_key"`
	PreferredModel string        `yaml:"preferred_model"`
	CallTimeout    time.Duration `yaml:"call_timeout"`
}

// AssistantConfig controls the conversation dispatcher.
type AssistantConfig struct {
	SystemInstruction  []string      `yaml:"system_instruction"`
	FallbackModels     []string      `yaml:"fallback_models"`
	QuickResponsesPath string        `yaml:"quick_responses_path"`
	HistoryLimit       int           `yaml:"history_limit"`
	ModelStackTTL      time.Duration `yaml:"model_stack_ttl"`
	RetryBackoff       time.Duration `yaml:"retry_backoff"`
	OfflineMessage     string        `yaml:"offline_message"`
}

// CacheConfig controls the durable response cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// ContactConfig holds contact metadata surfaced in the system instruction.
type ContactConfig struct {
	Email string `yaml:"email"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Listen: ":8080",
		DBPath: "folio.db",
		Gemini: GeminiConfig{
			CallTimeout: 30 * time.Second,
		},
		Assistant: AssistantConfig{
			SystemInstruction: []string{
				"You are a virtual assistant for a personal portfolio site.",
				"Answer using the following context:",
				"{context_data}",
			},
			HistoryLimit:   10,
			ModelStackTTL:  6 * time.Hour,
			RetryBackoff:   300 * time.Millisecond,
			OfflineMessage: "I am currently offline.",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
	}
}

// Load reads a YAML config file and expands environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}
