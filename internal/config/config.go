package config

import (
	"fmt"
	"os"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config holds all application configuration.
type Config struct {
	Port     int    `yaml:"port" env:"REPHRASE_PORT" validate:"min=1,max=65535"`
	Provider string `yaml:"provider" env:"REPHRASE_PROVIDER" validate:"oneof=openai gemini claude"`

	OpenAIAPIKey  string `yaml:"openai_api_key" env:"REPHRASE_OPENAI_API_KEY"`
	OpenAIBaseURL string `yaml:"openai_base_url" env:"REPHRASE_OPENAI_BASE_URL" validate:"omitempty,url"`
	GeminiAPIKey  string `yaml:"gemini_api_key" env:"REPHRASE_GEMINI_API_KEY"`
	ClaudeAPIKey  string `yaml:"claude_api_key" env:"REPHRASE_CLAUDE_API_KEY"`

	ClassifierModel       string  `yaml:"classifier_model" env:"REPHRASE_CLASSIFIER_MODEL" validate:"required"`
	ClassifierTemperature float32 `yaml:"classifier_temperature" env:"REPHRASE_CLASSIFIER_TEMPERATURE" validate:"min=0,max=2"`
	ClassifierMaxTokens   int     `yaml:"classifier_max_tokens" env:"REPHRASE_CLASSIFIER_MAX_TOKENS" validate:"min=1"`
	RephraseModel         string  `yaml:"rephrase_model" env:"REPHRASE_REPHRASE_MODEL" validate:"required"`
	RephraseTemperature   float32 `yaml:"rephrase_temperature" env:"REPHRASE_REPHRASE_TEMPERATURE" validate:"min=0,max=2"`
	RephraseMaxTokens     int     `yaml:"rephrase_max_tokens" env:"REPHRASE_REPHRASE_MAX_TOKENS" validate:"min=1"`

	CallTimeout time.Duration `yaml:"call_timeout" env:"REPHRASE_CALL_TIMEOUT" validate:"gt=0"`
	UsageDB     string        `yaml:"usage_db" env:"REPHRASE_USAGE_DB"`
	APIKey      string        `yaml:"api_key" env:"REPHRASE_API_KEY"`
	LogLevel    string        `yaml:"log_level" env:"REPHRASE_LOG_LEVEL" validate:"omitempty,oneof=debug info warn error"`
}

// stageModels are the classifier and rephrase model ids used when none is
// configured.
type stageModels struct {
	classifier string
	rephrase   string
}

var defaultModels = map[string]stageModels{
	"openai": {classifier: "gpt-3.5-turbo", rephrase: "gpt-4o-mini"},
	"gemini": {classifier: "gemini-2.0-flash-lite", rephrase: "gemini-2.0-flash"},
	"claude": {classifier: "claude-3-5-haiku-latest", rephrase: "claude-3-5-haiku-latest"},
}

func defaults() Config {
	return Config{
		Port:                  8000,
		Provider:              "openai",
		ClassifierTemperature: 0,
		ClassifierMaxTokens:   2,
		RephraseTemperature:   0.5,
		RephraseMaxTokens:     120,
		CallTimeout:           30 * time.Second,
		UsageDB:               "usage.db",
		LogLevel:              "info",
	}
}

// Load loads configuration from a YAML file (if path is non-empty), then
// applies REPHRASE_* environment overrides. Provider credentials fall back
// to the vendor variables (OPENAI_API_KEY, GEMINI_API_KEY, ANTHROPIC_API_KEY)
// when not set otherwise, and unset models get the selected provider's
// defaults. The result is validated.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: environment: %w", err)
	}

	fallback(&cfg.OpenAIAPIKey, "OPENAI_API_KEY")
	fallback(&cfg.GeminiAPIKey, "GEMINI_API_KEY")
	fallback(&cfg.ClaudeAPIKey, "ANTHROPIC_API_KEY")

	// Model defaults depend on the provider, which is only final here.
	if m, ok := defaultModels[cfg.Provider]; ok {
		if cfg.ClassifierModel == "" {
			cfg.ClassifierModel = m.classifier
		}
		if cfg.RephraseModel == "" {
			cfg.RephraseModel = m.rephrase
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}

func fallback(dst *string, key string) {
	if *dst != "" {
		return
	}
	*dst = os.Getenv(key)
}
