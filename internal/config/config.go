package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
// Every field maps 1:1 to an env var.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Storage
	DataPath       string `mapstructure:"DATA_PATH"` // bbolt database file
	PDFStoragePath string `mapstructure:"PDF_STORAGE_PATH"`

	// AI collaborator (OpenAI-compatible endpoint)
	AIAPIKey  string `mapstructure:"AI_API_KEY"`
	AIBaseURL string `mapstructure:"AI_BASE_URL"`
	AIModel   string `mapstructure:"AI_MODEL"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DATA_PATH", "tecflow.db")
	viper.SetDefault("PDF_STORAGE_PATH", "/tmp/tecflow/pdfs")
	viper.SetDefault("AI_MODEL", "gpt-4o-mini")

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// AIEnabled reports whether the AI collaborator can be constructed.
func (c *Config) AIEnabled() bool {
	return c.AIAPIKey != ""
}
