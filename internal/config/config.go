package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ErrMissingAPIKey is returned by Validate when no model credential is
// configured. Processing must halt before any network call is attempted.
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is not set")

type Config struct {
	ListenAddr  string
	DBPath      string
	OpenAIKey   string
	OpenAIBase  string
	Model       string
	MaxRetries  int
	Temperature float64
	LogLevel    string
	LogFile     string
}

// Load reads configuration from the environment, after loading a local .env
// file if one exists. Missing keys fall back to defaults; the API key has no
// default and is checked by Validate.
func Load() *Config {
	// Best effort: a missing .env file is not an error.
	_ = godotenv.Load()

	return &Config{
		ListenAddr:  getEnv("LISTEN_ADDR", ":8080"),
		DBPath:      getEnv("DB_PATH", "/data/lunchlens.db"),
		OpenAIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIBase:  getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		MaxRetries:  getEnvInt("MODEL_MAX_RETRIES", 2),
		Temperature: getEnvFloat("MODEL_TEMPERATURE", 0.3),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFile:     getEnv("LOG_FILE", ""),
	}
}

// Validate checks the parts of the configuration without usable defaults.
func (c *Config) Validate() error {
	if c.OpenAIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
