package config

import "os"

// Config carries the process configuration, read from the environment.
type Config struct {
	// Port the HTTP server listens on.
	Port string
	// GeminiAPIKey enables the AI classification fallback when set.
	GeminiAPIKey string
	// GeminiModel is the model used for classification.
	GeminiModel string
}

const defaultGeminiModel = "gemini-2.0-flash"

// Load reads the configuration from environment variables, applying
// defaults where a variable is unset.
func Load() Config {
	return Config{
		Port:         envOr("PORT", "8080"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  envOr("GEMINI_MODEL", defaultGeminiModel),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
