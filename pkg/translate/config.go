package translate

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds provider credentials loaded from the environment.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// LoadConfig reads provider settings from the environment, consulting a
// .env file when present.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		Model:   getEnv("PROMPTDECK_MODEL", "gpt-4o-mini"),
		BaseURL: os.Getenv("OPENAI_BASE_URL"),
	}
}

// Enabled reports whether a provider can be constructed from the config.
func (c Config) Enabled() bool {
	return c.APIKey != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
