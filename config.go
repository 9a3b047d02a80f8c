package faturai

import (
	"fmt"
	"os"
	"strings"
)

// Config holds the process-wide settings for the server binary. It is built
// once at startup and passed explicitly; nothing reads the environment after
// that.
type Config struct {
	APIKey         string
	Model          string
	Addr           string
	AllowedOrigins []string
}

// LoadConfig reads configuration from the environment. GEMINI_API_KEY is
// mandatory; everything else has a default.
func LoadConfig() (*Config, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	cfg := &Config{
		APIKey:         apiKey,
		Model:          os.Getenv("FATURAI_MODEL"),
		Addr:           os.Getenv("FATURAI_ADDR"),
		AllowedOrigins: []string{"*"},
	}
	if cfg.Model == "" {
		cfg.Model = string(DefaultModel)
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if origins := os.Getenv("FATURAI_ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
		for i := range cfg.AllowedOrigins {
			cfg.AllowedOrigins[i] = strings.TrimSpace(cfg.AllowedOrigins[i])
		}
	}
	return cfg, nil
}
