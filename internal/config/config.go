package config

import (
	"fmt"
	"log"
	"net"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	GeminiAPIKey      string   `env:"GEMINI_API_KEY,notEmpty"`
	GeminiModel       string   `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	GeminiTemperature *float32 `env:"GEMINI_TEMPERATURE"`
	Host              string   `env:"HOST" envDefault:"0.0.0.0"`
	Port              string   `env:"PORT" envDefault:"8000"`
	MaxPersonas       int      `env:"MAX_PERSONAS" envDefault:"50"`
	AllowedOrigins    []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	PublicURL         string   `env:"PUBLIC_URL"`
}

// Load reads an optional .env file into the process environment and parses
// the configuration from it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, using system environment variables")
	}
	return Parse()
}

// Parse builds the configuration from the current environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MaxPersonas < 0 {
		return nil, fmt.Errorf("parse env: MAX_PERSONAS must not be negative, got %d", cfg.MaxPersonas)
	}
	return &cfg, nil
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// BaseURL is the externally reachable address advertised to other agents.
func (c *Config) BaseURL() string {
	if c.PublicURL != "" {
		return c.PublicURL
	}
	host := c.Host
	if host == "" || host == "0.0.0.0" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, c.Port)
}

// LogSummary prints the effective configuration with the API key masked.
func (c *Config) LogSummary() {
	log.Println("--- Configuration ---")
	log.Printf("GEMINI_API_KEY=%s", mask(c.GeminiAPIKey))
	log.Printf("GEMINI_MODEL=%s", c.GeminiModel)
	if c.GeminiTemperature != nil {
		log.Printf("GEMINI_TEMPERATURE=%.2f", *c.GeminiTemperature)
	}
	log.Printf("LISTEN=%s", c.Addr())
	log.Printf("MAX_PERSONAS=%d", c.MaxPersonas)
	log.Printf("CORS_ALLOWED_ORIGINS=%v", c.AllowedOrigins)
	log.Println("---------------------")
}

// mask shows only the last 4 characters of a secret.
func mask(secret string) string {
	if len(secret) > 4 {
		return "***" + secret[len(secret)-4:]
	}
	return "***"
}
