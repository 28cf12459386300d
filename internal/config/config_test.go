package config

import (
	"os"
	"strings"
	"testing"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test_gemini")
	for _, k := range []string{"GEMINI_MODEL", "GEMINI_TEMPERATURE", "HOST", "PORT", "MAX_PERSONAS", "CORS_ALLOWED_ORIGINS", "PUBLIC_URL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.GeminiAPIKey != "test_gemini" {
		t.Errorf("Expected GeminiAPIKey 'test_gemini', got '%s'", cfg.GeminiAPIKey)
	}
	if cfg.GeminiModel != "gemini-2.5-flash" {
		t.Errorf("Expected GeminiModel 'gemini-2.5-flash', got '%s'", cfg.GeminiModel)
	}
	if cfg.GeminiTemperature != nil {
		t.Errorf("Expected GeminiTemperature unset, got %f", *cfg.GeminiTemperature)
	}
	if cfg.Addr() != "0.0.0.0:8000" {
		t.Errorf("Expected Addr '0.0.0.0:8000', got '%s'", cfg.Addr())
	}
	if cfg.MaxPersonas != 50 {
		t.Errorf("Expected MaxPersonas 50, got %d", cfg.MaxPersonas)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("Expected AllowedOrigins [*], got %v", cfg.AllowedOrigins)
	}
	if cfg.BaseURL() != "http://localhost:8000" {
		t.Errorf("Expected BaseURL 'http://localhost:8000', got '%s'", cfg.BaseURL())
	}
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test_gemini")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("GEMINI_TEMPERATURE", "0.4")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_PERSONAS", "0")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,https://focus.example.com")
	t.Setenv("PUBLIC_URL", "https://focus.example.com")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.GeminiModel != "gemini-2.5-pro" {
		t.Errorf("Expected GeminiModel 'gemini-2.5-pro', got '%s'", cfg.GeminiModel)
	}
	if cfg.GeminiTemperature == nil || *cfg.GeminiTemperature < 0.39 || *cfg.GeminiTemperature > 0.41 {
		t.Errorf("Expected GeminiTemperature 0.4, got %v", cfg.GeminiTemperature)
	}
	if cfg.Addr() != "127.0.0.1:9090" {
		t.Errorf("Expected Addr '127.0.0.1:9090', got '%s'", cfg.Addr())
	}
	if cfg.MaxPersonas != 0 {
		t.Errorf("Expected MaxPersonas 0, got %d", cfg.MaxPersonas)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://focus.example.com" {
		t.Errorf("Unexpected AllowedOrigins %v", cfg.AllowedOrigins)
	}
	if cfg.BaseURL() != "https://focus.example.com" {
		t.Errorf("Expected BaseURL from PUBLIC_URL, got '%s'", cfg.BaseURL())
	}
}

func TestParse_ZeroTemperature(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test_gemini")
	t.Setenv("GEMINI_TEMPERATURE", "0")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.GeminiTemperature == nil {
		t.Fatal("Expected GeminiTemperature to be set")
	}
	if *cfg.GeminiTemperature != 0 {
		t.Errorf("Expected GeminiTemperature 0, got %f", *cfg.GeminiTemperature)
	}
}

func TestParse_MissingAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Parse()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParse_InvalidValues(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test_gemini")

	t.Setenv("MAX_PERSONAS", "lots")
	if _, err := Parse(); err == nil {
		t.Error("expected error for non-numeric MAX_PERSONAS")
	}

	t.Setenv("MAX_PERSONAS", "-1")
	if _, err := Parse(); err == nil {
		t.Error("expected error for negative MAX_PERSONAS")
	}
}

func TestMask(t *testing.T) {
	if got := mask("abcdefgh"); got != "***efgh" {
		t.Errorf("Expected '***efgh', got '%s'", got)
	}
	if got := mask("abc"); got != "***" {
		t.Errorf("Expected '***', got '%s'", got)
	}
}
