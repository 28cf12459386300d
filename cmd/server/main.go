package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/comenerv/Synthetic-Focus-Group-App/internal/api"
	"github.com/comenerv/Synthetic-Focus-Group-App/internal/config"
	"github.com/comenerv/Synthetic-Focus-Group-App/internal/simulator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("CRITICAL: Invalid configuration: %v", err)
	}
	cfg.LogSummary()

	// Initialize Gemini client
	geminiClient, err := simulator.NewGeminiClient(context.Background(), simulator.GeminiConfig{
		APIKey:      cfg.GeminiAPIKey,
		Model:       cfg.GeminiModel,
		Temperature: cfg.GeminiTemperature,
	})
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}
	defer geminiClient.Close()

	service := simulator.NewService(geminiClient, cfg.MaxPersonas)

	server := &http.Server{
		Addr: cfg.Addr(),
		Handler: api.NewRouter(service, api.RouterOptions{
			AllowedOrigins: cfg.AllowedOrigins,
			BaseURL:        cfg.PublicURL,
		}),
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Synthetic Focus Group service starting on %s", cfg.Addr())
		log.Printf("Simulation endpoint available at: %s/api/simulate", cfg.BaseURL())
		log.Printf("Agent card available at: %s/.well-known/agent.json", cfg.BaseURL())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
