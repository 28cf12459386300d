package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"

	"github.com/comenerv/Synthetic-Focus-Group-App/internal/a2a"
	"github.com/comenerv/Synthetic-Focus-Group-App/internal/agent"
)

type RouterOptions struct {
	// AllowedOrigins defaults to every origin when empty.
	AllowedOrigins []string
	// BaseURL is advertised in the agent card. The request host is used when empty.
	BaseURL string
}

// NewRouter registers every endpoint and wraps the engine with CORS.
func NewRouter(simulator Simulator, opts RouterOptions) http.Handler {
	h := NewHandler(simulator)
	a2aHandler := a2a.NewA2AHandler(simulator, opts.BaseURL)

	router := gin.New()
	router.Use(gin.Recovery(), RequestLoggingMiddleware())

	router.GET("/health", h.HandleHealth)
	router.POST("/api/simulate", h.HandleSimulate)
	router.POST("/api/report", h.HandleReport)

	router.GET("/.well-known/agent.json", a2aHandler.ServeAgentCard)
	router.POST(agent.EndpointPath, a2aHandler.HandleFocusGroup)

	return withCORS(router, opts.AllowedOrigins)
}

// withCORS permits every method and header. Restrict AllowedOrigins to the
// front-end's URL in production.
func withCORS(next http.Handler, origins []string) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})(next)
}
