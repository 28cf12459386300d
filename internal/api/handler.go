package api

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comenerv/Synthetic-Focus-Group-App/internal/models"
	"github.com/comenerv/Synthetic-Focus-Group-App/internal/report"
)

// Simulator runs a focus group simulation. *simulator.Service implements it.
type Simulator interface {
	Simulate(ctx context.Context, req models.SimulationRequest) (*models.SimulationResult, error)
}

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

type Handler struct {
	simulator Simulator
}

func NewHandler(simulator Simulator) *Handler {
	return &Handler{
		simulator: simulator,
	}
}

// HandleSimulate runs one simulation. Every failure, whether caused by the
// request or the model provider, is reported as a 500 with a detail message.
func (h *Handler) HandleSimulate(c *gin.Context) {
	var req models.SimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, fmt.Errorf("invalid simulation request: %w", err))
		return
	}

	result, err := h.simulator.Simulate(c.Request.Context(), req)
	if err != nil {
		h.sendError(c, err)
		return
	}

	log.Printf("STATE: Simulation succeeded [%s] verdicts apply=%d fence=%d reject=%d",
		RequestID(c), result.Verdicts.Apply, result.Verdicts.Fence, result.Verdicts.Reject)
	c.JSON(http.StatusOK, result)
}

// HandleReport renders a previously returned SimulationResult as Markdown.
func (h *Handler) HandleReport(c *gin.Context) {
	var result models.SimulationResult
	if err := c.ShouldBindJSON(&result); err != nil {
		h.sendError(c, fmt.Errorf("invalid simulation result: %w", err))
		return
	}
	result.Normalize()

	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(report.Markdown(&result)))
}

func (h *Handler) HandleHealth(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

func (h *Handler) sendError(c *gin.Context, err error) {
	log.Printf("ERROR: %s %s [%s]: %v", c.Request.Method, c.Request.URL.Path, RequestID(c), err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Detail: err.Error()})
}
