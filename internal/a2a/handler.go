package a2a

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/comenerv/Synthetic-Focus-Group-App/internal/agent"
	"github.com/comenerv/Synthetic-Focus-Group-App/internal/models"
	"github.com/comenerv/Synthetic-Focus-Group-App/internal/report"
)

var errNoPersonas = errors.New("no personas found in message")

// Simulator runs a focus group simulation.
type Simulator interface {
	Simulate(ctx context.Context, req models.SimulationRequest) (*models.SimulationResult, error)
}

type A2AHandler struct {
	simulator Simulator
	baseURL   string
}

// NewA2AHandler returns a handler advertising baseURL in its agent card. When
// baseURL is empty the card is built from the incoming request's host.
func NewA2AHandler(simulator Simulator, baseURL string) *A2AHandler {
	return &A2AHandler{
		simulator: simulator,
		baseURL:   baseURL,
	}
}

// HandleFocusGroup processes A2A messages
func (h *A2AHandler) HandleFocusGroup(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Printf("ERROR: Failed to read request body: %v", err)
		h.sendErrorResponse(c, nil, "Failed to read request body", CodeParseError)
		return
	}

	var rpcReq JSONRPCRequest
	if err := json.Unmarshal(body, &rpcReq); err != nil {
		log.Printf("ERROR: Failed to decode request as JSON-RPC: %v", err)
		h.sendErrorResponse(c, nil, "Parse error", CodeParseError)
		return
	}

	// Some platforms post the message params without the JSON-RPC envelope.
	if rpcReq.JSONRPC == "" && rpcReq.Method == "" {
		h.handleDirectMessage(c, body)
		return
	}

	if rpcReq.JSONRPC != "2.0" {
		log.Printf("WARN: Invalid JSON-RPC version: %s", rpcReq.JSONRPC)
		h.sendErrorResponse(c, rpcReq.ID, "Invalid JSON-RPC version", CodeInvalidRequest)
		return
	}

	switch rpcReq.Method {
	case "message/send", "agent/task":
		h.handleTask(c, rpcReq)
	default:
		log.Printf("ERROR: Unknown method: %s", rpcReq.Method)
		h.sendErrorResponse(c, rpcReq.ID, fmt.Sprintf("Method not found: %s", rpcReq.Method), CodeMethodNotFound)
	}
}

func (h *A2AHandler) handleDirectMessage(c *gin.Context, body []byte) {
	var msgParams MessageParams
	if err := json.Unmarshal(body, &msgParams); err != nil || len(msgParams.Message.Parts) == 0 {
		log.Printf("ERROR: Request is neither JSON-RPC nor a direct message")
		h.sendErrorResponse(c, nil, "Invalid request format", CodeInvalidRequest)
		return
	}

	log.Printf("STATE: Handling direct message without JSON-RPC envelope")
	result := h.runTask(c.Request.Context(), msgParams.Message)
	h.sendSuccessResponse(c, nil, result)
}

func (h *A2AHandler) handleTask(c *gin.Context, rpcReq JSONRPCRequest) {
	var msgParams MessageParams
	if err := json.Unmarshal(rpcReq.Params, &msgParams); err != nil {
		log.Printf("ERROR: Failed to unmarshal params: %v", err)
		h.sendErrorResponse(c, rpcReq.ID, "Invalid parameters", CodeInvalidParams)
		return
	}

	result := h.runTask(c.Request.Context(), msgParams.Message)
	h.sendSuccessResponse(c, rpcReq.ID, result)
}

// runTask turns a user message into a finished task. Simulation failures are
// reported in the task status, not as JSON-RPC errors.
func (h *A2AHandler) runTask(ctx context.Context, msg A2AMessage) TaskResult {
	taskID := msg.TaskID
	if taskID == "" {
		taskID = uuid.New().String()
	}

	req, err := extractSimulationRequest(msg)
	if errors.Is(err, errNoPersonas) {
		log.Printf("WARN: No personas found in message")
		return h.createStatusTaskResult(taskID, msg, StateInputRequired,
			`Please include a data part with "personas" (and a campaign pitch) to run a focus group.`)
	}
	if err != nil {
		log.Printf("ERROR: Failed to read simulation request: %v", err)
		return h.createStatusTaskResult(taskID, msg, StateFailed, err.Error())
	}

	log.Printf("STATE: Running focus group with %d persona(s)", len(req.Personas))
	result, err := h.simulator.Simulate(ctx, req)
	if err != nil {
		log.Printf("ERROR: Simulation failed: %v", err)
		return h.createStatusTaskResult(taskID, msg, StateFailed,
			fmt.Sprintf("Failed to run focus group simulation: %v", err))
	}

	task, err := h.createSuccessTaskResult(taskID, msg, result)
	if err != nil {
		log.Printf("ERROR: Failed to encode result: %v", err)
		return h.createStatusTaskResult(taskID, msg, StateFailed, err.Error())
	}
	return task
}

// ServeAgentCard serves the agent card using Gin
func (h *A2AHandler) ServeAgentCard(c *gin.Context) {
	baseURL := h.baseURL
	if baseURL == "" {
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		baseURL = scheme + "://" + c.Request.Host
	}

	c.JSON(http.StatusOK, agent.NewCard(baseURL))
}

// extractSimulationRequest reads the campaign and personas from a message.
// A data part may hold a whole SimulationRequest or just the persona list;
// text parts supply the pitch when the data part does not.
func extractSimulationRequest(msg A2AMessage) (models.SimulationRequest, error) {
	var req models.SimulationRequest
	var texts []string

	for _, part := range msg.Parts {
		switch part.Kind {
		case PartText:
			if text := strings.TrimSpace(part.Text); text != "" {
				texts = append(texts, text)
			}
		case PartData:
			if len(part.Data) == 0 {
				continue
			}
			if err := decodeDataPart(part.Data, &req); err != nil {
				return req, err
			}
		}
	}

	if req.CampaignPitch == "" {
		req.CampaignPitch = strings.Join(texts, "\n")
	}
	if len(req.Personas) == 0 {
		return req, errNoPersonas
	}
	if req.CampaignPitch == "" {
		return req, errors.New("no campaign pitch found in message")
	}
	return req, nil
}

func decodeDataPart(data json.RawMessage, req *models.SimulationRequest) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		personas, err := decodePersonaList(data)
		if err != nil {
			return err
		}
		req.Personas = append(req.Personas, personas...)
		return nil
	}

	var part models.SimulationRequest
	if err := json.Unmarshal(data, &part); err != nil {
		return fmt.Errorf("invalid simulation data: %w", err)
	}
	if part.CampaignPitch != "" {
		req.CampaignPitch = part.CampaignPitch
	}
	req.Personas = append(req.Personas, part.Personas...)
	return nil
}

// decodePersonaList keeps only the array items that look like personas.
// Platforms also send conversation history ({"kind":"text",...}) as a data
// array; those items are skipped.
func decodePersonaList(data json.RawMessage) ([]models.Persona, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("invalid personas data: %w", err)
	}

	var personas []models.Persona
	for _, item := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil {
			continue
		}
		var name string
		if raw, ok := fields["name"]; !ok || json.Unmarshal(raw, &name) != nil || strings.TrimSpace(name) == "" {
			continue
		}

		var p models.Persona
		if err := json.Unmarshal(item, &p); err != nil {
			return nil, fmt.Errorf("invalid persona %q: %w", name, err)
		}
		personas = append(personas, p)
	}
	return personas, nil
}

func (h *A2AHandler) createSuccessTaskResult(taskID string, userMsg A2AMessage, result *models.SimulationResult) (TaskResult, error) {
	responseText := report.Markdown(result)

	data, err := DataPart(result)
	if err != nil {
		return TaskResult{}, err
	}

	agentMsg := A2AMessage{
		Kind:      "message",
		Role:      RoleAgent,
		MessageID: uuid.New().String(),
		TaskID:    taskID,
		ContextID: userMsg.ContextID,
		Parts:     []MessagePart{TextPart(responseText)},
	}

	return TaskResult{
		ID:        taskID,
		ContextID: userMsg.ContextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     StateCompleted,
			Timestamp: Timestamp(),
			Message:   &agentMsg,
		},
		Artifacts: []Artifact{
			{
				ArtifactID: uuid.New().String(),
				Name:       report.Title,
				Parts:      []MessagePart{TextPart(responseText), data},
			},
		},
		History: []A2AMessage{userMsg, agentMsg},
	}, nil
}

func (h *A2AHandler) createStatusTaskResult(taskID string, userMsg A2AMessage, state string, text string) TaskResult {
	return TaskResult{
		ID:        taskID,
		ContextID: userMsg.ContextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     state,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.New().String(),
				TaskID:    taskID,
				ContextID: userMsg.ContextID,
				Parts:     []MessagePart{TextPart(text)},
			},
		},
	}
}

func (h *A2AHandler) sendSuccessResponse(c *gin.Context, id json.RawMessage, result TaskResult) {
	log.Printf("STATE: Sending task %s in state %s", result.ID, result.Status.State)
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

func (h *A2AHandler) sendErrorResponse(c *gin.Context, id json.RawMessage, message string, code int) {
	log.Printf("STATE: Sending RPC error %d: %s", code, message)

	// JSON-RPC errors are sent with 200 OK
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &RPCError{
			Code:    code,
			Message: message,
		},
	})
}
