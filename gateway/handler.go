// Package gateway serves the natural-language front door: free text in,
// inventory action out.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/stockpilot/agent/contract"
	orchestratorx "github.com/tanpawarit/stockpilot/agent/orchestrator"
	inventoryx "github.com/tanpawarit/stockpilot/inventory"
	middlewarex "github.com/tanpawarit/stockpilot/pkg/middleware"
)

// Processor is the orchestrator contract the handler depends on.
type Processor interface {
	Process(ctx context.Context, query string) (orchestratorx.Result, error)
}

type ProcessQueryRequest struct {
	Query string `json:"query" binding:"required"`
}

type ProcessQueryResponse struct {
	Message        string         `json:"message"`
	InventoryState map[string]int `json:"inventory_state"`
	Error          *string        `json:"error"`
}

type Handler struct {
	processor Processor
}

func NewHandler(processor Processor) *Handler {
	return &Handler{processor: processor}
}

func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.POST("/process_query", h.ProcessQuery)
}

// ProcessQuery interprets a natural-language query and relays the
// resulting read or update to the inventory service.
func (h *Handler) ProcessQuery(c *gin.Context) {
	var req ProcessQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail := "query is required"
		c.JSON(http.StatusBadRequest, ProcessQueryResponse{Error: &detail})
		return
	}

	result, err := h.processor.Process(c.Request.Context(), req.Query)
	if err != nil {
		status, detail := statusForError(err)
		log.Warn().
			Str("request_id", c.GetString(middlewarex.ContextKeyRequestID)).
			Int("status", status).
			Err(err).
			Msg("process query failed")
		c.JSON(status, ProcessQueryResponse{Error: &detail})
		return
	}

	c.JSON(http.StatusOK, ProcessQueryResponse{
		Message:        result.Message,
		InventoryState: result.Inventory,
	})
}

// statusForError maps the error taxonomy onto HTTP statuses. Inventory
// service validation failures keep their original status and detail;
// language model API failures keep the upstream status.
func statusForError(err error) (int, string) {
	var storeErr *inventoryx.StatusError
	var upstreamErr *contractx.UpstreamStatusError

	switch {
	case errors.As(err, &storeErr):
		return storeErr.StatusCode, storeErr.Error()
	case errors.As(err, &upstreamErr):
		if upstreamErr.StatusCode >= http.StatusBadRequest {
			return upstreamErr.StatusCode, upstreamErr.Error()
		}
		return http.StatusBadGateway, upstreamErr.Error()
	case errors.Is(err, contractx.ErrIncompleteIntent),
		errors.Is(err, contractx.ErrUnsupportedOperation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, inventoryx.ErrUnreachable),
		errors.Is(err, contractx.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable, err.Error()
	case errors.Is(err, contractx.ErrNotConfigured),
		errors.Is(err, contractx.ErrMalformedResponse):
		return http.StatusInternalServerError, err.Error()
	default:
		return http.StatusInternalServerError, fmt.Sprintf("An unexpected error occurred: %T: %v", err, err)
	}
}
