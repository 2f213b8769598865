package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	publishsvc "github.com/gigfrog/backend/internal/service/publish"
)

type publishService interface {
	Publish(ctx context.Context, input publishsvc.PublishInput) (publishsvc.Result, error)
}

// PublishHandler serves the /api/publish-leads endpoint.
type PublishHandler struct {
	publish publishService
	log     *slog.Logger
}

// NewPublishHandler creates a PublishHandler.
func NewPublishHandler(p publishService, logger *slog.Logger) *PublishHandler {
	return &PublishHandler{
		publish: p,
		log:     logger.With("handler", "publish"),
	}
}

type publishRequest struct {
	Mode   string    `json:"mode"`
	LeadID uuid.UUID `json:"leadId"`
}

type publishResponse struct {
	Mode    string `json:"mode"`
	Changed int    `json:"changed"`
}

// Publish promotes leads to global visibility.
// POST /api/publish-leads  body {mode: "single"|"all", leadId?}
func (h *PublishHandler) Publish(w http.ResponseWriter, r *http.Request) {
	var req publishRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	result, err := h.publish.Publish(r.Context(), publishsvc.PublishInput{
		Mode:   req.Mode,
		LeadID: req.LeadID,
	})
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, publishResponse{
		Mode:    result.Mode,
		Changed: result.Changed,
	})
}
