package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gigfrog/backend/internal/service/pipeline"
)

type pipelineService interface {
	GetPipeline(ctx context.Context) ([]pipeline.Group, error)
}

// PipelineHandler serves the /api/pipeline endpoint.
type PipelineHandler struct {
	pipeline pipelineService
	log      *slog.Logger
}

// NewPipelineHandler creates a PipelineHandler.
func NewPipelineHandler(p pipelineService, logger *slog.Logger) *PipelineHandler {
	return &PipelineHandler{
		pipeline: p,
		log:      logger.With("handler", "pipeline"),
	}
}

type pipelineItemJSON struct {
	UserLead userLeadJSON  `json:"userLead"`
	Lead     leadJSON      `json:"lead"`
	Referral *referralJSON `json:"referral,omitempty"`
}

type pipelineGroupJSON struct {
	ID    string             `json:"_id"`
	Count int                `json:"count"`
	Leads []pipelineItemJSON `json:"leads"`
}

// Get returns the caller's pipeline grouped by status.
// GET /api/pipeline
func (h *PipelineHandler) Get(w http.ResponseWriter, r *http.Request) {
	groups, err := h.pipeline.GetPipeline(r.Context())
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	out := make([]pipelineGroupJSON, len(groups))
	for i, g := range groups {
		items := make([]pipelineItemJSON, len(g.Items))
		for j, item := range g.Items {
			items[j] = pipelineItemJSON{
				UserLead: toUserLeadJSON(item.UserLead),
				Lead:     toLeadJSON(item.Lead),
			}
			if item.Referral != nil {
				ref := toReferralJSON(*item.Referral)
				items[j].Referral = &ref
			}
		}
		out[i] = pipelineGroupJSON{
			ID:    g.Status.String(),
			Count: g.Count,
			Leads: items,
		}
	}

	writeJSON(w, http.StatusOK, out)
}
