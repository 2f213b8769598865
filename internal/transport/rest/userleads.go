package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/gigfrog/backend/internal/domain"
	userleadsvc "github.com/gigfrog/backend/internal/service/userlead"
)

type userLeadService interface {
	ListUserLeads(ctx context.Context, input userleadsvc.ListUserLeadsInput) ([]domain.UserLead, error)
	GetUserLead(ctx context.Context, userLeadID uuid.UUID) (domain.UserLead, error)
	GetByLeadID(ctx context.Context, leadID uuid.UUID) (domain.UserLead, error)
	GetActivity(ctx context.Context, userLeadID uuid.UUID) ([]domain.Activity, error)
	SaveLead(ctx context.Context, input userleadsvc.SaveLeadInput) (domain.UserLead, error)
	UpdateUserLead(ctx context.Context, input userleadsvc.UpdateUserLeadInput) (domain.UserLead, error)
	ChangeStatus(ctx context.Context, input userleadsvc.ChangeStatusInput) (domain.UserLead, error)
	RemoveLead(ctx context.Context, userLeadID uuid.UUID) error
}

// UserLeadHandler serves the /api/user-leads endpoints.
type UserLeadHandler struct {
	userLeads userLeadService
	log       *slog.Logger
}

// NewUserLeadHandler creates a UserLeadHandler.
func NewUserLeadHandler(userLeads userLeadService, logger *slog.Logger) *UserLeadHandler {
	return &UserLeadHandler{
		userLeads: userLeads,
		log:       logger.With("handler", "user-leads"),
	}
}

// List returns the caller's saved leads, or a single one when ?leadId= is
// given.
// GET /api/user-leads?status=&priority=&sortBy=&order=&leadId=
func (h *UserLeadHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if raw := q.Get("leadId"); raw != "" {
		leadID, err := uuid.Parse(raw)
		if err != nil {
			respondError(r.Context(), h.log, w, domain.NewValidationError("leadId", "malformed id"))
			return
		}
		ul, err := h.userLeads.GetByLeadID(r.Context(), leadID)
		if err != nil {
			respondError(r.Context(), h.log, w, err)
			return
		}
		writeJSON(w, http.StatusOK, toUserLeadJSON(ul))
		return
	}

	input := userleadsvc.ListUserLeadsInput{
		SortBy: q.Get("sortBy"),
		Order:  q.Get("order"),
	}
	if v := q.Get("status"); v != "" {
		status := domain.PipelineStatus(v)
		input.Status = &status
	}
	if v := q.Get("priority"); v != "" {
		priority := domain.Priority(v)
		input.Priority = &priority
	}

	uls, err := h.userLeads.ListUserLeads(r.Context(), input)
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserLeadListJSON(uls))
}

// Get returns one saved lead, or its activity timeline with ?activity=true.
// GET /api/user-leads/{id}[?activity=true]
func (h *UserLeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	if r.URL.Query().Get("activity") == "true" {
		acts, err := h.userLeads.GetActivity(r.Context(), id)
		if err != nil {
			respondError(r.Context(), h.log, w, err)
			return
		}
		writeJSON(w, http.StatusOK, toActivityListJSON(acts))
		return
	}

	ul, err := h.userLeads.GetUserLead(r.Context(), id)
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserLeadJSON(ul))
}

type saveLeadRequest struct {
	LeadID   uuid.UUID        `json:"leadId"`
	Priority *domain.Priority `json:"priority"`
	Notes    string           `json:"notes"`
}

// Save adds a lead to the caller's pipeline.
// POST /api/user-leads
func (h *UserLeadHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveLeadRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	ul, err := h.userLeads.SaveLead(r.Context(), userleadsvc.SaveLeadInput{
		LeadID:   req.LeadID,
		Priority: req.Priority,
		Notes:    req.Notes,
	})
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserLeadJSON(ul))
}

type updateUserLeadRequest struct {
	Status   *domain.PipelineStatus `json:"status"`
	Note     string                 `json:"note"`
	Priority *domain.Priority       `json:"priority"`
	Notes    *string                `json:"notes"`
}

// Update changes a saved lead. A body with "status" runs the transition
// operation; otherwise priority and notes are updated.
// PUT /api/user-leads/{id}
func (h *UserLeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	var req updateUserLeadRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	var ul domain.UserLead
	if req.Status != nil {
		ul, err = h.userLeads.ChangeStatus(r.Context(), userleadsvc.ChangeStatusInput{
			UserLeadID: id,
			Status:     *req.Status,
			Note:       req.Note,
		})
	} else {
		ul, err = h.userLeads.UpdateUserLead(r.Context(), userleadsvc.UpdateUserLeadInput{
			UserLeadID: id,
			Priority:   req.Priority,
			Notes:      req.Notes,
		})
	}
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserLeadJSON(ul))
}

// Remove unsaves a lead from the pipeline.
// DELETE /api/user-leads/{id}
func (h *UserLeadHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	if err := h.userLeads.RemoveLead(r.Context(), id); err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
