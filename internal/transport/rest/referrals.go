package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/gigfrog/backend/internal/domain"
	referralsvc "github.com/gigfrog/backend/internal/service/referral"
)

type referralService interface {
	ListReferrals(ctx context.Context) ([]domain.Referral, error)
	GetReferral(ctx context.Context, referralID uuid.UUID) (domain.Referral, error)
	GetActivity(ctx context.Context, referralID uuid.UUID) ([]domain.ReferralActivityEntry, error)
	CreateReferral(ctx context.Context, input referralsvc.CreateReferralInput) (domain.Referral, error)
	UpdateReferral(ctx context.Context, input referralsvc.UpdateReferralInput) (domain.Referral, error)
	DeleteReferral(ctx context.Context, referralID uuid.UUID) error
}

// ReferralHandler serves the /api/referrals endpoints.
type ReferralHandler struct {
	referrals referralService
	log       *slog.Logger
}

// NewReferralHandler creates a ReferralHandler.
func NewReferralHandler(referrals referralService, logger *slog.Logger) *ReferralHandler {
	return &ReferralHandler{
		referrals: referrals,
		log:       logger.With("handler", "referrals"),
	}
}

// List returns the caller's referrals.
// GET /api/referrals
func (h *ReferralHandler) List(w http.ResponseWriter, r *http.Request) {
	refs, err := h.referrals.ListReferrals(r.Context())
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toReferralListJSON(refs))
}

// Get returns one referral, or its history with ?activity=true.
// GET /api/referrals/{id}[?activity=true]
func (h *ReferralHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	if r.URL.Query().Get("activity") == "true" {
		entries, err := h.referrals.GetActivity(r.Context(), id)
		if err != nil {
			respondError(r.Context(), h.log, w, err)
			return
		}
		writeJSON(w, http.StatusOK, toReferralActivityListJSON(entries))
		return
	}

	ref, err := h.referrals.GetReferral(r.Context(), id)
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toReferralJSON(ref))
}

type createReferralRequest struct {
	Name        string      `json:"name"`
	Company     string      `json:"company"`
	Email       string      `json:"email"`
	LinkedIn    string      `json:"linkedin"`
	Notes       string      `json:"notes"`
	LinkedLeads []uuid.UUID `json:"linkedLeads"`
}

// Create creates a referral.
// POST /api/referrals
func (h *ReferralHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReferralRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	ref, err := h.referrals.CreateReferral(r.Context(), referralsvc.CreateReferralInput{
		Name:        req.Name,
		Company:     req.Company,
		Email:       req.Email,
		LinkedIn:    req.LinkedIn,
		Notes:       req.Notes,
		LinkedLeads: req.LinkedLeads,
	})
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toReferralJSON(ref))
}

type updateReferralRequest struct {
	Name        *string      `json:"name"`
	Company     *string      `json:"company"`
	Email       *string      `json:"email"`
	LinkedIn    *string      `json:"linkedin"`
	Notes       *string      `json:"notes"`
	LinkedLeads *[]uuid.UUID `json:"linkedLeads"`
}

// Update applies a partial referral update. A non-null linkedLeads replaces
// the whole linked set.
// PUT /api/referrals/{id}
func (h *ReferralHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	var req updateReferralRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	ref, err := h.referrals.UpdateReferral(r.Context(), referralsvc.UpdateReferralInput{
		ReferralID:  id,
		Name:        req.Name,
		Company:     req.Company,
		Email:       req.Email,
		LinkedIn:    req.LinkedIn,
		Notes:       req.Notes,
		LinkedLeads: req.LinkedLeads,
	})
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toReferralJSON(ref))
}

// Delete removes a referral.
// DELETE /api/referrals/{id}
func (h *ReferralHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	if err := h.referrals.DeleteReferral(r.Context(), id); err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
