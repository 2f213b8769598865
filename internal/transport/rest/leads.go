package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/gigfrog/backend/internal/domain"
	leadsvc "github.com/gigfrog/backend/internal/service/lead"
)

type leadService interface {
	ListLeads(ctx context.Context, input leadsvc.ListLeadsInput) (leadsvc.ListResult, error)
	GetLead(ctx context.Context, leadID uuid.UUID) (domain.Lead, error)
	CreateLead(ctx context.Context, input leadsvc.CreateLeadInput) (domain.Lead, error)
	UpdateLead(ctx context.Context, input leadsvc.UpdateLeadInput) (domain.Lead, error)
	DeleteLead(ctx context.Context, leadID uuid.UUID) error
}

// LeadHandler serves the /api/leads endpoints.
type LeadHandler struct {
	leads leadService
	log   *slog.Logger
}

// NewLeadHandler creates a LeadHandler.
func NewLeadHandler(leads leadService, logger *slog.Logger) *LeadHandler {
	return &LeadHandler{
		leads: leads,
		log:   logger.With("handler", "leads"),
	}
}

type listLeadsResponse struct {
	Leads      []leadJSON `json:"leads"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"totalPages"`
}

// List returns a paginated lead listing.
// GET /api/leads?page=&limit=&sortBy=&order=&search=
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := leadsvc.ListLeadsInput{
		SortBy: q.Get("sortBy"),
		Order:  q.Get("order"),
		Search: q.Get("search"),
	}
	if v := q.Get("page"); v != "" {
		input.Page, _ = strconv.Atoi(v)
	}
	if v := q.Get("limit"); v != "" {
		input.Limit, _ = strconv.Atoi(v)
	}

	result, err := h.leads.ListLeads(r.Context(), input)
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, listLeadsResponse{
		Leads:      toLeadListJSON(result.Leads),
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Get returns a single lead.
// GET /api/leads/{id}
func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	lead, err := h.leads.GetLead(r.Context(), id)
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toLeadJSON(lead))
}

type leadRequest struct {
	Title                 string           `json:"title"`
	Company               string           `json:"company"`
	Location              string           `json:"location"`
	Team                  string           `json:"team"`
	Compensation          compensationJSON `json:"compensation"`
	ContactName           string           `json:"contactName"`
	ContactEmail          string           `json:"contactEmail"`
	AdditionalEmails      []string         `json:"additionalEmails"`
	AdditionalLinks       []domain.Link    `json:"additionalLinks"`
	ContactLinkedIn       string           `json:"contactLinkedin"`
	SourceLink            string           `json:"sourceLink"`
	SourceApplicationLink string           `json:"sourceApplicationLink"`
	DatePosted            *time.Time       `json:"datePosted"`
	Industry              string           `json:"industry"`
	IsGlobal              bool             `json:"isGlobal"`
}

// Create creates a lead, private by default.
// POST /api/leads
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req leadRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	lead, err := h.leads.CreateLead(r.Context(), leadsvc.CreateLeadInput{
		Title:    req.Title,
		Company:  req.Company,
		Location: req.Location,
		Team:     req.Team,
		Compensation: domain.Compensation{
			Min:      req.Compensation.Min,
			Max:      req.Compensation.Max,
			Currency: req.Compensation.Currency,
			Raw:      req.Compensation.Raw,
		},
		ContactName:           req.ContactName,
		ContactEmail:          req.ContactEmail,
		AdditionalEmails:      req.AdditionalEmails,
		AdditionalLinks:       req.AdditionalLinks,
		ContactLinkedIn:       req.ContactLinkedIn,
		SourceLink:            req.SourceLink,
		SourceApplicationLink: req.SourceApplicationLink,
		DatePosted:            req.DatePosted,
		Industry:              req.Industry,
		IsGlobal:              req.IsGlobal,
	})
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toLeadJSON(lead))
}

type updateLeadRequest struct {
	Title                 *string           `json:"title"`
	Company               *string           `json:"company"`
	Location              *string           `json:"location"`
	Team                  *string           `json:"team"`
	Compensation          *compensationJSON `json:"compensation"`
	ContactName           *string           `json:"contactName"`
	ContactEmail          *string           `json:"contactEmail"`
	AdditionalEmails      *[]string         `json:"additionalEmails"`
	AdditionalLinks       *[]domain.Link    `json:"additionalLinks"`
	ContactLinkedIn       *string           `json:"contactLinkedin"`
	SourceLink            *string           `json:"sourceLink"`
	SourceApplicationLink *string           `json:"sourceApplicationLink"`
	DatePosted            *time.Time        `json:"datePosted"`
	Industry              *string           `json:"industry"`
	IsGlobal              *bool             `json:"isGlobal"`
	CreatedBy             *string           `json:"createdBy"`
}

// Update applies a partial update to a lead.
// PUT /api/leads/{id}
func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	var req updateLeadRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	input := leadsvc.UpdateLeadInput{
		LeadID:                id,
		Title:                 req.Title,
		Company:               req.Company,
		Location:              req.Location,
		Team:                  req.Team,
		ContactName:           req.ContactName,
		ContactEmail:          req.ContactEmail,
		AdditionalEmails:      req.AdditionalEmails,
		AdditionalLinks:       req.AdditionalLinks,
		ContactLinkedIn:       req.ContactLinkedIn,
		SourceLink:            req.SourceLink,
		SourceApplicationLink: req.SourceApplicationLink,
		DatePosted:            req.DatePosted,
		Industry:              req.Industry,
		IsGlobal:              req.IsGlobal,
		CreatedBy:             req.CreatedBy,
	}
	if req.Compensation != nil {
		input.Compensation = &domain.Compensation{
			Min:      req.Compensation.Min,
			Max:      req.Compensation.Max,
			Currency: req.Compensation.Currency,
			Raw:      req.Compensation.Raw,
		}
	}

	lead, err := h.leads.UpdateLead(r.Context(), input)
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toLeadJSON(lead))
}

// Delete removes a lead. Admin-only.
// DELETE /api/leads/{id}
func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	if err := h.leads.DeleteLead(r.Context(), id); err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathUUID parses a UUID path segment.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "malformed id")
	}
	return id, nil
}
