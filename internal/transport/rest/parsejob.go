package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gigfrog/backend/internal/service/jobpage"
)

type jobPageService interface {
	Fetch(ctx context.Context, rawURL string) (jobpage.Page, error)
}

// ParseJobHandler serves the /api/parse-job-url endpoint.
type ParseJobHandler struct {
	pages jobPageService
	log   *slog.Logger
}

// NewParseJobHandler creates a ParseJobHandler.
func NewParseJobHandler(pages jobPageService, logger *slog.Logger) *ParseJobHandler {
	return &ParseJobHandler{
		pages: pages,
		log:   logger.With("handler", "parse-job"),
	}
}

type parseJobRequest struct {
	URL string `json:"url"`
}

type parseJobResponse struct {
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	HTML        string `json:"html"`
}

// Parse fetches a job page's raw HTML for client-side scraping.
// POST /api/parse-job-url  body {url}
func (h *ParseJobHandler) Parse(w http.ResponseWriter, r *http.Request) {
	var req parseJobRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	page, err := h.pages.Fetch(r.Context(), req.URL)
	if err != nil {
		respondError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, parseJobResponse{
		URL:         page.URL,
		ContentType: page.ContentType,
		HTML:        page.HTML,
	})
}
