package lead

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	repo "github.com/gigfrog/backend/internal/adapter/postgres/lead"
	"github.com/gigfrog/backend/internal/domain"
	"github.com/gigfrog/backend/pkg/ctxutil"
)

// ListResult is one page of leads plus the pagination envelope.
type ListResult struct {
	Leads      []domain.Lead
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// ListLeads returns leads visible to the caller. Anonymous callers get
// global and system leads only.
func (s *Service) ListLeads(ctx context.Context, input ListLeadsInput) (ListResult, error) {
	viewerID := uuid.Nil
	if identity, ok := ctxutil.IdentityFromCtx(ctx); ok {
		viewerID = identity.ID
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = s.defaultPageSize
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}

	leads, total, err := s.leads.List(ctx, repo.ListFilter{
		ViewerID: viewerID,
		Search:   strings.TrimSpace(input.Search),
		Page:     page,
		Limit:    limit,
		SortBy:   input.SortBy,
		Order:    input.Order,
	})
	if err != nil {
		return ListResult{}, fmt.Errorf("list leads: %w", err)
	}

	totalPages := (total + limit - 1) / limit

	return ListResult{
		Leads:      leads,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}
