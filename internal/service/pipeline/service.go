// Package pipeline builds the grouped pipeline view: every saved lead of the
// caller, joined with lead details and the first linked referral, grouped by
// current status.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	repo "github.com/gigfrog/backend/internal/adapter/postgres/userlead"
	"github.com/gigfrog/backend/internal/domain"
	"github.com/gigfrog/backend/pkg/ctxutil"
)

type userLeadRepo interface {
	List(ctx context.Context, userID uuid.UUID, f repo.ListFilter) ([]domain.UserLead, error)
}

type leadRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Lead, error)
}

type referralRepo interface {
	FirstByUserLead(ctx context.Context, userID, userLeadID uuid.UUID) (domain.Referral, error)
}

// Item is one saved lead joined with its lead details and, if any, the first
// referral linked to it.
type Item struct {
	UserLead domain.UserLead
	Lead     domain.Lead
	Referral *domain.Referral
}

// Group is all of a user's saved leads in one pipeline status.
type Group struct {
	Status domain.PipelineStatus
	Count  int
	Items  []Item
}

// Service provides the pipeline view.
type Service struct {
	userLeads userLeadRepo
	leads     leadRepo
	referrals referralRepo
	log       *slog.Logger
}

// NewService creates a new pipeline service.
func NewService(log *slog.Logger, userLeads userLeadRepo, leads leadRepo, referrals referralRepo) *Service {
	return &Service{
		userLeads: userLeads,
		leads:     leads,
		referrals: referrals,
		log:       log.With("service", "pipeline"),
	}
}

// GetPipeline returns the caller's saved leads grouped by status. Groups are
// ordered by status name ascending; only non-empty groups appear.
func (s *Service) GetPipeline(ctx context.Context) ([]Group, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	userLeads, err := s.userLeads.List(ctx, identity.ID, repo.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("list user leads: %w", err)
	}

	leadIDs := make([]uuid.UUID, len(userLeads))
	for i := range userLeads {
		leadIDs[i] = userLeads[i].LeadID
	}
	leadByID, err := s.leads.GetByIDs(ctx, leadIDs)
	if err != nil {
		return nil, fmt.Errorf("load lead details: %w", err)
	}

	grouped := make(map[domain.PipelineStatus][]Item)
	for _, ul := range userLeads {
		item := Item{
			UserLead: ul,
			Lead:     leadByID[ul.LeadID],
		}

		ref, refErr := s.referrals.FirstByUserLead(ctx, identity.ID, ul.ID)
		switch {
		case refErr == nil:
			item.Referral = &ref
		case errors.Is(refErr, domain.ErrNotFound):
			// no referral linked
		default:
			return nil, fmt.Errorf("load linked referral: %w", refErr)
		}

		grouped[ul.CurrentStatus] = append(grouped[ul.CurrentStatus], item)
	}

	groups := make([]Group, 0, len(grouped))
	for status, items := range grouped {
		groups = append(groups, Group{
			Status: status,
			Count:  len(items),
			Items:  items,
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Status < groups[j].Status
	})

	return groups, nil
}
