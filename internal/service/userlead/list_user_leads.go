package userlead

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gigfrog/backend/internal/domain"
	"github.com/gigfrog/backend/pkg/ctxutil"
)

// ListUserLeads returns the caller's saved leads, filtered and ordered.
func (s *Service) ListUserLeads(ctx context.Context, input ListUserLeadsInput) ([]domain.UserLead, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	userLeads, err := s.userLeads.List(ctx, identity.ID, input.filter())
	if err != nil {
		return nil, fmt.Errorf("list user leads: %w", err)
	}

	return userLeads, nil
}

// GetUserLead returns one saved lead by id, scoped to the caller.
func (s *Service) GetUserLead(ctx context.Context, userLeadID uuid.UUID) (domain.UserLead, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.UserLead{}, domain.ErrUnauthorized
	}
	if userLeadID == uuid.Nil {
		return domain.UserLead{}, domain.NewValidationError("id", "required")
	}

	ul, err := s.userLeads.GetByID(ctx, identity.ID, userLeadID)
	if err != nil {
		return domain.UserLead{}, fmt.Errorf("get user lead: %w", err)
	}

	return ul, nil
}

// GetByLeadID returns the caller's saved instance of a lead, if any.
func (s *Service) GetByLeadID(ctx context.Context, leadID uuid.UUID) (domain.UserLead, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.UserLead{}, domain.ErrUnauthorized
	}
	if leadID == uuid.Nil {
		return domain.UserLead{}, domain.NewValidationError("leadId", "required")
	}

	ul, err := s.userLeads.GetByLeadID(ctx, identity.ID, leadID)
	if err != nil {
		return domain.UserLead{}, fmt.Errorf("get user lead by lead: %w", err)
	}

	return ul, nil
}

// GetActivity returns a saved lead's timeline, newest first.
func (s *Service) GetActivity(ctx context.Context, userLeadID uuid.UUID) ([]domain.Activity, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if userLeadID == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	// Ownership check: the timeline of someone else's saved lead is absent,
	// not forbidden.
	if _, err := s.userLeads.GetByID(ctx, identity.ID, userLeadID); err != nil {
		return nil, fmt.Errorf("get user lead: %w", err)
	}

	activities, err := s.activities.ListByUserLead(ctx, identity.ID, userLeadID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	return activities, nil
}
