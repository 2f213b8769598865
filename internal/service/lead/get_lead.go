package lead

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gigfrog/backend/internal/domain"
	"github.com/gigfrog/backend/pkg/ctxutil"
)

// GetLead returns one lead if it is visible to the caller. A lead hidden by
// the visibility rule is indistinguishable from a missing one.
func (s *Service) GetLead(ctx context.Context, leadID uuid.UUID) (domain.Lead, error) {
	if leadID == uuid.Nil {
		return domain.Lead{}, domain.NewValidationError("id", "required")
	}

	l, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("get lead: %w", err)
	}

	viewerID := uuid.Nil
	if identity, ok := ctxutil.IdentityFromCtx(ctx); ok {
		viewerID = identity.ID
	}
	if !l.VisibleTo(viewerID) {
		return domain.Lead{}, fmt.Errorf("lead %s: %w", leadID, domain.ErrNotFound)
	}

	return l, nil
}
