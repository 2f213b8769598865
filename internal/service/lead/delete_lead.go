package lead

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gigfrog/backend/internal/domain"
	"github.com/gigfrog/backend/pkg/ctxutil"
)

// DeleteLead removes a lead. Admin-only.
func (s *Service) DeleteLead(ctx context.Context, leadID uuid.UUID) error {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if leadID == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}
	if !identity.IsAdmin() {
		return fmt.Errorf("delete lead %s: %w", leadID, domain.ErrForbidden)
	}

	if err := s.leads.Delete(ctx, leadID); err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}

	s.log.InfoContext(ctx, "lead deleted",
		slog.String("user_id", identity.ID.String()),
		slog.String("lead_id", leadID.String()),
	)

	return nil
}
