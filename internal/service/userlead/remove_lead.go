package userlead

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gigfrog/backend/internal/domain"
	"github.com/gigfrog/backend/pkg/ctxutil"
)

// RemoveLead hard-deletes a saved lead from the caller's pipeline. The
// removal itself is recorded on the activity timeline, which outlives the
// saved lead.
func (s *Service) RemoveLead(ctx context.Context, userLeadID uuid.UUID) error {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if userLeadID == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	current, err := s.userLeads.GetByID(ctx, identity.ID, userLeadID)
	if err != nil {
		return fmt.Errorf("get user lead: %w", err)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if deleteErr := s.userLeads.Delete(txCtx, identity.ID, current.ID); deleteErr != nil {
			return fmt.Errorf("delete user lead: %w", deleteErr)
		}

		activityErr := s.activities.Append(txCtx, domain.Activity{
			UserID:      identity.ID,
			LeadID:      current.LeadID,
			UserLeadID:  &current.ID,
			Action:      domain.ActivityUnsaved,
			Details:     map[string]string{"status": current.CurrentStatus.String()},
			Description: "Lead removed from pipeline",
			CreatedAt:   now(),
		})
		if activityErr != nil {
			return fmt.Errorf("record activity: %w", activityErr)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "lead removed from pipeline",
		slog.String("user_id", identity.ID.String()),
		slog.String("user_lead_id", current.ID.String()),
	)

	return nil
}
