package userlead

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gigfrog/backend/internal/domain"
	"github.com/gigfrog/backend/pkg/ctxutil"
)

// ChangeStatus moves a saved lead to a new pipeline status. The move must be
// a legal edge of the transition table; milestone timestamps are stamped on
// first entry only; exactly one history entry is appended per call.
func (s *Service) ChangeStatus(ctx context.Context, input ChangeStatusInput) (domain.UserLead, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.UserLead{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return domain.UserLead{}, err
	}

	current, err := s.userLeads.GetByID(ctx, identity.ID, input.UserLeadID)
	if err != nil {
		return domain.UserLead{}, fmt.Errorf("get user lead: %w", err)
	}

	if !current.CurrentStatus.CanTransitionTo(input.Status) {
		return domain.UserLead{}, domain.NewValidationError("status",
			fmt.Sprintf("cannot transition from %s to %s", current.CurrentStatus, input.Status))
	}

	note := input.Note
	if note == "" {
		note = fmt.Sprintf("Status changed to %s", input.Status)
	}
	at := now()

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.userLeads.UpdateStatus(txCtx, identity.ID, current.ID, input.Status, at); updateErr != nil {
			return fmt.Errorf("update status: %w", updateErr)
		}

		appendErr := s.userLeads.AppendStatus(txCtx, current.ID, domain.StatusEntry{
			Status:    input.Status,
			Note:      note,
			Timestamp: at,
		})
		if appendErr != nil {
			return fmt.Errorf("append status history: %w", appendErr)
		}

		activityErr := s.activities.Append(txCtx, domain.Activity{
			UserID:     identity.ID,
			LeadID:     current.LeadID,
			UserLeadID: &current.ID,
			Action:     domain.ActivityStatusChanged,
			Details: map[string]string{
				"from": current.CurrentStatus.String(),
				"to":   input.Status.String(),
			},
			Description: fmt.Sprintf("Status changed from %s to %s", current.CurrentStatus, input.Status),
			CreatedAt:   at,
		})
		if activityErr != nil {
			return fmt.Errorf("record activity: %w", activityErr)
		}

		return nil
	})
	if err != nil {
		return domain.UserLead{}, err
	}

	s.log.InfoContext(ctx, "status changed",
		slog.String("user_id", identity.ID.String()),
		slog.String("user_lead_id", current.ID.String()),
		slog.String("from", current.CurrentStatus.String()),
		slog.String("to", input.Status.String()),
	)

	updated, err := s.userLeads.GetByID(ctx, identity.ID, current.ID)
	if err != nil {
		return domain.UserLead{}, fmt.Errorf("reload user lead: %w", err)
	}

	return updated, nil
}
