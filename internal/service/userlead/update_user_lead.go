package userlead

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gigfrog/backend/internal/domain"
	"github.com/gigfrog/backend/pkg/ctxutil"
)

// UpdateUserLead changes priority and/or notes on a saved lead. Status and
// history are out of reach here; use ChangeStatus. A priority change is
// recorded on the activity timeline.
func (s *Service) UpdateUserLead(ctx context.Context, input UpdateUserLeadInput) (domain.UserLead, error) {
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

	priorityChanged := input.Priority != nil && *input.Priority != current.Priority

	var updated domain.UserLead
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var updateErr error
		updated, updateErr = s.userLeads.Update(txCtx, identity.ID, current.ID, domain.UserLeadUpdateParams{
			Priority: input.Priority,
			Notes:    input.Notes,
		})
		if updateErr != nil {
			return fmt.Errorf("update user lead: %w", updateErr)
		}

		if priorityChanged {
			activityErr := s.activities.Append(txCtx, domain.Activity{
				UserID:     identity.ID,
				LeadID:     current.LeadID,
				UserLeadID: &current.ID,
				Action:     domain.ActivityPriorityChanged,
				Details: map[string]string{
					"from": current.Priority.String(),
					"to":   input.Priority.String(),
				},
				Description: fmt.Sprintf("Priority changed from %s to %s", current.Priority, *input.Priority),
				CreatedAt:   updated.LastActivityAt,
			})
			if activityErr != nil {
				return fmt.Errorf("record activity: %w", activityErr)
			}
		}

		return nil
	})
	if err != nil {
		return domain.UserLead{}, err
	}

	s.log.InfoContext(ctx, "user lead updated",
		slog.String("user_id", identity.ID.String()),
		slog.String("user_lead_id", current.ID.String()),
	)

	return updated, nil
}
