package userlead

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gigfrog/backend/internal/domain"
	"github.com/gigfrog/backend/pkg/ctxutil"
)

// SaveLead adds a lead to the caller's pipeline in status "saved", seeding
// the status history and the activity timeline. Saving the same lead twice
// fails with domain.ErrAlreadyExists; the unique index decides the winner
// under concurrent saves.
func (s *Service) SaveLead(ctx context.Context, input SaveLeadInput) (domain.UserLead, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.UserLead{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return domain.UserLead{}, err
	}

	l, err := s.leads.GetByID(ctx, input.LeadID)
	if err != nil {
		return domain.UserLead{}, fmt.Errorf("get lead: %w", err)
	}
	if !l.VisibleTo(identity.ID) {
		return domain.UserLead{}, fmt.Errorf("lead %s: %w", input.LeadID, domain.ErrNotFound)
	}

	priority := domain.PriorityMedium
	if input.Priority != nil {
		priority = *input.Priority
	}

	var ul domain.UserLead
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		ul, createErr = s.userLeads.Create(txCtx, identity.ID, input.LeadID, priority, input.Notes)
		if createErr != nil {
			return fmt.Errorf("save lead: %w", createErr)
		}

		entry := domain.StatusEntry{
			Status:    domain.StatusSaved,
			Note:      "Lead saved",
			Timestamp: ul.SavedAt,
		}
		if appendErr := s.userLeads.AppendStatus(txCtx, ul.ID, entry); appendErr != nil {
			return fmt.Errorf("seed status history: %w", appendErr)
		}
		ul.StatusHistory = []domain.StatusEntry{entry}

		activityErr := s.activities.Append(txCtx, domain.Activity{
			UserID:      identity.ID,
			LeadID:      l.ID,
			UserLeadID:  &ul.ID,
			Action:      domain.ActivitySaved,
			Details:     map[string]string{"status": domain.StatusSaved.String()},
			Description: fmt.Sprintf("Saved %s at %s", l.Title, l.Company),
			CreatedAt:   ul.SavedAt,
		})
		if activityErr != nil {
			return fmt.Errorf("record activity: %w", activityErr)
		}

		return nil
	})
	if err != nil {
		return domain.UserLead{}, err
	}

	s.log.InfoContext(ctx, "lead saved",
		slog.String("user_id", identity.ID.String()),
		slog.String("lead_id", l.ID.String()),
		slog.String("user_lead_id", ul.ID.String()),
	)

	return ul, nil
}
