package referral

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gigfrog/backend/internal/domain"
	"github.com/gigfrog/backend/pkg/ctxutil"
)

// UpdateReferral applies a partial update and appends exactly one activity
// entry describing it. When several things change in one call the wording is
// chosen by priority: notes, then a grown link set, then a shrunk one, then
// the generic fallback.
func (s *Service) UpdateReferral(ctx context.Context, input UpdateReferralInput) (domain.Referral, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.Referral{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return domain.Referral{}, err
	}

	current, err := s.referrals.GetByID(ctx, identity.ID, input.ReferralID)
	if err != nil {
		return domain.Referral{}, fmt.Errorf("get referral: %w", err)
	}

	if input.LinkedLeads != nil {
		if err := s.checkLinkedLeads(ctx, identity.ID, *input.LinkedLeads); err != nil {
			return domain.Referral{}, err
		}
	}

	description := activityDescription(current, input)

	var updated domain.Referral
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var updateErr error
		updated, updateErr = s.referrals.Update(txCtx, identity.ID, current.ID, domain.ReferralUpdateParams{
			Name:        input.Name,
			Company:     input.Company,
			Email:       input.Email,
			LinkedIn:    input.LinkedIn,
			Notes:       input.Notes,
			LinkedLeads: input.LinkedLeads,
		})
		if updateErr != nil {
			return fmt.Errorf("update referral: %w", updateErr)
		}

		appendErr := s.referrals.AppendActivity(txCtx, current.ID, domain.ReferralActivityEntry{
			Action:      domain.ReferralUpdated,
			Description: description,
			CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
		})
		if appendErr != nil {
			return fmt.Errorf("append activity: %w", appendErr)
		}

		return nil
	})
	if err != nil {
		return domain.Referral{}, err
	}

	s.log.InfoContext(ctx, "referral updated",
		slog.String("user_id", identity.ID.String()),
		slog.String("referral_id", current.ID.String()),
		slog.String("activity", description),
	)

	return updated, nil
}

// activityDescription picks the single history line for an update.
// When notes and links change together, the notes wording wins and the link
// change goes unrecorded.
func activityDescription(current domain.Referral, input UpdateReferralInput) string {
	if input.Notes != nil && *input.Notes != current.Notes {
		return "Notes updated"
	}
	if input.LinkedLeads != nil {
		switch {
		case len(*input.LinkedLeads) > len(current.LinkedLeads):
			return "Lead linked"
		case len(*input.LinkedLeads) < len(current.LinkedLeads):
			return "Lead unlinked"
		}
	}
	return "Referral updated"
}
