package referral

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/gigfrog/backend/internal/domain"
	"github.com/gigfrog/backend/pkg/ctxutil"
)

// CreateReferral creates a referral for the caller, seeding the activity
// history with a "created" entry. Linked leads must be the caller's own
// saved leads.
func (s *Service) CreateReferral(ctx context.Context, input CreateReferralInput) (domain.Referral, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.Referral{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return domain.Referral{}, err
	}

	if err := s.checkLinkedLeads(ctx, identity.ID, input.LinkedLeads); err != nil {
		return domain.Referral{}, err
	}

	var created domain.Referral
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.referrals.Create(txCtx, domain.Referral{
			UserID:      identity.ID,
			Name:        strings.TrimSpace(input.Name),
			Company:     strings.TrimSpace(input.Company),
			Email:       strings.TrimSpace(input.Email),
			LinkedIn:    strings.TrimSpace(input.LinkedIn),
			Notes:       input.Notes,
			LinkedLeads: input.LinkedLeads,
		})
		if createErr != nil {
			return fmt.Errorf("create referral: %w", createErr)
		}

		entry := domain.ReferralActivityEntry{
			Action:      domain.ReferralCreated,
			Description: "Referral created",
			CreatedAt:   created.CreatedAt,
		}
		if appendErr := s.referrals.AppendActivity(txCtx, created.ID, entry); appendErr != nil {
			return fmt.Errorf("seed activity history: %w", appendErr)
		}
		created.ActivityHistory = []domain.ReferralActivityEntry{entry}

		return nil
	})
	if err != nil {
		return domain.Referral{}, err
	}

	s.log.InfoContext(ctx, "referral created",
		slog.String("user_id", identity.ID.String()),
		slog.String("referral_id", created.ID.String()),
	)

	return created, nil
}

// checkLinkedLeads verifies every linked saved lead exists and belongs to
// the caller.
func (s *Service) checkLinkedLeads(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	for _, id := range ids {
		if _, err := s.userLeads.GetByID(ctx, userID, id); err != nil {
			return fmt.Errorf("linked lead %s: %w", id, err)
		}
	}
	return nil
}
