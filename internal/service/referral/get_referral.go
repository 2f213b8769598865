package referral

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gigfrog/backend/internal/domain"
	"github.com/gigfrog/backend/pkg/ctxutil"
)

// GetReferral returns one referral by id, scoped to the owner.
func (s *Service) GetReferral(ctx context.Context, referralID uuid.UUID) (domain.Referral, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.Referral{}, domain.ErrUnauthorized
	}
	if referralID == uuid.Nil {
		return domain.Referral{}, domain.NewValidationError("id", "required")
	}

	ref, err := s.referrals.GetByID(ctx, identity.ID, referralID)
	if err != nil {
		return domain.Referral{}, fmt.Errorf("get referral: %w", err)
	}

	return ref, nil
}

// ListReferrals returns the caller's referrals, newest first.
func (s *Service) ListReferrals(ctx context.Context) ([]domain.Referral, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	refs, err := s.referrals.List(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("list referrals: %w", err)
	}

	return refs, nil
}

// GetActivity returns a referral's history in insertion order.
func (s *Service) GetActivity(ctx context.Context, referralID uuid.UUID) ([]domain.ReferralActivityEntry, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if referralID == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	// Ownership check first so foreign referrals look absent.
	if _, err := s.referrals.GetByID(ctx, identity.ID, referralID); err != nil {
		return nil, fmt.Errorf("get referral: %w", err)
	}

	entries, err := s.referrals.ListActivity(ctx, referralID)
	if err != nil {
		return nil, fmt.Errorf("list referral activity: %w", err)
	}

	return entries, nil
}

// DeleteReferral removes a referral. Owner-only.
func (s *Service) DeleteReferral(ctx context.Context, referralID uuid.UUID) error {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if referralID == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	if err := s.referrals.Delete(ctx, identity.ID, referralID); err != nil {
		return fmt.Errorf("delete referral: %w", err)
	}

	s.log.InfoContext(ctx, "referral deleted",
		slog.String("user_id", identity.ID.String()),
		slog.String("referral_id", referralID.String()),
	)

	return nil
}
