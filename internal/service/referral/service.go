// Package referral implements referral management. Every mutation appends
// exactly one activity-history entry; updates pick the entry's wording by a
// fixed priority: notes change, then lead linked, then lead unlinked, then a
// generic update.
package referral

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gigfrog/backend/internal/domain"
)

type referralRepo interface {
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Referral, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Referral, error)
	Create(ctx context.Context, ref domain.Referral) (domain.Referral, error)
	Update(ctx context.Context, userID, id uuid.UUID, params domain.ReferralUpdateParams) (domain.Referral, error)
	AppendActivity(ctx context.Context, referralID uuid.UUID, entry domain.ReferralActivityEntry) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ListActivity(ctx context.Context, referralID uuid.UUID) ([]domain.ReferralActivityEntry, error)
}

type userLeadRepo interface {
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.UserLead, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides referral operations.
type Service struct {
	referrals referralRepo
	userLeads userLeadRepo
	tx        txManager
	log       *slog.Logger
}

// NewService creates a new referral service.
func NewService(log *slog.Logger, referrals referralRepo, userLeads userLeadRepo, tx txManager) *Service {
	return &Service{
		referrals: referrals,
		userLeads: userLeads,
		tx:        tx,
		log:       log.With("service", "referral"),
	}
}
