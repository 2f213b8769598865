// Package publish promotes private leads to global visibility.
package publish

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	repo "github.com/gigfrog/backend/internal/adapter/postgres/userlead"
	"github.com/gigfrog/backend/internal/domain"
)

// Publish modes.
const (
	ModeSingle = "single"
	ModeAll    = "all"
)

type leadRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error)
	Promote(ctx context.Context, id, sharedBy uuid.UUID, at time.Time) (bool, error)
	PromoteSanitized(ctx context.Context, id, sharedBy uuid.UUID, at time.Time) (bool, error)
}

type userLeadRepo interface {
	GetByLeadID(ctx context.Context, userID, leadID uuid.UUID) (domain.UserLead, error)
	List(ctx context.Context, userID uuid.UUID, f repo.ListFilter) ([]domain.UserLead, error)
}

// Service promotes leads to community visibility.
type Service struct {
	leads     leadRepo
	userLeads userLeadRepo
	log       *slog.Logger
}

// NewService creates a new publish service.
func NewService(log *slog.Logger, leads leadRepo, userLeads userLeadRepo) *Service {
	return &Service{
		leads:     leads,
		userLeads: userLeads,
		log:       log.With("service", "publish"),
	}
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
