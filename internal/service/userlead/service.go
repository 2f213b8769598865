// Package userlead implements the saved-lead pipeline: saving and removing
// leads, priority/notes updates, and status changes constrained by the
// transition table. Every mutation writes an activity timeline entry in the
// same transaction.
package userlead

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	repo "github.com/gigfrog/backend/internal/adapter/postgres/userlead"
	"github.com/gigfrog/backend/internal/domain"
)

type userLeadRepo interface {
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.UserLead, error)
	GetByLeadID(ctx context.Context, userID, leadID uuid.UUID) (domain.UserLead, error)
	List(ctx context.Context, userID uuid.UUID, f repo.ListFilter) ([]domain.UserLead, error)
	Create(ctx context.Context, userID, leadID uuid.UUID, priority domain.Priority, notes string) (domain.UserLead, error)
	Update(ctx context.Context, userID, id uuid.UUID, params domain.UserLeadUpdateParams) (domain.UserLead, error)
	UpdateStatus(ctx context.Context, userID, id uuid.UUID, status domain.PipelineStatus, at time.Time) error
	AppendStatus(ctx context.Context, userLeadID uuid.UUID, entry domain.StatusEntry) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type leadRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error)
}

type activityRepo interface {
	Append(ctx context.Context, a domain.Activity) error
	ListByUserLead(ctx context.Context, userID, userLeadID uuid.UUID) ([]domain.Activity, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides saved-lead pipeline operations.
type Service struct {
	userLeads  userLeadRepo
	leads      leadRepo
	activities activityRepo
	tx         txManager
	log        *slog.Logger
}

// NewService creates a new saved-lead service.
func NewService(
	log *slog.Logger,
	userLeads userLeadRepo,
	leads leadRepo,
	activities activityRepo,
	tx txManager,
) *Service {
	return &Service{
		userLeads:  userLeads,
		leads:      leads,
		activities: activities,
		tx:         tx,
		log:        log.With("service", "userlead"),
	}
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
