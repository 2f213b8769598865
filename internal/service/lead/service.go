// Package lead implements lead CRUD with the visibility rules:
// global and system-owned leads are public, private leads belong to their
// creator, and admins can touch anything.
package lead

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	repo "github.com/gigfrog/backend/internal/adapter/postgres/lead"
	"github.com/gigfrog/backend/internal/domain"
)

type leadRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error)
	List(ctx context.Context, f repo.ListFilter) ([]domain.Lead, int, error)
	Create(ctx context.Context, l domain.Lead) (domain.Lead, error)
	Update(ctx context.Context, id uuid.UUID, params domain.LeadUpdateParams) (domain.Lead, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service provides lead management operations.
type Service struct {
	leads leadRepo
	log   *slog.Logger

	defaultPageSize int
	maxPageSize     int
}

// NewService creates a new Lead service.
func NewService(log *slog.Logger, leads leadRepo, defaultPageSize, maxPageSize int) *Service {
	return &Service{
		leads:           leads,
		log:             log.With("service", "lead"),
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
