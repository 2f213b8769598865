package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gigfrog/backend/internal/domain"
	"github.com/gigfrog/backend/pkg/ctxutil"
)

type profileRepo interface {
	GetRole(ctx context.Context, userID uuid.UUID) (domain.UserRole, error)
}

// Service resolves bearer credentials into caller identities.
type Service struct {
	verifier *TokenVerifier
	profiles profileRepo
	log      *slog.Logger
}

// NewService creates an auth Service.
func NewService(log *slog.Logger, verifier *TokenVerifier, profiles profileRepo) *Service {
	return &Service{
		verifier: verifier,
		profiles: profiles,
		log:      log.With("service", "auth"),
	}
}

// Resolve validates a bearer token and returns the caller identity.
// The role comes from the user_profiles table; users without a profile
// row default to the "user" role.
func (s *Service) Resolve(ctx context.Context, token string) (ctxutil.Identity, error) {
	userID, email, err := s.verifier.Verify(token)
	if err != nil {
		return ctxutil.Identity{}, fmt.Errorf("%w: %s", domain.ErrUnauthorized, err)
	}

	role, err := s.profiles.GetRole(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return ctxutil.Identity{}, fmt.Errorf("get role: %w", err)
		}
		role = domain.UserRoleUser
	}

	return ctxutil.Identity{
		ID:    userID,
		Email: email,
		Role:  role.String(),
	}, nil
}
