package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/gigfrog/backend/internal/domain"
)

type profileRepoMock struct {
	GetRoleFunc func(ctx context.Context, userID uuid.UUID) (domain.UserRole, error)
}

func (m *profileRepoMock) GetRole(ctx context.Context, userID uuid.UUID) (domain.UserRole, error) {
	return m.GetRoleFunc(ctx, userID)
}

func TestResolve_AdminRole(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := NewService(slog.Default(), NewTokenVerifier(testSecret, ""), &profileRepoMock{
		GetRoleFunc: func(ctx context.Context, id uuid.UUID) (domain.UserRole, error) {
			if id != userID {
				t.Errorf("role lookup for wrong user: %v", id)
			}
			return domain.UserRoleAdmin, nil
		},
	})

	token := signToken(t, testSecret, validClaims(userID), jwt.SigningMethodHS256)

	identity, err := svc.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.ID != userID {
		t.Errorf("id: got %v, want %v", identity.ID, userID)
	}
	if !identity.IsAdmin() {
		t.Error("expected admin identity")
	}
}

func TestResolve_MissingProfileDefaultsToUser(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.Default(), NewTokenVerifier(testSecret, ""), &profileRepoMock{
		GetRoleFunc: func(ctx context.Context, id uuid.UUID) (domain.UserRole, error) {
			return "", fmt.Errorf("profile %s: %w", id, domain.ErrNotFound)
		},
	})

	token := signToken(t, testSecret, validClaims(uuid.New()), jwt.SigningMethodHS256)

	identity, err := svc.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.Role != domain.UserRoleUser.String() {
		t.Errorf("role: got %q, want %q", identity.Role, domain.UserRoleUser)
	}
}

func TestResolve_InvalidTokenIsUnauthorized(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.Default(), NewTokenVerifier(testSecret, ""), &profileRepoMock{
		GetRoleFunc: func(ctx context.Context, id uuid.UUID) (domain.UserRole, error) {
			t.Fatal("role must not be looked up for invalid tokens")
			return "", nil
		},
	})

	_, err := svc.Resolve(context.Background(), "garbage")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestResolve_ProfileLookupFailure(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.Default(), NewTokenVerifier(testSecret, ""), &profileRepoMock{
		GetRoleFunc: func(ctx context.Context, id uuid.UUID) (domain.UserRole, error) {
			return "", errors.New("connection reset")
		},
	})

	claims := validClaims(uuid.New())
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	token := signToken(t, testSecret, claims, jwt.SigningMethodHS256)

	if _, err := svc.Resolve(context.Background(), token); err == nil {
		t.Fatal("expected error when role lookup fails")
	}
}
