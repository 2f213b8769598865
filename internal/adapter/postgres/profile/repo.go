// Package profile implements the user-profile role lookup using PostgreSQL.
package profile

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/gigfrog/backend/internal/adapter/postgres"
	"github.com/gigfrog/backend/internal/domain"
)

// Repo provides profile lookups backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new profile repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getRoleSQL = `SELECT role FROM user_profiles WHERE id = $1`

// GetRole returns the role recorded for a user.
// Returns domain.ErrNotFound when no profile row exists; callers default to
// the plain user role.
func (r *Repo) GetRole(ctx context.Context, userID uuid.UUID) (domain.UserRole, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var role string
	if err := querier.QueryRow(ctx, getRoleSQL, userID).Scan(&role); err != nil {
		return "", postgres.MapError(err, "profile", userID)
	}

	return domain.UserRole(role), nil
}
