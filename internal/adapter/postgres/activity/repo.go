// Package activity implements the append-only saved-lead timeline
// repository using PostgreSQL.
package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/gigfrog/backend/internal/adapter/postgres"
	"github.com/gigfrog/backend/internal/domain"
)

// Repo provides activity persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new activity repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const insertSQL = `
INSERT INTO activities (id, user_id, lead_id, user_lead_id, action, details, description, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const listByUserLeadSQL = `
SELECT id, user_id, lead_id, user_lead_id, action, details, description, created_at
FROM activities
WHERE user_lead_id = $1 AND user_id = $2
ORDER BY created_at DESC`

// Append records one timeline event. Events are never edited or removed.
func (r *Repo) Append(ctx context.Context, a domain.Activity) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}

	details := a.Details
	if details == nil {
		details = map[string]string{}
	}
	rawDetails, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("marshal activity details: %w", err)
	}

	_, err = querier.Exec(ctx, insertSQL,
		a.ID, a.UserID, a.LeadID, a.UserLeadID, a.Action.String(), rawDetails, a.Description, a.CreatedAt)
	if err != nil {
		return postgres.MapError(err, "activity", a.ID)
	}

	return nil
}

// ListByUserLead returns a saved lead's timeline, newest first, scoped to
// the owner.
func (r *Repo) ListByUserLead(ctx context.Context, userID, userLeadID uuid.UUID) ([]domain.Activity, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByUserLeadSQL, userLeadID, userID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	activities, err := pgx.CollectRows(rows, scanActivity)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	if activities == nil {
		activities = []domain.Activity{}
	}

	return activities, nil
}

func scanActivity(row pgx.CollectableRow) (domain.Activity, error) {
	var (
		a          domain.Activity
		action     string
		rawDetails []byte
	)

	err := row.Scan(
		&a.ID, &a.UserID, &a.LeadID, &a.UserLeadID, &action, &rawDetails, &a.Description, &a.CreatedAt,
	)
	if err != nil {
		return domain.Activity{}, err
	}

	a.Action = domain.ActivityAction(action)
	if err := json.Unmarshal(rawDetails, &a.Details); err != nil {
		return domain.Activity{}, fmt.Errorf("unmarshal activity details: %w", err)
	}

	return a, nil
}
