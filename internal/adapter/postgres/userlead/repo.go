// Package userlead implements the saved-lead (pipeline) repository using
// PostgreSQL. Status history lives in its own append-only table and is
// loaded alongside the parent row.
package userlead

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/gigfrog/backend/internal/adapter/postgres"
	"github.com/gigfrog/backend/internal/domain"
)

// ListFilter narrows and orders a user's saved leads.
type ListFilter struct {
	Status   *domain.PipelineStatus
	Priority *domain.Priority
	SortBy   string
	Order    string
}

var sortColumns = map[string]string{
	"lastActivityAt": "last_activity_at",
	"savedAt":        "saved_at",
	"createdAt":      "created_at",
	"priority":       "priority",
	"status":         "current_status",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides saved-lead persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new saved-lead repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const userLeadColumns = `id, user_id, lead_id, current_status, priority, notes,
       saved_at, applied_at, interviewing_at, offer_at,
       last_activity_at, created_at, updated_at`

const getByIDSQL = `
SELECT id, user_id, lead_id, current_status, priority, notes,
       saved_at, applied_at, interviewing_at, offer_at,
       last_activity_at, created_at, updated_at
FROM user_leads
WHERE id = $1 AND user_id = $2`

const getByLeadIDSQL = `
SELECT id, user_id, lead_id, current_status, priority, notes,
       saved_at, applied_at, interviewing_at, offer_at,
       last_activity_at, created_at, updated_at
FROM user_leads
WHERE lead_id = $1 AND user_id = $2`

const insertSQL = `
INSERT INTO user_leads (
    id, user_id, lead_id, current_status, priority, notes,
    saved_at, last_activity_at, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $7, $7, $7)`

const deleteSQL = `DELETE FROM user_leads WHERE id = $1 AND user_id = $2`

// updateStatusSQL sets the new status and stamps the matching milestone only
// if it has never been set. Re-entering a status later must not move it.
const updateStatusSQL = `
UPDATE user_leads
SET current_status = $3,
    applied_at = CASE WHEN $3 = 'applied' THEN COALESCE(applied_at, $4) ELSE applied_at END,
    interviewing_at = CASE WHEN $3 = 'interviewing' THEN COALESCE(interviewing_at, $4) ELSE interviewing_at END,
    offer_at = CASE WHEN $3 = 'offer' THEN COALESCE(offer_at, $4) ELSE offer_at END,
    last_activity_at = $4,
    updated_at = $4
WHERE id = $1 AND user_id = $2`

const appendHistorySQL = `
INSERT INTO user_lead_status_history (user_lead_id, status, note, created_at)
VALUES ($1, $2, $3, $4)`

const historyByIDsSQL = `
SELECT user_lead_id, status, note, created_at
FROM user_lead_status_history
WHERE user_lead_id = ANY($1)
ORDER BY id`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a saved lead with its status history, scoped to the owner.
func (r *Repo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.UserLead, error) {
	return r.getOne(ctx, getByIDSQL, id, userID)
}

// GetByLeadID returns the caller's saved instance of the given lead, if any.
func (r *Repo) GetByLeadID(ctx context.Context, userID, leadID uuid.UUID) (domain.UserLead, error) {
	return r.getOne(ctx, getByLeadIDSQL, leadID, userID)
}

func (r *Repo) getOne(ctx context.Context, query string, key, userID uuid.UUID) (domain.UserLead, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, query, key, userID)
	if err != nil {
		return domain.UserLead{}, postgres.MapError(err, "user lead", key)
	}
	defer rows.Close()

	ul, err := pgx.CollectOneRow(rows, scanUserLead)
	if err != nil {
		return domain.UserLead{}, postgres.MapError(err, "user lead", key)
	}

	histories, err := r.loadHistories(ctx, []uuid.UUID{ul.ID})
	if err != nil {
		return domain.UserLead{}, err
	}
	ul.StatusHistory = histories[ul.ID]

	return ul, nil
}

// List returns the caller's saved leads with histories attached.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, f ListFilter) ([]domain.UserLead, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	b := psql.Select(userLeadColumns).
		From("user_leads").
		Where(sq.Eq{"user_id": userID}).
		OrderBy(orderClause(f))
	if f.Status != nil {
		b = b.Where(sq.Eq{"current_status": f.Status.String()})
	}
	if f.Priority != nil {
		b = b.Where(sq.Eq{"priority": f.Priority.String()})
	}

	listSQL, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user lead list query: %w", err)
	}

	rows, err := querier.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, fmt.Errorf("list user leads: %w", err)
	}
	defer rows.Close()

	userLeads, err := pgx.CollectRows(rows, scanUserLead)
	if err != nil {
		return nil, fmt.Errorf("list user leads: %w", err)
	}
	if userLeads == nil {
		return []domain.UserLead{}, nil
	}

	ids := make([]uuid.UUID, len(userLeads))
	for i := range userLeads {
		ids[i] = userLeads[i].ID
	}

	histories, err := r.loadHistories(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range userLeads {
		userLeads[i].StatusHistory = histories[userLeads[i].ID]
	}

	return userLeads, nil
}

func orderClause(f ListFilter) string {
	col, ok := sortColumns[f.SortBy]
	if !ok {
		col = "last_activity_at"
	}
	dir := "DESC"
	if f.Order == "asc" {
		dir = "ASC"
	}
	return col + " " + dir
}

// loadHistories batch-loads status history for the given saved leads,
// preserving insertion order within each lead.
func (r *Repo) loadHistories(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]domain.StatusEntry, error) {
	if len(ids) == 0 {
		return map[uuid.UUID][]domain.StatusEntry{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, historyByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("load status histories: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]domain.StatusEntry, len(ids))
	for rows.Next() {
		var (
			ownerID uuid.UUID
			status  string
			entry   domain.StatusEntry
		)
		if err := rows.Scan(&ownerID, &status, &entry.Note, &entry.Timestamp); err != nil {
			return nil, fmt.Errorf("scan status history entry: %w", err)
		}
		entry.Status = domain.PipelineStatus(status)
		out[ownerID] = append(out[ownerID], entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status histories: %w", err)
	}

	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a saved lead. A duplicate (user, lead) pair results in
// domain.ErrAlreadyExists via the unique index; under concurrent saves the
// database picks the winner.
func (r *Repo) Create(ctx context.Context, userID, leadID uuid.UUID, priority domain.Priority, notes string) (domain.UserLead, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	id := uuid.New()

	_, err := querier.Exec(ctx, insertSQL,
		id, userID, leadID, domain.StatusSaved.String(), priority.String(), notes, now)
	if err != nil {
		return domain.UserLead{}, postgres.MapError(err, "user lead", id)
	}

	return domain.UserLead{
		ID:             id,
		UserID:         userID,
		LeadID:         leadID,
		CurrentStatus:  domain.StatusSaved,
		Priority:       priority,
		Notes:          notes,
		SavedAt:        now,
		LastActivityAt: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// Update applies a priority/notes update and bumps last_activity_at.
func (r *Repo) Update(ctx context.Context, userID, id uuid.UUID, params domain.UserLeadUpdateParams) (domain.UserLead, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	b := psql.Update("user_leads").
		Set("last_activity_at", now).
		Set("updated_at", now).
		Where(sq.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING " + userLeadColumns)
	if params.Priority != nil {
		b = b.Set("priority", params.Priority.String())
	}
	if params.Notes != nil {
		b = b.Set("notes", *params.Notes)
	}

	updateSQL, args, err := b.ToSql()
	if err != nil {
		return domain.UserLead{}, fmt.Errorf("build user lead update query: %w", err)
	}

	rows, err := querier.Query(ctx, updateSQL, args...)
	if err != nil {
		return domain.UserLead{}, postgres.MapError(err, "user lead", id)
	}
	defer rows.Close()

	ul, err := pgx.CollectOneRow(rows, scanUserLead)
	if err != nil {
		return domain.UserLead{}, postgres.MapError(err, "user lead", id)
	}

	histories, err := r.loadHistories(ctx, []uuid.UUID{ul.ID})
	if err != nil {
		return domain.UserLead{}, err
	}
	ul.StatusHistory = histories[ul.ID]

	return ul, nil
}

// UpdateStatus moves a saved lead to a new status. Milestone timestamps
// (applied/interviewing/offer) are stamped only on first entry.
// Returns domain.ErrNotFound if the saved lead is absent or owned by someone
// else. Legality of the transition is the service's concern.
func (r *Repo) UpdateStatus(ctx context.Context, userID, id uuid.UUID, status domain.PipelineStatus, at time.Time) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateStatusSQL, id, userID, status.String(), at)
	if err != nil {
		return postgres.MapError(err, "user lead", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user lead %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// AppendStatus appends one history entry. Entries are immutable once written.
func (r *Repo) AppendStatus(ctx context.Context, userLeadID uuid.UUID, entry domain.StatusEntry) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, appendHistorySQL,
		userLeadID, entry.Status.String(), entry.Note, entry.Timestamp)
	if err != nil {
		return postgres.MapError(err, "status history", userLeadID)
	}

	return nil
}

// Delete removes a saved lead; its history cascades.
func (r *Repo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id, userID)
	if err != nil {
		return postgres.MapError(err, "user lead", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user lead %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanUserLead(row pgx.CollectableRow) (domain.UserLead, error) {
	var (
		ul       domain.UserLead
		status   string
		priority string
	)

	err := row.Scan(
		&ul.ID, &ul.UserID, &ul.LeadID, &status, &priority, &ul.Notes,
		&ul.SavedAt, &ul.AppliedAt, &ul.InterviewingAt, &ul.OfferAt,
		&ul.LastActivityAt, &ul.CreatedAt, &ul.UpdatedAt,
	)
	if err != nil {
		return domain.UserLead{}, err
	}

	ul.CurrentStatus = domain.PipelineStatus(status)
	ul.Priority = domain.Priority(priority)

	return ul, nil
}
