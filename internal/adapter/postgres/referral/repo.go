// Package referral implements the referral repository using PostgreSQL.
// Linked leads live in a join table and are replaced as a full set; activity
// history is append-only and returned in insertion order.
package referral

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

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides referral persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new referral repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const referralColumns = `id, user_id, name, company, email, linkedin, notes,
       created_at, updated_at`

const getByIDSQL = `
SELECT id, user_id, name, company, email, linkedin, notes,
       created_at, updated_at
FROM referrals
WHERE id = $1 AND user_id = $2`

const listSQL = `
SELECT id, user_id, name, company, email, linkedin, notes,
       created_at, updated_at
FROM referrals
WHERE user_id = $1
ORDER BY created_at DESC`

const insertSQL = `
INSERT INTO referrals (id, user_id, name, company, email, linkedin, notes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`

const deleteSQL = `DELETE FROM referrals WHERE id = $1 AND user_id = $2`

const linkedLeadsByIDsSQL = `
SELECT referral_id, user_lead_id
FROM referral_leads
WHERE referral_id = ANY($1)`

const deleteLinksSQL = `DELETE FROM referral_leads WHERE referral_id = $1`

const insertLinkSQL = `
INSERT INTO referral_leads (referral_id, user_lead_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING`

const firstByUserLeadSQL = `
SELECT r.id, r.user_id, r.name, r.company, r.email, r.linkedin, r.notes,
       r.created_at, r.updated_at
FROM referrals r
JOIN referral_leads rl ON rl.referral_id = r.id
WHERE rl.user_lead_id = $1 AND r.user_id = $2
ORDER BY r.created_at
LIMIT 1`

const appendActivitySQL = `
INSERT INTO referral_activity (referral_id, action, description, created_at)
VALUES ($1, $2, $3, $4)`

const activityByIDsSQL = `
SELECT referral_id, action, description, created_at
FROM referral_activity
WHERE referral_id = ANY($1)
ORDER BY id`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a referral with linked leads and activity history,
// scoped to the owner.
func (r *Repo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Referral, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getByIDSQL, id, userID)
	if err != nil {
		return domain.Referral{}, postgres.MapError(err, "referral", id)
	}
	defer rows.Close()

	ref, err := pgx.CollectOneRow(rows, scanReferral)
	if err != nil {
		return domain.Referral{}, postgres.MapError(err, "referral", id)
	}

	if err := r.attachChildren(ctx, []domain.Referral{ref}); err != nil {
		return domain.Referral{}, err
	}

	return ref, nil
}

// List returns the caller's referrals, newest first, with children attached.
func (r *Repo) List(ctx context.Context, userID uuid.UUID) ([]domain.Referral, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list referrals: %w", err)
	}
	defer rows.Close()

	refs, err := pgx.CollectRows(rows, scanReferral)
	if err != nil {
		return nil, fmt.Errorf("list referrals: %w", err)
	}
	if refs == nil {
		return []domain.Referral{}, nil
	}

	if err := r.attachChildren(ctx, refs); err != nil {
		return nil, err
	}

	return refs, nil
}

// FirstByUserLead returns the oldest referral linked to the given saved
// lead, or domain.ErrNotFound if none is linked. Used by the pipeline view.
func (r *Repo) FirstByUserLead(ctx context.Context, userID, userLeadID uuid.UUID) (domain.Referral, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, firstByUserLeadSQL, userLeadID, userID)
	if err != nil {
		return domain.Referral{}, postgres.MapError(err, "referral", userLeadID)
	}
	defer rows.Close()

	ref, err := pgx.CollectOneRow(rows, scanReferral)
	if err != nil {
		return domain.Referral{}, postgres.MapError(err, "referral", userLeadID)
	}

	return ref, nil
}

// ListActivity returns a referral's history in insertion order.
func (r *Repo) ListActivity(ctx context.Context, referralID uuid.UUID) ([]domain.ReferralActivityEntry, error) {
	entries, err := r.loadActivity(ctx, []uuid.UUID{referralID})
	if err != nil {
		return nil, err
	}

	out := entries[referralID]
	if out == nil {
		out = []domain.ReferralActivityEntry{}
	}

	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a referral and its initial lead links.
func (r *Repo) Create(ctx context.Context, ref domain.Referral) (domain.Referral, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	if ref.ID == uuid.Nil {
		ref.ID = uuid.New()
	}
	ref.CreatedAt = now
	ref.UpdatedAt = now

	_, err := querier.Exec(ctx, insertSQL,
		ref.ID, ref.UserID, ref.Name, ref.Company, ref.Email, ref.LinkedIn, ref.Notes, now)
	if err != nil {
		return domain.Referral{}, postgres.MapError(err, "referral", ref.ID)
	}

	for _, ulID := range ref.LinkedLeads {
		if _, err := querier.Exec(ctx, insertLinkSQL, ref.ID, ulID); err != nil {
			return domain.Referral{}, postgres.MapError(err, "referral link", ref.ID)
		}
	}
	if ref.LinkedLeads == nil {
		ref.LinkedLeads = []uuid.UUID{}
	}

	return ref, nil
}

// Update applies a partial update. A non-nil LinkedLeads replaces the full
// link set. Returns the updated referral with children attached.
func (r *Repo) Update(ctx context.Context, userID, id uuid.UUID, params domain.ReferralUpdateParams) (domain.Referral, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	b := psql.Update("referrals").
		Set("updated_at", time.Now().UTC().Truncate(time.Microsecond)).
		Where(sq.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING " + referralColumns)
	if params.Name != nil {
		b = b.Set("name", *params.Name)
	}
	if params.Company != nil {
		b = b.Set("company", *params.Company)
	}
	if params.Email != nil {
		b = b.Set("email", *params.Email)
	}
	if params.LinkedIn != nil {
		b = b.Set("linkedin", *params.LinkedIn)
	}
	if params.Notes != nil {
		b = b.Set("notes", *params.Notes)
	}

	updateSQL, args, err := b.ToSql()
	if err != nil {
		return domain.Referral{}, fmt.Errorf("build referral update query: %w", err)
	}

	rows, err := querier.Query(ctx, updateSQL, args...)
	if err != nil {
		return domain.Referral{}, postgres.MapError(err, "referral", id)
	}
	defer rows.Close()

	ref, err := pgx.CollectOneRow(rows, scanReferral)
	if err != nil {
		return domain.Referral{}, postgres.MapError(err, "referral", id)
	}

	if params.LinkedLeads != nil {
		if err := r.replaceLinks(ctx, id, *params.LinkedLeads); err != nil {
			return domain.Referral{}, err
		}
	}

	if err := r.attachChildren(ctx, []domain.Referral{ref}); err != nil {
		return domain.Referral{}, err
	}

	return ref, nil
}

// AppendActivity appends one history entry.
func (r *Repo) AppendActivity(ctx context.Context, referralID uuid.UUID, entry domain.ReferralActivityEntry) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, appendActivitySQL,
		referralID, entry.Action.String(), entry.Description, entry.CreatedAt)
	if err != nil {
		return postgres.MapError(err, "referral activity", referralID)
	}

	return nil
}

// Delete removes a referral; links and history cascade.
func (r *Repo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id, userID)
	if err != nil {
		return postgres.MapError(err, "referral", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("referral %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *Repo) replaceLinks(ctx context.Context, referralID uuid.UUID, userLeadIDs []uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteLinksSQL, referralID); err != nil {
		return postgres.MapError(err, "referral link", referralID)
	}
	for _, ulID := range userLeadIDs {
		if _, err := querier.Exec(ctx, insertLinkSQL, referralID, ulID); err != nil {
			return postgres.MapError(err, "referral link", referralID)
		}
	}

	return nil
}

// ---------------------------------------------------------------------------
// Child loading
// ---------------------------------------------------------------------------

// attachChildren fills LinkedLeads and ActivityHistory in place.
func (r *Repo) attachChildren(ctx context.Context, refs []domain.Referral) error {
	ids := make([]uuid.UUID, len(refs))
	for i := range refs {
		ids[i] = refs[i].ID
	}

	links, err := r.loadLinks(ctx, ids)
	if err != nil {
		return err
	}
	activity, err := r.loadActivity(ctx, ids)
	if err != nil {
		return err
	}

	for i := range refs {
		refs[i].LinkedLeads = links[refs[i].ID]
		if refs[i].LinkedLeads == nil {
			refs[i].LinkedLeads = []uuid.UUID{}
		}
		refs[i].ActivityHistory = activity[refs[i].ID]
		if refs[i].ActivityHistory == nil {
			refs[i].ActivityHistory = []domain.ReferralActivityEntry{}
		}
	}

	return nil
}

func (r *Repo) loadLinks(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, linkedLeadsByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("load referral links: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]uuid.UUID, len(ids))
	for rows.Next() {
		var referralID, userLeadID uuid.UUID
		if err := rows.Scan(&referralID, &userLeadID); err != nil {
			return nil, fmt.Errorf("scan referral link: %w", err)
		}
		out[referralID] = append(out[referralID], userLeadID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate referral links: %w", err)
	}

	return out, nil
}

func (r *Repo) loadActivity(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]domain.ReferralActivityEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, activityByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("load referral activity: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]domain.ReferralActivityEntry, len(ids))
	for rows.Next() {
		var (
			referralID uuid.UUID
			action     string
			entry      domain.ReferralActivityEntry
		)
		if err := rows.Scan(&referralID, &action, &entry.Description, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan referral activity entry: %w", err)
		}
		entry.Action = domain.ReferralAction(action)
		out[referralID] = append(out[referralID], entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate referral activity: %w", err)
	}

	return out, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanReferral(row pgx.CollectableRow) (domain.Referral, error) {
	var ref domain.Referral

	err := row.Scan(
		&ref.ID, &ref.UserID, &ref.Name, &ref.Company, &ref.Email, &ref.LinkedIn, &ref.Notes,
		&ref.CreatedAt, &ref.UpdatedAt,
	)
	if err != nil {
		return domain.Referral{}, err
	}

	return ref, nil
}
