// Package lead implements the Lead repository using PostgreSQL.
// The listing query is built dynamically with squirrel; everything else is
// raw SQL.
package lead

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/gigfrog/backend/internal/adapter/postgres"
	"github.com/gigfrog/backend/internal/domain"
)

// Repo provides lead persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new lead repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// leadColumns is the canonical column order shared by every lead query and
// the scan helpers below.
var leadColumns = []string{
	"id", "title", "company", "location", "team",
	"comp_min", "comp_max", "comp_currency", "comp_raw",
	"contact_name", "contact_email", "additional_emails", "additional_links",
	"contact_linkedin", "source_link", "source_application_link",
	"date_posted", "industry",
	"is_global", "created_by", "shared_by", "shared_at",
	"created_at", "updated_at",
}

const getByIDSQL = `
SELECT id, title, company, location, team,
       comp_min, comp_max, comp_currency, comp_raw,
       contact_name, contact_email, additional_emails, additional_links,
       contact_linkedin, source_link, source_application_link,
       date_posted, industry,
       is_global, created_by, shared_by, shared_at,
       created_at, updated_at
FROM leads
WHERE id = $1`

const getByIDsSQL = `
SELECT id, title, company, location, team,
       comp_min, comp_max, comp_currency, comp_raw,
       contact_name, contact_email, additional_emails, additional_links,
       contact_linkedin, source_link, source_application_link,
       date_posted, industry,
       is_global, created_by, shared_by, shared_at,
       created_at, updated_at
FROM leads
WHERE id = ANY($1)`

const insertSQL = `
INSERT INTO leads (
    id, title, company, location, team,
    comp_min, comp_max, comp_currency, comp_raw,
    contact_name, contact_email, additional_emails, additional_links,
    contact_linkedin, source_link, source_application_link,
    date_posted, industry,
    is_global, created_by, shared_by, shared_at,
    created_at, updated_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
    $15, $16, $17, $18, $19, $20, $21, $22, $23, $24
)`

const deleteSQL = `DELETE FROM leads WHERE id = $1`

// promoteSQL makes a lead global. The is_global guard makes re-publishing an
// already-global lead a no-op that touches nothing.
const promoteSQL = `
UPDATE leads
SET is_global = true,
    created_by = $2,
    shared_by = $3,
    shared_at = $4,
    updated_at = $4
WHERE id = $1 AND is_global = false`

// promoteSanitizedSQL is the bulk-publish variant: it additionally strips
// contact data and drops additional links.
const promoteSanitizedSQL = `
UPDATE leads
SET is_global = true,
    created_by = $2,
    shared_by = $3,
    shared_at = $4,
    updated_at = $4,
    contact_name = '',
    contact_email = '',
    additional_emails = '{}',
    additional_links = '[]',
    contact_linkedin = ''
WHERE id = $1 AND is_global = false`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a lead by primary key. Visibility is the caller's concern.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getByIDSQL, id)
	if err != nil {
		return domain.Lead{}, postgres.MapError(err, "lead", id)
	}
	defer rows.Close()

	l, err := pgx.CollectOneRow(rows, scanLead)
	if err != nil {
		return domain.Lead{}, postgres.MapError(err, "lead", id)
	}

	return l, nil
}

// GetByIDs batch-loads leads keyed by id. Missing ids are simply absent.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Lead, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]domain.Lead{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("get leads by ids: %w", err)
	}
	defer rows.Close()

	leads, err := pgx.CollectRows(rows, scanLead)
	if err != nil {
		return nil, fmt.Errorf("get leads by ids: %w", err)
	}

	out := make(map[uuid.UUID]domain.Lead, len(leads))
	for _, l := range leads {
		out[l.ID] = l
	}

	return out, nil
}

// List returns a page of leads visible to the filter's viewer, plus the
// total count matching the predicate.
func (r *Repo) List(ctx context.Context, f ListFilter) ([]domain.Lead, int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	countSQL, countArgs, err := f.countQuery().ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	listSQL, listArgs, err := f.selectQuery().ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := querier.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads, err := pgx.CollectRows(rows, scanLead)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}

	if leads == nil {
		leads = []domain.Lead{}
	}

	return leads, total, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new lead and returns it with generated fields filled in.
func (r *Repo) Create(ctx context.Context, l domain.Lead) (domain.Lead, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	l.CreatedAt = now
	l.UpdatedAt = now

	links, err := marshalLinks(l.AdditionalLinks)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("marshal additional links: %w", err)
	}

	emails := l.AdditionalEmails
	if emails == nil {
		emails = []string{}
	}

	_, err = querier.Exec(ctx, insertSQL,
		l.ID, l.Title, l.Company, l.Location, l.Team,
		l.Compensation.Min, l.Compensation.Max, l.Compensation.Currency, l.Compensation.Raw,
		l.ContactName, l.ContactEmail, emails, links,
		l.ContactLinkedIn, l.SourceLink, l.SourceApplicationLink,
		l.DatePosted, l.Industry,
		l.IsGlobal, l.CreatedBy, l.SharedBy, l.SharedAt,
		l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return domain.Lead{}, postgres.MapError(err, "lead", l.ID)
	}

	return l, nil
}

// Update applies a partial update and returns the updated lead.
// Returns domain.ErrNotFound if the lead does not exist.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params domain.LeadUpdateParams) (domain.Lead, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	b := psql.Update("leads").
		Set("updated_at", time.Now().UTC().Truncate(time.Microsecond)).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + getReturning())

	b = applyUpdateParams(b, params)

	updateSQL, args, err := b.ToSql()
	if err != nil {
		return domain.Lead{}, fmt.Errorf("build update query: %w", err)
	}

	rows, err := querier.Query(ctx, updateSQL, args...)
	if err != nil {
		return domain.Lead{}, postgres.MapError(err, "lead", id)
	}
	defer rows.Close()

	l, err := pgx.CollectOneRow(rows, scanLead)
	if err != nil {
		return domain.Lead{}, postgres.MapError(err, "lead", id)
	}

	return l, nil
}

// Delete removes a lead. Saved instances cascade.
// Returns domain.ErrNotFound if the lead does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "lead", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("lead %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Promote makes a lead global, attributing it to the community owner and
// recording who shared it. Reports whether a row actually changed; false
// means the lead was already global.
func (r *Repo) Promote(ctx context.Context, id, sharedBy uuid.UUID, at time.Time) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, promoteSQL, id, domain.CreatorCommunity, sharedBy, at)
	if err != nil {
		return false, postgres.MapError(err, "lead", id)
	}

	return tag.RowsAffected() > 0, nil
}

// PromoteSanitized is Promote plus contact stripping, used by bulk publish.
func (r *Repo) PromoteSanitized(ctx context.Context, id, sharedBy uuid.UUID, at time.Time) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, promoteSanitizedSQL, id, domain.CreatorCommunity, sharedBy, at)
	if err != nil {
		return false, postgres.MapError(err, "lead", id)
	}

	return tag.RowsAffected() > 0, nil
}

// applyUpdateParams adds a SET clause per non-nil field.
func applyUpdateParams(b sq.UpdateBuilder, p domain.LeadUpdateParams) sq.UpdateBuilder {
	if p.Title != nil {
		b = b.Set("title", *p.Title)
	}
	if p.Company != nil {
		b = b.Set("company", *p.Company)
	}
	if p.Location != nil {
		b = b.Set("location", *p.Location)
	}
	if p.Team != nil {
		b = b.Set("team", *p.Team)
	}
	if p.Compensation != nil {
		b = b.Set("comp_min", p.Compensation.Min).
			Set("comp_max", p.Compensation.Max).
			Set("comp_currency", p.Compensation.Currency).
			Set("comp_raw", p.Compensation.Raw)
	}
	if p.ContactName != nil {
		b = b.Set("contact_name", *p.ContactName)
	}
	if p.ContactEmail != nil {
		b = b.Set("contact_email", *p.ContactEmail)
	}
	if p.AdditionalEmails != nil {
		emails := *p.AdditionalEmails
		if emails == nil {
			emails = []string{}
		}
		b = b.Set("additional_emails", emails)
	}
	if p.AdditionalLinks != nil {
		// marshalLinks never fails for the Link shape
		links, _ := marshalLinks(*p.AdditionalLinks)
		b = b.Set("additional_links", links)
	}
	if p.ContactLinkedIn != nil {
		b = b.Set("contact_linkedin", *p.ContactLinkedIn)
	}
	if p.SourceLink != nil {
		b = b.Set("source_link", *p.SourceLink)
	}
	if p.SourceApplicationLink != nil {
		b = b.Set("source_application_link", *p.SourceApplicationLink)
	}
	if p.DatePosted != nil {
		b = b.Set("date_posted", *p.DatePosted)
	}
	if p.Industry != nil {
		b = b.Set("industry", *p.Industry)
	}
	if p.IsGlobal != nil {
		b = b.Set("is_global", *p.IsGlobal)
	}
	if p.CreatedBy != nil {
		b = b.Set("created_by", *p.CreatedBy)
	}
	return b
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func getReturning() string {
	out := ""
	for i, c := range leadColumns {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out
}

// scanLead scans one row in leadColumns order.
func scanLead(row pgx.CollectableRow) (domain.Lead, error) {
	var (
		l        domain.Lead
		rawLinks []byte
	)

	err := row.Scan(
		&l.ID, &l.Title, &l.Company, &l.Location, &l.Team,
		&l.Compensation.Min, &l.Compensation.Max, &l.Compensation.Currency, &l.Compensation.Raw,
		&l.ContactName, &l.ContactEmail, &l.AdditionalEmails, &rawLinks,
		&l.ContactLinkedIn, &l.SourceLink, &l.SourceApplicationLink,
		&l.DatePosted, &l.Industry,
		&l.IsGlobal, &l.CreatedBy, &l.SharedBy, &l.SharedAt,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return domain.Lead{}, err
	}

	if err := json.Unmarshal(rawLinks, &l.AdditionalLinks); err != nil {
		return domain.Lead{}, fmt.Errorf("unmarshal additional links: %w", err)
	}
	if l.AdditionalLinks == nil {
		l.AdditionalLinks = []domain.Link{}
	}
	if l.AdditionalEmails == nil {
		l.AdditionalEmails = []string{}
	}

	return l, nil
}

func marshalLinks(links []domain.Link) ([]byte, error) {
	if links == nil {
		links = []domain.Link{}
	}
	return json.Marshal(links)
}
