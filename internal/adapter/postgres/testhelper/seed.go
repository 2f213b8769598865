package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gigfrog/backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedLead inserts a lead owned by the given creator ("system", "community",
// or a user id string). Returns the filled domain.Lead.
func SeedLead(t *testing.T, pool *pgxpool.Pool, createdBy string, isGlobal bool) domain.Lead {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	lead := domain.Lead{
		ID:      uuid.New(),
		Title:   "Engineer " + suffix,
		Company: "Company " + suffix,
		Compensation: domain.Compensation{
			Currency: "USD",
		},
		ContactName:      "Contact " + suffix,
		ContactEmail:     "contact-" + suffix + "@example.com",
		AdditionalEmails: []string{"second-" + suffix + "@example.com"},
		AdditionalLinks:  []domain.Link{{Title: "Careers", URL: "https://example.com/" + suffix}},
		IsGlobal:         isGlobal,
		CreatedBy:        createdBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO leads (id, title, company, contact_name, contact_email,
		                    additional_emails, additional_links, is_global, created_by,
		                    created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`,
		lead.ID, lead.Title, lead.Company, lead.ContactName, lead.ContactEmail,
		lead.AdditionalEmails, `[{"title":"Careers","url":"https://example.com/`+suffix+`"}]`,
		lead.IsGlobal, lead.CreatedBy, now,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLead insert lead: %v", err)
	}

	return lead
}

// SeedUserLead saves a lead for a user in the given status, seeding one
// history entry. Returns the filled domain.UserLead.
func SeedUserLead(t *testing.T, pool *pgxpool.Pool, userID, leadID uuid.UUID, status domain.PipelineStatus) domain.UserLead {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	ul := domain.UserLead{
		ID:             uuid.New(),
		UserID:         userID,
		LeadID:         leadID,
		CurrentStatus:  status,
		Priority:       domain.PriorityMedium,
		SavedAt:        now,
		LastActivityAt: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO user_leads (id, user_id, lead_id, current_status, priority,
		                         saved_at, last_activity_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $6, $6, $6)`,
		ul.ID, ul.UserID, ul.LeadID, ul.CurrentStatus.String(), ul.Priority.String(), now,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUserLead insert user_lead: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO user_lead_status_history (user_lead_id, status, note, created_at)
		 VALUES ($1, $2, '', $3)`,
		ul.ID, ul.CurrentStatus.String(), now,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUserLead insert history: %v", err)
	}
	ul.StatusHistory = []domain.StatusEntry{{Status: status, Timestamp: now}}

	return ul
}

// SeedReferral inserts a referral with one "created" history entry and no
// linked leads. Returns the filled domain.Referral.
func SeedReferral(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) domain.Referral {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	ref := domain.Referral{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        "Referral " + suffix,
		Company:     "Company " + suffix,
		Email:       "referral-" + suffix + "@example.com",
		LinkedLeads: []uuid.UUID{},
		ActivityHistory: []domain.ReferralActivityEntry{
			{Action: domain.ReferralCreated, Description: "Referral created", CreatedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO referrals (id, user_id, name, company, email, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		ref.ID, ref.UserID, ref.Name, ref.Company, ref.Email, now,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedReferral insert referral: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO referral_activity (referral_id, action, description, created_at)
		 VALUES ($1, 'created', 'Referral created', $2)`,
		ref.ID, now,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedReferral insert activity: %v", err)
	}

	return ref
}

// SeedProfile inserts a user_profiles row with the given role.
func SeedProfile(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, role domain.UserRole) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO user_profiles (id, role) VALUES ($1, $2)`,
		userID, role.String(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProfile insert profile: %v", err)
	}
}
