package userlead_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gigfrog/backend/internal/adapter/postgres/testhelper"
	"github.com/gigfrog/backend/internal/adapter/postgres/userlead"
	"github.com/gigfrog/backend/internal/domain"
)

func newRepo(t *testing.T) (*userlead.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return userlead.New(pool), pool
}

func TestRepo_Create_AndGetByID(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	userID := uuid.New()
	seededLead := testhelper.SeedLead(t, pool, domain.CreatorSystem, true)

	created, err := repo.Create(ctx, userID, seededLead.ID, domain.PriorityHigh, "looks promising")
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if created.CurrentStatus != domain.StatusSaved {
		t.Errorf("new saved lead must start in saved, got %s", created.CurrentStatus)
	}

	if err := repo.AppendStatus(ctx, created.ID, domain.StatusEntry{
		Status:    domain.StatusSaved,
		Timestamp: created.SavedAt,
	}); err != nil {
		t.Fatalf("AppendStatus: unexpected error: %v", err)
	}

	got, err := repo.GetByID(ctx, userID, created.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if got.Priority != domain.PriorityHigh || got.Notes != "looks promising" {
		t.Errorf("fields mismatch: %+v", got)
	}
	if len(got.StatusHistory) != 1 || got.StatusHistory[0].Status != domain.StatusSaved {
		t.Errorf("history mismatch: %+v", got.StatusHistory)
	}
}

func TestRepo_Create_DuplicatePair(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	userID := uuid.New()
	seededLead := testhelper.SeedLead(t, pool, domain.CreatorSystem, true)

	if _, err := repo.Create(ctx, userID, seededLead.ID, domain.PriorityMedium, ""); err != nil {
		t.Fatalf("Create[1]: unexpected error: %v", err)
	}

	_, err := repo.Create(ctx, userID, seededLead.ID, domain.PriorityMedium, "")
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists on duplicate save, got %v", err)
	}

	// Exactly one row exists for the pair afterward.
	var count int
	err = pool.QueryRow(ctx,
		`SELECT count(*) FROM user_leads WHERE user_id = $1 AND lead_id = $2`,
		userID, seededLead.ID,
	).Scan(&count)
	if err != nil {
		t.Fatalf("count query: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one user_lead row, got %d", count)
	}
}

func TestRepo_GetByLeadID(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	userID := uuid.New()
	seededLead := testhelper.SeedLead(t, pool, domain.CreatorSystem, true)
	seeded := testhelper.SeedUserLead(t, pool, userID, seededLead.ID, domain.StatusSaved)

	got, err := repo.GetByLeadID(ctx, userID, seededLead.ID)
	if err != nil {
		t.Fatalf("GetByLeadID: unexpected error: %v", err)
	}
	if got.ID != seeded.ID {
		t.Errorf("ID mismatch: got %s, want %s", got.ID, seeded.ID)
	}

	// Another user has no saved instance of this lead.
	if _, err := repo.GetByLeadID(ctx, uuid.New(), seededLead.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other user, got %v", err)
	}
}

func TestRepo_UpdateStatus_MilestoneSetOnce(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	userID := uuid.New()
	seededLead := testhelper.SeedLead(t, pool, domain.CreatorSystem, true)
	seeded := testhelper.SeedUserLead(t, pool, userID, seededLead.ID, domain.StatusSaved)

	first := time.Now().UTC().Truncate(time.Microsecond)
	if err := repo.UpdateStatus(ctx, userID, seeded.ID, domain.StatusApplied, first); err != nil {
		t.Fatalf("UpdateStatus(applied): unexpected error: %v", err)
	}

	got, err := repo.GetByID(ctx, userID, seeded.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if got.AppliedAt == nil || !got.AppliedAt.Equal(first) {
		t.Fatalf("AppliedAt must be stamped on first entry: got %v", got.AppliedAt)
	}

	// Leave and re-enter applied; the milestone must not move.
	later := first.Add(time.Hour)
	if err := repo.UpdateStatus(ctx, userID, seeded.ID, domain.StatusSaved, later); err != nil {
		t.Fatalf("UpdateStatus(saved): unexpected error: %v", err)
	}
	if err := repo.UpdateStatus(ctx, userID, seeded.ID, domain.StatusApplied, later.Add(time.Hour)); err != nil {
		t.Fatalf("UpdateStatus(applied again): unexpected error: %v", err)
	}

	got, err = repo.GetByID(ctx, userID, seeded.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if got.AppliedAt == nil || !got.AppliedAt.Equal(first) {
		t.Errorf("AppliedAt must never be overwritten: got %v, want %v", got.AppliedAt, first)
	}
	if got.CurrentStatus != domain.StatusApplied {
		t.Errorf("CurrentStatus mismatch: got %s", got.CurrentStatus)
	}
	if !got.LastActivityAt.After(first) {
		t.Errorf("LastActivityAt must advance: got %v", got.LastActivityAt)
	}
}

func TestRepo_UpdateStatus_OtherUsersLead(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	userID := uuid.New()
	seededLead := testhelper.SeedLead(t, pool, domain.CreatorSystem, true)
	seeded := testhelper.SeedUserLead(t, pool, userID, seededLead.ID, domain.StatusSaved)

	err := repo.UpdateStatus(ctx, uuid.New(), seeded.ID, domain.StatusApplied, time.Now().UTC())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign user lead, got %v", err)
	}
}

func TestRepo_List_FiltersAndHistory(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	userID := uuid.New()
	leadA := testhelper.SeedLead(t, pool, domain.CreatorSystem, true)
	leadB := testhelper.SeedLead(t, pool, domain.CreatorSystem, true)
	saved := testhelper.SeedUserLead(t, pool, userID, leadA.ID, domain.StatusSaved)
	applied := testhelper.SeedUserLead(t, pool, userID, leadB.ID, domain.StatusApplied)

	all, err := repo.List(ctx, userID, userlead.ListFilter{})
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 user leads, got %d", len(all))
	}
	for _, ul := range all {
		if len(ul.StatusHistory) == 0 {
			t.Errorf("user lead %s has empty history", ul.ID)
		}
	}

	status := domain.StatusApplied
	filtered, err := repo.List(ctx, userID, userlead.ListFilter{Status: &status})
	if err != nil {
		t.Fatalf("List(status): unexpected error: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != applied.ID {
		t.Errorf("status filter mismatch: %+v", filtered)
	}
	_ = saved
}

func TestRepo_Update_PriorityAndNotes(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	userID := uuid.New()
	seededLead := testhelper.SeedLead(t, pool, domain.CreatorSystem, true)
	seeded := testhelper.SeedUserLead(t, pool, userID, seededLead.ID, domain.StatusSaved)

	priority := domain.PriorityLow
	notes := "follow up next week"
	got, err := repo.Update(ctx, userID, seeded.ID, domain.UserLeadUpdateParams{
		Priority: &priority,
		Notes:    &notes,
	})
	if err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}
	if got.Priority != priority || got.Notes != notes {
		t.Errorf("update mismatch: %+v", got)
	}
	if got.CurrentStatus != domain.StatusSaved {
		t.Error("Update must not touch status")
	}
}

func TestRepo_Delete_CascadesHistory(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	userID := uuid.New()
	seededLead := testhelper.SeedLead(t, pool, domain.CreatorSystem, true)
	seeded := testhelper.SeedUserLead(t, pool, userID, seededLead.ID, domain.StatusSaved)

	if err := repo.Delete(ctx, userID, seeded.ID); err != nil {
		t.Fatalf("Delete: unexpected error: %v", err)
	}

	var count int
	err := pool.QueryRow(ctx,
		`SELECT count(*) FROM user_lead_status_history WHERE user_lead_id = $1`,
		seeded.ID,
	).Scan(&count)
	if err != nil {
		t.Fatalf("count query: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected history to cascade, %d rows remain", count)
	}
}
