package domain

import (
	"time"

	"github.com/google/uuid"
)

// StatusEntry is one append-only record in a saved lead's status history.
// Entries are never edited or removed.
type StatusEntry struct {
	Status    PipelineStatus
	Note      string
	Timestamp time.Time
}

// UserLead associates one user with one lead and tracks its pipeline state.
// At most one UserLead exists per (UserID, LeadID) pair; the database
// enforces this with a unique index.
type UserLead struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	LeadID        uuid.UUID
	CurrentStatus PipelineStatus
	StatusHistory []StatusEntry
	Priority      Priority
	Notes         string

	// Milestone timestamps, set on first entry into the corresponding
	// status and never overwritten.
	SavedAt        time.Time
	AppliedAt      *time.Time
	InterviewingAt *time.Time
	OfferAt        *time.Time

	LastActivityAt time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UserLeadUpdateParams carries a partial user-lead update (priority/notes).
// Status is never updated through here; use the status-change operation.
type UserLeadUpdateParams struct {
	Priority *Priority
	Notes    *string
}

// Activity is one event on a saved lead's timeline.
type Activity struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	LeadID      uuid.UUID
	UserLeadID  *uuid.UUID
	Action      ActivityAction
	Details     map[string]string
	Description string
	CreatedAt   time.Time
}
