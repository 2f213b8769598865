package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReferralActivityEntry is one append-only record in a referral's history.
type ReferralActivityEntry struct {
	Action      ReferralAction
	Description string
	CreatedAt   time.Time
}

// Referral is a personal contact, optionally linked to saved leads.
// Only its owner may read or mutate it.
type Referral struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Name     string
	Company  string
	Email    string
	LinkedIn string
	Notes    string

	// LinkedLeads holds UserLead ids. Updates replace the full set.
	LinkedLeads []uuid.UUID

	ActivityHistory []ReferralActivityEntry

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReferralUpdateParams carries a partial referral update. Nil means
// "don't change"; a non-nil LinkedLeads replaces the whole set.
type ReferralUpdateParams struct {
	Name        *string
	Company     *string
	Email       *string
	LinkedIn    *string
	Notes       *string
	LinkedLeads *[]uuid.UUID
}
