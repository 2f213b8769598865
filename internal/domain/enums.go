package domain

// PipelineStatus represents the stage of a saved lead in the user's pipeline.
type PipelineStatus string

const (
	StatusSaved        PipelineStatus = "saved"
	StatusApplied      PipelineStatus = "applied"
	StatusInterviewing PipelineStatus = "interviewing"
	StatusOffer        PipelineStatus = "offer"
	StatusRejected     PipelineStatus = "rejected"
	StatusArchived     PipelineStatus = "archived"
)

func (s PipelineStatus) String() string { return string(s) }

func (s PipelineStatus) IsValid() bool {
	switch s {
	case StatusSaved, StatusApplied, StatusInterviewing, StatusOffer, StatusRejected, StatusArchived:
		return true
	}
	return false
}

// Priority represents how important a saved lead is to the user.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) String() string { return string(p) }

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ActivityAction represents the kind of event recorded on a saved lead's timeline.
type ActivityAction string

const (
	ActivitySaved           ActivityAction = "saved"
	ActivityUnsaved         ActivityAction = "unsaved"
	ActivityStatusChanged   ActivityAction = "status_changed"
	ActivityPriorityChanged ActivityAction = "priority_changed"
)

func (a ActivityAction) String() string { return string(a) }

func (a ActivityAction) IsValid() bool {
	switch a {
	case ActivitySaved, ActivityUnsaved, ActivityStatusChanged, ActivityPriorityChanged:
		return true
	}
	return false
}

// ReferralAction represents the kind of event recorded on a referral's history.
type ReferralAction string

const (
	ReferralCreated ReferralAction = "created"
	ReferralUpdated ReferralAction = "updated"
)

func (a ReferralAction) String() string { return string(a) }

// UserRole represents the authorization level of a user.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleAdmin:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}

// Sentinel owners for leads that are not owned by a single user.
const (
	CreatorSystem    = "system"    // imported by the lead import script
	CreatorCommunity = "community" // shared to the community via publish
)
