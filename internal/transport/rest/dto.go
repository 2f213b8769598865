package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/gigfrog/backend/internal/domain"
)

type compensationJSON struct {
	Min      *int   `json:"min,omitempty"`
	Max      *int   `json:"max,omitempty"`
	Currency string `json:"currency,omitempty"`
	Raw      string `json:"raw,omitempty"`
}

type leadJSON struct {
	ID                    uuid.UUID        `json:"id"`
	Title                 string           `json:"title"`
	Company               string           `json:"company"`
	Location              string           `json:"location,omitempty"`
	Team                  string           `json:"team,omitempty"`
	Compensation          compensationJSON `json:"compensation"`
	ContactName           string           `json:"contactName,omitempty"`
	ContactEmail          string           `json:"contactEmail,omitempty"`
	AdditionalEmails      []string         `json:"additionalEmails,omitempty"`
	AdditionalLinks       []domain.Link    `json:"additionalLinks,omitempty"`
	ContactLinkedIn       string           `json:"contactLinkedin,omitempty"`
	SourceLink            string           `json:"sourceLink,omitempty"`
	SourceApplicationLink string           `json:"sourceApplicationLink,omitempty"`
	DatePosted            *time.Time       `json:"datePosted,omitempty"`
	Industry              string           `json:"industry,omitempty"`
	IsGlobal              bool             `json:"isGlobal"`
	CreatedBy             string           `json:"createdBy"`
	SharedBy              *uuid.UUID       `json:"sharedBy,omitempty"`
	SharedAt              *time.Time       `json:"sharedAt,omitempty"`
	CreatedAt             time.Time        `json:"createdAt"`
	UpdatedAt             time.Time        `json:"updatedAt"`
}

func toLeadJSON(l domain.Lead) leadJSON {
	return leadJSON{
		ID:       l.ID,
		Title:    l.Title,
		Company:  l.Company,
		Location: l.Location,
		Team:     l.Team,
		Compensation: compensationJSON{
			Min:      l.Compensation.Min,
			Max:      l.Compensation.Max,
			Currency: l.Compensation.Currency,
			Raw:      l.Compensation.Raw,
		},
		ContactName:           l.ContactName,
		ContactEmail:          l.ContactEmail,
		AdditionalEmails:      l.AdditionalEmails,
		AdditionalLinks:       l.AdditionalLinks,
		ContactLinkedIn:       l.ContactLinkedIn,
		SourceLink:            l.SourceLink,
		SourceApplicationLink: l.SourceApplicationLink,
		DatePosted:            l.DatePosted,
		Industry:              l.Industry,
		IsGlobal:              l.IsGlobal,
		CreatedBy:             l.CreatedBy,
		SharedBy:              l.SharedBy,
		SharedAt:              l.SharedAt,
		CreatedAt:             l.CreatedAt,
		UpdatedAt:             l.UpdatedAt,
	}
}

func toLeadListJSON(leads []domain.Lead) []leadJSON {
	out := make([]leadJSON, len(leads))
	for i, l := range leads {
		out[i] = toLeadJSON(l)
	}
	return out
}

type statusEntryJSON struct {
	Status    domain.PipelineStatus `json:"status"`
	Note      string                `json:"note,omitempty"`
	Timestamp time.Time             `json:"timestamp"`
}

type userLeadJSON struct {
	ID             uuid.UUID             `json:"id"`
	UserID         uuid.UUID             `json:"userId"`
	LeadID         uuid.UUID             `json:"leadId"`
	CurrentStatus  domain.PipelineStatus `json:"currentStatus"`
	StatusHistory  []statusEntryJSON     `json:"statusHistory"`
	Priority       domain.Priority       `json:"priority"`
	Notes          string                `json:"notes,omitempty"`
	SavedAt        time.Time             `json:"savedAt"`
	AppliedAt      *time.Time            `json:"appliedAt,omitempty"`
	InterviewingAt *time.Time            `json:"interviewingAt,omitempty"`
	OfferAt        *time.Time            `json:"offerAt,omitempty"`
	LastActivityAt time.Time             `json:"lastActivityAt"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

func toUserLeadJSON(ul domain.UserLead) userLeadJSON {
	history := make([]statusEntryJSON, len(ul.StatusHistory))
	for i, e := range ul.StatusHistory {
		history[i] = statusEntryJSON{Status: e.Status, Note: e.Note, Timestamp: e.Timestamp}
	}
	return userLeadJSON{
		ID:             ul.ID,
		UserID:         ul.UserID,
		LeadID:         ul.LeadID,
		CurrentStatus:  ul.CurrentStatus,
		StatusHistory:  history,
		Priority:       ul.Priority,
		Notes:          ul.Notes,
		SavedAt:        ul.SavedAt,
		AppliedAt:      ul.AppliedAt,
		InterviewingAt: ul.InterviewingAt,
		OfferAt:        ul.OfferAt,
		LastActivityAt: ul.LastActivityAt,
		CreatedAt:      ul.CreatedAt,
		UpdatedAt:      ul.UpdatedAt,
	}
}

func toUserLeadListJSON(uls []domain.UserLead) []userLeadJSON {
	out := make([]userLeadJSON, len(uls))
	for i, ul := range uls {
		out[i] = toUserLeadJSON(ul)
	}
	return out
}

type activityJSON struct {
	ID          uuid.UUID             `json:"id"`
	LeadID      uuid.UUID             `json:"leadId"`
	UserLeadID  *uuid.UUID            `json:"userLeadId,omitempty"`
	Action      domain.ActivityAction `json:"action"`
	Details     map[string]string     `json:"details,omitempty"`
	Description string                `json:"description"`
	CreatedAt   time.Time             `json:"createdAt"`
}

func toActivityListJSON(acts []domain.Activity) []activityJSON {
	out := make([]activityJSON, len(acts))
	for i, a := range acts {
		out[i] = activityJSON{
			ID:          a.ID,
			LeadID:      a.LeadID,
			UserLeadID:  a.UserLeadID,
			Action:      a.Action,
			Details:     a.Details,
			Description: a.Description,
			CreatedAt:   a.CreatedAt,
		}
	}
	return out
}

type referralActivityJSON struct {
	Action      domain.ReferralAction `json:"action"`
	Description string                `json:"description"`
	Timestamp   time.Time             `json:"timestamp"`
}

type referralJSON struct {
	ID              uuid.UUID              `json:"id"`
	UserID          uuid.UUID              `json:"userId"`
	Name            string                 `json:"name"`
	Company         string                 `json:"company,omitempty"`
	Email           string                 `json:"email,omitempty"`
	LinkedIn        string                 `json:"linkedin,omitempty"`
	Notes           string                 `json:"notes,omitempty"`
	LinkedLeads     []uuid.UUID            `json:"linkedLeads"`
	ActivityHistory []referralActivityJSON `json:"activityHistory"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

func toReferralActivityListJSON(entries []domain.ReferralActivityEntry) []referralActivityJSON {
	out := make([]referralActivityJSON, len(entries))
	for i, e := range entries {
		out[i] = referralActivityJSON{Action: e.Action, Description: e.Description, Timestamp: e.CreatedAt}
	}
	return out
}

func toReferralJSON(r domain.Referral) referralJSON {
	linked := r.LinkedLeads
	if linked == nil {
		linked = []uuid.UUID{}
	}
	return referralJSON{
		ID:              r.ID,
		UserID:          r.UserID,
		Name:            r.Name,
		Company:         r.Company,
		Email:           r.Email,
		LinkedIn:        r.LinkedIn,
		Notes:           r.Notes,
		LinkedLeads:     linked,
		ActivityHistory: toReferralActivityListJSON(r.ActivityHistory),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func toReferralListJSON(rs []domain.Referral) []referralJSON {
	out := make([]referralJSON, len(rs))
	for i, r := range rs {
		out[i] = toReferralJSON(r)
	}
	return out
}
