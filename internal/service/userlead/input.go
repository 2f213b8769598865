package userlead

import (
	"github.com/google/uuid"

	repo "github.com/gigfrog/backend/internal/adapter/postgres/userlead"
	"github.com/gigfrog/backend/internal/domain"
)

// SaveLeadInput holds the parameters for saving a lead into the pipeline.
type SaveLeadInput struct {
	LeadID   uuid.UUID
	Priority *domain.Priority
	Notes    string
}

// Validate checks all fields and collects all errors.
func (i SaveLeadInput) Validate() error {
	var errs []domain.FieldError

	if i.LeadID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "leadId", Message: "required"})
	}
	if i.Priority != nil && !i.Priority.IsValid() {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "must be high, medium, or low"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateUserLeadInput holds a priority/notes update for a saved lead.
type UpdateUserLeadInput struct {
	UserLeadID uuid.UUID
	Priority   *domain.Priority
	Notes      *string
}

// Validate checks all fields and collects all errors.
func (i UpdateUserLeadInput) Validate() error {
	var errs []domain.FieldError

	if i.UserLeadID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Priority == nil && i.Notes == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Priority != nil && !i.Priority.IsValid() {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "must be high, medium, or low"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ChangeStatusInput holds a status-change request for a saved lead.
type ChangeStatusInput struct {
	UserLeadID uuid.UUID
	Status     domain.PipelineStatus
	Note       string
}

// Validate checks all fields and collects all errors.
func (i ChangeStatusInput) Validate() error {
	var errs []domain.FieldError

	if i.UserLeadID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListUserLeadsInput narrows and orders the saved-lead listing.
type ListUserLeadsInput struct {
	Status   *domain.PipelineStatus
	Priority *domain.Priority
	SortBy   string
	Order    string
}

// Validate checks all fields and collects all errors.
func (i ListUserLeadsInput) Validate() error {
	var errs []domain.FieldError

	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}
	if i.Priority != nil && !i.Priority.IsValid() {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "must be high, medium, or low"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i ListUserLeadsInput) filter() repo.ListFilter {
	return repo.ListFilter{
		Status:   i.Status,
		Priority: i.Priority,
		SortBy:   i.SortBy,
		Order:    i.Order,
	}
}
