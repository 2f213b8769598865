package referral

import (
	"strings"

	"github.com/google/uuid"

	"github.com/gigfrog/backend/internal/domain"
)

// CreateReferralInput holds the parameters for creating a referral.
type CreateReferralInput struct {
	Name        string
	Company     string
	Email       string
	LinkedIn    string
	Notes       string
	LinkedLeads []uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i CreateReferralInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	for _, id := range i.LinkedLeads {
		if id == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: "linkedLeads", Message: "contains an empty id"})
			break
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateReferralInput holds a partial referral update. A non-nil LinkedLeads
// replaces the whole linked set.
type UpdateReferralInput struct {
	ReferralID  uuid.UUID
	Name        *string
	Company     *string
	Email       *string
	LinkedIn    *string
	Notes       *string
	LinkedLeads *[]uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i UpdateReferralInput) Validate() error {
	var errs []domain.FieldError

	if i.ReferralID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Name != nil && strings.TrimSpace(*i.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if i.LinkedLeads != nil {
		for _, id := range *i.LinkedLeads {
			if id == uuid.Nil {
				errs = append(errs, domain.FieldError{Field: "linkedLeads", Message: "contains an empty id"})
				break
			}
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
