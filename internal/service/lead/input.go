package lead

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gigfrog/backend/internal/domain"
)

// ListLeadsInput holds the listing parameters before normalization.
type ListLeadsInput struct {
	Page   int
	Limit  int
	SortBy string
	Order  string
	Search string
}

// CreateLeadInput holds the parameters for creating a lead.
type CreateLeadInput struct {
	Title                 string
	Company               string
	Location              string
	Team                  string
	Compensation          domain.Compensation
	ContactName           string
	ContactEmail          string
	AdditionalEmails      []string
	AdditionalLinks       []domain.Link
	ContactLinkedIn       string
	SourceLink            string
	SourceApplicationLink string
	DatePosted            *time.Time
	Industry              string

	// Admin-only.
	IsGlobal bool
}

// Validate checks all fields and collects all errors.
func (i CreateLeadInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if strings.TrimSpace(i.Company) == "" {
		errs = append(errs, domain.FieldError{Field: "company", Message: "required"})
	}
	if i.Compensation.Min != nil && i.Compensation.Max != nil && *i.Compensation.Min > *i.Compensation.Max {
		errs = append(errs, domain.FieldError{Field: "compensation", Message: "min exceeds max"})
	}
	for idx, link := range i.AdditionalLinks {
		if !validURL(link.URL) {
			errs = append(errs, domain.FieldError{Field: "additionalLinks", Message: "invalid url at index " + strconv.Itoa(idx)})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateLeadInput holds the parameters for updating a lead.
// Nil fields are left unchanged.
type UpdateLeadInput struct {
	LeadID uuid.UUID

	Title                 *string
	Company               *string
	Location              *string
	Team                  *string
	Compensation          *domain.Compensation
	ContactName           *string
	ContactEmail          *string
	AdditionalEmails      *[]string
	AdditionalLinks       *[]domain.Link
	ContactLinkedIn       *string
	SourceLink            *string
	SourceApplicationLink *string
	DatePosted            *time.Time
	Industry              *string

	// Admin-only.
	IsGlobal  *bool
	CreatedBy *string
}

// Validate checks all fields and collects all errors.
func (i UpdateLeadInput) Validate() error {
	var errs []domain.FieldError

	if i.LeadID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Title != nil && strings.TrimSpace(*i.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if i.Company != nil && strings.TrimSpace(*i.Company) == "" {
		errs = append(errs, domain.FieldError{Field: "company", Message: "required"})
	}
	if i.Compensation != nil && i.Compensation.Min != nil && i.Compensation.Max != nil &&
		*i.Compensation.Min > *i.Compensation.Max {
		errs = append(errs, domain.FieldError{Field: "compensation", Message: "min exceeds max"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
