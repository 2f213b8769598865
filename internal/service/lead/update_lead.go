package lead

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gigfrog/backend/internal/domain"
	"github.com/gigfrog/backend/pkg/ctxutil"
)

// UpdateLead applies a partial lead update. Owners, admins, and any
// authenticated user (for system-owned leads) may update; only admins may
// change visibility or ownership.
func (s *Service) UpdateLead(ctx context.Context, input UpdateLeadInput) (domain.Lead, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.Lead{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return domain.Lead{}, err
	}

	current, err := s.leads.GetByID(ctx, input.LeadID)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("get lead: %w", err)
	}
	if !current.VisibleTo(identity.ID) {
		return domain.Lead{}, fmt.Errorf("lead %s: %w", input.LeadID, domain.ErrNotFound)
	}
	if !current.EditableBy(identity.ID, domain.UserRole(identity.Role)) {
		return domain.Lead{}, fmt.Errorf("update lead %s: %w", input.LeadID, domain.ErrForbidden)
	}

	if (input.IsGlobal != nil || input.CreatedBy != nil) && !identity.IsAdmin() {
		return domain.Lead{}, fmt.Errorf("update visibility: %w", domain.ErrForbidden)
	}

	updated, err := s.leads.Update(ctx, input.LeadID, domain.LeadUpdateParams{
		Title:                 trimOrNil(input.Title),
		Company:               trimOrNil(input.Company),
		Location:              input.Location,
		Team:                  input.Team,
		Compensation:          input.Compensation,
		ContactName:           input.ContactName,
		ContactEmail:          input.ContactEmail,
		AdditionalEmails:      input.AdditionalEmails,
		AdditionalLinks:       input.AdditionalLinks,
		ContactLinkedIn:       input.ContactLinkedIn,
		SourceLink:            input.SourceLink,
		SourceApplicationLink: input.SourceApplicationLink,
		DatePosted:            input.DatePosted,
		Industry:              input.Industry,
		IsGlobal:              input.IsGlobal,
		CreatedBy:             input.CreatedBy,
	})
	if err != nil {
		return domain.Lead{}, fmt.Errorf("update lead: %w", err)
	}

	s.log.InfoContext(ctx, "lead updated",
		slog.String("user_id", identity.ID.String()),
		slog.String("lead_id", updated.ID.String()),
	)

	return updated, nil
}
