package lead

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gigfrog/backend/internal/domain"
	"github.com/gigfrog/backend/pkg/ctxutil"
)

// CreateLead creates a lead owned by the caller. Only admins may create a
// lead that is global from the start.
func (s *Service) CreateLead(ctx context.Context, input CreateLeadInput) (domain.Lead, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.Lead{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return domain.Lead{}, err
	}

	if input.IsGlobal && !identity.IsAdmin() {
		return domain.Lead{}, fmt.Errorf("create global lead: %w", domain.ErrForbidden)
	}

	currency := input.Compensation.Currency
	if currency == "" {
		currency = "USD"
	}

	created, err := s.leads.Create(ctx, domain.Lead{
		Title:    strings.TrimSpace(input.Title),
		Company:  strings.TrimSpace(input.Company),
		Location: strings.TrimSpace(input.Location),
		Team:     strings.TrimSpace(input.Team),
		Compensation: domain.Compensation{
			Min:      input.Compensation.Min,
			Max:      input.Compensation.Max,
			Currency: currency,
			Raw:      input.Compensation.Raw,
		},
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
		CreatedBy:             identity.ID.String(),
	})
	if err != nil {
		return domain.Lead{}, fmt.Errorf("create lead: %w", err)
	}

	s.log.InfoContext(ctx, "lead created",
		slog.String("user_id", identity.ID.String()),
		slog.String("lead_id", created.ID.String()),
		slog.Bool("is_global", created.IsGlobal),
	)

	return created, nil
}
