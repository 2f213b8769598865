package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	repo "github.com/gigfrog/backend/internal/adapter/postgres/userlead"
	"github.com/gigfrog/backend/internal/domain"
	"github.com/gigfrog/backend/pkg/ctxutil"
)

// PublishInput selects what to publish. Mode "single" promotes one lead by
// id; mode "all" promotes every lead behind the caller's saved leads.
type PublishInput struct {
	Mode   string
	LeadID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i PublishInput) Validate() error {
	var errs []domain.FieldError

	switch i.Mode {
	case ModeSingle:
		if i.LeadID == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: "leadId", Message: "required for single mode"})
		}
	case ModeAll:
	default:
		errs = append(errs, domain.FieldError{Field: "mode", Message: `must be "single" or "all"`})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Result reports how many leads a publish call actually changed.
// Zero is a valid outcome, not an error.
type Result struct {
	Mode    string
	Changed int
}

// Publish promotes leads to global visibility. Both modes operate on the
// caller's pipeline: single mode publishes one saved lead by lead id, bulk
// mode publishes every saved lead whose underlying lead is not yet global.
// Single mode is idempotent: an already-global lead comes back as success
// with nothing changed, sharedBy and sharedAt untouched. Bulk mode
// additionally strips contact data and is not transactional; a failure
// partway leaves earlier promotions in place.
func (s *Service) Publish(ctx context.Context, input PublishInput) (Result, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return Result{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return Result{}, err
	}

	switch input.Mode {
	case ModeSingle:
		return s.publishSingle(ctx, identity, input.LeadID)
	default:
		return s.publishAll(ctx, identity)
	}
}

func (s *Service) publishSingle(ctx context.Context, identity ctxutil.Identity, leadID uuid.UUID) (Result, error) {
	// Only leads saved into the caller's pipeline can be published.
	if _, err := s.userLeads.GetByLeadID(ctx, identity.ID, leadID); err != nil {
		return Result{}, fmt.Errorf("lead %s not in pipeline: %w", leadID, err)
	}

	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		return Result{}, fmt.Errorf("get lead: %w", err)
	}
	if !lead.VisibleTo(identity.ID) {
		return Result{}, fmt.Errorf("lead %s: %w", leadID, domain.ErrNotFound)
	}

	if lead.IsGlobal {
		return Result{Mode: ModeSingle, Changed: 0}, nil
	}

	if !lead.EditableBy(identity.ID, domain.UserRole(identity.Role)) {
		return Result{}, fmt.Errorf("lead %s: %w", leadID, domain.ErrForbidden)
	}

	changed, err := s.leads.Promote(ctx, leadID, identity.ID, now())
	if err != nil {
		return Result{}, fmt.Errorf("promote lead: %w", err)
	}

	result := Result{Mode: ModeSingle}
	if changed {
		result.Changed = 1
	}

	s.log.InfoContext(ctx, "lead published",
		slog.String("user_id", identity.ID.String()),
		slog.String("lead_id", leadID.String()),
		slog.Bool("changed", changed),
	)

	return result, nil
}

func (s *Service) publishAll(ctx context.Context, identity ctxutil.Identity) (Result, error) {
	saved, err := s.userLeads.List(ctx, identity.ID, repo.ListFilter{})
	if err != nil {
		return Result{}, fmt.Errorf("list saved leads: %w", err)
	}

	at := now()
	changed := 0
	for _, ul := range saved {
		lead, err := s.leads.GetByID(ctx, ul.LeadID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return Result{Mode: ModeAll, Changed: changed}, fmt.Errorf("get lead %s: %w", ul.LeadID, err)
		}
		if lead.IsGlobal {
			continue
		}

		ok, err := s.leads.PromoteSanitized(ctx, ul.LeadID, identity.ID, at)
		if err != nil {
			return Result{Mode: ModeAll, Changed: changed}, fmt.Errorf("promote lead %s: %w", ul.LeadID, err)
		}
		if ok {
			changed++
		}
	}

	s.log.InfoContext(ctx, "bulk publish finished",
		slog.String("user_id", identity.ID.String()),
		slog.Int("saved_leads", len(saved)),
		slog.Int("changed", changed),
	)

	return Result{Mode: ModeAll, Changed: changed}, nil
}
