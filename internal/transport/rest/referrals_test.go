package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/gigfrog/backend/internal/domain"
	referralsvc "github.com/gigfrog/backend/internal/service/referral"
)

type referralServiceMock struct {
	ListReferralsFunc  func(ctx context.Context) ([]domain.Referral, error)
	GetReferralFunc    func(ctx context.Context, referralID uuid.UUID) (domain.Referral, error)
	GetActivityFunc    func(ctx context.Context, referralID uuid.UUID) ([]domain.ReferralActivityEntry, error)
	CreateReferralFunc func(ctx context.Context, input referralsvc.CreateReferralInput) (domain.Referral, error)
	UpdateReferralFunc func(ctx context.Context, input referralsvc.UpdateReferralInput) (domain.Referral, error)
	DeleteReferralFunc func(ctx context.Context, referralID uuid.UUID) error
}

func (m *referralServiceMock) ListReferrals(ctx context.Context) ([]domain.Referral, error) {
	return m.ListReferralsFunc(ctx)
}

func (m *referralServiceMock) GetReferral(ctx context.Context, referralID uuid.UUID) (domain.Referral, error) {
	return m.GetReferralFunc(ctx, referralID)
}

func (m *referralServiceMock) GetActivity(ctx context.Context, referralID uuid.UUID) ([]domain.ReferralActivityEntry, error) {
	return m.GetActivityFunc(ctx, referralID)
}

func (m *referralServiceMock) CreateReferral(ctx context.Context, input referralsvc.CreateReferralInput) (domain.Referral, error) {
	return m.CreateReferralFunc(ctx, input)
}

func (m *referralServiceMock) UpdateReferral(ctx context.Context, input referralsvc.UpdateReferralInput) (domain.Referral, error) {
	return m.UpdateReferralFunc(ctx, input)
}

func (m *referralServiceMock) DeleteReferral(ctx context.Context, referralID uuid.UUID) error {
	return m.DeleteReferralFunc(ctx, referralID)
}

func referralRouter(svc referralService) http.Handler {
	return NewRouter(Handlers{
		Health:    NewHealthHandler(&dbPingerMock{}, "test"),
		Leads:     NewLeadHandler(nil, slog.Default()),
		UserLeads: NewUserLeadHandler(nil, slog.Default()),
		Referrals: NewReferralHandler(svc, slog.Default()),
		Pipeline:  NewPipelineHandler(nil, slog.Default()),
		Publish:   NewPublishHandler(nil, slog.Default()),
		ParseJob:  NewParseJobHandler(nil, slog.Default()),
	})
}

func TestReferrals_Create(t *testing.T) {
	t.Parallel()

	refID := uuid.New()
	svc := &referralServiceMock{
		CreateReferralFunc: func(ctx context.Context, input referralsvc.CreateReferralInput) (domain.Referral, error) {
			return domain.Referral{ID: refID, Name: input.Name, Company: input.Company}, nil
		},
	}

	body := `{"name":"Dana","company":"Acme","linkedin":"https://linkedin.com/in/dana"}`
	req := httptest.NewRequest(http.MethodPost, "/api/referrals", strings.NewReader(body))
	rec := httptest.NewRecorder()

	referralRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp referralJSON
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != refID || resp.Name != "Dana" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestReferrals_GetNeverReturnsNullLinkedLeads(t *testing.T) {
	t.Parallel()

	svc := &referralServiceMock{
		GetReferralFunc: func(ctx context.Context, referralID uuid.UUID) (domain.Referral, error) {
			return domain.Referral{ID: referralID, Name: "Dana"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/referrals/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	referralRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), `"linkedLeads":null`) {
		t.Errorf("linkedLeads must encode as an empty array: %s", rec.Body.String())
	}
}

func TestReferrals_GetActivityQuery(t *testing.T) {
	t.Parallel()

	svc := &referralServiceMock{
		GetReferralFunc: func(ctx context.Context, referralID uuid.UUID) (domain.Referral, error) {
			t.Fatal("expected the activity branch, not GetReferral")
			return domain.Referral{}, nil
		},
		GetActivityFunc: func(ctx context.Context, referralID uuid.UUID) ([]domain.ReferralActivityEntry, error) {
			return []domain.ReferralActivityEntry{
				{Action: domain.ReferralCreated, Description: "Referral created"},
				{Action: domain.ReferralUpdated, Description: "Notes updated"},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/referrals/"+uuid.NewString()+"?activity=true", nil)
	rec := httptest.NewRecorder()

	referralRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var entries []referralActivityJSON
	if err := json.NewDecoder(rec.Body).Decode(&entries); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(entries) != 2 || entries[1].Description != "Notes updated" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestReferrals_UpdateForwardsPartialFields(t *testing.T) {
	t.Parallel()

	var got referralsvc.UpdateReferralInput
	svc := &referralServiceMock{
		UpdateReferralFunc: func(ctx context.Context, input referralsvc.UpdateReferralInput) (domain.Referral, error) {
			got = input
			return domain.Referral{ID: input.ReferralID}, nil
		},
	}

	id := uuid.New()
	req := httptest.NewRequest(http.MethodPut, "/api/referrals/"+id.String(), strings.NewReader(`{"notes":"met at conf","linkedLeads":[]}`))
	rec := httptest.NewRecorder()

	referralRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.ReferralID != id {
		t.Errorf("expected referral id %s, got %s", id, got.ReferralID)
	}
	if got.Notes == nil || *got.Notes != "met at conf" {
		t.Errorf("notes not forwarded: %+v", got.Notes)
	}
	if got.Name != nil {
		t.Errorf("absent name must stay nil, got %+v", got.Name)
	}
	if got.LinkedLeads == nil || len(*got.LinkedLeads) != 0 {
		t.Errorf("empty linkedLeads must forward as an empty set, got %+v", got.LinkedLeads)
	}
}

func TestReferrals_GetMapsNotFound(t *testing.T) {
	t.Parallel()

	svc := &referralServiceMock{
		GetReferralFunc: func(ctx context.Context, referralID uuid.UUID) (domain.Referral, error) {
			return domain.Referral{}, domain.ErrNotFound
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/referrals/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	referralRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestReferrals_DeleteNoContent(t *testing.T) {
	t.Parallel()

	svc := &referralServiceMock{
		DeleteReferralFunc: func(ctx context.Context, referralID uuid.UUID) error { return nil },
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/referrals/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	referralRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
}
