package userlead

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	repo "github.com/gigfrog/backend/internal/adapter/postgres/userlead"
	"github.com/gigfrog/backend/internal/domain"
)

var (
	_ userLeadRepo = &userLeadRepoMock{}
	_ leadRepo     = &leadRepoMock{}
	_ activityRepo = &activityRepoMock{}
	_ txManager    = &txManagerMock{}
)

type userLeadRepoMock struct {
	GetByIDFunc      func(ctx context.Context, userID, id uuid.UUID) (domain.UserLead, error)
	GetByLeadIDFunc  func(ctx context.Context, userID, leadID uuid.UUID) (domain.UserLead, error)
	ListFunc         func(ctx context.Context, userID uuid.UUID, f repo.ListFilter) ([]domain.UserLead, error)
	CreateFunc       func(ctx context.Context, userID, leadID uuid.UUID, priority domain.Priority, notes string) (domain.UserLead, error)
	UpdateFunc       func(ctx context.Context, userID, id uuid.UUID, params domain.UserLeadUpdateParams) (domain.UserLead, error)
	UpdateStatusFunc func(ctx context.Context, userID, id uuid.UUID, status domain.PipelineStatus, at time.Time) error
	AppendStatusFunc func(ctx context.Context, userLeadID uuid.UUID, entry domain.StatusEntry) error
	DeleteFunc       func(ctx context.Context, userID, id uuid.UUID) error

	calls struct {
		UpdateStatus []domain.PipelineStatus
		AppendStatus []domain.StatusEntry
		Delete       []uuid.UUID
	}
	mu sync.Mutex
}

func (m *userLeadRepoMock) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.UserLead, error) {
	if m.GetByIDFunc == nil {
		panic("userLeadRepoMock.GetByIDFunc: method is nil but userLeadRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, userID, id)
}

func (m *userLeadRepoMock) GetByLeadID(ctx context.Context, userID, leadID uuid.UUID) (domain.UserLead, error) {
	if m.GetByLeadIDFunc == nil {
		panic("userLeadRepoMock.GetByLeadIDFunc: method is nil but userLeadRepo.GetByLeadID was just called")
	}
	return m.GetByLeadIDFunc(ctx, userID, leadID)
}

func (m *userLeadRepoMock) List(ctx context.Context, userID uuid.UUID, f repo.ListFilter) ([]domain.UserLead, error) {
	if m.ListFunc == nil {
		panic("userLeadRepoMock.ListFunc: method is nil but userLeadRepo.List was just called")
	}
	return m.ListFunc(ctx, userID, f)
}

func (m *userLeadRepoMock) Create(ctx context.Context, userID, leadID uuid.UUID, priority domain.Priority, notes string) (domain.UserLead, error) {
	if m.CreateFunc == nil {
		panic("userLeadRepoMock.CreateFunc: method is nil but userLeadRepo.Create was just called")
	}
	return m.CreateFunc(ctx, userID, leadID, priority, notes)
}

func (m *userLeadRepoMock) Update(ctx context.Context, userID, id uuid.UUID, params domain.UserLeadUpdateParams) (domain.UserLead, error) {
	if m.UpdateFunc == nil {
		panic("userLeadRepoMock.UpdateFunc: method is nil but userLeadRepo.Update was just called")
	}
	return m.UpdateFunc(ctx, userID, id, params)
}

func (m *userLeadRepoMock) UpdateStatus(ctx context.Context, userID, id uuid.UUID, status domain.PipelineStatus, at time.Time) error {
	if m.UpdateStatusFunc == nil {
		panic("userLeadRepoMock.UpdateStatusFunc: method is nil but userLeadRepo.UpdateStatus was just called")
	}
	m.mu.Lock()
	m.calls.UpdateStatus = append(m.calls.UpdateStatus, status)
	m.mu.Unlock()
	return m.UpdateStatusFunc(ctx, userID, id, status, at)
}

func (m *userLeadRepoMock) UpdateStatusCalls() []domain.PipelineStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.UpdateStatus
}

func (m *userLeadRepoMock) AppendStatus(ctx context.Context, userLeadID uuid.UUID, entry domain.StatusEntry) error {
	if m.AppendStatusFunc == nil {
		panic("userLeadRepoMock.AppendStatusFunc: method is nil but userLeadRepo.AppendStatus was just called")
	}
	m.mu.Lock()
	m.calls.AppendStatus = append(m.calls.AppendStatus, entry)
	m.mu.Unlock()
	return m.AppendStatusFunc(ctx, userLeadID, entry)
}

func (m *userLeadRepoMock) AppendStatusCalls() []domain.StatusEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.AppendStatus
}

func (m *userLeadRepoMock) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("userLeadRepoMock.DeleteFunc: method is nil but userLeadRepo.Delete was just called")
	}
	m.mu.Lock()
	m.calls.Delete = append(m.calls.Delete, id)
	m.mu.Unlock()
	return m.DeleteFunc(ctx, userID, id)
}

func (m *userLeadRepoMock) DeleteCalls() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Delete
}

type leadRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (domain.Lead, error)
}

func (m *leadRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	if m.GetByIDFunc == nil {
		panic("leadRepoMock.GetByIDFunc: method is nil but leadRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

type activityRepoMock struct {
	AppendFunc         func(ctx context.Context, a domain.Activity) error
	ListByUserLeadFunc func(ctx context.Context, userID, userLeadID uuid.UUID) ([]domain.Activity, error)

	calls struct {
		Append []domain.Activity
	}
	mu sync.Mutex
}

func (m *activityRepoMock) Append(ctx context.Context, a domain.Activity) error {
	if m.AppendFunc == nil {
		panic("activityRepoMock.AppendFunc: method is nil but activityRepo.Append was just called")
	}
	m.mu.Lock()
	m.calls.Append = append(m.calls.Append, a)
	m.mu.Unlock()
	return m.AppendFunc(ctx, a)
}

func (m *activityRepoMock) AppendCalls() []domain.Activity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Append
}

func (m *activityRepoMock) ListByUserLead(ctx context.Context, userID, userLeadID uuid.UUID) ([]domain.Activity, error) {
	if m.ListByUserLeadFunc == nil {
		panic("activityRepoMock.ListByUserLeadFunc: method is nil but activityRepo.ListByUserLead was just called")
	}
	return m.ListByUserLeadFunc(ctx, userID, userLeadID)
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	return m.RunInTxFunc(ctx, fn)
}
