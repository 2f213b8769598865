package lead

import (
	"context"
	"sync"

	"github.com/google/uuid"

	repo "github.com/gigfrog/backend/internal/adapter/postgres/lead"
	"github.com/gigfrog/backend/internal/domain"
)

var _ leadRepo = &leadRepoMock{}

type leadRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (domain.Lead, error)
	ListFunc    func(ctx context.Context, f repo.ListFilter) ([]domain.Lead, int, error)
	CreateFunc  func(ctx context.Context, l domain.Lead) (domain.Lead, error)
	UpdateFunc  func(ctx context.Context, id uuid.UUID, params domain.LeadUpdateParams) (domain.Lead, error)
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error

	calls struct {
		List   []repo.ListFilter
		Create []domain.Lead
		Update []domain.LeadUpdateParams
		Delete []uuid.UUID
	}
	mu sync.Mutex
}

func (m *leadRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	if m.GetByIDFunc == nil {
		panic("leadRepoMock.GetByIDFunc: method is nil but leadRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *leadRepoMock) List(ctx context.Context, f repo.ListFilter) ([]domain.Lead, int, error) {
	if m.ListFunc == nil {
		panic("leadRepoMock.ListFunc: method is nil but leadRepo.List was just called")
	}
	m.mu.Lock()
	m.calls.List = append(m.calls.List, f)
	m.mu.Unlock()
	return m.ListFunc(ctx, f)
}

func (m *leadRepoMock) ListCalls() []repo.ListFilter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.List
}

func (m *leadRepoMock) Create(ctx context.Context, l domain.Lead) (domain.Lead, error) {
	if m.CreateFunc == nil {
		panic("leadRepoMock.CreateFunc: method is nil but leadRepo.Create was just called")
	}
	m.mu.Lock()
	m.calls.Create = append(m.calls.Create, l)
	m.mu.Unlock()
	return m.CreateFunc(ctx, l)
}

func (m *leadRepoMock) CreateCalls() []domain.Lead {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Create
}

func (m *leadRepoMock) Update(ctx context.Context, id uuid.UUID, params domain.LeadUpdateParams) (domain.Lead, error) {
	if m.UpdateFunc == nil {
		panic("leadRepoMock.UpdateFunc: method is nil but leadRepo.Update was just called")
	}
	m.mu.Lock()
	m.calls.Update = append(m.calls.Update, params)
	m.mu.Unlock()
	return m.UpdateFunc(ctx, id, params)
}

func (m *leadRepoMock) UpdateCalls() []domain.LeadUpdateParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Update
}

func (m *leadRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("leadRepoMock.DeleteFunc: method is nil but leadRepo.Delete was just called")
	}
	m.mu.Lock()
	m.calls.Delete = append(m.calls.Delete, id)
	m.mu.Unlock()
	return m.DeleteFunc(ctx, id)
}

func (m *leadRepoMock) DeleteCalls() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Delete
}
