package referral

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/gigfrog/backend/internal/domain"
)

var (
	_ referralRepo = &referralRepoMock{}
	_ userLeadRepo = &userLeadRepoMock{}
	_ txManager    = &txManagerMock{}
)

type referralRepoMock struct {
	GetByIDFunc        func(ctx context.Context, userID, id uuid.UUID) (domain.Referral, error)
	ListFunc           func(ctx context.Context, userID uuid.UUID) ([]domain.Referral, error)
	CreateFunc         func(ctx context.Context, ref domain.Referral) (domain.Referral, error)
	UpdateFunc         func(ctx context.Context, userID, id uuid.UUID, params domain.ReferralUpdateParams) (domain.Referral, error)
	AppendActivityFunc func(ctx context.Context, referralID uuid.UUID, entry domain.ReferralActivityEntry) error
	DeleteFunc         func(ctx context.Context, userID, id uuid.UUID) error
	ListActivityFunc   func(ctx context.Context, referralID uuid.UUID) ([]domain.ReferralActivityEntry, error)

	calls struct {
		AppendActivity []domain.ReferralActivityEntry
		Delete         []uuid.UUID
	}
	mu sync.Mutex
}

func (m *referralRepoMock) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Referral, error) {
	if m.GetByIDFunc == nil {
		panic("referralRepoMock.GetByIDFunc: method is nil but referralRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, userID, id)
}

func (m *referralRepoMock) List(ctx context.Context, userID uuid.UUID) ([]domain.Referral, error) {
	if m.ListFunc == nil {
		panic("referralRepoMock.ListFunc: method is nil but referralRepo.List was just called")
	}
	return m.ListFunc(ctx, userID)
}

func (m *referralRepoMock) Create(ctx context.Context, ref domain.Referral) (domain.Referral, error) {
	if m.CreateFunc == nil {
		panic("referralRepoMock.CreateFunc: method is nil but referralRepo.Create was just called")
	}
	return m.CreateFunc(ctx, ref)
}

func (m *referralRepoMock) Update(ctx context.Context, userID, id uuid.UUID, params domain.ReferralUpdateParams) (domain.Referral, error) {
	if m.UpdateFunc == nil {
		panic("referralRepoMock.UpdateFunc: method is nil but referralRepo.Update was just called")
	}
	return m.UpdateFunc(ctx, userID, id, params)
}

func (m *referralRepoMock) AppendActivity(ctx context.Context, referralID uuid.UUID, entry domain.ReferralActivityEntry) error {
	if m.AppendActivityFunc == nil {
		panic("referralRepoMock.AppendActivityFunc: method is nil but referralRepo.AppendActivity was just called")
	}
	m.mu.Lock()
	m.calls.AppendActivity = append(m.calls.AppendActivity, entry)
	m.mu.Unlock()
	return m.AppendActivityFunc(ctx, referralID, entry)
}

func (m *referralRepoMock) AppendActivityCalls() []domain.ReferralActivityEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.AppendActivity
}

func (m *referralRepoMock) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("referralRepoMock.DeleteFunc: method is nil but referralRepo.Delete was just called")
	}
	m.mu.Lock()
	m.calls.Delete = append(m.calls.Delete, id)
	m.mu.Unlock()
	return m.DeleteFunc(ctx, userID, id)
}

func (m *referralRepoMock) DeleteCalls() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Delete
}

func (m *referralRepoMock) ListActivity(ctx context.Context, referralID uuid.UUID) ([]domain.ReferralActivityEntry, error) {
	if m.ListActivityFunc == nil {
		panic("referralRepoMock.ListActivityFunc: method is nil but referralRepo.ListActivity was just called")
	}
	return m.ListActivityFunc(ctx, referralID)
}

type userLeadRepoMock struct {
	GetByIDFunc func(ctx context.Context, userID, id uuid.UUID) (domain.UserLead, error)
}

func (m *userLeadRepoMock) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.UserLead, error) {
	if m.GetByIDFunc == nil {
		panic("userLeadRepoMock.GetByIDFunc: method is nil but userLeadRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, userID, id)
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
