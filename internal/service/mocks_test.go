package service

import (
	"context"
	"time"

	"book-loan-backend/internal/domain"
	"book-loan-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockMemberRepo
type MockMemberRepo struct {
	mock.Mock
}

func (m *MockMemberRepo) GetByCode(ctx context.Context, code string) (*domain.Member, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberRepo) GetByCodeForUpdate(ctx context.Context, code string) (*domain.Member, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberRepo) ListWithOpenCounts(ctx context.Context) ([]domain.MemberLoanCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MemberLoanCount), args.Error(1)
}

// MockBookRepo
type MockBookRepo struct {
	mock.Mock
}

func (m *MockBookRepo) GetByCode(ctx context.Context, code string) (*domain.Book, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockBookRepo) GetByCodeForUpdate(ctx context.Context, code string) (*domain.Book, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockBookRepo) ListAvailable(ctx context.Context) ([]domain.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Book), args.Error(1)
}

// MockBorrowingRepo
type MockBorrowingRepo struct {
	mock.Mock
}

func (m *MockBorrowingRepo) Create(ctx context.Context, b *domain.Borrowing) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBorrowingRepo) GetByID(ctx context.Context, id string) (*domain.Borrowing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Borrowing), args.Error(1)
}
func (m *MockBorrowingRepo) Update(ctx context.Context, b *domain.Borrowing) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBorrowingRepo) CountOpenByMember(ctx context.Context, memberCode string) (int, error) {
	args := m.Called(ctx, memberCode)
	return args.Int(0), args.Error(1)
}
func (m *MockBorrowingRepo) CountOpenByBook(ctx context.Context, bookCode string) (int, error) {
	args := m.Called(ctx, bookCode)
	return args.Int(0), args.Error(1)
}
func (m *MockBorrowingRepo) LatestPenaltyStatus(ctx context.Context, memberCode string, today domain.Date) (domain.PenaltyStatus, error) {
	args := m.Called(ctx, memberCode, today)
	return args.Get(0).(domain.PenaltyStatus), args.Error(1)
}
func (m *MockBorrowingRepo) FindOpen(ctx context.Context, memberCode, bookCode string) (string, error) {
	args := m.Called(ctx, memberCode, bookCode)
	return args.String(0), args.Error(1)
}
func (m *MockBorrowingRepo) ListOverdue(ctx context.Context, today domain.Date) ([]domain.OverdueBorrowing, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OverdueBorrowing), args.Error(1)
}
func (m *MockBorrowingRepo) ListActivePenalties(ctx context.Context, today domain.Date) ([]domain.MemberPenalty, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MemberPenalty), args.Error(1)
}
func (m *MockBorrowingRepo) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// passthroughUnit runs fn directly against the given repositories.
type passthroughUnit struct {
	repos repository.Repositories
	calls int
}

func (u *passthroughUnit) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	u.calls++
	return fn(ctx, u.repos)
}

func fixedClock(d domain.Date) Clock {
	return func() time.Time { return d.Time().Add(15 * time.Hour) }
}
