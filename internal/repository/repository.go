package repository

import (
	"context"
	"errors"

	"book-loan-backend/internal/domain"
)

// ErrNotFound is returned by single-row lookups that match nothing.
var ErrNotFound = errors.New("record not found")

type MemberRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Member, error)
	// GetByCodeForUpdate also locks the member row until the surrounding
	// transaction ends. Outside a transaction it behaves like GetByCode.
	GetByCodeForUpdate(ctx context.Context, code string) (*domain.Member, error)
	ListWithOpenCounts(ctx context.Context) ([]domain.MemberLoanCount, error)
}

type BookRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Book, error)
	GetByCodeForUpdate(ctx context.Context, code string) (*domain.Book, error)
	ListAvailable(ctx context.Context) ([]domain.Book, error)
}

type BorrowingRepository interface {
	Create(ctx context.Context, b *domain.Borrowing) error
	GetByID(ctx context.Context, id string) (*domain.Borrowing, error)
	Update(ctx context.Context, b *domain.Borrowing) error
	CountOpenByMember(ctx context.Context, memberCode string) (int, error)
	CountOpenByBook(ctx context.Context, bookCode string) (int, error)
	// LatestPenaltyStatus looks at the member's most recent penalty end date
	// and evaluates it against today.
	LatestPenaltyStatus(ctx context.Context, memberCode string, today domain.Date) (domain.PenaltyStatus, error)
	// FindOpen returns the id of the open borrowing for the pair.
	FindOpen(ctx context.Context, memberCode, bookCode string) (string, error)
	ListOverdue(ctx context.Context, today domain.Date) ([]domain.OverdueBorrowing, error)
	ListActivePenalties(ctx context.Context, today domain.Date) ([]domain.MemberPenalty, error)
	DeleteAll(ctx context.Context) error
}

// Repositories is the set of repositories bound to one connection or
// transaction.
type Repositories struct {
	Members    MemberRepository
	Books      BookRepository
	Borrowings BorrowingRepository
}

// UnitOfWork runs fn inside a single database transaction. The transaction
// commits when fn returns nil and rolls back otherwise.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
