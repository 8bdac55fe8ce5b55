package service

import (
	"context"
	"time"

	"book-loan-backend/internal/domain"
)

// Clock returns the current wall-clock time in the library's time zone.
type Clock func() time.Time

// BorrowRequest is the input for AddBorrowing.
type BorrowRequest struct {
	MemberCode string `json:"member_code" validate:"required"`
	BookCode   string `json:"book_code" validate:"required"`
}

// ReturnRequest is the input for ProcessBookReturn.
type ReturnRequest struct {
	MemberCode string `json:"member_code" validate:"required"`
	BookCode   string `json:"book_code" validate:"required"`
}

type BorrowingService interface {
	AddBorrowing(ctx context.Context, req BorrowRequest) (string, error)
	ProcessBookReturn(ctx context.Context, req ReturnRequest) (*domain.ReturnResult, error)
	GetBorrowing(ctx context.Context, id string) (*domain.Borrowing, error)
	ListAvailableBooks(ctx context.Context) ([]domain.Book, error)
	ListMembers(ctx context.Context) ([]domain.MemberLoanCount, error)
}

type ReportService interface {
	OverdueBorrowings(ctx context.Context) ([]domain.OverdueBorrowing, error)
	ActivePenalties(ctx context.Context) ([]domain.MemberPenalty, error)
}
