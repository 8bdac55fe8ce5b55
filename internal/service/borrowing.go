package service

import (
	"context"
	"errors"
	"fmt"

	"book-loan-backend/internal/domain"
	"book-loan-backend/internal/repository"
	"book-loan-backend/internal/rules"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type borrowingService struct {
	uow      repository.UnitOfWork
	repos    repository.Repositories
	policy   rules.Policy
	clock    Clock
	validate *validator.Validate
}

// NewBorrowingService wires the borrowing lifecycle. Add and return run
// inside uow transactions; listings read through repos directly.
func NewBorrowingService(uow repository.UnitOfWork, repos repository.Repositories, policy rules.Policy, clock Clock) BorrowingService {
	return &borrowingService{
		uow:      uow,
		repos:    repos,
		policy:   policy,
		clock:    clock,
		validate: newValidator(),
	}
}

func (s *borrowingService) today() domain.Date {
	return domain.DateOf(s.clock())
}

func (s *borrowingService) AddBorrowing(ctx context.Context, req BorrowRequest) (string, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return "", err
	}

	var id string
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if err := checkMember(ctx, repos.Members, req.MemberCode); err != nil {
			return err
		}
		if err := checkBook(ctx, repos.Books, req.BookCode); err != nil {
			return err
		}

		memberLoans, err := repos.Borrowings.CountOpenByMember(ctx, req.MemberCode)
		if err != nil {
			return fmt.Errorf("failed to count open borrowings for member: %w", err)
		}
		if err := s.policy.RequireUnderBorrowLimit(memberLoans); err != nil {
			return err
		}

		bookLoans, err := repos.Borrowings.CountOpenByBook(ctx, req.BookCode)
		if err != nil {
			return fmt.Errorf("failed to count open borrowings for book: %w", err)
		}
		if err := rules.RequireBookAvailable(bookLoans); err != nil {
			return err
		}

		today := s.today()
		status, err := repos.Borrowings.LatestPenaltyStatus(ctx, req.MemberCode, today)
		if err != nil {
			return fmt.Errorf("failed to read penalty status: %w", err)
		}
		if err := rules.RequireNoActivePenalty(status); err != nil {
			return err
		}

		b := &domain.Borrowing{
			ID:         uuid.NewString(),
			MemberCode: req.MemberCode,
			BookCode:   req.BookCode,
			BorrowDate: today,
			DueDate:    s.policy.DueDate(today),
		}
		if err := repos.Borrowings.Create(ctx, b); err != nil {
			return fmt.Errorf("failed to save borrowing: %w", err)
		}
		id = b.ID
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// ProcessBookReturn closes the open borrowing for the pair. The return date is
// written first and the penalty, if any, is written by a second update; both
// happen in the same transaction.
func (s *borrowingService) ProcessBookReturn(ctx context.Context, req ReturnRequest) (*domain.ReturnResult, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}

	var result *domain.ReturnResult
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if err := checkMember(ctx, repos.Members, req.MemberCode); err != nil {
			return err
		}
		if err := checkBook(ctx, repos.Books, req.BookCode); err != nil {
			return err
		}

		openID, err := repos.Borrowings.FindOpen(ctx, req.MemberCode, req.BookCode)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("failed to find open borrowing: %w", err)
		}
		id, err := rules.RequireOpenLoanExists(openID, err == nil)
		if err != nil {
			return err
		}

		b, err := repos.Borrowings.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load borrowing %s: %w", id, err)
		}

		today := s.today()
		b.ReturnDate = &today
		if err := repos.Borrowings.Update(ctx, b); err != nil {
			return fmt.Errorf("failed to record return: %w", err)
		}

		end, penalized := s.policy.PenaltyEndDate(b.BorrowDate, today)
		if !penalized {
			result = &domain.ReturnResult{BorrowingID: id}
			return nil
		}

		b.PenaltyEndDate = &end
		if err := repos.Borrowings.Update(ctx, b); err != nil {
			return fmt.Errorf("failed to record penalty: %w", err)
		}
		result = &domain.ReturnResult{BorrowingID: id, Penalized: true, PenaltyEndDate: &end}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *borrowingService) GetBorrowing(ctx context.Context, id string) (*domain.Borrowing, error) {
	if id == "" {
		return nil, domain.NewValidationError(`"id" is required`)
	}
	b, err := s.repos.Borrowings.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.NewNotFoundError("borrowing not exist")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load borrowing %s: %w", id, err)
	}
	return b, nil
}

func (s *borrowingService) ListAvailableBooks(ctx context.Context) ([]domain.Book, error) {
	books, err := s.repos.Books.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list available books: %w", err)
	}
	return books, nil
}

func (s *borrowingService) ListMembers(ctx context.Context) ([]domain.MemberLoanCount, error) {
	members, err := s.repos.Members.ListWithOpenCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// checkMember locks the member row so concurrent operations for the same
// member queue behind this transaction.
func checkMember(ctx context.Context, members repository.MemberRepository, code string) error {
	_, err := members.GetByCodeForUpdate(ctx, code)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to look up member: %w", err)
	}
	return rules.RequireMemberExists(err == nil)
}

func checkBook(ctx context.Context, books repository.BookRepository, code string) error {
	_, err := books.GetByCodeForUpdate(ctx, code)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to look up book: %w", err)
	}
	return rules.RequireBookExists(err == nil)
}
