package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"book-loan-backend/internal/logger"
	"book-loan-backend/internal/repository"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/lib/pq"
)

var dialect = goqu.Dialect("postgres")

// DBTX is satisfied by both *sql.DB and *sql.Tx, so the same repository code
// runs inside and outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.MemberRepository
	repository.BookRepository
	repository.BorrowingRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                  db,
		MemberRepository:    NewMemberRepository(db),
		BookRepository:      NewBookRepository(db),
		BorrowingRepository: NewBorrowingRepository(db),
	}
}

// Repositories returns the repositories bound to the connection pool.
func (s *Store) Repositories() repository.Repositories {
	return repository.Repositories{
		Members:    s.MemberRepository,
		Books:      s.BookRepository,
		Borrowings: s.BorrowingRepository,
	}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	repos := repository.Repositories{
		Members:    NewMemberRepository(tx),
		Books:      NewBookRepository(tx),
		Borrowings: NewBorrowingRepository(tx),
	}

	if err := fn(ctx, repos); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("Failed to roll back transaction", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
