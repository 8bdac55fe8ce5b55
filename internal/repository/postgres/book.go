package postgres

import (
	"context"
	"database/sql"
	"errors"

	"book-loan-backend/internal/domain"
	"book-loan-backend/internal/repository"

	"github.com/doug-martin/goqu/v9"
)

type bookRepository struct {
	db DBTX
}

func NewBookRepository(db DBTX) repository.BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) GetByCode(ctx context.Context, code string) (*domain.Book, error) {
	return r.getByCode(ctx, `SELECT code, title, author, stock FROM books WHERE code = $1`, code)
}

func (r *bookRepository) GetByCodeForUpdate(ctx context.Context, code string) (*domain.Book, error) {
	return r.getByCode(ctx, `SELECT code, title, author, stock FROM books WHERE code = $1 FOR UPDATE`, code)
}

func (r *bookRepository) getByCode(ctx context.Context, query, code string) (*domain.Book, error) {
	b := &domain.Book{}
	err := r.db.QueryRowContext(ctx, query, code).Scan(&b.Code, &b.Title, &b.Author, &b.Stock)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListAvailable returns the books that have no open borrowing.
func (r *bookRepository) ListAvailable(ctx context.Context) ([]domain.Book, error) {
	query, args, err := dialect.From(goqu.T("books").As("b")).
		Select(goqu.I("b.code"), goqu.I("b.title"), goqu.I("b.author"), goqu.I("b.stock")).
		LeftJoin(
			goqu.T("borrowings").As("br"),
			goqu.On(goqu.I("br.book_code").Eq(goqu.I("b.code")), goqu.I("br.return_date").IsNull()),
		).
		Where(goqu.I("br.id").IsNull()).
		Order(goqu.I("b.code").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []domain.Book{}
	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(&b.Code, &b.Title, &b.Author, &b.Stock); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}
