package postgres

import (
	"context"
	"database/sql"
	"errors"

	"book-loan-backend/internal/domain"
	"book-loan-backend/internal/repository"

	"github.com/doug-martin/goqu/v9"
)

type memberRepository struct {
	db DBTX
}

func NewMemberRepository(db DBTX) repository.MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) GetByCode(ctx context.Context, code string) (*domain.Member, error) {
	return r.getByCode(ctx, `SELECT code, name FROM members WHERE code = $1`, code)
}

func (r *memberRepository) GetByCodeForUpdate(ctx context.Context, code string) (*domain.Member, error) {
	return r.getByCode(ctx, `SELECT code, name FROM members WHERE code = $1 FOR UPDATE`, code)
}

func (r *memberRepository) getByCode(ctx context.Context, query, code string) (*domain.Member, error) {
	m := &domain.Member{}
	err := r.db.QueryRowContext(ctx, query, code).Scan(&m.Code, &m.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *memberRepository) ListWithOpenCounts(ctx context.Context) ([]domain.MemberLoanCount, error) {
	query, args, err := dialect.From(goqu.T("members").As("m")).
		Select(
			goqu.I("m.code").As("member_code"),
			goqu.I("m.name").As("member_name"),
			goqu.COUNT(goqu.I("br.id")).As("borrowed_books_count"),
		).
		LeftJoin(
			goqu.T("borrowings").As("br"),
			goqu.On(goqu.I("br.member_code").Eq(goqu.I("m.code")), goqu.I("br.return_date").IsNull()),
		).
		GroupBy(goqu.I("m.code"), goqu.I("m.name")).
		Order(goqu.I("m.code").Asc()).
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

	members := []domain.MemberLoanCount{}
	for rows.Next() {
		var m domain.MemberLoanCount
		if err := rows.Scan(&m.MemberCode, &m.MemberName, &m.BorrowedBooksCount); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
