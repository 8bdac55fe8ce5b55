package postgres

import (
	"context"
	"database/sql"
	"errors"

	"book-loan-backend/internal/domain"
	"book-loan-backend/internal/logger"
	"book-loan-backend/internal/repository"

	"github.com/doug-martin/goqu/v9"
)

type borrowingRepository struct {
	db DBTX
}

func NewBorrowingRepository(db DBTX) repository.BorrowingRepository {
	return &borrowingRepository{db: db}
}

func (r *borrowingRepository) Create(ctx context.Context, b *domain.Borrowing) error {
	logger.EnterMethod("borrowingRepository.Create", "memberCode", b.MemberCode, "bookCode", b.BookCode)

	query := `
		INSERT INTO borrowings (id, member_code, book_code, borrow_date, return_date, due_date, penalty_end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.MemberCode, b.BookCode, b.BorrowDate, b.ReturnDate, b.DueDate, b.PenaltyEndDate,
	)
	if err != nil {
		logger.ExitMethodWithError("borrowingRepository.Create", err, "borrowingID", b.ID)
		return err
	}

	logger.ExitMethod("borrowingRepository.Create", "borrowingID", b.ID)
	return nil
}

func (r *borrowingRepository) GetByID(ctx context.Context, id string) (*domain.Borrowing, error) {
	logger.EnterMethod("borrowingRepository.GetByID", "borrowingID", id)

	query := `
		SELECT id, member_code, book_code, borrow_date, return_date, due_date, penalty_end_date
		FROM borrowings WHERE id = $1
	`
	b := &domain.Borrowing{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.MemberCode, &b.BookCode, &b.BorrowDate, &b.ReturnDate, &b.DueDate, &b.PenaltyEndDate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		logger.ExitMethod("borrowingRepository.GetByID", "borrowingID", id, "found", false)
		return nil, repository.ErrNotFound
	}
	if err != nil {
		logger.ExitMethodWithError("borrowingRepository.GetByID", err, "borrowingID", id)
		return nil, err
	}

	logger.ExitMethod("borrowingRepository.GetByID", "borrowingID", id)
	return b, nil
}

// Update rewrites every column of the borrowing identified by b.ID.
func (r *borrowingRepository) Update(ctx context.Context, b *domain.Borrowing) error {
	logger.EnterMethod("borrowingRepository.Update", "borrowingID", b.ID)

	query := `
		UPDATE borrowings SET
			member_code = $1,
			book_code = $2,
			borrow_date = $3,
			return_date = $4,
			due_date = $5,
			penalty_end_date = $6
		WHERE id = $7
	`
	res, err := r.db.ExecContext(ctx, query,
		b.MemberCode, b.BookCode, b.BorrowDate, b.ReturnDate, b.DueDate, b.PenaltyEndDate, b.ID,
	)
	if err != nil {
		logger.ExitMethodWithError("borrowingRepository.Update", err, "borrowingID", b.ID)
		return err
	}

	n, _ := res.RowsAffected()
	logger.DatabaseResult("borrowingRepository.Update", n, nil, "borrowingID", b.ID)
	if n == 0 {
		return repository.ErrNotFound
	}

	logger.ExitMethod("borrowingRepository.Update", "borrowingID", b.ID)
	return nil
}

func (r *borrowingRepository) CountOpenByMember(ctx context.Context, memberCode string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM borrowings WHERE member_code = $1 AND return_date IS NULL`
	err := r.db.QueryRowContext(ctx, query, memberCode).Scan(&count)
	return count, err
}

func (r *borrowingRepository) CountOpenByBook(ctx context.Context, bookCode string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM borrowings WHERE book_code = $1 AND return_date IS NULL`
	err := r.db.QueryRowContext(ctx, query, bookCode).Scan(&count)
	return count, err
}

func (r *borrowingRepository) LatestPenaltyStatus(ctx context.Context, memberCode string, today domain.Date) (domain.PenaltyStatus, error) {
	query := `
		SELECT CASE WHEN $2::date <= penalty_end_date THEN 'penalty' ELSE 'no penalty' END AS penalty_status
		FROM borrowings
		WHERE member_code = $1 AND penalty_end_date IS NOT NULL
		ORDER BY penalty_end_date DESC
		LIMIT 1
	`
	var status string
	err := r.db.QueryRowContext(ctx, query, memberCode, today).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.PenaltyStatusNone, nil
	}
	if err != nil {
		return domain.PenaltyStatusNone, err
	}
	return domain.PenaltyStatus(status), nil
}

func (r *borrowingRepository) FindOpen(ctx context.Context, memberCode, bookCode string) (string, error) {
	var id string
	query := `SELECT id FROM borrowings WHERE member_code = $1 AND book_code = $2 AND return_date IS NULL LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, memberCode, bookCode).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *borrowingRepository) ListOverdue(ctx context.Context, today domain.Date) ([]domain.OverdueBorrowing, error) {
	query, args, err := dialect.From(goqu.T("borrowings").As("br")).
		Select(
			goqu.I("br.id"), goqu.I("br.member_code"), goqu.I("br.book_code"),
			goqu.I("br.borrow_date"), goqu.I("br.due_date"),
			goqu.I("m.name"), goqu.I("b.title"),
		).
		Join(goqu.T("members").As("m"), goqu.On(goqu.I("m.code").Eq(goqu.I("br.member_code")))).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("b.code").Eq(goqu.I("br.book_code")))).
		Where(goqu.I("br.return_date").IsNull(), goqu.I("br.due_date").Lt(today.String())).
		Order(goqu.I("br.due_date").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, err
	}

	logger.DatabaseCall("borrowingRepository.ListOverdue", query, "today", today.String())
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult("borrowingRepository.ListOverdue", 0, err)
		return nil, err
	}
	defer rows.Close()

	overdue := []domain.OverdueBorrowing{}
	for rows.Next() {
		var o domain.OverdueBorrowing
		if err := rows.Scan(&o.ID, &o.MemberCode, &o.BookCode, &o.BorrowDate, &o.DueDate, &o.MemberName, &o.BookTitle); err != nil {
			return nil, err
		}
		o.DaysOverdue = today.DaysSince(o.DueDate)
		overdue = append(overdue, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.DatabaseResult("borrowingRepository.ListOverdue", int64(len(overdue)), nil)
	return overdue, nil
}

// ListActivePenalties returns one row per member whose latest penalty end
// date is today or later.
func (r *borrowingRepository) ListActivePenalties(ctx context.Context, today domain.Date) ([]domain.MemberPenalty, error) {
	latest := goqu.MAX(goqu.I("br.penalty_end_date"))
	query, args, err := dialect.From(goqu.T("borrowings").As("br")).
		Select(goqu.I("m.code"), goqu.I("m.name"), latest.As("penalty_end_date")).
		Join(goqu.T("members").As("m"), goqu.On(goqu.I("m.code").Eq(goqu.I("br.member_code")))).
		Where(goqu.I("br.penalty_end_date").IsNotNull()).
		GroupBy(goqu.I("m.code"), goqu.I("m.name")).
		Having(latest.Gte(today.String())).
		Order(goqu.I("m.code").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, err
	}

	logger.DatabaseCall("borrowingRepository.ListActivePenalties", query, "today", today.String())
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult("borrowingRepository.ListActivePenalties", 0, err)
		return nil, err
	}
	defer rows.Close()

	penalties := []domain.MemberPenalty{}
	for rows.Next() {
		var p domain.MemberPenalty
		if err := rows.Scan(&p.MemberCode, &p.MemberName, &p.PenaltyEndDate); err != nil {
			return nil, err
		}
		penalties = append(penalties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.DatabaseResult("borrowingRepository.ListActivePenalties", int64(len(penalties)), nil)
	return penalties, nil
}

func (r *borrowingRepository) DeleteAll(ctx context.Context) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM borrowings`)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	logger.Info("Deleted borrowings", "count", n)
	return nil
}
