package postgres

import (
	"context"
	"testing"

	"book-loan-backend/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberRepository_GetByCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMemberRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT code, name FROM members WHERE code = \$1`).
			WithArgs("M001").
			WillReturnRows(sqlmock.NewRows([]string{"code", "name"}).AddRow("M001", "Angga"))

		m, err := repo.GetByCode(ctx, "M001")
		require.NoError(t, err)
		assert.Equal(t, "M001", m.Code)
		assert.Equal(t, "Angga", m.Name)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT code, name FROM members WHERE code = \$1`).
			WithArgs("not-found").
			WillReturnRows(sqlmock.NewRows([]string{"code", "name"}))

		m, err := repo.GetByCode(ctx, "not-found")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, m)
	})

	t.Run("Locks row", func(t *testing.T) {
		mock.ExpectQuery(`SELECT code, name FROM members WHERE code = \$1 FOR UPDATE`).
			WithArgs("M001").
			WillReturnRows(sqlmock.NewRows([]string{"code", "name"}).AddRow("M001", "Angga"))

		_, err := repo.GetByCodeForUpdate(ctx, "M001")
		assert.NoError(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberRepository_ListWithOpenCounts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMemberRepository(db)

	rows := sqlmock.NewRows([]string{"member_code", "member_name", "borrowed_books_count"}).
		AddRow("M001", "Angga", 2).
		AddRow("M002", "Ferry", 0)
	mock.ExpectQuery(`SELECT (.+) FROM "members" AS "m" LEFT JOIN "borrowings" AS "br" (.+) GROUP BY`).
		WillReturnRows(rows)

	members, err := repo.ListWithOpenCounts(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, int32(2), members[0].BorrowedBooksCount)
	assert.Equal(t, "Ferry", members[1].MemberName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
