package service

import (
	"context"
	"errors"
	"testing"

	"book-loan-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService(t *testing.T) {
	ctx := context.Background()
	today := domain.NewDate(2024, 8, 20)
	repo := new(MockBorrowingRepo)
	svc := NewReportService(repo, fixedClock(today))

	t.Run("Overdue", func(t *testing.T) {
		repo.On("ListOverdue", ctx, today).Return([]domain.OverdueBorrowing{{DaysOverdue: 3}}, nil).Once()

		overdue, err := svc.OverdueBorrowings(ctx)
		require.NoError(t, err)
		require.Len(t, overdue, 1)
		assert.Equal(t, 3, overdue[0].DaysOverdue)
	})

	t.Run("Penalties failure", func(t *testing.T) {
		repo.On("ListActivePenalties", ctx, today).Return(nil, errors.New("timeout")).Once()

		_, err := svc.ActivePenalties(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list active penalties")
	})

	repo.AssertExpectations(t)
}
