package rules

import (
	"testing"

	"book-loan-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireMemberAndBookExist(t *testing.T) {
	assert.NoError(t, RequireMemberExists(true))
	assert.NoError(t, RequireBookExists(true))

	err := RequireMemberExists(false)
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	assert.Equal(t, "member not exist", err.Error())

	err = RequireBookExists(false)
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	assert.Equal(t, "book not exist", err.Error())
}

func TestRequireUnderBorrowLimit(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		open    int
		wantErr bool
	}{
		{0, false},
		{1, false},
		{2, false}, // still allowed, the limit fires only above the cap
		{3, true},
		{7, true},
	}

	for _, tt := range tests {
		err := p.RequireUnderBorrowLimit(tt.open)
		if tt.wantErr {
			require.Error(t, err, "open=%d", tt.open)
			assert.Equal(t, domain.KindRuleViolation, domain.KindOf(err))
			assert.Equal(t, "has exceeded the loan limit. You can only borrow 2 books", err.Error())
		} else {
			assert.NoError(t, err, "open=%d", tt.open)
		}
	}
}

func TestRequireBookAvailable(t *testing.T) {
	assert.NoError(t, RequireBookAvailable(0))

	err := RequireBookAvailable(1)
	require.Error(t, err)
	assert.Equal(t, domain.KindRuleViolation, domain.KindOf(err))
	assert.Equal(t, "book not available", err.Error())
}

func TestRequireNoActivePenalty(t *testing.T) {
	assert.NoError(t, RequireNoActivePenalty(domain.PenaltyStatusNone))
	assert.NoError(t, RequireNoActivePenalty(domain.PenaltyStatusClear))

	err := RequireNoActivePenalty(domain.PenaltyStatusActive)
	require.Error(t, err)
	assert.Equal(t, domain.KindRuleViolation, domain.KindOf(err))
	assert.Equal(t, "penalty status is active. You can't borrow books", err.Error())
}

func TestRequireOpenLoanExists(t *testing.T) {
	id, err := RequireOpenLoanExists("abc", true)
	assert.NoError(t, err)
	assert.Equal(t, "abc", id)

	id, err = RequireOpenLoanExists("", false)
	require.Error(t, err)
	assert.Empty(t, id)
	assert.Equal(t, domain.KindInvariant, domain.KindOf(err))
	assert.Equal(t, "book code not valid", err.Error())
}

func TestDueDate(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, domain.NewDate(2024, 8, 8), p.DueDate(domain.NewDate(2024, 8, 1)))
	// crosses a month boundary
	assert.Equal(t, domain.NewDate(2024, 9, 3), p.DueDate(domain.NewDate(2024, 8, 27)))
}

func TestPenaltyEndDate(t *testing.T) {
	p := DefaultPolicy()
	borrowed := domain.NewDate(2024, 8, 1)

	t.Run("Returned on the due date", func(t *testing.T) {
		_, penalized := p.PenaltyEndDate(borrowed, domain.NewDate(2024, 8, 8))
		assert.False(t, penalized)
	})

	t.Run("Returned one day late", func(t *testing.T) {
		end, penalized := p.PenaltyEndDate(borrowed, domain.NewDate(2024, 8, 9))
		assert.True(t, penalized)
		assert.Equal(t, domain.NewDate(2024, 8, 11), end)
	})

	t.Run("Returned ten days later", func(t *testing.T) {
		end, penalized := p.PenaltyEndDate(borrowed, domain.NewDate(2024, 8, 11))
		assert.True(t, penalized)
		assert.Equal(t, domain.NewDate(2024, 8, 13), end)
	})
}

func TestPolicyMessagesFollowLimit(t *testing.T) {
	p := Policy{LoanDays: 14, MaxOpenLoans: 5, PenaltyDays: 4}

	err := p.RequireUnderBorrowLimit(6)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "You can only borrow 5 books")
	assert.Equal(t, 5, p.BarredDays())
	assert.Equal(t, domain.NewDate(2024, 1, 15), p.DueDate(domain.NewDate(2024, 1, 1)))
}
