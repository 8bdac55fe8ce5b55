// Package rules holds the borrowing decisions that do not touch storage.
// Every check either passes (nil) or returns the first violation it finds.
package rules

import (
	"fmt"

	"book-loan-backend/internal/domain"
)

const (
	DefaultLoanDays     = 7
	DefaultMaxOpenLoans = 2
	DefaultPenaltyDays  = 2
)

// Policy holds the loan parameters. The zero value is not usable; start from
// DefaultPolicy.
type Policy struct {
	LoanDays     int
	MaxOpenLoans int
	PenaltyDays  int
}

func DefaultPolicy() Policy {
	return Policy{
		LoanDays:     DefaultLoanDays,
		MaxOpenLoans: DefaultMaxOpenLoans,
		PenaltyDays:  DefaultPenaltyDays,
	}
}

func RequireMemberExists(found bool) error {
	if !found {
		return domain.NewNotFoundError("member not exist")
	}
	return nil
}

func RequireBookExists(found bool) error {
	if !found {
		return domain.NewNotFoundError("book not exist")
	}
	return nil
}

// RequireUnderBorrowLimit rejects only when the member already holds more
// than MaxOpenLoans, so a member at exactly the limit may still borrow once.
func (p Policy) RequireUnderBorrowLimit(openCount int) error {
	if openCount > p.MaxOpenLoans {
		return domain.NewRuleViolation(fmt.Sprintf("has exceeded the loan limit. You can only borrow %d books", p.MaxOpenLoans))
	}
	return nil
}

func RequireBookAvailable(openLoansForBook int) error {
	if openLoansForBook > 0 {
		return domain.NewRuleViolation("book not available")
	}
	return nil
}

func RequireNoActivePenalty(status domain.PenaltyStatus) error {
	if status == domain.PenaltyStatusActive {
		return domain.NewRuleViolation("penalty status is active. You can't borrow books")
	}
	return nil
}

// RequireOpenLoanExists yields the id of the open borrowing to close.
func RequireOpenLoanExists(id string, found bool) (string, error) {
	if !found {
		return "", domain.NewInvariantError("book code not valid")
	}
	return id, nil
}

func (p Policy) DueDate(borrowDate domain.Date) domain.Date {
	return borrowDate.AddDays(p.LoanDays)
}

// PenaltyEndDate returns the last day of the penalty window opened by a
// return, or false when the return was on time.
func (p Policy) PenaltyEndDate(borrowDate, returnDate domain.Date) (domain.Date, bool) {
	if returnDate.DaysSince(borrowDate) > p.LoanDays {
		return returnDate.AddDays(p.PenaltyDays), true
	}
	return domain.Date{}, false
}

// BarredDays is the number of days, counting the day of return, before a
// penalized member may borrow again.
func (p Policy) BarredDays() int {
	return p.PenaltyDays + 1
}
