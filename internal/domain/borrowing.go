package domain

type PenaltyStatus string

const (
	PenaltyStatusActive PenaltyStatus = "penalty"
	PenaltyStatusClear  PenaltyStatus = "no penalty"
	// PenaltyStatusNone means the member has never been penalized.
	PenaltyStatusNone PenaltyStatus = ""
)

// Borrowing is one loan of one book to one member. A nil ReturnDate marks the
// borrowing as open.
type Borrowing struct {
	ID             string `json:"id"`
	MemberCode     string `json:"member_code"`
	BookCode       string `json:"book_code"`
	BorrowDate     Date   `json:"borrow_date"`
	ReturnDate     *Date  `json:"return_date"`
	DueDate        Date   `json:"due_date"`
	PenaltyEndDate *Date  `json:"penalty_end_date"`
}

func (b *Borrowing) IsOpen() bool {
	return b.ReturnDate == nil
}

// OverdueBorrowing is an open borrowing whose due date has passed.
type OverdueBorrowing struct {
	Borrowing
	MemberName  string `json:"member_name"`
	BookTitle   string `json:"book_title"`
	DaysOverdue int    `json:"days_overdue"`
}

// MemberPenalty describes a member currently barred from borrowing.
type MemberPenalty struct {
	MemberCode     string `json:"member_code"`
	MemberName     string `json:"member_name"`
	PenaltyEndDate Date   `json:"penalty_end_date"`
}

// ReturnResult reports the outcome of a processed return.
type ReturnResult struct {
	BorrowingID    string `json:"borrowing_id"`
	Penalized      bool   `json:"penalized"`
	PenaltyEndDate *Date  `json:"penalty_end_date,omitempty"`
}
