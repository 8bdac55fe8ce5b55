package domain

type Member struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// MemberLoanCount pairs a member with the number of borrowings they still hold.
type MemberLoanCount struct {
	MemberCode         string `json:"member_code"`
	MemberName         string `json:"member_name"`
	BorrowedBooksCount int32  `json:"borrowed_books_count"`
}
