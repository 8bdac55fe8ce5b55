package domain

type Book struct {
	Code   string `json:"code"`
	Title  string `json:"title"`
	Author string `json:"author"`
	// Stock is informational only; availability is derived from open borrowings.
	Stock int32 `json:"stock"`
}
