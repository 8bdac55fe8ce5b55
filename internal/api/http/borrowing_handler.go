package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"book-loan-backend/internal/domain"
	"book-loan-backend/internal/rules"
	"book-loan-backend/internal/service"

	"github.com/gorilla/mux"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BorrowingHandler serves the borrowing REST endpoints
type BorrowingHandler struct {
	svc    service.BorrowingService
	db     Pinger
	policy rules.Policy
}

func NewBorrowingHandler(svc service.BorrowingService, db Pinger, policy rules.Policy) *BorrowingHandler {
	return &BorrowingHandler{svc: svc, db: db, policy: policy}
}

type borrowingPayload struct {
	MemberCode string `json:"member_code"`
	BookCode   string `json:"book_code"`
}

// decodePayload rejects bodies that are not JSON objects or whose codes are
// not strings.
func decodePayload(r *http.Request) (borrowingPayload, error) {
	var p borrowingPayload
	if r.Body == nil {
		return p, nil
	}
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return p, domain.NewValidationError(fmt.Sprintf("invalid request body: %v", err))
	}
	return p, nil
}

// AddBorrowing handles POST /borrowings
func (h *BorrowingHandler) AddBorrowing(w http.ResponseWriter, r *http.Request) {
	p, err := decodePayload(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.svc.AddBorrowing(r.Context(), service.BorrowRequest{MemberCode: p.MemberCode, BookCode: p.BookCode})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Borrowing added successfully", map[string]string{"borrowingId": id})
}

// ProcessBookReturn handles POST /borrowings/return
func (h *BorrowingHandler) ProcessBookReturn(w http.ResponseWriter, r *http.Request) {
	p, err := decodePayload(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.svc.ProcessBookReturn(r.Context(), service.ReturnRequest{MemberCode: p.MemberCode, BookCode: p.BookCode})
	if err != nil {
		writeError(w, r, err)
		return
	}

	message := "Your book return is successful"
	if res.Penalized {
		message = fmt.Sprintf("Your book return is successful. But you have to be penalized. You can borrow %d days later counting the day of return", h.policy.BarredDays())
	}
	writeSuccess(w, http.StatusOK, message, res)
}

// ListAvailableBooks handles GET /borrowings
func (h *BorrowingHandler) ListAvailableBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.ListAvailableBooks(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", map[string]any{"books": books})
}

// GetBorrowing handles GET /borrowings/{id}
func (h *BorrowingHandler) GetBorrowing(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.GetBorrowing(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", map[string]any{"borrowing": b})
}

// ListMembers handles GET /members
func (h *BorrowingHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.ListMembers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", map[string]any{"members": members})
}

// Health handles GET /healthz
func (h *BorrowingHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		writeError(w, r, fmt.Errorf("database unreachable: %w", err))
		return
	}
	writeSuccess(w, http.StatusOK, "ok", nil)
}
