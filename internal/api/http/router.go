package http

import (
	"net/http"
	"time"

	"book-loan-backend/internal/domain"
	"book-loan-backend/internal/logger"

	"github.com/gorilla/mux"
)

// RegisterBorrowingRoutes registers the borrowing HTTP endpoints
func RegisterBorrowingRoutes(router *mux.Router, handler *BorrowingHandler) {
	router.HandleFunc("/borrowings", handler.AddBorrowing).Methods("POST")
	router.HandleFunc("/borrowings/return", handler.ProcessBookReturn).Methods("POST")
	router.HandleFunc("/borrowings", handler.ListAvailableBooks).Methods("GET")
	router.HandleFunc("/borrowings/{id}", handler.GetBorrowing).Methods("GET")
	router.HandleFunc("/members", handler.ListMembers).Methods("GET")
	router.HandleFunc("/healthz", handler.Health).Methods("GET")
}

// NewRouter builds the full router with access logging and JSON 404/405s.
func NewRouter(handler *BorrowingHandler) *mux.Router {
	router := mux.NewRouter()
	router.Use(accessLog)
	RegisterBorrowingRoutes(router, handler)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, domain.NewNotFoundError("Route Not Found"))
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, envelope{Status: "fail", Message: "Method Not Allowed"})
	})
	return router
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.InfoContext(r.Context(), "HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}
