package jobs

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"book-loan-backend/internal/config"
	"book-loan-backend/internal/domain"
	"book-loan-backend/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) OverdueBorrowings(ctx context.Context) ([]domain.OverdueBorrowing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OverdueBorrowing), args.Error(1)
}

func (m *MockReportService) ActivePenalties(ctx context.Context) ([]domain.MemberPenalty, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MemberPenalty), args.Error(1)
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.InitializeWithWriter(&buf, "info", "text")
	return &buf
}

func TestReportOverdueBorrowings(t *testing.T) {
	buf := captureLogs(t)
	reports := new(MockReportService)
	reports.On("OverdueBorrowings", mock.Anything).Return([]domain.OverdueBorrowing{{
		Borrowing: domain.Borrowing{
			ID: "b-1", MemberCode: "M001", BookCode: "JK-45",
			BorrowDate: domain.NewDate(2024, 1, 1), DueDate: domain.NewDate(2024, 1, 8),
		},
		MemberName:  "Angga",
		BookTitle:   "Harry Potter",
		DaysOverdue: 3,
	}}, nil)

	NewJobRunner(reports, &config.Config{}).ReportOverdueBorrowings()

	out := buf.String()
	assert.Contains(t, out, "count=1")
	assert.Contains(t, out, "borrowing_id=b-1")
	assert.Contains(t, out, "due_date=2024-01-08")
	assert.Contains(t, out, "days_overdue=3")
	assert.Contains(t, out, "job=ReportOverdueBorrowings")
	reports.AssertExpectations(t)
}

func TestReportActivePenalties(t *testing.T) {
	buf := captureLogs(t)
	reports := new(MockReportService)
	reports.On("ActivePenalties", mock.Anything).Return([]domain.MemberPenalty{
		{MemberCode: "M002", MemberName: "Ferry", PenaltyEndDate: domain.NewDate(2024, 1, 12)},
	}, nil)

	NewJobRunner(reports, &config.Config{}).ReportActivePenalties()

	out := buf.String()
	assert.Contains(t, out, "member_code=M002")
	assert.Contains(t, out, "penalty_end_date=2024-01-12")
	reports.AssertExpectations(t)
}

func TestReportJobFailureIsLogged(t *testing.T) {
	buf := captureLogs(t)
	reports := new(MockReportService)
	reports.On("OverdueBorrowings", mock.Anything).Return(nil, errors.New("connection refused"))
	reports.On("ActivePenalties", mock.Anything).Return([]domain.MemberPenalty{}, nil)

	NewJobRunner(reports, &config.Config{}).RunAll()

	out := buf.String()
	assert.Contains(t, out, "Failed to list overdue borrowings")
	assert.Contains(t, out, "count=0")
	reports.AssertExpectations(t)
}

func TestRunWithRecovery(t *testing.T) {
	buf := captureLogs(t)
	jr := NewJobRunner(nil, &config.Config{})

	assert.NotPanics(t, func() {
		jr.runWithRecovery("Boom", func() { panic("kaboom") })
	})
	assert.Contains(t, buf.String(), "Job panicked")
	assert.Contains(t, buf.String(), "panic=kaboom")
}
