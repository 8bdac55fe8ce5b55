package jobs

import (
	"context"

	"book-loan-backend/internal/logger"
)

// ReportOverdueBorrowings logs every open borrowing past its due date
func (jr *JobRunner) ReportOverdueBorrowings() {
	jr.runWithRecovery("ReportOverdueBorrowings", func() {
		ctx := context.Background()
		log := logger.WithJob("ReportOverdueBorrowings")

		overdue, err := jr.reports.OverdueBorrowings(ctx)
		if err != nil {
			log.Error("Failed to list overdue borrowings", "error", err)
			return
		}

		log.Info("Found overdue borrowings", "count", len(overdue))
		for _, b := range overdue {
			log.Info("Borrowing is overdue",
				"borrowing_id", b.ID,
				"member_code", b.MemberCode,
				"member_name", b.MemberName,
				"book_code", b.BookCode,
				"book_title", b.BookTitle,
				"due_date", b.DueDate.String(),
				"days_overdue", b.DaysOverdue)
		}
	})
}

// ReportActivePenalties logs every member currently barred from borrowing
func (jr *JobRunner) ReportActivePenalties() {
	jr.runWithRecovery("ReportActivePenalties", func() {
		ctx := context.Background()
		log := logger.WithJob("ReportActivePenalties")

		penalties, err := jr.reports.ActivePenalties(ctx)
		if err != nil {
			log.Error("Failed to list active penalties", "error", err)
			return
		}

		log.Info("Found members under penalty", "count", len(penalties))
		for _, p := range penalties {
			log.Info("Member is penalized",
				"member_code", p.MemberCode,
				"member_name", p.MemberName,
				"penalty_end_date", p.PenaltyEndDate.String())
		}
	})
}
