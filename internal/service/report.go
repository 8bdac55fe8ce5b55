package service

import (
	"context"
	"fmt"

	"book-loan-backend/internal/domain"
	"book-loan-backend/internal/repository"
)

type reportService struct {
	borrowingRepo repository.BorrowingRepository
	clock         Clock
}

func NewReportService(borrowingRepo repository.BorrowingRepository, clock Clock) ReportService {
	return &reportService{borrowingRepo: borrowingRepo, clock: clock}
}

func (s *reportService) OverdueBorrowings(ctx context.Context) ([]domain.OverdueBorrowing, error) {
	overdue, err := s.borrowingRepo.ListOverdue(ctx, domain.DateOf(s.clock()))
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue borrowings: %w", err)
	}
	return overdue, nil
}

func (s *reportService) ActivePenalties(ctx context.Context) ([]domain.MemberPenalty, error) {
	penalties, err := s.borrowingRepo.ListActivePenalties(ctx, domain.DateOf(s.clock()))
	if err != nil {
		return nil, fmt.Errorf("failed to list active penalties: %w", err)
	}
	return penalties, nil
}
