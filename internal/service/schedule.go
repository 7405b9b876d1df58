package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/taruntejajangila/expensetracker-sub000/internal/amortization"
	"github.com/taruntejajangila/expensetracker-sub000/internal/domain"
	customError "github.com/taruntejajangila/expensetracker-sub000/pkg/errors"
	"github.com/taruntejajangila/expensetracker-sub000/pkg/utils"
)

// buildSchedule dates each amortization entry from startDate and rounds the
// amounts to cents for storage.
func buildSchedule(loanID uuid.UUID, startDate time.Time, result *amortization.Result, now time.Time) []*domain.LoanPayment {
	schedule := make([]*domain.LoanPayment, 0, len(result.Schedule))
	for _, entry := range result.Schedule {
		schedule = append(schedule, &domain.LoanPayment{
			ID:               uuid.New(),
			LoanID:           loanID,
			PaymentNumber:    entry.PaymentNumber,
			PaymentDate:      utils.CalculatePaymentDate(startDate, entry.PaymentNumber),
			PaymentAmount:    utils.RoundMoney(entry.PaymentAmount),
			PrincipalPaid:    utils.RoundMoney(entry.PrincipalPaid),
			InterestPaid:     utils.RoundMoney(entry.InterestPaid),
			RemainingBalance: utils.RoundMoney(entry.RemainingBalance),
			CreatedAt:        now,
		})
	}
	return schedule
}

// ReconcileSchedules rebuilds every stored schedule whose row count no
// longer matches its loan's term. A failing loan is logged and skipped.
// It returns how many schedules were rebuilt.
func (s *LoanService) ReconcileSchedules(ctx context.Context) (int, error) {
	drifted, err := s.LoanRepo.FindScheduleDrift(ctx)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	rebuilt := 0
	for _, drift := range drifted {
		if ctx.Err() != nil {
			return rebuilt, ctx.Err()
		}

		entry := s.log.WithFields(logrus.Fields{
			"loan_id":     drift.LoanID,
			"user_id":     drift.UserID,
			"term_months": drift.TermMonths,
			"row_count":   drift.RowCount,
		})

		if err := s.rebuildSchedule(ctx, drift); err != nil {
			entry.WithError(err).Error("failed to rebuild schedule")
			continue
		}

		entry.Info("schedule rebuilt")
		rebuilt++
	}

	s.log.WithFields(logrus.Fields{
		"drifted": len(drifted),
		"rebuilt": rebuilt,
	}).Info("schedule reconciliation finished")

	return rebuilt, nil
}

func (s *LoanService) rebuildSchedule(ctx context.Context, drift *domain.ScheduleDrift) error {
	loan, err := s.GetLoanByID(ctx, drift.LoanID, drift.UserID)
	if err != nil {
		return err
	}

	result, err := amortization.Calculate(loan.PrincipalAmount, loan.InterestRate, loan.TermMonths, loan.LoanType)
	if err != nil {
		return customError.WrapValidation(err)
	}

	schedule := buildSchedule(loan.ID, loan.StartDate, result, s.now())
	if err := s.LoanRepo.ReplaceSchedule(ctx, loan.ID, schedule); err != nil {
		return customError.WrapDatabaseError(err)
	}

	s.invalidate(ctx, loan.UserID, loan.ID)
	return nil
}
