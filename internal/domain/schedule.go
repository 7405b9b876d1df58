package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ScheduleResponse struct {
	LoanID   uuid.UUID      `json:"loanId"`
	Schedule []*LoanPayment `json:"schedule"`
}

// PreviewRequest asks for an amortization without storing a loan.
type PreviewRequest struct {
	LoanType     string          `json:"loanType" validate:"required,loan_type"`
	Amount       decimal.Decimal `json:"amount" validate:"gt=0,max_amount"`
	InterestRate decimal.Decimal `json:"interestRate" validate:"gte=0,lte=50"`
	TermMonths   int             `json:"termMonths" validate:"gt=0,lte=600"`
	StartDate    time.Time       `json:"startDate" validate:"required"`
}

type AmortizationPreview struct {
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	EndDate        time.Time       `json:"endDate"`
	Schedule       []*LoanPayment  `json:"schedule"`
}

// ScheduleDrift names a loan whose stored schedule no longer has one row
// per month of its term.
type ScheduleDrift struct {
	LoanID     uuid.UUID `db:"id"`
	UserID     string    `db:"user_id"`
	TermMonths int       `db:"term_months"`
	RowCount   int       `db:"row_count"`
}
