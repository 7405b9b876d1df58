package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanPayment is one projected installment of a loan's schedule
type LoanPayment struct {
	ID               uuid.UUID       `json:"-" db:"id"`
	LoanID           uuid.UUID       `json:"-" db:"loan_id"`
	PaymentNumber    int             `json:"paymentNumber" db:"payment_number"`
	PaymentDate      time.Time       `json:"paymentDate" db:"payment_date"`
	PaymentAmount    decimal.Decimal `json:"paymentAmount" db:"payment_amount"`
	PrincipalPaid    decimal.Decimal `json:"principalPaid" db:"principal_paid"`
	InterestPaid     decimal.Decimal `json:"interestPaid" db:"interest_paid"`
	RemainingBalance decimal.Decimal `json:"remainingBalance" db:"remaining_balance"`
	CreatedAt        time.Time       `json:"-" db:"created_at"`
}
