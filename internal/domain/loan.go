package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	LoanStatusActive     = "active"
	LoanStatusPaidOff    = "paid_off"
	LoanStatusDefaulted  = "defaulted"
	LoanStatusRefinanced = "refinanced"
)

// Loan types accepted from clients.
const (
	LoanTypePersonal            = "Personal Loan"
	LoanTypeHome                = "Home Loan"
	LoanTypeCar                 = "Car Loan"
	LoanTypeBusiness            = "Business Loan"
	LoanTypeGold                = "Gold Loan"
	LoanTypeEducation           = "Education Loan"
	LoanTypePrivateMoneyLending = "Private Money Lending"
	LoanTypeOther               = "Other"
)

var LoanTypes = []string{
	LoanTypePersonal,
	LoanTypeHome,
	LoanTypeCar,
	LoanTypeBusiness,
	LoanTypeGold,
	LoanTypeEducation,
	LoanTypePrivateMoneyLending,
	LoanTypeOther,
}

var LoanStatuses = []string{
	LoanStatusActive,
	LoanStatusPaidOff,
	LoanStatusDefaulted,
	LoanStatusRefinanced,
}

// IsValidLoanType reports whether t is one of LoanTypes.
func IsValidLoanType(t string) bool {
	for _, lt := range LoanTypes {
		if lt == t {
			return true
		}
	}
	return false
}

// IsInterestOnly reports whether scheduled payments of this loan type cover
// interest only, leaving the principal for a final balloon payment.
func IsInterestOnly(loanType string) bool {
	switch loanType {
	case LoanTypeGold, LoanTypePrivateMoneyLending, LoanTypeOther:
		return true
	}
	return false
}

// Loan represents a borrowing instrument tracked by a user
type Loan struct {
	ID                 uuid.UUID       `json:"id" db:"id"`
	UserID             string          `json:"userId" db:"user_id"`
	Name               string          `json:"name" db:"name"`
	LoanType           string          `json:"loanType" db:"loan_type"`
	PrincipalAmount    decimal.Decimal `json:"amount" db:"principal_amount"`
	InterestRate       decimal.Decimal `json:"interestRate" db:"interest_rate"`
	TermMonths         int             `json:"termMonths" db:"term_months"`
	MonthlyPayment     decimal.Decimal `json:"monthlyPayment" db:"monthly_payment"`
	TotalInterest      decimal.Decimal `json:"totalInterest" db:"total_interest"`
	OutstandingBalance decimal.Decimal `json:"remainingBalance" db:"outstanding_balance"`
	Status             string          `json:"status" db:"status"`
	StartDate          time.Time       `json:"startDate" db:"start_date"`
	EndDate            time.Time       `json:"endDate" db:"end_date"`
	Lender             *string         `json:"lender" db:"lender"`
	AccountNumber      *string         `json:"accountNumber" db:"account_number"`
	Notes              *string         `json:"notes" db:"notes"`
	CreatedAt          time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time       `json:"updatedAt" db:"updated_at"`
}

// TotalAmount is principal plus total scheduled interest.
func (l *Loan) TotalAmount() decimal.Decimal {
	return l.PrincipalAmount.Add(l.TotalInterest)
}

// IsOpen reports whether the loan takes part in duplicate detection.
// Every status except paid_off counts as open.
func (l *Loan) IsOpen() bool {
	return l.Status != LoanStatusPaidOff
}

// LenderName returns the lender with absent treated as empty.
func (l *Loan) LenderName() string {
	if l.Lender == nil {
		return ""
	}
	return *l.Lender
}

// SameName compares loan names case-insensitively.
func SameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// DTOs for requests and responses

type CreateLoanRequest struct {
	Name          string          `json:"name" validate:"required,notblank,max=100"`
	LoanType      string          `json:"loanType" validate:"required,loan_type"`
	Amount        decimal.Decimal `json:"amount" validate:"gt=0,max_amount"`
	InterestRate  decimal.Decimal `json:"interestRate" validate:"gte=0,lte=50"`
	TermMonths    int             `json:"termMonths" validate:"gt=0,lte=600"`
	StartDate     time.Time       `json:"startDate" validate:"required"`
	Lender        *string         `json:"lender,omitempty" validate:"omitempty,max=100"`
	AccountNumber *string         `json:"accountNumber,omitempty" validate:"omitempty,max=50"`
	Notes         *string         `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// UpdateLoanRequest carries a partial update; nil fields are left untouched.
type UpdateLoanRequest struct {
	Name          *string          `json:"name,omitempty" validate:"omitempty,notblank,max=100"`
	LoanType      *string          `json:"loanType,omitempty" validate:"omitempty,loan_type"`
	Amount        *decimal.Decimal `json:"amount,omitempty" validate:"omitempty,gt=0,max_amount"`
	InterestRate  *decimal.Decimal `json:"interestRate,omitempty" validate:"omitempty,gte=0,lte=50"`
	TermMonths    *int             `json:"termMonths,omitempty" validate:"omitempty,gt=0,lte=600"`
	StartDate     *time.Time       `json:"startDate,omitempty"`
	Lender        *string          `json:"lender,omitempty" validate:"omitempty,max=100"`
	AccountNumber *string          `json:"accountNumber,omitempty" validate:"omitempty,max=50"`
	Notes         *string          `json:"notes,omitempty" validate:"omitempty,max=1000"`
	Status        *string          `json:"status,omitempty" validate:"omitempty,loan_status"`
}

// TouchesIdentity reports whether the update changes any field the
// duplicate detector looks at.
func (r *UpdateLoanRequest) TouchesIdentity() bool {
	return r.Name != nil || r.Amount != nil || r.InterestRate != nil || r.TermMonths != nil || r.Lender != nil
}

// LoanResponse is the client view of a loan.
type LoanResponse struct {
	*Loan
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

func NewLoanResponse(loan *Loan) *LoanResponse {
	return &LoanResponse{Loan: loan, TotalAmount: loan.TotalAmount()}
}
