// Package amortization computes monthly installments and payment-by-payment
// schedules for amortizing and interest-only loans. It does no I/O.
package amortization

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/taruntejajangila/expensetracker-sub000/internal/domain"
	"github.com/taruntejajangila/expensetracker-sub000/pkg/utils"
)

// Exact decimal multiplication grows the balance by ~16 digits per month,
// so amounts carried between periods are rounded to scale places and the
// compounding factor to growthScale places.
const (
	scale       = 16
	growthScale = 30
)

var (
	maxAnnualRate = decimal.NewFromInt(50)

	ErrInvalidTerms = errors.New("invalid loan terms")
)

// Mode is the repayment style a schedule was computed with.
type Mode string

const (
	ModeEMI          Mode = "emi"
	ModeZeroRate     Mode = "zero_rate"
	ModeInterestOnly Mode = "interest_only"
)

// Entry is one installment. It has no date; dates are assigned relative to
// the loan's start date when the schedule is stored.
type Entry struct {
	PaymentNumber    int
	PaymentAmount    decimal.Decimal
	PrincipalPaid    decimal.Decimal
	InterestPaid     decimal.Decimal
	RemainingBalance decimal.Decimal
}

type Result struct {
	Mode           Mode
	MonthlyPayment decimal.Decimal
	TotalInterest  decimal.Decimal
	TotalAmount    decimal.Decimal
	Schedule       []Entry
}

// Calculate produces the monthly payment, total interest and full schedule
// for principal borrowed at annualRatePercent over termMonths.
//
// Gold, private money lending and "Other" loans are interest-only: the
// monthly payment is principal * monthly rate and the balance never drops.
// A zero rate splits the principal evenly. Everything else uses
//
//	payment = P * r * (1+r)^n / ((1+r)^n - 1)
func Calculate(principal, annualRatePercent decimal.Decimal, termMonths int, loanType string) (*Result, error) {
	if err := checkTerms(principal, annualRatePercent, termMonths, loanType); err != nil {
		return nil, err
	}

	monthlyRate := utils.MonthlyRate(annualRatePercent)
	mode := modeFor(monthlyRate, loanType)
	payment := monthlyPayment(mode, principal, monthlyRate, termMonths)

	schedule := make([]Entry, 0, termMonths)
	balance := principal
	totalInterest := decimal.Zero

	for i := 1; i <= termMonths; i++ {
		interest := balance.Mul(monthlyRate).Round(scale)

		principalPaid := decimal.Zero
		if mode != ModeInterestOnly {
			principalPaid = payment.Sub(interest)
			balance = balance.Sub(principalPaid)
		}

		// Rounding drift on the last installment can push the balance a hair
		// below zero.
		if balance.IsNegative() {
			balance = decimal.Zero
		}

		totalInterest = totalInterest.Add(interest)
		schedule = append(schedule, Entry{
			PaymentNumber:    i,
			PaymentAmount:    payment,
			PrincipalPaid:    principalPaid,
			InterestPaid:     interest,
			RemainingBalance: balance,
		})
	}

	return &Result{
		Mode:           mode,
		MonthlyPayment: payment,
		TotalInterest:  totalInterest,
		TotalAmount:    principal.Add(totalInterest),
		Schedule:       schedule,
	}, nil
}

func checkTerms(principal, annualRatePercent decimal.Decimal, termMonths int, loanType string) error {
	switch {
	case !principal.IsPositive():
		return fmt.Errorf("%w: principal must be positive, got %s", ErrInvalidTerms, principal)
	case annualRatePercent.IsNegative() || annualRatePercent.GreaterThan(maxAnnualRate):
		return fmt.Errorf("%w: interest rate must be between 0 and 50, got %s", ErrInvalidTerms, annualRatePercent)
	case termMonths <= 0:
		return fmt.Errorf("%w: term must be positive, got %d", ErrInvalidTerms, termMonths)
	case !domain.IsValidLoanType(loanType):
		return fmt.Errorf("%w: unknown loan type %q", ErrInvalidTerms, loanType)
	}
	return nil
}

func modeFor(monthlyRate decimal.Decimal, loanType string) Mode {
	if domain.IsInterestOnly(loanType) {
		return ModeInterestOnly
	}
	if monthlyRate.IsZero() {
		return ModeZeroRate
	}
	return ModeEMI
}

func monthlyPayment(mode Mode, principal, monthlyRate decimal.Decimal, termMonths int) decimal.Decimal {
	switch mode {
	case ModeInterestOnly:
		return principal.Mul(monthlyRate).Round(scale)
	case ModeZeroRate:
		return principal.Div(decimal.NewFromInt(int64(termMonths))).Round(scale)
	}

	one := decimal.NewFromInt(1)
	growth := compound(one.Add(monthlyRate), termMonths)

	return principal.Mul(monthlyRate).Mul(growth).
		DivRound(growth.Sub(one), scale)
}

// compound returns base^n, rounding each step to growthScale places.
func compound(base decimal.Decimal, n int) decimal.Decimal {
	growth := decimal.NewFromInt(1)
	for i := 0; i < n; i++ {
		growth = growth.Mul(base).Round(growthScale)
	}
	return growth
}
