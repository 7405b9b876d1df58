package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	hundred      = decimal.NewFromInt(100)
	monthsInYear = decimal.NewFromInt(12)
)

// CalculatePaymentDate calculates the due date of an installment.
// Installment 1 is due on the start date, installment n falls n-1 months later.
func CalculatePaymentDate(startDate time.Time, paymentNumber int) time.Time {
	return startDate.AddDate(0, paymentNumber-1, 0)
}

// CalculateEndDate returns startDate advanced by termMonths months
func CalculateEndDate(startDate time.Time, termMonths int) time.Time {
	return startDate.AddDate(0, termMonths, 0)
}

// NormalizeDate drops the clock part so dates compare equal after a round
// trip through a DATE column.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthlyRate converts an annual percentage into a monthly decimal rate:
// 12 (%) -> 0.01
func MonthlyRate(annualPercent decimal.Decimal) decimal.Decimal {
	return annualPercent.Div(hundred).Div(monthsInYear)
}

// RoundMoney rounds to cents
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RoundRate rounds an annual percentage to the four places the loans table keeps
func RoundRate(d decimal.Decimal) decimal.Decimal {
	return d.Round(4)
}

// WithinTolerance reports whether |a - b| <= tolerance * |b|.
func WithinTolerance(a, b, tolerance decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(b.Abs().Mul(tolerance))
}

// DecimalFromString converts string to decimal.Decimal
func DecimalFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
