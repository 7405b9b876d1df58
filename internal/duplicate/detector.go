// Package duplicate flags loans that look like an accidental re-entry of a
// loan the user already tracks.
package duplicate

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taruntejajangila/expensetracker-sub000/internal/domain"
	"github.com/taruntejajangila/expensetracker-sub000/pkg/utils"
)

type Reason string

const (
	ReasonNone           Reason = ""
	ReasonExactDuplicate Reason = "exact_duplicate"
	ReasonSimilarLoan    Reason = "similar_loan"
	ReasonSameNameLender Reason = "same_name_lender"
)

// DefaultAmountTolerance is how far apart two principals may be and still
// count as the same loan for ReasonSimilarLoan.
var DefaultAmountTolerance = decimal.NewFromFloat(0.10)

// Candidate holds the fields of a new or edited loan. Nil means the field
// was not provided and does not take part in matching.
type Candidate struct {
	Name         *string
	Amount       *decimal.Decimal
	InterestRate *decimal.Decimal
	TermMonths   *int
	Lender       *string
}

// CandidateFromLoan uses every identifying field of loan. A loan without a
// lender yields a candidate without one, so the lender-based rules skip it.
func CandidateFromLoan(loan *domain.Loan) Candidate {
	name := loan.Name
	amount := loan.PrincipalAmount
	rate := loan.InterestRate
	term := loan.TermMonths
	c := Candidate{
		Name:         &name,
		Amount:       &amount,
		InterestRate: &rate,
		TermMonths:   &term,
	}
	if loan.Lender != nil {
		lender := *loan.Lender
		c.Lender = &lender
	}
	return c
}

func (c Candidate) provided() int {
	n := 0
	if c.Name != nil {
		n++
	}
	if c.Amount != nil {
		n++
	}
	if c.InterestRate != nil {
		n++
	}
	if c.TermMonths != nil {
		n++
	}
	if c.Lender != nil {
		n++
	}
	return n
}

func (c Candidate) lender() string {
	if c.Lender == nil {
		return ""
	}
	return *c.Lender
}

// Match is the outcome of Detect. Loan is nil when Reason is ReasonNone.
type Match struct {
	Reason Reason
	Loan   *domain.Loan
}

func (m Match) IsDuplicate() bool {
	return m.Reason != ReasonNone
}

// Message renders a user-facing explanation of the conflict.
func (m Match) Message() string {
	if m.Loan == nil {
		return ""
	}

	lender := m.Loan.LenderName()
	if lender == "" {
		lender = "no lender"
	}

	switch m.Reason {
	case ReasonExactDuplicate:
		return fmt.Sprintf("A loan with identical details already exists: %q for %s at %s%% over %d months with %s",
			m.Loan.Name,
			m.Loan.PrincipalAmount.StringFixed(2),
			m.Loan.InterestRate.String(),
			m.Loan.TermMonths,
			lender,
		)
	case ReasonSimilarLoan:
		return fmt.Sprintf("A similar loan %q with %s for %s already exists. Use a different name or lender if this is a separate loan",
			m.Loan.Name, lender, m.Loan.PrincipalAmount.StringFixed(2))
	case ReasonSameNameLender:
		return fmt.Sprintf("A loan named %q with %s already exists. Use a different name or lender",
			m.Loan.Name, lender)
	}
	return ""
}

type rule struct {
	reason Reason
	// applies reports whether the candidate carries enough fields for the rule.
	applies func(c Candidate) bool
	matches func(c Candidate, existing *domain.Loan, tolerance decimal.Decimal) bool
}

// rules are evaluated in order; the first rule with a matching loan wins.
var rules = []rule{
	{
		reason:  ReasonExactDuplicate,
		applies: func(c Candidate) bool { return c.provided() > 0 },
		matches: exactMatch,
	},
	{
		reason: ReasonSimilarLoan,
		applies: func(c Candidate) bool {
			return c.Name != nil && c.Amount != nil && c.Lender != nil
		},
		matches: func(c Candidate, l *domain.Loan, tolerance decimal.Decimal) bool {
			return domain.SameName(*c.Name, l.Name) &&
				c.lender() == l.LenderName() &&
				utils.WithinTolerance(l.PrincipalAmount, *c.Amount, tolerance)
		},
	},
	{
		reason:  ReasonSameNameLender,
		applies: func(c Candidate) bool { return c.Name != nil && c.Lender != nil },
		matches: func(c Candidate, l *domain.Loan, _ decimal.Decimal) bool {
			return domain.SameName(*c.Name, l.Name) && c.lender() == l.LenderName()
		},
	},
}

func exactMatch(c Candidate, l *domain.Loan, _ decimal.Decimal) bool {
	if c.Name != nil && !domain.SameName(*c.Name, l.Name) {
		return false
	}
	if c.Amount != nil && !c.Amount.Equal(l.PrincipalAmount) {
		return false
	}
	if c.InterestRate != nil && !c.InterestRate.Equal(l.InterestRate) {
		return false
	}
	if c.TermMonths != nil && *c.TermMonths != l.TermMonths {
		return false
	}
	if c.Lender != nil && c.lender() != l.LenderName() {
		return false
	}
	return true
}

// Detector evaluates candidates against a user's existing loans.
type Detector struct {
	tolerance decimal.Decimal
}

func NewDetector(tolerance decimal.Decimal) *Detector {
	if !tolerance.IsPositive() {
		tolerance = DefaultAmountTolerance
	}
	return &Detector{tolerance: tolerance}
}

// Detect returns the first conflict between c and existing. Closed loans and
// the loan identified by exclude (the one being edited) never conflict.
func (d *Detector) Detect(c Candidate, existing []*domain.Loan, exclude uuid.UUID) Match {
	for _, r := range rules {
		if !r.applies(c) {
			continue
		}
		for _, loan := range existing {
			if loan == nil || !loan.IsOpen() {
				continue
			}
			if exclude != uuid.Nil && loan.ID == exclude {
				continue
			}
			if r.matches(c, loan, d.tolerance) {
				return Match{Reason: r.reason, Loan: loan}
			}
		}
	}
	return Match{Reason: ReasonNone}
}
