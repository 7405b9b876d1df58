package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/taruntejajangila/expensetracker-sub000/internal/domain"
)

// LoanRepository defines the interface for loan data operations.
// Lookups scoped by owner return sql.ErrNoRows when the loan is missing or
// belongs to someone else.
type LoanRepository interface {
	// Create inserts a loan and its schedule in one transaction
	Create(ctx context.Context, loan *domain.Loan, schedule []*domain.LoanPayment) error

	// GetByID retrieves a loan owned by userID
	GetByID(ctx context.Context, loanID uuid.UUID, userID string) (*domain.Loan, error)

	// ListByUser retrieves all loans of a user, newest first
	ListByUser(ctx context.Context, userID string) ([]*domain.Loan, error)

	// ListOpenByUser retrieves the user's loans that are not paid off
	ListOpenByUser(ctx context.Context, userID string) ([]*domain.Loan, error)

	// Update writes every column of loan. A non-nil schedule replaces the
	// stored one in the same transaction.
	Update(ctx context.Context, loan *domain.Loan, schedule []*domain.LoanPayment) error

	// Delete removes a loan owned by userID; schedule rows cascade
	Delete(ctx context.Context, loanID uuid.UUID, userID string) (bool, error)

	// GetSchedule retrieves the schedule of a loan owned by userID, ordered by payment number
	GetSchedule(ctx context.Context, loanID uuid.UUID, userID string) ([]*domain.LoanPayment, error)

	// ReplaceSchedule deletes and recreates the schedule of a loan
	ReplaceSchedule(ctx context.Context, loanID uuid.UUID, schedule []*domain.LoanPayment) error

	// FindScheduleDrift lists loans whose schedule row count differs from their term
	FindScheduleDrift(ctx context.Context) ([]*domain.ScheduleDrift, error)
}
