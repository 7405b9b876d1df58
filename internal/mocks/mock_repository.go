package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/taruntejajangila/expensetracker-sub000/internal/domain"
)

type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) Create(ctx context.Context, loan *domain.Loan, schedule []*domain.LoanPayment) error {
	args := m.Called(ctx, loan, schedule)
	return args.Error(0)
}

func (m *MockLoanRepository) GetByID(ctx context.Context, loanID uuid.UUID, userID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Loan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListOpenByUser(ctx context.Context, userID string) ([]*domain.Loan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) Update(ctx context.Context, loan *domain.Loan, schedule []*domain.LoanPayment) error {
	args := m.Called(ctx, loan, schedule)
	return args.Error(0)
}

func (m *MockLoanRepository) Delete(ctx context.Context, loanID uuid.UUID, userID string) (bool, error) {
	args := m.Called(ctx, loanID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLoanRepository) GetSchedule(ctx context.Context, loanID uuid.UUID, userID string) ([]*domain.LoanPayment, error) {
	args := m.Called(ctx, loanID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LoanPayment), args.Error(1)
}

func (m *MockLoanRepository) ReplaceSchedule(ctx context.Context, loanID uuid.UUID, schedule []*domain.LoanPayment) error {
	args := m.Called(ctx, loanID, schedule)
	return args.Error(0)
}

func (m *MockLoanRepository) FindScheduleDrift(ctx context.Context) ([]*domain.ScheduleDrift, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ScheduleDrift), args.Error(1)
}

type MockScheduleCache struct {
	mock.Mock
}

func (m *MockScheduleCache) Get(ctx context.Context, userID string, loanID uuid.UUID) ([]*domain.LoanPayment, bool, error) {
	args := m.Called(ctx, userID, loanID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]*domain.LoanPayment), args.Bool(1), args.Error(2)
}

func (m *MockScheduleCache) Set(ctx context.Context, userID string, loanID uuid.UUID, schedule []*domain.LoanPayment) error {
	args := m.Called(ctx, userID, loanID, schedule)
	return args.Error(0)
}

func (m *MockScheduleCache) Invalidate(ctx context.Context, userID string, loanID uuid.UUID) error {
	args := m.Called(ctx, userID, loanID)
	return args.Error(0)
}
