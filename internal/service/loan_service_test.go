package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taruntejajangila/expensetracker-sub000/internal/domain"
	"github.com/taruntejajangila/expensetracker-sub000/internal/duplicate"
	"github.com/taruntejajangila/expensetracker-sub000/internal/mocks"
	customError "github.com/taruntejajangila/expensetracker-sub000/pkg/errors"
)

const testUser = "user-1"

var fixedNow = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

func newTestService(repo *mocks.MockLoanRepository, cache *mocks.MockScheduleCache) *LoanService {
	var svc *LoanService
	if cache == nil {
		svc = NewLoanService(repo, nil, nil, nil)
	} else {
		svc = NewLoanService(repo, cache, nil, nil)
	}
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func decPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func validCreateRequest() *domain.CreateLoanRequest {
	return &domain.CreateLoanRequest{
		Name:         "Car Loan",
		LoanType:     domain.LoanTypeCar,
		Amount:       decimal.NewFromInt(100000),
		InterestRate: decimal.NewFromInt(12),
		TermMonths:   12,
		StartDate:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Lender:       strPtr(" SBI "),
	}
}

func storedLoan() *domain.Loan {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	return &domain.Loan{
		ID:                 uuid.New(),
		UserID:             testUser,
		Name:               "Car Loan",
		LoanType:           domain.LoanTypeCar,
		PrincipalAmount:    decimal.NewFromInt(100000),
		InterestRate:       decimal.NewFromInt(12),
		TermMonths:         12,
		MonthlyPayment:     decimal.RequireFromString("8884.88"),
		TotalInterest:      decimal.RequireFromString("6618.55"),
		OutstandingBalance: decimal.NewFromInt(100000),
		Status:             domain.LoanStatusActive,
		StartDate:          start,
		EndDate:            start.AddDate(0, 12, 0),
		Lender:             strPtr("SBI"),
	}
}

func TestCreateLoan(t *testing.T) {
	tests := []struct {
		name        string
		request     func() *domain.CreateLoanRequest
		setupMocks  func(*mocks.MockLoanRepository)
		wantErr     func(error) bool
		checkResult func(*testing.T, *domain.Loan)
	}{
		{
			name:    "stores loan with full schedule",
			request: validCreateRequest,
			setupMocks: func(repo *mocks.MockLoanRepository) {
				repo.On("ListOpenByUser", mock.Anything, testUser).Return([]*domain.Loan{}, nil)
				repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Loan"),
					mock.MatchedBy(func(schedule []*domain.LoanPayment) bool {
						return len(schedule) == 12 &&
							schedule[0].PaymentNumber == 1 &&
							schedule[0].PaymentDate.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) &&
							schedule[11].PaymentDate.Equal(time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)) &&
							schedule[11].RemainingBalance.IsZero()
					})).Return(nil)
			},
			checkResult: func(t *testing.T, loan *domain.Loan) {
				assert.Equal(t, testUser, loan.UserID)
				assert.Equal(t, domain.LoanStatusActive, loan.Status)
				assert.Equal(t, "8884.88", loan.MonthlyPayment.StringFixed(2))
				assert.Equal(t, "6618.55", loan.TotalInterest.StringFixed(2))
				assert.True(t, loan.OutstandingBalance.Equal(decimal.NewFromInt(100000)))
				assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), loan.EndDate)
				require.NotNil(t, loan.Lender)
				assert.Equal(t, "SBI", *loan.Lender)
				assert.Equal(t, fixedNow, loan.CreatedAt)
			},
		},
		{
			name:    "interest-only loan keeps the balance",
			request: func() *domain.CreateLoanRequest {
				r := validCreateRequest()
				r.LoanType = domain.LoanTypeGold
				r.TermMonths = 6
				return r
			},
			setupMocks: func(repo *mocks.MockLoanRepository) {
				repo.On("ListOpenByUser", mock.Anything, testUser).Return([]*domain.Loan{}, nil)
				repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Loan"),
					mock.MatchedBy(func(schedule []*domain.LoanPayment) bool {
						return len(schedule) == 6 &&
							schedule[5].RemainingBalance.Equal(decimal.NewFromInt(100000)) &&
							schedule[5].PrincipalPaid.IsZero()
					})).Return(nil)
			},
			checkResult: func(t *testing.T, loan *domain.Loan) {
				assert.Equal(t, "1000.00", loan.MonthlyPayment.StringFixed(2))
				assert.Equal(t, "6000.00", loan.TotalInterest.StringFixed(2))
			},
		},
		{
			name: "amount and rate are rounded to the stored scale",
			request: func() *domain.CreateLoanRequest {
				r := validCreateRequest()
				r.Amount = decimal.RequireFromString("100000.004")
				r.InterestRate = decimal.RequireFromString("12.00004")
				return r
			},
			setupMocks: func(repo *mocks.MockLoanRepository) {
				repo.On("ListOpenByUser", mock.Anything, testUser).Return([]*domain.Loan{}, nil)
				repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Loan"), mock.Anything).Return(nil)
			},
			checkResult: func(t *testing.T, loan *domain.Loan) {
				assert.Equal(t, "100000", loan.PrincipalAmount.String())
				assert.Equal(t, "12", loan.InterestRate.String())
				assert.Equal(t, "100000", loan.OutstandingBalance.String())
				assert.Equal(t, "8884.88", loan.MonthlyPayment.StringFixed(2))
			},
		},
		{
			name: "blank name is invalid",
			request: func() *domain.CreateLoanRequest {
				r := validCreateRequest()
				r.Name = "   "
				return r
			},
			setupMocks: func(repo *mocks.MockLoanRepository) {},
			wantErr:    customError.IsValidation,
		},
		{
			name:    "exact duplicate is rejected",
			request: validCreateRequest,
			setupMocks: func(repo *mocks.MockLoanRepository) {
				repo.On("ListOpenByUser", mock.Anything, testUser).Return([]*domain.Loan{storedLoan()}, nil)
			},
			wantErr: customError.IsDuplicate,
		},
		{
			name:    "duplicate lookup failure lets the loan through",
			request: validCreateRequest,
			setupMocks: func(repo *mocks.MockLoanRepository) {
				repo.On("ListOpenByUser", mock.Anything, testUser).Return(nil, errors.New("connection reset"))
				repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)
			},
			checkResult: func(t *testing.T, loan *domain.Loan) {
				assert.NotEqual(t, uuid.Nil, loan.ID)
			},
		},
		{
			name:    "insert failure is a database error",
			request: validCreateRequest,
			setupMocks: func(repo *mocks.MockLoanRepository) {
				repo.On("ListOpenByUser", mock.Anything, testUser).Return([]*domain.Loan{}, nil)
				repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("insert failed"))
			},
			wantErr: func(err error) bool { return errors.Is(err, customError.ErrDatabase) },
		},
		{
			name: "rate above fifty percent is invalid",
			request: func() *domain.CreateLoanRequest {
				r := validCreateRequest()
				r.InterestRate = decimal.NewFromInt(51)
				return r
			},
			setupMocks: func(repo *mocks.MockLoanRepository) {},
			wantErr:    customError.IsValidation,
		},
		{
			name: "unknown loan type is invalid",
			request: func() *domain.CreateLoanRequest {
				r := validCreateRequest()
				r.LoanType = "Boat Loan"
				return r
			},
			setupMocks: func(repo *mocks.MockLoanRepository) {},
			wantErr:    customError.IsValidation,
		},
		{
			name: "zero amount is invalid",
			request: func() *domain.CreateLoanRequest {
				r := validCreateRequest()
				r.Amount = decimal.Zero
				return r
			},
			setupMocks: func(repo *mocks.MockLoanRepository) {},
			wantErr:    customError.IsValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockLoanRepository{}
			tt.setupMocks(repo)
			svc := newTestService(repo, nil)

			loan, err := svc.CreateLoan(context.Background(), testUser, tt.request())

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tt.wantErr(err), "unexpected error: %v", err)
				assert.Nil(t, loan)
			} else {
				require.NoError(t, err)
				tt.checkResult(t, loan)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestCreateLoan_DuplicateCarriesConflict(t *testing.T) {
	repo := &mocks.MockLoanRepository{}
	existing := storedLoan()
	repo.On("ListOpenByUser", mock.Anything, testUser).Return([]*domain.Loan{existing}, nil)

	svc := newTestService(repo, nil)
	request := validCreateRequest()
	request.Amount = decimal.NewFromInt(105000)

	_, err := svc.CreateLoan(context.Background(), testUser, request)

	dup, ok := customError.AsDuplicate(err)
	require.True(t, ok)
	assert.Equal(t, string(duplicate.ReasonSimilarLoan), dup.Reason)
	assert.Equal(t, existing.ID.String(), dup.ExistingLoanID)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateLoan_MissingUser(t *testing.T) {
	repo := &mocks.MockLoanRepository{}
	svc := newTestService(repo, nil)

	_, err := svc.CreateLoan(context.Background(), "  ", validCreateRequest())

	assert.True(t, customError.IsValidation(err))
	repo.AssertNotCalled(t, "ListOpenByUser", mock.Anything, mock.Anything)
}

func TestGetLoanByID(t *testing.T) {
	loan := storedLoan()

	t.Run("found", func(t *testing.T) {
		repo := &mocks.MockLoanRepository{}
		repo.On("GetByID", mock.Anything, loan.ID, testUser).Return(loan, nil)

		got, err := newTestService(repo, nil).GetLoanByID(context.Background(), loan.ID, testUser)

		require.NoError(t, err)
		assert.Equal(t, loan.ID, got.ID)
	})

	t.Run("owned by someone else", func(t *testing.T) {
		repo := &mocks.MockLoanRepository{}
		repo.On("GetByID", mock.Anything, loan.ID, "intruder").Return(nil, sql.ErrNoRows)

		_, err := newTestService(repo, nil).GetLoanByID(context.Background(), loan.ID, "intruder")

		assert.True(t, customError.IsNotFound(err))
	})
}

func TestGetUserLoans(t *testing.T) {
	repo := &mocks.MockLoanRepository{}
	repo.On("ListByUser", mock.Anything, testUser).Return([]*domain.Loan{storedLoan(), storedLoan()}, nil)

	loans, err := newTestService(repo, nil).GetUserLoans(context.Background(), testUser)

	require.NoError(t, err)
	assert.Len(t, loans, 2)
}

func TestUpdateLoan_NotesOnlyKeepsSchedule(t *testing.T) {
	loan := storedLoan()
	repo := &mocks.MockLoanRepository{}
	cache := &mocks.MockScheduleCache{}

	repo.On("GetByID", mock.Anything, loan.ID, testUser).Return(loan, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(l *domain.Loan) bool {
		return l.Notes != nil && *l.Notes == "refinance next year" && l.MonthlyPayment.Equal(loan.MonthlyPayment)
	}), []*domain.LoanPayment(nil)).Return(nil)

	svc := newTestService(repo, cache)
	updated, err := svc.UpdateLoan(context.Background(), loan.ID, testUser, &domain.UpdateLoanRequest{
		Notes: strPtr("refinance next year"),
	})

	require.NoError(t, err)
	assert.Equal(t, fixedNow, updated.UpdatedAt)
	repo.AssertNotCalled(t, "ListOpenByUser", mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestUpdateLoan_RateChangeRegeneratesSchedule(t *testing.T) {
	loan := storedLoan()
	repo := &mocks.MockLoanRepository{}
	cache := &mocks.MockScheduleCache{}

	repo.On("GetByID", mock.Anything, loan.ID, testUser).Return(loan, nil)
	// The loan's own row must not count as a duplicate of itself
	repo.On("ListOpenByUser", mock.Anything, testUser).Return([]*domain.Loan{loan}, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Loan"),
		mock.MatchedBy(func(schedule []*domain.LoanPayment) bool {
			return len(schedule) == 24 && schedule[0].LoanID == loan.ID
		})).Return(nil)
	cache.On("Invalidate", mock.Anything, testUser, loan.ID).Return(nil)

	svc := newTestService(repo, cache)
	updated, err := svc.UpdateLoan(context.Background(), loan.ID, testUser, &domain.UpdateLoanRequest{
		InterestRate: decPtr(10),
		TermMonths:   intPtr(24),
	})

	require.NoError(t, err)
	assert.Equal(t, 24, updated.TermMonths)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), updated.EndDate)
	assert.True(t, updated.OutstandingBalance.Equal(updated.PrincipalAmount))
	assert.False(t, updated.MonthlyPayment.Equal(loan.MonthlyPayment))
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestUpdateLoan_RenameIntoAnotherLoan(t *testing.T) {
	loan := storedLoan()
	other := storedLoan()
	other.Name = "Bike Loan"

	repo := &mocks.MockLoanRepository{}
	repo.On("GetByID", mock.Anything, loan.ID, testUser).Return(loan, nil)
	repo.On("ListOpenByUser", mock.Anything, testUser).Return([]*domain.Loan{loan, other}, nil)

	_, err := newTestService(repo, nil).UpdateLoan(context.Background(), loan.ID, testUser, &domain.UpdateLoanRequest{
		Name: strPtr("bike loan"),
	})

	dup, ok := customError.AsDuplicate(err)
	require.True(t, ok)
	assert.Equal(t, other.ID.String(), dup.ExistingLoanID)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateLoan_NotFound(t *testing.T) {
	loanID := uuid.New()
	repo := &mocks.MockLoanRepository{}
	repo.On("GetByID", mock.Anything, loanID, testUser).Return(nil, sql.ErrNoRows)

	_, err := newTestService(repo, nil).UpdateLoan(context.Background(), loanID, testUser, &domain.UpdateLoanRequest{
		Notes: strPtr("x"),
	})

	assert.True(t, customError.IsNotFound(err))
}

func TestUpdateLoan_InvalidStatus(t *testing.T) {
	repo := &mocks.MockLoanRepository{}

	_, err := newTestService(repo, nil).UpdateLoan(context.Background(), uuid.New(), testUser, &domain.UpdateLoanRequest{
		Status: strPtr("closed"),
	})

	assert.True(t, customError.IsValidation(err))
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteLoan(t *testing.T) {
	loanID := uuid.New()

	t.Run("deleted loan drops cached schedule", func(t *testing.T) {
		repo := &mocks.MockLoanRepository{}
		cache := &mocks.MockScheduleCache{}
		repo.On("Delete", mock.Anything, loanID, testUser).Return(true, nil)
		cache.On("Invalidate", mock.Anything, testUser, loanID).Return(nil)

		deleted, err := newTestService(repo, cache).DeleteLoan(context.Background(), loanID, testUser)

		require.NoError(t, err)
		assert.True(t, deleted)
		cache.AssertExpectations(t)
	})

	t.Run("missing loan reports false", func(t *testing.T) {
		repo := &mocks.MockLoanRepository{}
		cache := &mocks.MockScheduleCache{}
		repo.On("Delete", mock.Anything, loanID, testUser).Return(false, nil)

		deleted, err := newTestService(repo, cache).DeleteLoan(context.Background(), loanID, testUser)

		require.NoError(t, err)
		assert.False(t, deleted)
		cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetLoanAmortization(t *testing.T) {
	loanID := uuid.New()
	schedule := []*domain.LoanPayment{
		{LoanID: loanID, PaymentNumber: 1},
		{LoanID: loanID, PaymentNumber: 2},
	}

	t.Run("cache hit skips the database", func(t *testing.T) {
		repo := &mocks.MockLoanRepository{}
		cache := &mocks.MockScheduleCache{}
		cache.On("Get", mock.Anything, testUser, loanID).Return(schedule, true, nil)

		got, err := newTestService(repo, cache).GetLoanAmortization(context.Background(), loanID, testUser)

		require.NoError(t, err)
		assert.Len(t, got, 2)
		repo.AssertNotCalled(t, "GetSchedule", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache miss loads and fills", func(t *testing.T) {
		repo := &mocks.MockLoanRepository{}
		cache := &mocks.MockScheduleCache{}
		cache.On("Get", mock.Anything, testUser, loanID).Return(nil, false, nil)
		repo.On("GetSchedule", mock.Anything, loanID, testUser).Return(schedule, nil)
		cache.On("Set", mock.Anything, testUser, loanID, schedule).Return(nil)

		got, err := newTestService(repo, cache).GetLoanAmortization(context.Background(), loanID, testUser)

		require.NoError(t, err)
		assert.Equal(t, 1, got[0].PaymentNumber)
		cache.AssertExpectations(t)
	})

	t.Run("cache outage falls back to the database", func(t *testing.T) {
		repo := &mocks.MockLoanRepository{}
		cache := &mocks.MockScheduleCache{}
		cache.On("Get", mock.Anything, testUser, loanID).Return(nil, false, errors.New("dial tcp: refused"))
		repo.On("GetSchedule", mock.Anything, loanID, testUser).Return(schedule, nil)
		cache.On("Set", mock.Anything, testUser, loanID, schedule).Return(errors.New("dial tcp: refused"))

		got, err := newTestService(repo, cache).GetLoanAmortization(context.Background(), loanID, testUser)

		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("no rows is not found", func(t *testing.T) {
		repo := &mocks.MockLoanRepository{}
		cache := &mocks.MockScheduleCache{}
		cache.On("Get", mock.Anything, "intruder", loanID).Return(nil, false, nil)
		repo.On("GetSchedule", mock.Anything, loanID, "intruder").Return([]*domain.LoanPayment{}, nil)

		_, err := newTestService(repo, cache).GetLoanAmortization(context.Background(), loanID, "intruder")

		assert.True(t, customError.IsNotFound(err))
		cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPreviewAmortization(t *testing.T) {
	svc := newTestService(&mocks.MockLoanRepository{}, nil)

	preview, err := svc.PreviewAmortization(&domain.PreviewRequest{
		LoanType:     domain.LoanTypePersonal,
		Amount:       decimal.NewFromInt(12000),
		InterestRate: decimal.Zero,
		TermMonths:   12,
		StartDate:    time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, "1000.00", preview.MonthlyPayment.StringFixed(2))
	assert.True(t, preview.TotalInterest.IsZero())
	assert.Equal(t, "12000.00", preview.TotalAmount.StringFixed(2))
	assert.Len(t, preview.Schedule, 12)
	assert.Equal(t, uuid.Nil, preview.Schedule[0].LoanID)

	_, err = svc.PreviewAmortization(&domain.PreviewRequest{
		LoanType:     domain.LoanTypePersonal,
		Amount:       decimal.NewFromInt(12000),
		InterestRate: decimal.NewFromInt(10),
		TermMonths:   0,
		StartDate:    time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	})
	assert.True(t, customError.IsValidation(err))
}

func TestReconcileSchedules(t *testing.T) {
	good := storedLoan()
	gone := uuid.New()

	repo := &mocks.MockLoanRepository{}
	cache := &mocks.MockScheduleCache{}

	repo.On("FindScheduleDrift", mock.Anything).Return([]*domain.ScheduleDrift{
		{LoanID: gone, UserID: testUser, TermMonths: 12, RowCount: 3},
		{LoanID: good.ID, UserID: testUser, TermMonths: 12, RowCount: 0},
	}, nil)
	repo.On("GetByID", mock.Anything, gone, testUser).Return(nil, sql.ErrNoRows)
	repo.On("GetByID", mock.Anything, good.ID, testUser).Return(good, nil)
	repo.On("ReplaceSchedule", mock.Anything, good.ID, mock.MatchedBy(func(schedule []*domain.LoanPayment) bool {
		return len(schedule) == 12
	})).Return(nil)
	cache.On("Invalidate", mock.Anything, testUser, good.ID).Return(nil)

	rebuilt, err := newTestService(repo, cache).ReconcileSchedules(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, rebuilt)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestReconcileSchedules_LookupFails(t *testing.T) {
	repo := &mocks.MockLoanRepository{}
	repo.On("FindScheduleDrift", mock.Anything).Return(nil, errors.New("timeout"))

	rebuilt, err := newTestService(repo, nil).ReconcileSchedules(context.Background())

	assert.Zero(t, rebuilt)
	assert.True(t, errors.Is(err, customError.ErrDatabase))
}

func TestUpdateLoan_LenderlessLoansWithSameName(t *testing.T) {
	loan := storedLoan()
	loan.Lender = nil
	other := storedLoan()
	other.Lender = nil
	other.PrincipalAmount = decimal.NewFromInt(900000)

	repo := &mocks.MockLoanRepository{}
	repo.On("GetByID", mock.Anything, loan.ID, testUser).Return(loan, nil)
	repo.On("ListOpenByUser", mock.Anything, testUser).Return([]*domain.Loan{loan, other}, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Loan"), mock.Anything).Return(nil)

	updated, err := newTestService(repo, nil).UpdateLoan(context.Background(), loan.ID, testUser, &domain.UpdateLoanRequest{
		InterestRate: decPtr(10),
	})

	require.NoError(t, err)
	assert.Nil(t, updated.Lender)
	assert.True(t, updated.InterestRate.Equal(decimal.NewFromInt(10)))
	repo.AssertExpectations(t)
}

func TestUpdateLoan_RoundsAmountAndRate(t *testing.T) {
	loan := storedLoan()
	repo := &mocks.MockLoanRepository{}
	repo.On("GetByID", mock.Anything, loan.ID, testUser).Return(loan, nil)
	repo.On("ListOpenByUser", mock.Anything, testUser).Return([]*domain.Loan{loan}, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Loan"), mock.Anything).Return(nil)

	amount := decimal.RequireFromString("250000.125")
	rate := decimal.RequireFromString("9.87654")
	updated, err := newTestService(repo, nil).UpdateLoan(context.Background(), loan.ID, testUser, &domain.UpdateLoanRequest{
		Amount:       &amount,
		InterestRate: &rate,
	})

	require.NoError(t, err)
	assert.Equal(t, "250000.13", updated.PrincipalAmount.String())
	assert.Equal(t, "9.8765", updated.InterestRate.String())
	repo.AssertExpectations(t)
}

func TestUpdateLoan_BlankNameIsInvalid(t *testing.T) {
	repo := &mocks.MockLoanRepository{}

	_, err := newTestService(repo, nil).UpdateLoan(context.Background(), uuid.New(), testUser, &domain.UpdateLoanRequest{
		Name: strPtr("   "),
	})

	assert.True(t, customError.IsValidation(err))
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}
