package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/taruntejajangila/expensetracker-sub000/internal/amortization"
	"github.com/taruntejajangila/expensetracker-sub000/internal/cache"
	"github.com/taruntejajangila/expensetracker-sub000/internal/config"
	"github.com/taruntejajangila/expensetracker-sub000/internal/domain"
	"github.com/taruntejajangila/expensetracker-sub000/internal/duplicate"
	"github.com/taruntejajangila/expensetracker-sub000/internal/logger"
	"github.com/taruntejajangila/expensetracker-sub000/internal/repository"
	customError "github.com/taruntejajangila/expensetracker-sub000/pkg/errors"
	"github.com/taruntejajangila/expensetracker-sub000/pkg/utils"
	"github.com/taruntejajangila/expensetracker-sub000/pkg/validation"
)

type LoanService struct {
	LoanRepo  repository.LoanRepository
	cache     cache.ScheduleCache
	detector  *duplicate.Detector
	validator *validation.Validator
	log       *logrus.Logger
	now       func() time.Time
}

// NewLoanService wires the loan engine. A nil cache disables schedule
// caching, a nil config uses the built-in limits and a nil logger discards.
func NewLoanService(
	loanRepo repository.LoanRepository,
	scheduleCache cache.ScheduleCache,
	cfg *config.Config,
	log *logrus.Logger,
) *LoanService {
	if scheduleCache == nil {
		scheduleCache = cache.NewNoopScheduleCache()
	}
	if log == nil {
		log = logger.Discard()
	}

	detector := duplicate.NewDetector(duplicate.DefaultAmountTolerance)
	v := validation.New(validation.DefaultMaxAmount)
	if cfg != nil {
		detector = duplicate.NewDetector(cfg.GetSimilarAmountTolerance())
		v = validation.New(cfg.GetMaxLoanAmount())
	}

	return &LoanService{
		LoanRepo:  loanRepo,
		cache:     scheduleCache,
		detector:  detector,
		validator: v,
		log:       log,
		now:       time.Now,
	}
}

// CreateLoan stores a new loan with its full payment schedule
func (s *LoanService) CreateLoan(ctx context.Context, userID string, request *domain.CreateLoanRequest) (*domain.Loan, error) {
	// 1. Reject bad input before touching the database
	if err := s.validate(userID, request); err != nil {
		return nil, err
	}

	// 2. Duplicate check over every identifying field, at stored precision
	amount := utils.RoundMoney(request.Amount)
	rate := utils.RoundRate(request.InterestRate)
	term := request.TermMonths
	candidate := duplicate.Candidate{
		Name:         &request.Name,
		Amount:       &amount,
		InterestRate: &rate,
		TermMonths:   &term,
		Lender:       trimmed(request.Lender),
	}
	if err := s.checkDuplicate(ctx, userID, candidate, uuid.Nil); err != nil {
		return nil, err
	}

	// 3. Amortize
	result, err := amortization.Calculate(amount, rate, term, request.LoanType)
	if err != nil {
		return nil, customError.WrapValidation(err)
	}

	// 4. Build loan entity and schedule
	now := s.now()
	startDate := utils.NormalizeDate(request.StartDate)

	loan := &domain.Loan{
		ID:                 uuid.New(),
		UserID:             userID,
		Name:               strings.TrimSpace(request.Name),
		LoanType:           request.LoanType,
		PrincipalAmount:    amount,
		InterestRate:       rate,
		TermMonths:         request.TermMonths,
		MonthlyPayment:     utils.RoundMoney(result.MonthlyPayment),
		TotalInterest:      utils.RoundMoney(result.TotalInterest),
		OutstandingBalance: amount,
		Status:             domain.LoanStatusActive,
		StartDate:          startDate,
		EndDate:            utils.CalculateEndDate(startDate, request.TermMonths),
		Lender:             trimmed(request.Lender),
		AccountNumber:      trimmed(request.AccountNumber),
		Notes:              request.Notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	schedule := buildSchedule(loan.ID, startDate, result, now)

	// 5. Save loan and schedule together
	if err = s.LoanRepo.Create(ctx, loan, schedule); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id":   userID,
		"loan_id":   loan.ID,
		"loan_type": loan.LoanType,
		"mode":      result.Mode,
		"term":      loan.TermMonths,
	}).Info("loan created")

	return loan, nil
}

// GetUserLoans returns every loan of the user, newest first
func (s *LoanService) GetUserLoans(ctx context.Context, userID string) ([]*domain.Loan, error) {
	loans, err := s.LoanRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return loans, nil
}

// GetLoanByID returns the loan only if userID owns it
func (s *LoanService) GetLoanByID(ctx context.Context, loanID uuid.UUID, userID string) (*domain.Loan, error) {
	loan, err := s.LoanRepo.GetByID(ctx, loanID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapLoanNotFound(loanID.String())
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return loan, nil
}

// UpdateLoan applies a partial update. The schedule is rebuilt only when a
// field that drives the amortization actually changes.
func (s *LoanService) UpdateLoan(ctx context.Context, loanID uuid.UUID, userID string, request *domain.UpdateLoanRequest) (*domain.Loan, error) {
	if err := s.validate(userID, request); err != nil {
		return nil, err
	}

	existing, err := s.GetLoanByID(ctx, loanID, userID)
	if err != nil {
		return nil, err
	}

	// Duplicate check against the merged fields, never against itself
	updated := applyUpdate(existing, request)
	if request.TouchesIdentity() {
		if err := s.checkDuplicate(ctx, userID, duplicate.CandidateFromLoan(updated), loanID); err != nil {
			return nil, err
		}
	}

	var schedule []*domain.LoanPayment
	regenerate := needsRegeneration(existing, updated)
	now := s.now()

	if regenerate {
		result, err := amortization.Calculate(updated.PrincipalAmount, updated.InterestRate, updated.TermMonths, updated.LoanType)
		if err != nil {
			return nil, customError.WrapValidation(err)
		}

		updated.MonthlyPayment = utils.RoundMoney(result.MonthlyPayment)
		updated.TotalInterest = utils.RoundMoney(result.TotalInterest)
		updated.OutstandingBalance = updated.PrincipalAmount
		updated.EndDate = utils.CalculateEndDate(updated.StartDate, updated.TermMonths)
		schedule = buildSchedule(updated.ID, updated.StartDate, result, now)
	}

	updated.UpdatedAt = now

	err = s.LoanRepo.Update(ctx, updated, schedule)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapLoanNotFound(loanID.String())
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if regenerate {
		s.invalidate(ctx, userID, loanID)
	}

	s.log.WithFields(logrus.Fields{
		"user_id":     userID,
		"loan_id":     loanID,
		"regenerated": regenerate,
	}).Info("loan updated")

	return updated, nil
}

// DeleteLoan removes the loan and its schedule. It reports false when no
// loan with that id belongs to userID.
func (s *LoanService) DeleteLoan(ctx context.Context, loanID uuid.UUID, userID string) (bool, error) {
	deleted, err := s.LoanRepo.Delete(ctx, loanID, userID)
	if err != nil {
		return false, customError.WrapDatabaseError(err)
	}

	if deleted {
		s.invalidate(ctx, userID, loanID)
		s.log.WithFields(logrus.Fields{"user_id": userID, "loan_id": loanID}).Info("loan deleted")
	}

	return deleted, nil
}

// GetLoanAmortization returns the stored schedule ordered by payment number
func (s *LoanService) GetLoanAmortization(ctx context.Context, loanID uuid.UUID, userID string) ([]*domain.LoanPayment, error) {
	cached, hit, err := s.cache.Get(ctx, userID, loanID)
	if err != nil {
		s.log.WithError(customError.WrapCacheError(err)).WithField("loan_id", loanID).Warn("schedule cache read failed")
	}
	if hit {
		return cached, nil
	}

	schedule, err := s.LoanRepo.GetSchedule(ctx, loanID, userID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if len(schedule) == 0 {
		return nil, customError.WrapLoanNotFound(loanID.String())
	}

	if err := s.cache.Set(ctx, userID, loanID, schedule); err != nil {
		s.log.WithError(customError.WrapCacheError(err)).WithField("loan_id", loanID).Warn("schedule cache write failed")
	}

	return schedule, nil
}

// PreviewAmortization computes a dated schedule without storing anything
func (s *LoanService) PreviewAmortization(request *domain.PreviewRequest) (*domain.AmortizationPreview, error) {
	if err := s.validator.Struct(request); err != nil {
		return nil, customError.WrapValidation(err)
	}

	amount := utils.RoundMoney(request.Amount)
	result, err := amortization.Calculate(amount, utils.RoundRate(request.InterestRate), request.TermMonths, request.LoanType)
	if err != nil {
		return nil, customError.WrapValidation(err)
	}

	startDate := utils.NormalizeDate(request.StartDate)
	return &domain.AmortizationPreview{
		MonthlyPayment: utils.RoundMoney(result.MonthlyPayment),
		TotalInterest:  utils.RoundMoney(result.TotalInterest),
		TotalAmount:    utils.RoundMoney(result.TotalAmount),
		EndDate:        utils.CalculateEndDate(startDate, request.TermMonths),
		Schedule:       buildSchedule(uuid.Nil, startDate, result, s.now()),
	}, nil
}

func (s *LoanService) validate(userID string, request interface{}) error {
	if strings.TrimSpace(userID) == "" {
		return customError.WrapValidation(customError.ErrMissingUserID)
	}
	if err := s.validator.Struct(request); err != nil {
		return customError.WrapValidation(err)
	}
	return nil
}

// checkDuplicate fails open: if the user's loans cannot be read the new
// loan is let through.
func (s *LoanService) checkDuplicate(ctx context.Context, userID string, candidate duplicate.Candidate, exclude uuid.UUID) error {
	existing, err := s.LoanRepo.ListOpenByUser(ctx, userID)
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("duplicate lookup failed, skipping check")
		return nil
	}

	match := s.detector.Detect(candidate, existing, exclude)
	if !match.IsDuplicate() {
		return nil
	}

	s.log.WithFields(logrus.Fields{
		"user_id":       userID,
		"reason":        match.Reason,
		"conflict_loan": match.Loan.ID,
	}).Info("duplicate loan rejected")

	return customError.WrapDuplicateLoan(string(match.Reason), match.Loan.ID.String(), match.Message())
}

func (s *LoanService) invalidate(ctx context.Context, userID string, loanID uuid.UUID) {
	if err := s.cache.Invalidate(ctx, userID, loanID); err != nil {
		s.log.WithError(customError.WrapCacheError(err)).WithField("loan_id", loanID).Warn("schedule cache invalidation failed")
	}
}

// applyUpdate returns a copy of loan with the supplied fields of request set.
func applyUpdate(loan *domain.Loan, request *domain.UpdateLoanRequest) *domain.Loan {
	updated := *loan

	if request.Name != nil {
		updated.Name = strings.TrimSpace(*request.Name)
	}
	if request.LoanType != nil {
		updated.LoanType = *request.LoanType
	}
	if request.Amount != nil {
		updated.PrincipalAmount = utils.RoundMoney(*request.Amount)
	}
	if request.InterestRate != nil {
		updated.InterestRate = utils.RoundRate(*request.InterestRate)
	}
	if request.TermMonths != nil {
		updated.TermMonths = *request.TermMonths
	}
	if request.StartDate != nil {
		updated.StartDate = utils.NormalizeDate(*request.StartDate)
	}
	if request.Lender != nil {
		updated.Lender = trimmed(request.Lender)
	}
	if request.AccountNumber != nil {
		updated.AccountNumber = trimmed(request.AccountNumber)
	}
	if request.Notes != nil {
		updated.Notes = request.Notes
	}
	if request.Status != nil {
		updated.Status = *request.Status
	}

	return &updated
}

func needsRegeneration(before, after *domain.Loan) bool {
	return !before.PrincipalAmount.Equal(after.PrincipalAmount) ||
		!before.InterestRate.Equal(after.InterestRate) ||
		before.TermMonths != after.TermMonths ||
		before.LoanType != after.LoanType ||
		!before.StartDate.Equal(after.StartDate)
}

// trimmed returns a pointer to the trimmed value, or nil when nothing is left.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
