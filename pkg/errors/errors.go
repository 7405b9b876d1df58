package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrLoanNotFound   = errors.New("loan not found")
	ErrInvalidLoan    = errors.New("invalid loan")
	ErrDuplicateLoan  = errors.New("duplicate loan")
	ErrDatabase       = errors.New("database error")
	ErrCache          = errors.New("cache error")
	ErrMissingUserID  = errors.New("missing user id")
	ErrInvalidLoanID  = errors.New("invalid loan id")
	ErrInvalidPayload = errors.New("invalid request payload")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeLoanNotFound   = "LOAN_NOT_FOUND"
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeDuplicateLoan  = "DUPLICATE_LOAN"
	ErrCodeDatabaseError  = "DATABASE_ERROR"
	ErrCodeCacheError     = "CACHE_ERROR"
	ErrCodeUnauthorized   = "UNAUTHORIZED"
	ErrCodeInvalidRequest = "INVALID_REQUEST"
)

// DuplicateLoanError identifies the loan a create or update collided with
// and the rule that caught it.
type DuplicateLoanError struct {
	Reason         string
	ExistingLoanID string
	Message        string
}

func (e *DuplicateLoanError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func (e *DuplicateLoanError) Unwrap() error {
	return ErrDuplicateLoan
}

// Wrap common errors with business context
func WrapLoanNotFound(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotFound,
		fmt.Sprintf("Loan with ID %s not found", loanID),
		ErrLoanNotFound,
	)
}

func WrapValidation(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeValidation,
		err.Error(),
		fmt.Errorf("%w: %w", ErrInvalidLoan, err),
	)
}

func WrapDuplicateLoan(reason, existingLoanID, message string) *BusinessError {
	return NewBusinessError(
		ErrCodeDuplicateLoan,
		message,
		&DuplicateLoanError{
			Reason:         reason,
			ExistingLoanID: existingLoanID,
			Message:        message,
		},
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		fmt.Errorf("%w: %w", ErrDatabase, err),
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		fmt.Errorf("%w: %w", ErrCache, err),
	)
}

func WrapMissingUserID() *BusinessError {
	return NewBusinessError(
		ErrCodeUnauthorized,
		"X-User-ID header is required",
		ErrMissingUserID,
	)
}

func WrapInvalidRequest(message string, err error) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidRequest,
		message,
		fmt.Errorf("%w: %w", ErrInvalidPayload, err),
	)
}

// IsNotFound reports whether err is, or wraps, a missing-loan error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrLoanNotFound)
}

// IsValidation reports whether err came from rejected input
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidLoan) || errors.Is(err, ErrInvalidPayload)
}

// IsDuplicate reports whether err came from the duplicate detector
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicateLoan)
}

// AsDuplicate extracts the duplicate details from err
func AsDuplicate(err error) (*DuplicateLoanError, bool) {
	var dup *DuplicateLoanError
	if errors.As(err, &dup) {
		return dup, true
	}
	return nil, false
}
