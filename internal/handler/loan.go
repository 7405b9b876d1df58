package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/taruntejajangila/expensetracker-sub000/internal/domain"
	customError "github.com/taruntejajangila/expensetracker-sub000/pkg/errors"
	"github.com/taruntejajangila/expensetracker-sub000/pkg/response"
)

// UserIDHeader carries the already-authenticated caller's id.
const UserIDHeader = "X-User-ID"

const maxBodyBytes = 1 << 20

// LoanService is the part of the service layer the HTTP handlers use
type LoanService interface {
	CreateLoan(ctx context.Context, userID string, request *domain.CreateLoanRequest) (*domain.Loan, error)
	GetUserLoans(ctx context.Context, userID string) ([]*domain.Loan, error)
	GetLoanByID(ctx context.Context, loanID uuid.UUID, userID string) (*domain.Loan, error)
	UpdateLoan(ctx context.Context, loanID uuid.UUID, userID string, request *domain.UpdateLoanRequest) (*domain.Loan, error)
	DeleteLoan(ctx context.Context, loanID uuid.UUID, userID string) (bool, error)
	GetLoanAmortization(ctx context.Context, loanID uuid.UUID, userID string) ([]*domain.LoanPayment, error)
	PreviewAmortization(request *domain.PreviewRequest) (*domain.AmortizationPreview, error)
}

type LoanHandler struct {
	service LoanService
	log     *logrus.Logger
}

func NewLoanHandler(service LoanService, log *logrus.Logger) *LoanHandler {
	return &LoanHandler{
		service: service,
		log:     log,
	}
}

type ctxKey struct{}

// RequireUser rejects requests without a user id header and stores the id
// in the request context.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if userID == "" {
			err := customError.WrapMissingUserID()
			response.Unauthorized(w, err.Code, err.Message)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, userID)))
	})
}

func userIDFrom(r *http.Request) string {
	userID, _ := r.Context().Value(ctxKey{}).(string)
	return userID
}

// CreateLoan handles POST /api/v1/loans
func (h *LoanHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateLoanRequest
	if !h.decode(w, r, &request) {
		return
	}

	loan, err := h.service.CreateLoan(r.Context(), userIDFrom(r), &request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Created(w, domain.NewLoanResponse(loan))
}

// GetUserLoans handles GET /api/v1/loans
func (h *LoanHandler) GetUserLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.service.GetUserLoans(r.Context(), userIDFrom(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out := make([]*domain.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		out = append(out, domain.NewLoanResponse(loan))
	}
	response.Success(w, out)
}

// GetLoan handles GET /api/v1/loans/{loanId}
func (h *LoanHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	loanID, ok := h.loanID(w, r)
	if !ok {
		return
	}

	loan, err := h.service.GetLoanByID(r.Context(), loanID, userIDFrom(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, domain.NewLoanResponse(loan))
}

// UpdateLoan handles PUT /api/v1/loans/{loanId}
func (h *LoanHandler) UpdateLoan(w http.ResponseWriter, r *http.Request) {
	loanID, ok := h.loanID(w, r)
	if !ok {
		return
	}

	var request domain.UpdateLoanRequest
	if !h.decode(w, r, &request) {
		return
	}

	loan, err := h.service.UpdateLoan(r.Context(), loanID, userIDFrom(r), &request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, domain.NewLoanResponse(loan))
}

// DeleteLoan handles DELETE /api/v1/loans/{loanId}
func (h *LoanHandler) DeleteLoan(w http.ResponseWriter, r *http.Request) {
	loanID, ok := h.loanID(w, r)
	if !ok {
		return
	}

	deleted, err := h.service.DeleteLoan(r.Context(), loanID, userIDFrom(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if !deleted {
		h.writeError(w, r, customError.WrapLoanNotFound(loanID.String()))
		return
	}

	response.Message(w, "Loan deleted successfully")
}

// GetAmortization handles GET /api/v1/loans/{loanId}/amortization
func (h *LoanHandler) GetAmortization(w http.ResponseWriter, r *http.Request) {
	loanID, ok := h.loanID(w, r)
	if !ok {
		return
	}

	schedule, err := h.service.GetLoanAmortization(r.Context(), loanID, userIDFrom(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, domain.ScheduleResponse{LoanID: loanID, Schedule: schedule})
}

// PreviewAmortization handles POST /api/v1/loans/preview
func (h *LoanHandler) PreviewAmortization(w http.ResponseWriter, r *http.Request) {
	var request domain.PreviewRequest
	if !h.decode(w, r, &request) {
		return
	}

	preview, err := h.service.PreviewAmortization(&request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, preview)
}

func (h *LoanHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, r, customError.WrapInvalidRequest("Invalid JSON payload", err))
		return false
	}
	return true
}

func (h *LoanHandler) loanID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := mux.Vars(r)["loanId"]
	loanID, err := uuid.Parse(raw)
	if err != nil {
		h.writeError(w, r, customError.WrapInvalidRequest("Invalid loan ID", customError.ErrInvalidLoanID))
		return uuid.Nil, false
	}
	return loanID, true
}

// writeError maps service errors onto HTTP statuses.
func (h *LoanHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, message := customError.ErrCodeDatabaseError, "Internal server error"
	var be *customError.BusinessError
	if errors.As(err, &be) {
		code, message = be.Code, be.Message
	}

	switch {
	case customError.IsDuplicate(err):
		dup, _ := customError.AsDuplicate(err)
		response.Conflict(w, customError.ErrCodeDuplicateLoan, dup.Message, map[string]string{
			"reason":         dup.Reason,
			"existingLoanId": dup.ExistingLoanID,
		})
	case customError.IsNotFound(err):
		response.NotFound(w, code, message)
	case errors.Is(err, customError.ErrMissingUserID):
		response.Unauthorized(w, customError.ErrCodeUnauthorized, customError.WrapMissingUserID().Message)
	case customError.IsValidation(err) && code == customError.ErrCodeInvalidRequest:
		response.BadRequest(w, code, message, nil)
	case customError.IsValidation(err):
		response.BadRequest(w, code, "Validation failed", errors.New(message))
	default:
		h.log.WithError(err).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("request failed")
		response.InternalServerError(w, code, "Internal server error")
	}
}
