package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/taruntejajangila/expensetracker-sub000/pkg/response"
)

// NewRouter registers the health endpoints and the loan API.
func NewRouter(loanHandler *LoanHandler, healthHandler *HealthHandler, log *logrus.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware(log))
	router.Use(response.CORSMiddleware)

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods(http.MethodGet)

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(RequireUser)

	api.HandleFunc("/loans", loanHandler.CreateLoan).Methods(http.MethodPost)
	api.HandleFunc("/loans", loanHandler.GetUserLoans).Methods(http.MethodGet)
	api.HandleFunc("/loans/preview", loanHandler.PreviewAmortization).Methods(http.MethodPost)
	api.HandleFunc("/loans/{loanId}", loanHandler.GetLoan).Methods(http.MethodGet)
	api.HandleFunc("/loans/{loanId}", loanHandler.UpdateLoan).Methods(http.MethodPut)
	api.HandleFunc("/loans/{loanId}", loanHandler.DeleteLoan).Methods(http.MethodDelete)
	api.HandleFunc("/loans/{loanId}/amortization", loanHandler.GetAmortization).Methods(http.MethodGet)

	return router
}
