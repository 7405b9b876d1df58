package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/taruntejajangila/expensetracker-sub000/internal/domain"
)

const loanColumns = `id, user_id, name, loan_type, principal_amount, interest_rate, term_months,
	monthly_payment, total_interest, outstanding_balance, status, start_date, end_date,
	lender, account_number, notes, created_at, updated_at`

type loanRepository struct {
	db *sqlx.DB
}

func NewLoanRepository(db *sqlx.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan, schedule []*domain.LoanPayment) error {
	query := `
		INSERT INTO loans (` + loanColumns + `)
		VALUES (:id, :user_id, :name, :loan_type, :principal_amount, :interest_rate, :term_months,
			:monthly_payment, :total_interest, :outstanding_balance, :status, :start_date, :end_date,
			:lender, :account_number, :notes, :created_at, :updated_at)
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.NamedExecContext(ctx, query, loan); err != nil {
		return err
	}

	if err = replaceSchedule(ctx, tx, loan.ID, schedule); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *loanRepository) GetByID(ctx context.Context, loanID uuid.UUID, userID string) (*domain.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE id = $1 AND user_id = $2
	`

	var loan domain.Loan
	err := r.db.GetContext(ctx, &loan, query, loanID, userID)
	if err != nil {
		return nil, err
	}

	return &loan, nil
}

func (r *loanRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	loans := []*domain.Loan{}
	err := r.db.SelectContext(ctx, &loans, query, userID)
	if err != nil {
		return nil, err
	}

	return loans, nil
}

func (r *loanRepository) ListOpenByUser(ctx context.Context, userID string) ([]*domain.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE user_id = $1 AND status <> $2
		ORDER BY created_at DESC
	`

	loans := []*domain.Loan{}
	err := r.db.SelectContext(ctx, &loans, query, userID, domain.LoanStatusPaidOff)
	if err != nil {
		return nil, err
	}

	return loans, nil
}

func (r *loanRepository) Update(ctx context.Context, loan *domain.Loan, schedule []*domain.LoanPayment) error {
	query := `
		UPDATE loans
		SET name = :name, loan_type = :loan_type, principal_amount = :principal_amount,
			interest_rate = :interest_rate, term_months = :term_months, monthly_payment = :monthly_payment,
			total_interest = :total_interest, outstanding_balance = :outstanding_balance, status = :status,
			start_date = :start_date, end_date = :end_date, lender = :lender,
			account_number = :account_number, notes = :notes, updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id
	`

	if loan.UpdatedAt.IsZero() {
		loan.UpdatedAt = time.Now()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.NamedExecContext(ctx, query, loan)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	if schedule != nil {
		if err = replaceSchedule(ctx, tx, loan.ID, schedule); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *loanRepository) Delete(ctx context.Context, loanID uuid.UUID, userID string) (bool, error) {
	query := `DELETE FROM loans WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, loanID, userID)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
