package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/taruntejajangila/expensetracker-sub000/internal/domain"
)

func (r *loanRepository) GetSchedule(ctx context.Context, loanID uuid.UUID, userID string) ([]*domain.LoanPayment, error) {
	query := `
		SELECT p.id, p.loan_id, p.payment_number, p.payment_date, p.payment_amount,
			p.principal_paid, p.interest_paid, p.remaining_balance, p.created_at
		FROM loan_payments p
		JOIN loans l ON l.id = p.loan_id
		WHERE p.loan_id = $1 AND l.user_id = $2
		ORDER BY p.payment_number
	`

	schedule := []*domain.LoanPayment{}
	err := r.db.SelectContext(ctx, &schedule, query, loanID, userID)
	if err != nil {
		return nil, err
	}

	return schedule, nil
}

func (r *loanRepository) ReplaceSchedule(ctx context.Context, loanID uuid.UUID, schedule []*domain.LoanPayment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err = replaceSchedule(ctx, tx, loanID, schedule); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *loanRepository) FindScheduleDrift(ctx context.Context) ([]*domain.ScheduleDrift, error) {
	query := `
		SELECT l.id, l.user_id, l.term_months, COUNT(p.id) AS row_count
		FROM loans l
		LEFT JOIN loan_payments p ON p.loan_id = l.id
		GROUP BY l.id
		HAVING COUNT(p.id) <> l.term_months
		ORDER BY l.id
	`

	drift := []*domain.ScheduleDrift{}
	err := r.db.SelectContext(ctx, &drift, query)
	if err != nil {
		return nil, err
	}

	return drift, nil
}

// replaceSchedule deletes every schedule row of loanID and inserts schedule
// in its place, inside the caller's transaction.
func replaceSchedule(ctx context.Context, tx *sqlx.Tx, loanID uuid.UUID, schedule []*domain.LoanPayment) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM loan_payments WHERE loan_id = $1`, loanID); err != nil {
		return err
	}

	if len(schedule) == 0 {
		return nil
	}

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO loan_payments (id, loan_id, payment_number, payment_date, payment_amount,
			principal_paid, interest_paid, remaining_balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, payment := range schedule {
		_, err = stmt.ExecContext(ctx,
			payment.ID,
			loanID,
			payment.PaymentNumber,
			payment.PaymentDate,
			payment.PaymentAmount,
			payment.PrincipalPaid,
			payment.InterestPaid,
			payment.RemainingBalance,
			payment.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return nil
}
