package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/taruntejajangila/expensetracker-sub000/internal/domain"
)

// ScheduleCache keeps read-through copies of stored schedules. Entries are
// keyed by owner and loan so a hit never skips the ownership check.
type ScheduleCache interface {
	Get(ctx context.Context, userID string, loanID uuid.UUID) ([]*domain.LoanPayment, bool, error)
	Set(ctx context.Context, userID string, loanID uuid.UUID, schedule []*domain.LoanPayment) error
	Invalidate(ctx context.Context, userID string, loanID uuid.UUID) error
}

// cachedPayment mirrors domain.LoanPayment including the fields its JSON
// form hides.
type cachedPayment struct {
	ID               uuid.UUID       `json:"id"`
	LoanID           uuid.UUID       `json:"loan_id"`
	PaymentNumber    int             `json:"payment_number"`
	PaymentDate      time.Time       `json:"payment_date"`
	PaymentAmount    decimal.Decimal `json:"payment_amount"`
	PrincipalPaid    decimal.Decimal `json:"principal_paid"`
	InterestPaid     decimal.Decimal `json:"interest_paid"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	CreatedAt        time.Time       `json:"created_at"`
}

type redisScheduleCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisScheduleCache(client redis.Cmdable, ttl time.Duration) ScheduleCache {
	return &redisScheduleCache{client: client, ttl: ttl}
}

func ScheduleKey(userID string, loanID uuid.UUID) string {
	return fmt.Sprintf("loan:%s:%s:schedule", userID, loanID)
}

func (c *redisScheduleCache) Get(ctx context.Context, userID string, loanID uuid.UUID) ([]*domain.LoanPayment, bool, error) {
	raw, err := c.client.Get(ctx, ScheduleKey(userID, loanID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	schedule, err := decodeSchedule(raw)
	if err != nil {
		return nil, false, err
	}
	return schedule, true, nil
}

func (c *redisScheduleCache) Set(ctx context.Context, userID string, loanID uuid.UUID, schedule []*domain.LoanPayment) error {
	raw, err := encodeSchedule(schedule)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, ScheduleKey(userID, loanID), raw, c.ttl).Err()
}

func (c *redisScheduleCache) Invalidate(ctx context.Context, userID string, loanID uuid.UUID) error {
	return c.client.Del(ctx, ScheduleKey(userID, loanID)).Err()
}

func encodeSchedule(schedule []*domain.LoanPayment) ([]byte, error) {
	rows := make([]cachedPayment, 0, len(schedule))
	for _, p := range schedule {
		rows = append(rows, cachedPayment{
			ID:               p.ID,
			LoanID:           p.LoanID,
			PaymentNumber:    p.PaymentNumber,
			PaymentDate:      p.PaymentDate,
			PaymentAmount:    p.PaymentAmount,
			PrincipalPaid:    p.PrincipalPaid,
			InterestPaid:     p.InterestPaid,
			RemainingBalance: p.RemainingBalance,
			CreatedAt:        p.CreatedAt,
		})
	}
	return json.Marshal(rows)
}

func decodeSchedule(raw []byte) ([]*domain.LoanPayment, error) {
	var rows []cachedPayment
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decode cached schedule: %w", err)
	}

	schedule := make([]*domain.LoanPayment, 0, len(rows))
	for _, r := range rows {
		schedule = append(schedule, &domain.LoanPayment{
			ID:               r.ID,
			LoanID:           r.LoanID,
			PaymentNumber:    r.PaymentNumber,
			PaymentDate:      r.PaymentDate,
			PaymentAmount:    r.PaymentAmount,
			PrincipalPaid:    r.PrincipalPaid,
			InterestPaid:     r.InterestPaid,
			RemainingBalance: r.RemainingBalance,
			CreatedAt:        r.CreatedAt,
		})
	}
	return schedule, nil
}

type noopScheduleCache struct{}

// NewNoopScheduleCache returns a cache that never hits.
func NewNoopScheduleCache() ScheduleCache {
	return noopScheduleCache{}
}

func (noopScheduleCache) Get(context.Context, string, uuid.UUID) ([]*domain.LoanPayment, bool, error) {
	return nil, false, nil
}

func (noopScheduleCache) Set(context.Context, string, uuid.UUID, []*domain.LoanPayment) error {
	return nil
}

func (noopScheduleCache) Invalidate(context.Context, string, uuid.UUID) error {
	return nil
}
