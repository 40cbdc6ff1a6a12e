package paymentrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/thumbforge/thumbforge/internal/domain"
	"github.com/thumbforge/thumbforge/internal/pg"
	"go.uber.org/zap"
)

const uniqueViolationCode = "23505"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// Create inserts a payment record. The unique constraint on
// stripe_session_id is the webhook dedup key: a duplicate insert returns
// (nil, nil), which callers treat as "event already processed".
func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	query := `
		INSERT INTO payments (user_id, stripe_payment_id, stripe_session_id, amount, currency, status, product, credits_added, customer_email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		payment.UserID,
		payment.StripePaymentID,
		payment.StripeSessionID,
		payment.Amount,
		payment.Currency,
		payment.Status,
		payment.Product,
		payment.CreditsAdded,
		payment.CustomerEmail,
	).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, nil
		}
		zap.L().Error("failed to create payment", zap.Error(err))
		return nil, err
	}
	return payment, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Payment, error) {
	query := `
		SELECT id, user_id, stripe_payment_id, stripe_session_id, amount, currency, status, product, credits_added, customer_email, created_at
		FROM payments
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to fetch payments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.UserID, &p.StripePaymentID, &p.StripeSessionID, &p.Amount, &p.Currency, &p.Status, &p.Product, &p.CreditsAdded, &p.CustomerEmail, &p.CreatedAt); err != nil {
			zap.L().Error("failed to scan payment", zap.Error(err))
			return nil, err
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}
