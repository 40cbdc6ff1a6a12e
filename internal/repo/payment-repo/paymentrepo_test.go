package paymentrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/thumbforge/thumbforge/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func newPayment() *domain.Payment {
	return &domain.Payment{
		UserID:          7,
		StripePaymentID: "pi_test_123",
		StripeSessionID: "cs_test_123",
		Amount:          499,
		Currency:        "eur",
		Status:          "succeeded",
		Product:         "starter",
		CreditsAdded:    10,
		CustomerEmail:   "buyer@example.com",
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		expectNil bool
	}{
		{
			name: "Payment created",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now())
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments")).
					WithArgs(7, "pi_test_123", "cs_test_123", int64(499), "eur", "succeeded", "starter", 10, "buyer@example.com").
					WillReturnRows(rows)
			},
		},
		{
			name: "Duplicate session id returns nil",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments")).
					WithArgs(7, "pi_test_123", "cs_test_123", int64(499), "eur", "succeeded", "starter", 10, "buyer@example.com").
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "payments_stripe_session_id_key"})
			},
			expectNil: true,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments")).
					WithArgs(7, "pi_test_123", "cs_test_123", int64(499), "eur", "succeeded", "starter", 10, "buyer@example.com").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.Create(context.Background(), newPayment())
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			if tt.expectNil {
				assert.Nil(t, result)
			} else {
				assert.NotNil(t, result)
				assert.Equal(t, 1, result.ID)
			}
		})
	}
}

func TestRepository_FindByUserID(t *testing.T) {
	repo, mock := NewMock(t)

	now := time.Now()
	rows := pgxmock.NewRows([]string{"id", "user_id", "stripe_payment_id", "stripe_session_id", "amount", "currency", "status", "product", "credits_added", "customer_email", "created_at"}).
		AddRow(1, 7, "pi_test_123", "cs_test_123", int64(499), "eur", "succeeded", "starter", 10, "buyer@example.com", now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, stripe_payment_id, stripe_session_id, amount, currency, status, product, credits_added, customer_email, created_at")).
		WithArgs(7).
		WillReturnRows(rows)

	payments, err := repo.FindByUserID(context.Background(), 7)
	assert.NoError(t, err)
	assert.Len(t, payments, 1)
	assert.Equal(t, "cs_test_123", payments[0].StripeSessionID)
}
