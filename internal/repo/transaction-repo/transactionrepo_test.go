package transactionrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

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

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Transaction recorded",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now())
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO credit_transactions (user_id, amount, type, description)")).
					WithArgs(1, -2, "generation", "Generated 2 thumbnail(s)").
					WillReturnRows(rows)
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO credit_transactions (user_id, amount, type, description)")).
					WithArgs(1, -2, "generation", "Generated 2 thumbnail(s)").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.Create(context.Background(), &domain.CreditTransaction{
				UserID:      1,
				Amount:      -2,
				Type:        "generation",
				Description: "Generated 2 thumbnail(s)",
			})
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, result.ID)
			}
		})
	}
}

func TestRepository_GetByUserID(t *testing.T) {
	repo, mock := NewMock(t)

	rows := pgxmock.NewRows([]string{"id", "user_id", "amount", "type", "description", "created_at"}).
		AddRow(2, 1, -2, "generation", "Generated 2 thumbnail(s)", time.Now()).
		AddRow(1, 1, 10, "purchase", "Purchased starter pack (10 credits)", time.Now().Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, amount, type, description, created_at")).
		WithArgs(1).
		WillReturnRows(rows)

	transactions, err := repo.GetByUserID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, transactions, 2)
	assert.Equal(t, -2, transactions[0].Amount)
	assert.Equal(t, "purchase", transactions[1].Type)
}
