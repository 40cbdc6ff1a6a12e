package unbilledrepo

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

	rows := pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO unbilled_generations (user_id, prompt, count, reason)")).
		WithArgs(1, "a prompt", 2, "bucket unavailable").
		WillReturnRows(rows)

	unbilled, err := repo.Create(context.Background(), &domain.UnbilledGeneration{
		UserID: 1,
		Prompt: "a prompt",
		Count:  2,
		Reason: "bucket unavailable",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, unbilled.ID)
}

func TestRepository_FindUnsettled(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		expected  int
	}{
		{
			name: "Returns unsettled records",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "user_id", "prompt", "count", "reason", "settled", "created_at"}).
					AddRow(1, 1, "a prompt", 2, "bucket unavailable", false, time.Now())
				mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, prompt, count, reason, settled, created_at")).
					WithArgs(uint32(100)).
					WillReturnRows(rows)
			},
			expected: 1,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, prompt, count, reason, settled, created_at")).
					WithArgs(uint32(100)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			records, err := repo.FindUnsettled(context.Background(), 100)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, records, tt.expected)
		})
	}
}

func TestRepository_MarkSettled(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE unbilled_generations SET settled = TRUE WHERE id = $1")).
		WithArgs(1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.MarkSettled(context.Background(), 1)
	assert.NoError(t, err)
}
