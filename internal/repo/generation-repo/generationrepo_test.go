package generationrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
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
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO generations (user_id, prompt, image_url, count, credits_used)")).
		WithArgs(1, "a prompt", "https://store/1/a.png", 1, 1).
		WillReturnRows(rows)

	generation, err := repo.Create(context.Background(), &domain.Generation{
		UserID:      1,
		Prompt:      "a prompt",
		ImageURL:    "https://store/1/a.png",
		Count:       1,
		CreditsUsed: 1,
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, generation.ID)
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		id        int
		mockSetup func()
		expectErr bool
		expectNil bool
	}{
		{
			name: "Generation found",
			id:   1,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "user_id", "prompt", "image_url", "count", "credits_used", "created_at"}).
					AddRow(1, 1, "a prompt", "https://store/1/a.png", 1, 1, time.Now())
				mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, prompt, image_url, count, credits_used, created_at")).
					WithArgs(1).
					WillReturnRows(rows)
			},
		},
		{
			name: "Generation missing",
			id:   2,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, prompt, image_url, count, credits_used, created_at")).
					WithArgs(2).
					WillReturnError(pgx.ErrNoRows)
			},
			expectNil: true,
		},
		{
			name: "Database error",
			id:   1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, prompt, image_url, count, credits_used, created_at")).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByID(context.Background(), tt.id)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			if tt.expectNil {
				assert.Nil(t, result)
			} else {
				assert.NotNil(t, result)
			}
		})
	}
}

func TestRepository_FindByUserID(t *testing.T) {
	repo, mock := NewMock(t)

	rows := pgxmock.NewRows([]string{"id", "user_id", "prompt", "image_url", "count", "credits_used", "created_at"}).
		AddRow(2, 1, "newer", "https://store/1/b.png", 1, 1, time.Now()).
		AddRow(1, 1, "older", "https://store/1/a.png", 1, 1, time.Now().Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, prompt, image_url, count, credits_used, created_at")).
		WithArgs(1).
		WillReturnRows(rows)

	generations, err := repo.FindByUserID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, generations, 2)
	assert.Equal(t, "newer", generations[0].Prompt)
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM generations WHERE id = $1")).
		WithArgs(1).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Delete(context.Background(), 1)
	assert.NoError(t, err)
}
