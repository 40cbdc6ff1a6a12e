package repo

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	generationrepo "github.com/thumbforge/thumbforge/internal/repo/generation-repo"
	paymentrepo "github.com/thumbforge/thumbforge/internal/repo/payment-repo"
	profilerepo "github.com/thumbforge/thumbforge/internal/repo/profile-repo"
	transactionrepo "github.com/thumbforge/thumbforge/internal/repo/transaction-repo"
	unbilledrepo "github.com/thumbforge/thumbforge/internal/repo/unbilled-repo"
	userrepo "github.com/thumbforge/thumbforge/internal/repo/user-repo"
)

func NewMock(t *testing.T) (*Repositories, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestNew(t *testing.T) {
	repo, mock := NewMock(t)

	assert.NotNil(t, repo.UserRepo)
	assert.NotNil(t, repo.ProfileRepo)
	assert.NotNil(t, repo.TransactionRepo)
	assert.NotNil(t, repo.GenerationRepo)
	assert.NotNil(t, repo.UnbilledRepo)
	assert.NotNil(t, repo.UnbilledOutbox)
	assert.NotNil(t, repo.PaymentRepo)

	assert.IsType(t, &userrepo.Repository{}, repo.UserRepo)
	assert.IsType(t, &profilerepo.Repository{}, repo.ProfileRepo)
	assert.IsType(t, &transactionrepo.Repository{}, repo.TransactionRepo)
	assert.IsType(t, &generationrepo.Repository{}, repo.GenerationRepo)
	assert.IsType(t, &unbilledrepo.Repository{}, repo.UnbilledRepo)
	assert.IsType(t, &paymentrepo.Repository{}, repo.PaymentRepo)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unmet expectations: %v", err)
	}
}
