package repo

import (
	"github.com/thumbforge/thumbforge/internal/pg"
	"github.com/thumbforge/thumbforge/internal/reconcile"
	generationrepo "github.com/thumbforge/thumbforge/internal/repo/generation-repo"
	paymentrepo "github.com/thumbforge/thumbforge/internal/repo/payment-repo"
	profilerepo "github.com/thumbforge/thumbforge/internal/repo/profile-repo"
	transactionrepo "github.com/thumbforge/thumbforge/internal/repo/transaction-repo"
	unbilledrepo "github.com/thumbforge/thumbforge/internal/repo/unbilled-repo"
	userrepo "github.com/thumbforge/thumbforge/internal/repo/user-repo"
	"github.com/thumbforge/thumbforge/internal/service/authservice"
	"github.com/thumbforge/thumbforge/internal/service/creditservice"
	"github.com/thumbforge/thumbforge/internal/service/generationservice"
	"github.com/thumbforge/thumbforge/internal/service/webhookservice"
)

type Repositories struct {
	UserRepo        authservice.Repo
	ProfileRepo     creditservice.ProfileRepo
	TransactionRepo creditservice.TransactionRepo
	GenerationRepo  generationservice.GenerationRepo
	UnbilledRepo    generationservice.UnbilledRepo
	UnbilledOutbox  reconcile.UnbilledRepo
	PaymentRepo     webhookservice.PaymentRepo
}

func New(conn pg.Database) *Repositories {
	userRepo := userrepo.New(conn)
	profileRepo := profilerepo.New(conn)
	transactionRepo := transactionrepo.New(conn)
	generationRepo := generationrepo.New(conn)
	unbilledRepo := unbilledrepo.New(conn)
	paymentRepo := paymentrepo.New(conn)

	return &Repositories{
		UserRepo:        userRepo,
		ProfileRepo:     profileRepo,
		TransactionRepo: transactionRepo,
		GenerationRepo:  generationRepo,
		UnbilledRepo:    unbilledRepo,
		UnbilledOutbox:  unbilledRepo,
		PaymentRepo:     paymentRepo,
	}
}
