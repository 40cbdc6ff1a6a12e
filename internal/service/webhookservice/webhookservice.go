package webhookservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/thumbforge/thumbforge/internal/config"
	"github.com/thumbforge/thumbforge/internal/domain"
	"github.com/thumbforge/thumbforge/internal/pg"
	"go.uber.org/zap"
)

//go:generate mockgen -source=webhookservice.go -destination=webhookservice_mock.go -package=webhookservice

type UserRepo interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

type PaymentRepo interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
}

type CreditService interface {
	Credit(ctx context.Context, userID, amount int, tier, description string) (int, error)
}

type StripeClient interface {
	FirstLineItemPriceID(ctx context.Context, sessionID string) (string, error)
}

var (
	ErrUnknownPack      = errors.New("unknown credit pack")
	ErrAccountNotFound  = errors.New("no account for payer email")
	ErrAlreadyProcessed = errors.New("payment event already processed")
	ErrMissingEmail     = errors.New("payment event carries no payer email")
)

// Pack is one purchasable credit bundle. Amount is in the smallest
// currency unit.
type Pack struct {
	Name    string
	Credits int
	Amount  int64
}

// CheckoutSession is the subset of a completed checkout event the
// reconciler needs.
type CheckoutSession struct {
	ID            string
	PaymentIntent string
	CustomerEmail string
	AmountTotal   int64
	Currency      string
}

type Service struct {
	userRepo    UserRepo
	paymentRepo PaymentRepo
	credits     CreditService
	stripe      StripeClient
	txManager   pg.TXManager
	packs       map[string]Pack
}

func New(userRepo UserRepo, paymentRepo PaymentRepo, credits CreditService, stripe StripeClient, txManager pg.TXManager, cfg *config.Config) *Service {
	return &Service{
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		credits:     credits,
		stripe:      stripe,
		txManager:   txManager,
		packs: map[string]Pack{
			cfg.StarterPriceID: {Name: "starter", Credits: 10, Amount: 499},
			cfg.ProPriceID:     {Name: "pro", Credits: 25, Amount: 999},
		},
	}
}

// HandleCheckoutCompleted reconciles one verified checkout-completed event
// into a ledger credit. The payment insert and the credit share one
// database transaction, and the unique session id makes redelivery a no-op:
// replaying the same event grants credits exactly once.
func (s *Service) HandleCheckoutCompleted(ctx context.Context, session CheckoutSession) error {
	if session.CustomerEmail == "" {
		return ErrMissingEmail
	}

	priceID, err := s.stripe.FirstLineItemPriceID(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("can't resolve purchased price: %w", err)
	}

	pack, ok := s.packs[priceID]
	if !ok {
		return fmt.Errorf("%w: price id %s", ErrUnknownPack, priceID)
	}

	user, err := s.userRepo.FindByEmail(ctx, session.CustomerEmail)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, session.CustomerEmail)
	}

	currency := session.Currency
	if currency == "" {
		currency = "eur"
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		payment, err := s.paymentRepo.Create(ctx, &domain.Payment{
			UserID:          user.ID,
			StripePaymentID: session.PaymentIntent,
			StripeSessionID: session.ID,
			Amount:          session.AmountTotal,
			Currency:        currency,
			Status:          "succeeded",
			Product:         pack.Name,
			CreditsAdded:    pack.Credits,
			CustomerEmail:   session.CustomerEmail,
		})
		if err != nil {
			return err
		}
		if payment == nil {
			return ErrAlreadyProcessed
		}

		description := fmt.Sprintf("Purchased %s pack (%d credits)", pack.Name, pack.Credits)
		_, err = s.credits.Credit(ctx, user.ID, pack.Credits, pack.Name, description)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyProcessed) {
			zap.L().Info("payment event already processed", zap.String("sessionID", session.ID))
			return ErrAlreadyProcessed
		}
		return err
	}

	zap.L().Info("payment reconciled",
		zap.Int("userID", user.ID),
		zap.String("pack", pack.Name),
		zap.Int("credits", pack.Credits),
		zap.String("sessionID", session.ID),
	)
	return nil
}
