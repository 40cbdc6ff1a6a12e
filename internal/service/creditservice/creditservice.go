package creditservice

import (
	"context"
	"errors"

	"github.com/thumbforge/thumbforge/internal/domain"
	"github.com/thumbforge/thumbforge/internal/pg"
	"go.uber.org/zap"
)

//go:generate mockgen -source=creditservice.go -destination=creditservice_mock.go -package=creditservice

type ProfileRepo interface {
	GetByUserID(ctx context.Context, userID int) (*domain.Profile, error)
	Create(ctx context.Context, userID, credits int) (*domain.Profile, error)
	DebitCredits(ctx context.Context, userID, amount int) (int, bool, error)
	AddCredits(ctx context.Context, userID, amount int, tier string) (int, bool, error)
}

type TransactionRepo interface {
	Create(ctx context.Context, transaction *domain.CreditTransaction) (*domain.CreditTransaction, error)
	GetByUserID(ctx context.Context, userID int) ([]domain.CreditTransaction, error)
}

var (
	ErrProfileNotFound     = errors.New("profile not found")
	ErrInsufficientCredits = errors.New("insufficient credits")
)

const (
	TransactionTypePurchase   = "purchase"
	TransactionTypeGeneration = "generation"
)

type Service struct {
	profileRepo     ProfileRepo
	transactionRepo TransactionRepo
	txManager       pg.TXManager
	freeCredits     int
}

func New(profileRepo ProfileRepo, transactionRepo TransactionRepo, txManager pg.TXManager, freeCredits int) *Service {
	return &Service{
		profileRepo:     profileRepo,
		transactionRepo: transactionRepo,
		txManager:       txManager,
		freeCredits:     freeCredits,
	}
}

// CreateProfile provisions the account ledger with the free allotment. The
// allotment is not recorded as a transaction: the transaction history sums
// to the balance minus the allotment.
func (s *Service) CreateProfile(ctx context.Context, userID int) (*domain.Profile, error) {
	profile, err := s.profileRepo.Create(ctx, userID, s.freeCredits)
	if err != nil {
		zap.L().Error("failed to create profile", zap.Error(err))
		return nil, err
	}
	return profile, nil
}

func (s *Service) GetProfile(ctx context.Context, userID int) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get profile", zap.Error(err))
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

func (s *Service) GetTransactions(ctx context.Context, userID int) ([]domain.CreditTransaction, error) {
	transactions, err := s.transactionRepo.GetByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch transactions", zap.Error(err))
		return nil, err
	}
	return transactions, nil
}

// Debit removes amount credits and appends the audit transaction in one
// database transaction. The balance check runs inside the conditional
// update, so a concurrent debit that would overdraw simply misses the row.
func (s *Service) Debit(ctx context.Context, userID, amount int, description string) (int, error) {
	var newCredits int
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		credits, ok, err := s.profileRepo.DebitCredits(ctx, userID, amount)
		if err != nil {
			return err
		}
		if !ok {
			profile, err := s.profileRepo.GetByUserID(ctx, userID)
			if err != nil {
				return err
			}
			if profile == nil {
				return ErrProfileNotFound
			}
			return ErrInsufficientCredits
		}
		newCredits = credits

		_, err = s.transactionRepo.Create(ctx, &domain.CreditTransaction{
			UserID:      userID,
			Amount:      -amount,
			Type:        TransactionTypeGeneration,
			Description: description,
		})
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrInsufficientCredits) && !errors.Is(err, ErrProfileNotFound) {
			zap.L().Error("failed to debit credits", zap.Error(err))
		}
		return 0, err
	}

	zap.L().Info("credits debited", zap.Int("userID", userID), zap.Int("amount", amount), zap.Int("newCredits", newCredits))
	return newCredits, nil
}

// Credit grants amount credits, moves the account onto tier and appends the
// purchase transaction, all in one database transaction.
func (s *Service) Credit(ctx context.Context, userID, amount int, tier, description string) (int, error) {
	var newCredits int
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		credits, ok, err := s.profileRepo.AddCredits(ctx, userID, amount, tier)
		if err != nil {
			return err
		}
		if !ok {
			return ErrProfileNotFound
		}
		newCredits = credits

		_, err = s.transactionRepo.Create(ctx, &domain.CreditTransaction{
			UserID:      userID,
			Amount:      amount,
			Type:        TransactionTypePurchase,
			Description: description,
		})
		return err
	})
	if err != nil {
		zap.L().Error("failed to credit account", zap.Error(err))
		return 0, err
	}

	zap.L().Info("credits granted", zap.Int("userID", userID), zap.Int("amount", amount), zap.String("tier", tier))
	return newCredits, nil
}
