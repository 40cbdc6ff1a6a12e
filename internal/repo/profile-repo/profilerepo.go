package profilerepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/thumbforge/thumbforge/internal/domain"
	"github.com/thumbforge/thumbforge/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetByUserID(ctx context.Context, userID int) (*domain.Profile, error) {
	query := `
        SELECT id, user_id, credits, subscription_tier
        FROM profiles
        WHERE user_id = $1
    `
	row := r.db.QueryRow(ctx, query, userID)
	var profile domain.Profile
	err := row.Scan(&profile.ID, &profile.UserID, &profile.Credits, &profile.SubscriptionTier)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to get profile", zap.Error(err))
		return nil, err
	}
	return &profile, nil
}

func (r *Repository) Create(ctx context.Context, userID, credits int) (*domain.Profile, error) {
	query := `
        INSERT INTO profiles (user_id, credits, subscription_tier)
        VALUES ($1, $2, 'none')
        RETURNING id, user_id, credits, subscription_tier
    `
	row := r.db.QueryRow(ctx, query, userID, credits)
	var profile domain.Profile
	err := row.Scan(&profile.ID, &profile.UserID, &profile.Credits, &profile.SubscriptionTier)
	if err != nil {
		zap.L().Error("failed to create profile", zap.Error(err))
		return nil, err
	}
	return &profile, nil
}

// DebitCredits subtracts amount from the balance in a single conditional
// update. The data store evaluates the sufficiency check, so two concurrent
// debits can never overdraw the balance. The second return value reports
// whether a row matched (false means missing profile or insufficient credits).
func (r *Repository) DebitCredits(ctx context.Context, userID, amount int) (int, bool, error) {
	query := `
		UPDATE profiles
		SET credits = credits - $1, updated_at = now()
		WHERE user_id = $2 AND credits >= $1
		RETURNING credits
	`
	var newCredits int
	err := r.db.QueryRow(ctx, query, amount, userID).Scan(&newCredits)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, false, nil
		}
		zap.L().Error("failed to debit credits", zap.Error(err))
		return 0, false, err
	}
	return newCredits, true, nil
}

// AddCredits grants amount credits and moves the account onto tier.
func (r *Repository) AddCredits(ctx context.Context, userID, amount int, tier string) (int, bool, error) {
	query := `
		UPDATE profiles
		SET credits = credits + $1, subscription_tier = $2, updated_at = now()
		WHERE user_id = $3
		RETURNING credits
	`
	var newCredits int
	err := r.db.QueryRow(ctx, query, amount, tier, userID).Scan(&newCredits)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, false, nil
		}
		zap.L().Error("failed to add credits", zap.Error(err))
		return 0, false, err
	}
	return newCredits, true, nil
}
