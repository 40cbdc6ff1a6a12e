package unbilledrepo

import (
	"context"

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

func (r *Repository) Create(ctx context.Context, unbilled *domain.UnbilledGeneration) (*domain.UnbilledGeneration, error) {
	query := `
		INSERT INTO unbilled_generations (user_id, prompt, count, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, unbilled.UserID, unbilled.Prompt, unbilled.Count, unbilled.Reason).
		Scan(&unbilled.ID, &unbilled.CreatedAt)
	if err != nil {
		zap.L().Error("failed to create unbilled generation", zap.Error(err))
		return nil, err
	}
	return unbilled, nil
}

func (r *Repository) FindUnsettled(ctx context.Context, limit uint32) ([]domain.UnbilledGeneration, error) {
	query := `
		SELECT id, user_id, prompt, count, reason, settled, created_at
		FROM unbilled_generations
		WHERE settled = FALSE
		ORDER BY created_at
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		zap.L().Error("failed to fetch unbilled generations", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var unbilled []domain.UnbilledGeneration
	for rows.Next() {
		var u domain.UnbilledGeneration
		if err := rows.Scan(&u.ID, &u.UserID, &u.Prompt, &u.Count, &u.Reason, &u.Settled, &u.CreatedAt); err != nil {
			zap.L().Error("failed to scan unbilled generation", zap.Error(err))
			return nil, err
		}
		unbilled = append(unbilled, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return unbilled, nil
}

func (r *Repository) MarkSettled(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `UPDATE unbilled_generations SET settled = TRUE WHERE id = $1`, id)
	if err != nil {
		zap.L().Error("failed to mark unbilled generation settled", zap.Error(err))
		return err
	}
	return nil
}
