package generationrepo

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

func (r *Repository) Create(ctx context.Context, generation *domain.Generation) (*domain.Generation, error) {
	query := `
		INSERT INTO generations (user_id, prompt, image_url, count, credits_used)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, generation.UserID, generation.Prompt, generation.ImageURL, generation.Count, generation.CreditsUsed).
		Scan(&generation.ID, &generation.CreatedAt)
	if err != nil {
		zap.L().Error("failed to create generation", zap.Error(err))
		return nil, err
	}
	return generation, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Generation, error) {
	query := `
		SELECT id, user_id, prompt, image_url, count, credits_used, created_at
		FROM generations
		WHERE id = $1
	`
	row := r.db.QueryRow(ctx, query, id)
	var g domain.Generation
	err := row.Scan(&g.ID, &g.UserID, &g.Prompt, &g.ImageURL, &g.Count, &g.CreditsUsed, &g.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to find generation", zap.Error(err))
		return nil, err
	}
	return &g, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Generation, error) {
	query := `
		SELECT id, user_id, prompt, image_url, count, credits_used, created_at
		FROM generations
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to fetch generations", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var generations []domain.Generation
	for rows.Next() {
		var g domain.Generation
		if err := rows.Scan(&g.ID, &g.UserID, &g.Prompt, &g.ImageURL, &g.Count, &g.CreditsUsed, &g.CreatedAt); err != nil {
			zap.L().Error("failed to scan generation", zap.Error(err))
			return nil, err
		}
		generations = append(generations, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return generations, nil
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM generations WHERE id = $1`, id)
	if err != nil {
		zap.L().Error("failed to delete generation", zap.Error(err))
		return err
	}
	return nil
}
