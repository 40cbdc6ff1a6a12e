package generationservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/thumbforge/thumbforge/internal/domain"
	"github.com/thumbforge/thumbforge/internal/genai"
	"github.com/thumbforge/thumbforge/internal/pg"
	"github.com/thumbforge/thumbforge/pkg/validate"
	"go.uber.org/zap"
)

//go:generate mockgen -source=generationservice.go -destination=generationservice_mock.go -package=generationservice

type GenerationRepo interface {
	Create(ctx context.Context, generation *domain.Generation) (*domain.Generation, error)
	FindByID(ctx context.Context, id int) (*domain.Generation, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.Generation, error)
	Delete(ctx context.Context, id int) error
}

type UnbilledRepo interface {
	Create(ctx context.Context, unbilled *domain.UnbilledGeneration) (*domain.UnbilledGeneration, error)
}

type CreditService interface {
	GetProfile(ctx context.Context, userID int) (*domain.Profile, error)
	Debit(ctx context.Context, userID, amount int, description string) (int, error)
}

type Generator interface {
	Generate(ctx context.Context, req genai.Request) ([]string, error)
}

type ArtifactStore interface {
	Upload(ctx context.Context, userID int, dataURL string) (string, error)
	Delete(ctx context.Context, imageURL string) error
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

var (
	ErrMissingInput       = errors.New("face and inspiration images are required")
	ErrPromptTooShort     = fmt.Errorf("prompt must contain at least %d characters", validate.MinPromptLen)
	ErrCountOutOfRange    = errors.New("image count must be between 1 and 4")
	ErrRateLimited        = errors.New("too many generation requests, try again later")
	ErrNoCredits          = errors.New("no credits available")
	ErrGenerationNotFound = errors.New("generation not found")
)

const (
	defaultCount = 2
	minCount     = 1
	maxCount     = 4
)

// GenerateInput is the validated payload of one generation request. Images
// are data URLs; ExtraImage may be empty.
type GenerateInput struct {
	FaceImage        string
	InspirationImage string
	ExtraImage       string
	Prompt           string
	Count            int
}

type Service struct {
	generationRepo GenerationRepo
	unbilledRepo   UnbilledRepo
	credits        CreditService
	generator      Generator
	store          ArtifactStore
	limiter        RateLimiter
	txManager      pg.TXManager
}

func New(
	generationRepo GenerationRepo,
	unbilledRepo UnbilledRepo,
	credits CreditService,
	generator Generator,
	store ArtifactStore,
	limiter RateLimiter,
	txManager pg.TXManager,
) *Service {
	return &Service{
		generationRepo: generationRepo,
		unbilledRepo:   unbilledRepo,
		credits:        credits,
		generator:      generator,
		store:          store,
		limiter:        limiter,
		txManager:      txManager,
	}
}

// validateInput sanitizes the prompt, defaults the count and checks the
// request bounds. Pure: no side effects beyond mutating input in place.
func validateInput(input *GenerateInput) error {
	if input.FaceImage == "" || input.InspirationImage == "" {
		return ErrMissingInput
	}

	input.Prompt = validate.SanitizePrompt(input.Prompt)
	if !validate.IsValidPrompt(input.Prompt) {
		return ErrPromptTooShort
	}

	if input.Count == 0 {
		input.Count = defaultCount
	}
	if input.Count < minCount || input.Count > maxCount {
		return ErrCountOutOfRange
	}
	return nil
}

// Generate runs the credit reservation flow: validate, rate-limit, check
// balance, call the provider, persist artifacts, debit the ledger.
func (s *Service) Generate(ctx context.Context, userID int, input GenerateInput) ([]string, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	allowed, err := s.limiter.Allow(ctx, fmt.Sprintf("generate:%d", userID))
	if err != nil {
		zap.L().Warn("rate limit store unavailable, allowing request", zap.Error(err))
	}
	if !allowed {
		return nil, ErrRateLimited
	}

	profile, err := s.credits.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.Credits == 0 {
		return nil, ErrNoCredits
	}

	// Partial fulfillment: a request larger than the balance is clamped
	// down instead of rejected.
	count := input.Count
	if profile.Credits < count {
		count = profile.Credits
		zap.L().Info("clamped requested count to available credits",
			zap.Int("userID", userID),
			zap.Int("requested", input.Count),
			zap.Int("count", count),
		)
	}

	images, err := s.generator.Generate(ctx, genai.Request{
		FaceImage:        input.FaceImage,
		InspirationImage: input.InspirationImage,
		ExtraImage:       input.ExtraImage,
		Prompt:           input.Prompt,
		Count:            count,
	})
	if err != nil {
		zap.L().Error("provider generation failed", zap.Error(err))
		return nil, err
	}

	urls, err := s.persistArtifacts(ctx, userID, input.Prompt, images)
	if err != nil {
		// The user still gets the raw artifacts; billing is deferred to
		// the reconciliation worker via the unbilled record.
		s.recordUnbilled(ctx, userID, input.Prompt, len(images), err)
		return images, nil
	}

	description := fmt.Sprintf("Generated %d thumbnail(s)", len(images))
	if _, err := s.credits.Debit(ctx, userID, len(images), description); err != nil {
		zap.L().Error("debit after successful persistence failed", zap.Error(err))
		s.recordUnbilled(ctx, userID, input.Prompt, len(images), err)
	}

	return urls, nil
}

// persistArtifacts uploads every artifact and inserts the generation rows
// in one transaction. On any failure the uploaded objects are removed so no
// partial batch survives.
func (s *Service) persistArtifacts(ctx context.Context, userID int, prompt string, images []string) ([]string, error) {
	urls := make([]string, 0, len(images))
	for _, image := range images {
		url, err := s.store.Upload(ctx, userID, image)
		if err != nil {
			zap.L().Error("artifact upload failed, falling back to raw payloads", zap.Error(err))
			s.discardUploads(ctx, urls)
			return nil, err
		}
		urls = append(urls, url)
	}

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		for _, url := range urls {
			_, err := s.generationRepo.Create(ctx, &domain.Generation{
				UserID:      userID,
				Prompt:      prompt,
				ImageURL:    url,
				Count:       1,
				CreditsUsed: 1,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		zap.L().Error("can't save generation records", zap.Error(err))
		s.discardUploads(ctx, urls)
		return nil, err
	}

	return urls, nil
}

func (s *Service) discardUploads(ctx context.Context, urls []string) {
	for _, url := range urls {
		if err := s.store.Delete(ctx, url); err != nil {
			zap.L().Warn("can't discard uploaded artifact", zap.String("url", url), zap.Error(err))
		}
	}
}

func (s *Service) recordUnbilled(ctx context.Context, userID int, prompt string, count int, cause error) {
	_, err := s.unbilledRepo.Create(ctx, &domain.UnbilledGeneration{
		UserID: userID,
		Prompt: prompt,
		Count:  count,
		Reason: cause.Error(),
	})
	if err != nil {
		zap.L().Error("can't record unbilled generation", zap.Error(err))
	}
}

// GetGenerations returns the account's stored generations, newest first.
func (s *Service) GetGenerations(ctx context.Context, userID int) ([]domain.Generation, error) {
	generations, err := s.generationRepo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch generations", zap.Error(err))
		return nil, err
	}
	return generations, nil
}

// DeleteGeneration removes one generation's stored artifact and record. The
// object delete is best effort; the record delete is not.
func (s *Service) DeleteGeneration(ctx context.Context, userID, generationID int) error {
	generation, err := s.generationRepo.FindByID(ctx, generationID)
	if err != nil {
		return err
	}
	if generation == nil || generation.UserID != userID {
		return ErrGenerationNotFound
	}

	if err := s.store.Delete(ctx, generation.ImageURL); err != nil {
		zap.L().Warn("can't delete stored artifact, removing record anyway", zap.Error(err))
	}

	if err := s.generationRepo.Delete(ctx, generationID); err != nil {
		zap.L().Error("failed to delete generation record", zap.Error(err))
		return err
	}
	return nil
}
