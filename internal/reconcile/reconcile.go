package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/thumbforge/thumbforge/internal/domain"
	"github.com/thumbforge/thumbforge/internal/service/creditservice"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=reconcile.go -destination=reconcile_mock.go -package=reconcile

// The reconciliation worker drains unbilled generations: batches that were
// delivered to the user while the ledger debit was skipped (storage
// fallback or a lost debit race). Each pass retries the debit; accounts
// that still lack credits keep their record for a later pass.

type UnbilledRepo interface {
	FindUnsettled(ctx context.Context, limit uint32) ([]domain.UnbilledGeneration, error)
	MarkSettled(ctx context.Context, id int) error
}

type CreditService interface {
	Debit(ctx context.Context, userID, amount int, description string) (int, error)
}

var processingRecords sync.Map

type Service struct {
	unbilledRepo   UnbilledRepo
	credits        CreditService
	limit          uint32
	workerPool     WorkerPoolI
	updateInterval time.Duration
}

func New(unbilledRepo UnbilledRepo, credits CreditService) *Service {
	return &Service{
		unbilledRepo:   unbilledRepo,
		credits:        credits,
		limit:          1000,
		workerPool:     NewWorkerPool(10),
		updateInterval: time.Minute,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Reconciliation worker started")
	s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping reconciliation worker")
			return
		case <-ticker.C:
			s.processUnbilled(ctx)
		}
	}
}

func (s *Service) processUnbilled(ctx context.Context) {
	records, err := s.unbilledRepo.FindUnsettled(ctx, atomic.LoadUint32(&s.limit))
	if err != nil {
		zap.L().Error("Failed to fetch unbilled generations", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, record := range records {
		record := record

		if _, loaded := processingRecords.LoadOrStore(record.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer processingRecords.Delete(record.ID)
				return s.handleRecord(ctx, record)
			})
			if err != nil {
				processingRecords.Delete(record.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error processing unbilled generations", zap.Error(err))
	}
}

func (s *Service) handleRecord(ctx context.Context, record domain.UnbilledGeneration) error {
	description := fmt.Sprintf("Reconciled %d unbilled thumbnail(s)", record.Count)

	_, err := s.credits.Debit(ctx, record.UserID, record.Count, description)
	switch {
	case err == nil:
	case errors.Is(err, creditservice.ErrInsufficientCredits):
		// Leave the record for a later pass once the account tops up.
		zap.L().Info("account lacks credits, deferring reconciliation",
			zap.Int("recordID", record.ID), zap.Int("userID", record.UserID))
		return nil
	case errors.Is(err, creditservice.ErrProfileNotFound):
		zap.L().Warn("profile gone, settling unbilled record without debit",
			zap.Int("recordID", record.ID), zap.Int("userID", record.UserID))
	default:
		return fmt.Errorf("failed to reconcile record %d: %w", record.ID, err)
	}

	if err := s.unbilledRepo.MarkSettled(ctx, record.ID); err != nil {
		return fmt.Errorf("failed to settle record %d: %w", record.ID, err)
	}

	zap.L().Info("unbilled generation settled", zap.Int("recordID", record.ID), zap.Int("userID", record.UserID))
	return nil
}
