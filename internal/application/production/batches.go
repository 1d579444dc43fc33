package production

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// BatchService consultas y avance de estado de lotes de producción.
type BatchService struct {
	txRunner    TxRunner
	batchRepo   repository.ProductionBatchRepository
	stagingRepo repository.StagingRepository
	log         zerolog.Logger
	now         func() time.Time
}

// NewBatchService construye el servicio de lotes.
func NewBatchService(
	txRunner TxRunner,
	batchRepo repository.ProductionBatchRepository,
	stagingRepo repository.StagingRepository,
	log zerolog.Logger,
) *BatchService {
	return &BatchService{
		txRunner:    txRunner,
		batchRepo:   batchRepo,
		stagingRepo: stagingRepo,
		log:         log,
		now:         time.Now,
	}
}

// Get obtiene un lote de producción.
func (s *BatchService) Get(ctx context.Context, id string) (*entity.ProductionBatch, error) {
	return s.batchRepo.GetByID(ctx, id)
}

// List lista lotes, opcionalmente por estado.
func (s *BatchService) List(ctx context.Context, status string, limit, offset int) ([]*entity.ProductionBatch, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.batchRepo.List(ctx, status, limit, offset)
}

// Advance mueve el lote al siguiente estado (PROGRAMMED -> IN_PROGRESS -> COMPLETED).
func (s *BatchService) Advance(ctx context.Context, id, status, actor string) (*entity.ProductionBatch, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(actor) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := s.now()
	var batch *entity.ProductionBatch
	err := s.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		var err error
		batch, err = repos.Batches.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !batch.CanAdvanceTo(status) {
			return domain.ErrInvalidStatusTransition
		}
		if err := repos.Batches.UpdateStatus(ctx, id, status, now); err != nil {
			return err
		}
		batch.Status = status
		batch.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("batch_id", id).Str("status", status).Str("actor", actor).Msg("estado de blend actualizado")
	return batch, nil
}

// Staging lee el contador de etapa.
func (s *BatchService) Staging(ctx context.Context, counterID string) (*entity.StagingCounter, error) {
	return s.stagingRepo.Get(ctx, counterID)
}
