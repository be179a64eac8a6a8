package ingredientlog

import (
	"Pantry-API/domain"
	"Pantry-API/entities"
	"Pantry-API/pkg/member"
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type (
	IngredientLogService interface {
		// RecordMovements appends one log per ingredient inside the caller's
		// transaction and returns the new log IDs so the caller can schedule
		// embedding enrichment after commit.
		RecordMovements(ctx context.Context, tx *gorm.DB, ingredients []*entities.Ingredient, movementType string) ([]uuid.UUID, error)
		// SetEmbeddingVectors enriches committed logs with embedding vectors.
		// It runs from the event bus; any failure is logged and swallowed, the
		// logs keep their nil vectors.
		SetEmbeddingVectors(ctx context.Context, logIDs []uuid.UUID)
		// GetIngredientLogs lists movements, optionally narrowed to one
		// member; an unknown member is an error, not an empty page.
		GetIngredientLogs(ctx context.Context, memberID string, page, size int, sortBy, sortDirection string) ([]domain.IngredientLogResponse, int64, error)
	}

	ingredientLogService struct {
		db                      *gorm.DB
		ingredientLogRepository IngredientLogRepository
		ingredientLogLLM        IngredientLogLLM
		memberService           member.MemberService
		log                     *zap.Logger
	}
)

func NewIngredientLogService(
	db *gorm.DB,
	ingredientLogRepository IngredientLogRepository,
	ingredientLogLLM IngredientLogLLM,
	memberService member.MemberService,
	log *zap.Logger,
) IngredientLogService {
	return &ingredientLogService{
		db:                      db,
		ingredientLogRepository: ingredientLogRepository,
		ingredientLogLLM:        ingredientLogLLM,
		memberService:           memberService,
		log:                     log,
	}
}

func (s *ingredientLogService) RecordMovements(ctx context.Context, tx *gorm.DB, ingredients []*entities.Ingredient, movementType string) ([]uuid.UUID, error) {
	logs := make([]*entities.IngredientLog, 0, len(ingredients))
	logIDs := make([]uuid.UUID, 0, len(ingredients))

	for _, ingredient := range ingredients {
		logID, err := uuid.NewV7()
		if err != nil {
			return nil, err
		}

		logs = append(logs, &entities.IngredientLog{
			ID:                  logID,
			IngredientName:      ingredient.Name,
			IngredientImagePath: ingredient.ImagePath,
			MemberID:            ingredient.MemberID,
			MovementType:        movementType,
			CreatedAt:           time.Now(),
		})
		logIDs = append(logIDs, logID)
	}

	if err := s.ingredientLogRepository.WithTx(tx).SaveAll(ctx, logs); err != nil {
		return nil, err
	}

	return logIDs, nil
}

func (s *ingredientLogService) SetEmbeddingVectors(ctx context.Context, logIDs []uuid.UUID) {
	if len(logIDs) == 0 {
		return
	}

	logs, err := s.ingredientLogRepository.FindByIDs(ctx, logIDs)
	if err != nil {
		s.log.Error("loading logs for embedding failed", zap.Error(err))
		return
	}
	if len(logs) == 0 {
		return
	}

	vectors, err := s.ingredientLogLLM.CreateEmbeddings(ctx, logs)
	if err != nil {
		s.log.Error("food log embedding failed",
			zap.Int("log_count", len(logs)),
			zap.Error(err),
		)
		return
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.ingredientLogRepository.WithTx(tx)
		for _, log := range logs {
			vector, ok := vectors[log.ID.String()]
			if !ok {
				continue
			}
			if err := repo.UpdateEmbedding(ctx, log.ID, vector); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error("patching log embeddings failed", zap.Error(err))
	}
}

func (s *ingredientLogService) GetIngredientLogs(ctx context.Context, memberID string, page, size int, sortBy, sortDirection string) ([]domain.IngredientLogResponse, int64, error) {
	var filter *uuid.UUID
	if memberID != "" {
		id, err := s.memberService.CheckMemberExists(ctx, memberID)
		if err != nil {
			return nil, 0, err
		}
		filter = &id
	}

	logs, count, err := s.ingredientLogRepository.FindPage(ctx, filter, page, size, sortBy, sortDirection)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]domain.IngredientLogResponse, 0, len(logs))
	for _, log := range logs {
		responses = append(responses, domain.IngredientLogResponse{
			ID:                  log.ID.String(),
			IngredientName:      log.IngredientName,
			IngredientImagePath: log.IngredientImagePath,
			MemberID:            log.MemberID.String(),
			MovementType:        log.MovementType,
			CreatedAt:           log.CreatedAt,
		})
	}

	return responses, count, nil
}
