package ingredientlog

import (
	"Pantry-API/entities"
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type (
	IngredientLogRepository interface {
		WithTx(tx *gorm.DB) IngredientLogRepository
		SaveAll(ctx context.Context, logs []*entities.IngredientLog) error
		FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.IngredientLog, error)
		FindPage(ctx context.Context, memberID *uuid.UUID, page, size int, sortBy, sortDirection string) ([]*entities.IngredientLog, int64, error)
		UpdateEmbedding(ctx context.Context, id uuid.UUID, vector datatypes.JSONSlice[float32]) error
	}

	ingredientLogRepository struct {
		db *gorm.DB
	}
)

// Columns the listing endpoint accepts for sorting. Anything else falls back
// to created_at.
var sortableColumns = map[string]struct{}{
	"created_at":      {},
	"ingredient_name": {},
	"movement_type":   {},
}

func NewIngredientLogRepository(db *gorm.DB) IngredientLogRepository {
	return &ingredientLogRepository{db: db}
}

func (r *ingredientLogRepository) WithTx(tx *gorm.DB) IngredientLogRepository {
	return &ingredientLogRepository{db: tx}
}

func (r *ingredientLogRepository) SaveAll(ctx context.Context, logs []*entities.IngredientLog) error {
	if len(logs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&logs).Error
}

func (r *ingredientLogRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.IngredientLog, error) {
	var logs []*entities.IngredientLog
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *ingredientLogRepository) FindPage(ctx context.Context, memberID *uuid.UUID, page, size int, sortBy, sortDirection string) ([]*entities.IngredientLog, int64, error) {
	if _, ok := sortableColumns[sortBy]; !ok {
		sortBy = "created_at"
	}
	if sortDirection != "asc" {
		sortDirection = "desc"
	}

	query := r.db.WithContext(ctx).Model(&entities.IngredientLog{})
	if memberID != nil {
		query = query.Where("member_id = ?", *memberID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var logs []*entities.IngredientLog
	offset := (page - 1) * size
	if err := query.
		Order(fmt.Sprintf("%s %s", sortBy, sortDirection)).
		Offset(offset).Limit(size).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, count, nil
}

func (r *ingredientLogRepository) UpdateEmbedding(ctx context.Context, id uuid.UUID, vector datatypes.JSONSlice[float32]) error {
	return r.db.WithContext(ctx).
		Model(&entities.IngredientLog{}).
		Where("id = ?", id).
		Update("embedding_vector", vector).Error
}
