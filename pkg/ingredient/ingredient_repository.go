package ingredient

import (
	"Pantry-API/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	IngredientRepository interface {
		WithTx(tx *gorm.DB) IngredientRepository
		SaveAll(ctx context.Context, ingredients []*entities.Ingredient) error
		FindByID(ctx context.Context, id uuid.UUID) (*entities.Ingredient, error)
		// FindByIDs returns only the rows that exist; callers treat absent IDs
		// as already out of stock.
		FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Ingredient, error)
		FindPage(ctx context.Context, memberID *uuid.UUID, page, size int) ([]*entities.Ingredient, int64, error)
		DeleteAll(ctx context.Context, ingredients []*entities.Ingredient) error
		UpdateImagePath(ctx context.Context, id uuid.UUID, imagePath string) error
	}

	ingredientRepository struct {
		db *gorm.DB
	}
)

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) WithTx(tx *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: tx}
}

func (r *ingredientRepository) SaveAll(ctx context.Context, ingredients []*entities.Ingredient) error {
	if len(ingredients) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&ingredients).Error
}

func (r *ingredientRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *ingredientRepository) FindPage(ctx context.Context, memberID *uuid.UUID, page, size int) ([]*entities.Ingredient, int64, error) {
	query := r.db.WithContext(ctx).Model(&entities.Ingredient{})
	if memberID != nil {
		query = query.Where("member_id = ?", *memberID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var ingredients []*entities.Ingredient
	offset := (page - 1) * size
	if err := query.
		Order("inbound_at desc").
		Offset(offset).Limit(size).
		Find(&ingredients).Error; err != nil {
		return nil, 0, err
	}

	return ingredients, count, nil
}

func (r *ingredientRepository) DeleteAll(ctx context.Context, ingredients []*entities.Ingredient) error {
	if len(ingredients) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(ingredients))
	for _, ingredient := range ingredients {
		ids = append(ids, ingredient.ID)
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&entities.Ingredient{}).Error
}

func (r *ingredientRepository) UpdateImagePath(ctx context.Context, id uuid.UUID, imagePath string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Ingredient{}).
		Where("id = ?", id).
		Update("image_path", imagePath).Error
}
