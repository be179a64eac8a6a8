package mealplan

import (
	"Pantry-API/entities"
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	MealRepository interface {
		WithTx(tx *gorm.DB) MealRepository
		SaveAll(ctx context.Context, meals []*entities.Meal) error
		Save(ctx context.Context, meal *entities.Meal) error
		FindByID(ctx context.Context, id uuid.UUID) (*entities.Meal, error)
		FindByMemberAndRange(ctx context.Context, memberID uuid.UUID, from, to time.Time) ([]*entities.Meal, error)
		DeleteByMemberAndRange(ctx context.Context, memberID uuid.UUID, from, to time.Time) error
	}

	mealRepository struct {
		db *gorm.DB
	}
)

func NewMealRepository(db *gorm.DB) MealRepository {
	return &mealRepository{db: db}
}

func (r *mealRepository) WithTx(tx *gorm.DB) MealRepository {
	return &mealRepository{db: tx}
}

func (r *mealRepository) SaveAll(ctx context.Context, meals []*entities.Meal) error {
	if len(meals) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&meals).Error
}

func (r *mealRepository) Save(ctx context.Context, meal *entities.Meal) error {
	return r.db.WithContext(ctx).Save(meal).Error
}

func (r *mealRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meal, error) {
	var meal entities.Meal
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&meal).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

func (r *mealRepository) FindByMemberAndRange(ctx context.Context, memberID uuid.UUID, from, to time.Time) ([]*entities.Meal, error) {
	var meals []*entities.Meal
	if err := r.db.WithContext(ctx).
		Where("member_id = ? AND serving_date >= ? AND serving_date < ?", memberID, from, to).
		Order("serving_date asc, serving_time asc").
		Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

func (r *mealRepository) DeleteByMemberAndRange(ctx context.Context, memberID uuid.UUID, from, to time.Time) error {
	return r.db.WithContext(ctx).
		Where("member_id = ? AND serving_date >= ? AND serving_date < ?", memberID, from, to).
		Delete(&entities.Meal{}).Error
}
