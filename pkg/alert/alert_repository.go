package alert

import (
	"Pantry-API/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	AlertRepository interface {
		WithTx(tx *gorm.DB) AlertRepository
		// SaveAllWithoutDuplicates persists only the candidates whose
		// (member, ingredient) key is not already present and returns them.
		// Filtered duplicates are normal, not an error.
		SaveAllWithoutDuplicates(ctx context.Context, alerts []*entities.Alert) ([]*entities.Alert, error)
		FindByKey(ctx context.Context, memberID, ingredientID uuid.UUID) (*entities.Alert, error)
		FindByMemberID(ctx context.Context, memberID uuid.UUID) ([]*entities.Alert, error)
	}

	alertRepository struct {
		db *gorm.DB
	}
)

func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) WithTx(tx *gorm.DB) AlertRepository {
	return &alertRepository{db: tx}
}

func (r *alertRepository) SaveAllWithoutDuplicates(ctx context.Context, alerts []*entities.Alert) ([]*entities.Alert, error) {
	if len(alerts) == 0 {
		return nil, nil
	}

	keys := make([][]any, 0, len(alerts))
	for _, a := range alerts {
		keys = append(keys, []any{a.MemberID, a.IngredientID})
	}

	var existing []entities.Alert
	if err := r.db.WithContext(ctx).
		Where("(member_id, ingredient_id) IN ?", keys).
		Find(&existing).Error; err != nil {
		return nil, err
	}

	present := make(map[[2]uuid.UUID]struct{}, len(existing))
	for _, a := range existing {
		present[[2]uuid.UUID{a.MemberID, a.IngredientID}] = struct{}{}
	}

	fresh := make([]*entities.Alert, 0, len(alerts))
	for _, a := range alerts {
		key := [2]uuid.UUID{a.MemberID, a.IngredientID}
		if _, ok := present[key]; ok {
			continue
		}
		// A batch can carry the same key twice; first one wins.
		present[key] = struct{}{}
		fresh = append(fresh, a)
	}

	if len(fresh) == 0 {
		return nil, nil
	}

	// The composite primary key plus ON CONFLICT DO NOTHING closes the race
	// against a concurrent writer that slipped past the existence check.
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&fresh).Error; err != nil {
		return nil, err
	}

	return fresh, nil
}

func (r *alertRepository) FindByKey(ctx context.Context, memberID, ingredientID uuid.UUID) (*entities.Alert, error) {
	var alert entities.Alert
	if err := r.db.WithContext(ctx).
		Where("member_id = ? AND ingredient_id = ?", memberID, ingredientID).
		First(&alert).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *alertRepository) FindByMemberID(ctx context.Context, memberID uuid.UUID) ([]*entities.Alert, error) {
	var alerts []*entities.Alert
	if err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}
