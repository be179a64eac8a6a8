package member

import (
	"Pantry-API/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	FCMTokenRepository interface {
		Save(ctx context.Context, token *entities.FCMToken) error
		FindByMemberID(ctx context.Context, memberID uuid.UUID) ([]*entities.FCMToken, error)
		FindAll(ctx context.Context) ([]*entities.FCMToken, error)
	}

	fcmTokenRepository struct {
		db *gorm.DB
	}
)

func NewFCMTokenRepository(db *gorm.DB) FCMTokenRepository {
	return &fcmTokenRepository{db: db}
}

func (r *fcmTokenRepository) Save(ctx context.Context, token *entities.FCMToken) error {
	// Re-registering the same device token is a no-op.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoNothing: true,
		}).
		Create(token).Error
}

func (r *fcmTokenRepository) FindByMemberID(ctx context.Context, memberID uuid.UUID) ([]*entities.FCMToken, error) {
	var tokens []*entities.FCMToken
	if err := r.db.WithContext(ctx).Where("member_id = ?", memberID).Find(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}

func (r *fcmTokenRepository) FindAll(ctx context.Context) ([]*entities.FCMToken, error) {
	var tokens []*entities.FCMToken
	if err := r.db.WithContext(ctx).Find(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}
