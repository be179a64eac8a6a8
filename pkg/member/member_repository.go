package member

import (
	"Pantry-API/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	MemberRepository interface {
		WithTx(tx *gorm.DB) MemberRepository
		Save(ctx context.Context, member *entities.Member) error
		FindByID(ctx context.Context, id uuid.UUID) (*entities.Member, error)
		FindMembers(ctx context.Context, page, size int) ([]*entities.Member, int64, error)
		FindMonitoredMembers(ctx context.Context) ([]*entities.Member, error)
		CountMembers(ctx context.Context) (int64, error)
		Delete(ctx context.Context, member *entities.Member) error
	}

	memberRepository struct {
		db *gorm.DB
	}
)

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) WithTx(tx *gorm.DB) MemberRepository {
	return &memberRepository{db: tx}
}

func (r *memberRepository) Save(ctx context.Context, member *entities.Member) error {
	return r.db.WithContext(ctx).Save(member).Error
}

func (r *memberRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Member, error) {
	var member entities.Member
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) FindMembers(ctx context.Context, page, size int) ([]*entities.Member, int64, error) {
	var members []*entities.Member
	var count int64

	offset := (page - 1) * size

	if err := r.db.WithContext(ctx).Model(&entities.Member{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Offset(offset).Limit(size).
		Order("created_at asc").
		Find(&members).Error; err != nil {
		return nil, 0, err
	}

	return members, count, nil
}

func (r *memberRepository) FindMonitoredMembers(ctx context.Context) ([]*entities.Member, error) {
	var members []*entities.Member
	if err := r.db.WithContext(ctx).
		Where("is_monitored = ?", true).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *memberRepository) CountMembers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Member{}).Count(&count).Error
	return count, err
}

func (r *memberRepository) Delete(ctx context.Context, member *entities.Member) error {
	return r.db.WithContext(ctx).Delete(member).Error
}
