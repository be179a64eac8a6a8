package entities

import (
	"github.com/google/uuid"
)

// Alert is a derived risk comment, at most one per (member, ingredient) pair.
// The composite primary key backs the insert-or-ignore dedup in the alert
// repository.
type Alert struct {
	MemberID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"member_id"`
	IngredientID uuid.UUID `gorm:"type:uuid;primaryKey" json:"ingredient_id"`
	Comment      string    `gorm:"type:text;not null" json:"comment"`
	IsDanger     bool      `gorm:"not null;default:false" json:"is_danger"`

	Timestamp
}
