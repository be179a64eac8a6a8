package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Ingredient is a row of currently stocked inventory. Outbound hard-deletes the
// row; history survives only in IngredientLog.
type Ingredient struct {
	ID              uuid.UUID                    `gorm:"type:uuid;primary_key" json:"id"`
	Name            string                       `gorm:"type:text;not null" json:"name"`
	ImagePath       string                       `gorm:"type:text;not null" json:"image_path"`
	MemberID        uuid.UUID                    `gorm:"type:uuid;not null;index" json:"member_id"`
	InboundAt       time.Time                    `gorm:"not null" json:"inbound_at"`
	ExpirationAt    *time.Time                   `json:"expiration_at,omitempty"`
	EmbeddingVector datatypes.JSONSlice[float32] `json:"-"`

	Member *Member `gorm:"foreignKey:MemberID" json:"-"`
}
