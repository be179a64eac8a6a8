package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	MovementInbound  = "INBOUND"
	MovementOutbound = "OUTBOUND"
)

// IngredientLog is an append-only movement record. Name and image are
// denormalized snapshots so the row stays meaningful after the ingredient is
// deleted on outbound. Immutable except for the async embedding patch.
type IngredientLog struct {
	ID                  uuid.UUID                    `gorm:"type:uuid;primary_key" json:"id"`
	IngredientName      string                       `gorm:"type:text;not null" json:"ingredient_name"`
	IngredientImagePath string                       `gorm:"type:text;not null" json:"ingredient_image_path"`
	MemberID            uuid.UUID                    `gorm:"type:uuid;not null;index" json:"member_id"`
	MovementType        string                       `gorm:"type:text;not null" json:"movement_type"`
	CreatedAt           time.Time                    `gorm:"not null" json:"created_at"`
	EmbeddingVector     datatypes.JSONSlice[float32] `json:"-"`
}
