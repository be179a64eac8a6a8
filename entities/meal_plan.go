package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ServingBreakfast = 0
	ServingLunch     = 1
	ServingDinner    = 2
)

type Meal struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primary_key" json:"id"`
	MemberID    uuid.UUID                   `gorm:"type:uuid;not null;index" json:"member_id"`
	ServingDate time.Time                   `gorm:"not null" json:"serving_date"`
	ServingTime int                         `gorm:"not null" json:"serving_time"`
	Menu        datatypes.JSONSlice[string] `json:"menu"`
	IsServed    bool                        `gorm:"not null;default:false" json:"is_served"`

	Member *Member `gorm:"foreignKey:MemberID" json:"-"`
	Timestamp
}
