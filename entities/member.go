package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Member struct {
	ID               uuid.UUID                   `gorm:"type:uuid;primary_key" json:"member_id"`
	Name             string                      `gorm:"type:text;not null" json:"name"`
	Birth            *time.Time                  `json:"birth,omitempty"`
	Age              int                         `json:"age"`
	ImagePath        string                      `gorm:"type:text" json:"image_path,omitempty"`
	Color            string                      `gorm:"type:text;not null;default:normal" json:"color"`
	FontSize         string                      `gorm:"type:text;not null;default:medium" json:"font_size"`
	PreferredFoods   datatypes.JSONSlice[string] `json:"preferred_foods"`
	DislikedFoods    datatypes.JSONSlice[string] `json:"disliked_foods"`
	Allergies        datatypes.JSONSlice[string] `json:"allergies"`
	Diseases         datatypes.JSONSlice[string] `json:"diseases"`
	IsRegistered     bool                        `gorm:"not null;default:false" json:"is_registered"`
	IsMonitored      bool                        `gorm:"not null;default:false" json:"is_monitored"`
	RecognitionTimes int                         `gorm:"not null;default:0" json:"recognition_times"`
	LastLoginAt      time.Time                   `json:"last_login_at"`

	Timestamp
}
