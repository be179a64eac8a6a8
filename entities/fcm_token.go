package entities

import (
	"github.com/google/uuid"
)

type FCMToken struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	MemberID uuid.UUID `gorm:"type:uuid;not null;index" json:"member_id"`
	Token    string    `gorm:"type:text;not null;uniqueIndex" json:"token"`

	Timestamp
}
