package models

import (
	"rentabarrio/src/types"
	"time"
)

type Reservation struct {
	ID       uint       `gorm:"primarykey" json:"id"`
	SpaceID  uint       `json:"space_id,omitempty"`
	UserID   uint       `json:"user_id,omitempty"`
	StartsAt *time.Time `json:"starts_at,omitempty"`
	Hours    uint       `json:"hours,omitempty"`
	Status   string     `gorm:"default:'requested'" json:"status,omitempty"`

	Space *Space `gorm:"foreignKey:space_id" json:"space,omitempty"`
	User  *User  `gorm:"foreignKey:user_id" json:"-"`

	types.Timestamps
}
