package models

import (
	"rentabarrio/src/types"
)

type User struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `gorm:"uniqueIndex" json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	UID   string `json:"uid,omitempty"`
	Unit  string `json:"unit,omitempty"`

	Orders []PaymentOrder `gorm:"foreignKey:user_id" json:"orders,omitempty"`

	types.Timestamps
}
