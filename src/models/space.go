package models

import "rentabarrio/src/types"

type Space struct {
	ID         uint              `gorm:"primarykey" json:"id"`
	Name       string            `json:"name,omitempty"`
	About      *string           `json:"about,omitempty"`
	Location   string            `json:"location,omitempty"`
	Capacity   uint              `json:"capacity,omitempty"`
	HourlyRate int64             `json:"hourly_rate,omitempty"`
	Status     types.SpaceStatus `gorm:"default:'open'" json:"status,omitempty"`

	types.Timestamps
}
