package models

import (
	"rentabarrio/src/types"

	"github.com/google/uuid"
)

// PaymentOrder One row per payment attempt against the gateway. Rows are
// never deleted; they stay behind as the audit trail of every rental charge.
type PaymentOrder struct {
	ID            uint              `gorm:"primarykey" json:"id"`
	UserID        uint              `json:"user_id,omitempty"`
	ReservationID uint              `json:"reservation_id,omitempty"`
	Amount        int64             `json:"amount,omitempty"`
	Status        types.OrderStatus `gorm:"default:'pending'" json:"status,omitempty"`
	BuyOrder      string            `json:"buy_order,omitempty"`
	SessionID     string            `json:"session_id,omitempty"`
	Token         *string           `gorm:"uniqueIndex" json:"-"`
	TbkOrderID    *string           `json:"tbk_order_id,omitempty"`
	ReferenceID   uuid.UUID         `gorm:"type:uuid" json:"reference_id,omitempty"`
	Metadata      types.JSONB       `gorm:"type:jsonb" json:"metadata,omitempty"`

	Reservation *Reservation `gorm:"foreignKey:reservation_id" json:"reservation,omitempty"`
	User        *User        `gorm:"foreignKey:user_id" json:"-"`

	types.Timestamps
}
