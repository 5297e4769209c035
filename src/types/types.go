package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type OrderStatus string

const (
	ORDER_PENDING  OrderStatus = "pending"
	ORDER_PAID     OrderStatus = "paid"
	ORDER_REJECTED OrderStatus = "rejected"
)

type SpaceStatus string

const (
	SPACE_OPEN   SpaceStatus = "open"
	SPACE_CLOSED SpaceStatus = "closed"
)

type ReservationStatus string

const (
	RESERVATION_REQUESTED ReservationStatus = "requested"
	RESERVATION_CONFIRMED ReservationStatus = "confirmed"
	RESERVATION_REJECTED  ReservationStatus = "rejected"
)

// WEBPAY_AUTHORIZED The only gateway status literal that maps to ORDER_PAID.
// Every other value, including a missing status, maps to ORDER_REJECTED.
const WEBPAY_AUTHORIZED = "AUTHORIZED"

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type CreateReservationRequestBody struct {
	SpaceID  uint   `json:"space_id" binding:"required"`
	StartsAt string `json:"starts_at" binding:"required,bookabledate" time_format:"2006-01-02 15:04:05 -07:00"`
	Hours    uint   `json:"hours" binding:"required,gt=0"`
}

type ConfirmPaymentRequestBody struct {
	TokenWS string `json:"token_ws" binding:"required"`
}

// PaymentConfirmation Gateway-side result of a commit call plus the derived
// internal order status ("estado"). Shaped for direct rendering by the app.
type PaymentConfirmation struct {
	Status            string      `json:"status"`
	AuthorizationCode string      `json:"authorization_code,omitempty"`
	PaymentTypeCode   string      `json:"payment_type_code,omitempty"`
	Amount            int64       `json:"amount"`
	BuyOrder          string      `json:"buy_order,omitempty"`
	Estado            OrderStatus `json:"estado"`
}

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	UID      string `json:"uid"`
	jwt.RegisteredClaims
}
