package utils

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"time"

	"rentabarrio/src/config"
	"rentabarrio/src/db"
	"rentabarrio/src/lib"
	"rentabarrio/src/models"
	"rentabarrio/src/types"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var ErrInvalidAmount = errors.New("amount must be a positive integer")

var sessionIDPattern = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// SanitizeSessionID Webpay only accepts session ids made of [A-Za-z0-9_-],
// at most 61 characters. Diacritics, spaces and punctuation are stripped.
func SanitizeSessionID(s string) string {
	out := slug.Make(s)
	out = sessionIDPattern.ReplaceAllString(out, "")
	if len(out) > config.SESSION_ID_MAX_LEN {
		out = out[:config.SESSION_ID_MAX_LEN]
	}
	return out
}

// BuildBuyOrder Gateway-side order identifier, unique per order, at most 26
// characters. Distinct from the internal order id.
func BuildBuyOrder(orderID uint) string {
	buyOrder := fmt.Sprintf("RB-%d-%d", orderID, time.Now().Unix())
	if len(buyOrder) > config.BUY_ORDER_MAX_LEN {
		buyOrder = buyOrder[:config.BUY_ORDER_MAX_LEN]
	}
	return buyOrder
}

// CreateRentalOrder Persists a pending PaymentOrder and opens a Webpay session
// for it. The order row is written before the gateway is contacted; when the
// write fails the gateway is never called. The returned token is stored
// against the order and is the join key used later during confirmation.
func CreateRentalOrder(ctx context.Context, userID uint, reservationID uint, amount int64, description string) (*models.PaymentOrder, *lib.WebpayCreateResponse, error) {
	if amount <= 0 {
		return nil, nil, ErrInvalidAmount
	}
	order := models.PaymentOrder{
		UserID:        userID,
		ReservationID: reservationID,
		Amount:        amount,
		Status:        types.ORDER_PENDING,
		SessionID:     SanitizeSessionID(description),
		ReferenceID:   uuid.New(),
		Metadata:      types.JSONB{"descripcion": description},
	}
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		order.BuyOrder = BuildBuyOrder(order.ID)
		if err := tx.
			Model(&models.PaymentOrder{}).
			Where("id = ?", order.ID).
			Update("buy_order", order.BuyOrder).
			Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		log.Printf("Error while creating PaymentOrder: %s\n", err.Error())
		return nil, nil, fmt.Errorf("could not persist order: %w", err)
	}

	wc := lib.GetWebpayClient()
	session, err := wc.CreateTransaction(ctx, &lib.WebpayCreateRequest{
		BuyOrder:  order.BuyOrder,
		SessionID: order.SessionID,
		Amount:    order.Amount,
		ReturnURL: config.WebpayReturnURL(),
	})
	if err != nil {
		log.Printf("Webpay rejected order [%d]: %s\n", order.ID, err.Error())
		return &order, nil, err
	}

	if err := db.
		Model(&models.PaymentOrder{}).
		Where("id = ? AND token IS NULL", order.ID).
		Update("token", session.Token).
		Error; err != nil {
		log.Printf("Error storing token for order [%d]: %s\n", order.ID, err.Error())
		return &order, nil, fmt.Errorf("could not persist order token: %w", err)
	}
	order.Token = &session.Token

	return &order, session, nil
}

// ConfirmOrderPayment Resolves a transaction token into the final
// authorization outcome and makes it durable. The gateway's answer is
// authoritative: a literal AUTHORIZED maps to paid, everything else to
// rejected. The order update is best-effort; a missing or failing row never
// hides the gateway-side result from the caller.
func ConfirmOrderPayment(ctx context.Context, token string) (*types.PaymentConfirmation, error) {
	if token == "" {
		return nil, errors.New("missing transaction token")
	}
	wc := lib.GetWebpayClient()
	result, err := wc.CommitTransaction(ctx, token)
	if err != nil {
		return nil, err
	}
	estado := types.ORDER_REJECTED
	if result.Status == types.WEBPAY_AUTHORIZED {
		estado = types.ORDER_PAID
	}

	if err := persistConfirmation(token, result, estado); err != nil {
		log.Printf("Warning: could not update order for token [%s]: %s\n", token, err.Error())
	}

	go cacheConfirmation(token, estado)

	return &types.PaymentConfirmation{
		Status:            result.Status,
		AuthorizationCode: result.AuthorizationCode,
		PaymentTypeCode:   result.PaymentTypeCode,
		Amount:            result.Amount,
		BuyOrder:          result.BuyOrder,
		Estado:            estado,
	}, nil
}

// persistConfirmation Only pending orders mutate, so repeated confirmations
// for one token settle on the same final state. The lookup retries a few
// times: under load the return callback can arrive before the order write is
// visible.
func persistConfirmation(token string, result *lib.WebpayCommitResponse, estado types.OrderStatus) error {
	db := db.GetDb()
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			time.Sleep(200 * time.Millisecond)
		}
		err = db.Transaction(func(tx *gorm.DB) error {
			var order models.PaymentOrder
			if err := tx.
				Model(&models.PaymentOrder{}).
				Where("token = ?", token).
				First(&order).
				Error; err != nil {
				return err
			}
			if err := tx.
				Model(&models.PaymentOrder{}).
				Where("token = ? AND status = ?", token, types.ORDER_PENDING).
				Updates(map[string]any{
					"status":       estado,
					"tbk_order_id": result.BuyOrder,
				}).
				Error; err != nil {
				return err
			}
			newStatus := types.RESERVATION_REJECTED
			if estado == types.ORDER_PAID {
				newStatus = types.RESERVATION_CONFIRMED
			}
			if err := tx.
				Model(&models.Reservation{}).
				Where("id = ? AND status = ?", order.ReservationID, types.RESERVATION_REQUESTED).
				Update("status", newStatus).
				Error; err != nil {
				return err
			}
			return nil
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	return err
}

func cacheConfirmation(token string, estado types.OrderStatus) {
	rd := lib.GetRedisClient()
	if rd == nil {
		return
	}
	key := fmt.Sprintf("webpay:%s:estado", token)
	if err := rd.SetEx(context.Background(), key, string(estado), time.Hour).Err(); err != nil {
		log.Printf("[redis] Error caching estado for token [%s]: %s\n", token, err.Error())
	}
}
