package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"rentabarrio/src/db"
	"rentabarrio/src/lib"
	"rentabarrio/src/models"
	"rentabarrio/src/types"

	"github.com/gin-gonic/gin"
)

func orderHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/orders", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var orders []models.PaymentOrder
			if err := db.
				Model(&models.PaymentOrder{}).
				Where(&models.PaymentOrder{UserID: userId}).
				Order("created_at desc").
				Find(&orders).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": orders, "count": len(orders)})
		}).
		GET("/orders/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var order models.PaymentOrder
			if err := db.
				Model(&models.PaymentOrder{}).
				Where(&models.PaymentOrder{ID: params.ID, UserID: userId}).
				Preload("Reservation").
				First(&order).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			// The row can lag behind a confirmation whose write was dropped
			// best-effort; the cached estado covers that window for polling
			// clients without mutating the audit trail.
			estado := order.Status
			if order.Status == types.ORDER_PENDING && order.Token != nil {
				if rd := lib.GetRedisClient(); rd != nil {
					key := fmt.Sprintf("webpay:%s:estado", *order.Token)
					if cached, err := rd.Get(context.Background(), key).Result(); err == nil && cached != "" {
						log.Printf("Order [%d] estado served from cache: %s\n", order.ID, cached)
						estado = types.OrderStatus(cached)
					}
				}
			}
			ctx.JSON(http.StatusOK, gin.H{"data": order, "estado": estado})
		})
	return g
}
