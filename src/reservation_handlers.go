package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"rentabarrio/src/config"
	"rentabarrio/src/db"
	"rentabarrio/src/models"
	"rentabarrio/src/types"
	"rentabarrio/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func reservationHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/reservations", func(ctx *gin.Context) {
			var body types.CreateReservationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			startsAt, err := time.Parse(config.TIME_PARSE_FORMAT, body.StartsAt)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var space models.Space
			var reservation models.Reservation
			err = db.Transaction(func(tx *gorm.DB) error {
				if err := tx.
					Where(&models.Space{ID: body.SpaceID}).
					First(&space).
					Error; err != nil {
					return err
				}
				if space.Status != types.SPACE_OPEN {
					return errors.New("space is not open for rental")
				}
				reservation = models.Reservation{
					SpaceID:  space.ID,
					UserID:   userId,
					StartsAt: &startsAt,
					Hours:    body.Hours,
					Status:   string(types.RESERVATION_REQUESTED),
				}
				if err := tx.Create(&reservation).Error; err != nil {
					return err
				}
				return nil
			})
			if err != nil {
				log.Printf("Error creating Reservation: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			amount := space.HourlyRate * int64(body.Hours)
			description := fmt.Sprintf("Pago arriendo %s", space.Name)
			order, session, err := utils.CreateRentalOrder(ctx.Request.Context(), userId, reservation.ID, amount, description)
			if err != nil {
				log.Printf("Error creating PaymentOrder for Reservation [%d]: %s\n", reservation.ID, err.Error())
				ctx.JSON(http.StatusBadGateway, gin.H{"error": "could not start payment for reservation"})
				return
			}

			log.Printf("Order [%d] opened Webpay session with buy_order [%s]\n", order.ID, order.BuyOrder)
			ctx.JSON(http.StatusOK, gin.H{
				"url":   session.URL,
				"token": session.Token,
				"data":  order,
			})
		}).
		GET("/reservations", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var reservations []models.Reservation
			if err := db.
				Model(&models.Reservation{}).
				Where(&models.Reservation{UserID: userId}).
				Preload("Space").
				Order("created_at desc").
				Find(&reservations).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": reservations, "count": len(reservations)})
		}).
		GET("/reservations/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var reservation models.Reservation
			if err := db.
				Model(&models.Reservation{}).
				Where(&models.Reservation{ID: params.ID, UserID: userId}).
				Preload("Space").
				First(&reservation).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": reservation})
		})
	return g
}
