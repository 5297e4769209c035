package boot

import (
	"log"

	"rentabarrio/src/db"
	"rentabarrio/src/models"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Space{},
		&models.Reservation{},
		&models.PaymentOrder{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}
