package database

import (
	"gorm.io/gorm"

	"tvojakarta/internal/catalog"
	"tvojakarta/internal/orders"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&catalog.EventRow{},
		&catalog.TicketTypeRow{},
		&orders.Order{},
		&orders.OrderItem{},
	)
}
