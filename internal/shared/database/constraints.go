package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the checks and indexes AutoMigrate cannot express.
func MigrateConstraints(db *gorm.DB) error {
	statements := []string{
		// An order's total is always the quoted subtotal plus both fees.
		`ALTER TABLE orders DROP CONSTRAINT IF EXISTS chk_orders_total`,
		`ALTER TABLE orders ADD CONSTRAINT chk_orders_total
			CHECK (total = subtotal + service_fee + processing_fee)`,

		// Order history is listed per session, newest first.
		`CREATE INDEX IF NOT EXISTS idx_orders_session_created
			ON orders (session_id, created_at DESC)`,

		`CREATE INDEX IF NOT EXISTS idx_order_items_event_id
			ON order_items (event_id)`,

		`CREATE INDEX IF NOT EXISTS idx_catalog_ticket_types_event_position
			ON catalog_ticket_types (event_id, position)`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
