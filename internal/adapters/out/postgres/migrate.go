package postgres

import (
	"fmt"

	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/outboxrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the delivery schema.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&courierrepo.CourierDTO{},
		&courierrepo.StoragePlaceDTO{},
		&orderrepo.OrderDTO{},
		&outboxrepo.MessageDTO{},
	)
	if err != nil {
		return fmt.Errorf("migrate delivery schema: %w", err)
	}

	return nil
}
