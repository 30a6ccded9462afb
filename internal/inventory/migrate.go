package inventory

import (
	"gorm.io/gorm"

	"github.com/tansu/stockroom/internal/inventory/repository"
)

// AutoMigrate runs the database migrations for the inventory service.
func AutoMigrate(db *gorm.DB) error {
	return repository.NewGormItemRepository(db).AutoMigrate()
}
