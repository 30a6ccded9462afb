//go:build wireinject
// +build wireinject

package inventory

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tansu/stockroom/internal/inventory/delivery/http"
	"github.com/tansu/stockroom/internal/inventory/domain"
	"github.com/tansu/stockroom/internal/inventory/repository"
	"github.com/tansu/stockroom/kafka"
)

// ProvideItemRepository provides the item repository wrapped with tracing
func ProvideItemRepository(db *gorm.DB) domain.ItemRepository {
	return repository.NewTracingItemRepository(repository.NewGormItemRepository(db))
}

// ProvideBorrowRequestRepository provides the borrow request repository wrapped with tracing
func ProvideBorrowRequestRepository(db *gorm.DB) domain.BorrowRequestRepository {
	return repository.NewTracingBorrowRequestRepository(repository.NewGormBorrowRequestRepository(db))
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideItemRepository,
	ProvideBorrowRequestRepository,
)

// InitializeItemHandler initializes the item HTTP handler with all dependencies
func InitializeItemHandler(db *gorm.DB) (*http.ItemHandler, error) {
	wire.Build(
		ProvideItemRepository,
		http.NewItemHandler,
	)
	return nil, nil
}

// InitializeBorrowHandler initializes the borrow request HTTP handler with all dependencies
func InitializeBorrowHandler(db *gorm.DB, publisher *kafka.Publisher) (*http.BorrowHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewBorrowHandler,
	)
	return nil, nil
}
