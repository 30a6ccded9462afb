package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tansu/stockroom/internal/inventory/domain"
)

type GormItemRepository struct {
	db *gorm.DB
}

func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

func (r *GormItemRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Item{}, &domain.BorrowRequest{})
}

func (r *GormItemRepository) Create(ctx context.Context, item *domain.Item) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return domain.NewStorageError("create item", err)
	}
	return nil
}

func (r *GormItemRepository) FindByID(ctx context.Context, id uint) (*domain.Item, error) {
	var item domain.Item
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, domain.NewStorageError("find item", err)
	}
	return &item, nil
}

func (r *GormItemRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Item, error) {
	var items []domain.Item
	query := r.db.WithContext(ctx).Order("name ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, domain.NewStorageError("list items", err)
	}
	return items, nil
}

// Update saves an admin edit of the item record. Both quantity fields
// are set together; the caller validates the invariant before this point.
func (r *GormItemRepository) Update(ctx context.Context, item *domain.Item) error {
	result := r.db.WithContext(ctx).Model(&domain.Item{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"name":               item.Name,
			"description":        item.Description,
			"image_url":          item.ImageURL,
			"total_quantity":     item.TotalQuantity,
			"available_quantity": item.AvailableQuantity,
		})
	if result.Error != nil {
		return domain.NewStorageError("update item", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// Delete removes an item. Deletion is rejected while any borrow request
// references the item, checked inside the same transaction that deletes.
func (r *GormItemRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.BorrowRequest{}).
			Where("item_id = ?", id).
			Count(&count).Error; err != nil {
			return domain.NewStorageError("count item references", err)
		}
		if count > 0 {
			return domain.ErrConstraintViolation
		}

		result := tx.Delete(&domain.Item{}, id)
		if result.Error != nil {
			return domain.NewStorageError("delete item", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrItemNotFound
		}
		return nil
	})
}

// AdjustStock is the stock ledger entry point used by item-edit flows.
// Positive delta releases stock, negative delta reserves it.
func (r *GormItemRepository) AdjustStock(ctx context.Context, id uint, delta int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return adjustStockLocked(tx, id, delta)
	})
}

// adjustStockLocked applies delta to an item's available quantity under a
// SELECT ... FOR UPDATE row lock. It must run inside a transaction so the
// read-check-write never interleaves with a concurrent adjustment of the
// same item. No mutation is applied on failure.
func adjustStockLocked(tx *gorm.DB, itemID uint, delta int) error {
	var item domain.Item
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrItemNotFound
		}
		return domain.NewStorageError("lock item", err)
	}

	newAvailable := item.AvailableQuantity + delta
	if newAvailable < 0 || newAvailable > item.TotalQuantity {
		return domain.ErrConstraintViolation
	}

	if err := tx.Model(&domain.Item{}).
		Where("id = ?", item.ID).
		Update("available_quantity", newAvailable).Error; err != nil {
		return domain.NewStorageError("adjust stock", err)
	}
	return nil
}
