package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Item represents a physical inventory item shared across the company.
// AvailableQuantity tracks units not currently lent out and is mutated
// only through the stock ledger or an admin edit that resets both
// quantity fields together.
type Item struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	Name              string         `json:"name" gorm:"not null"`
	Description       string         `json:"description"`
	ImageURL          string         `json:"image_url"`
	TotalQuantity     int            `json:"total_quantity" gorm:"not null;default:0"`
	AvailableQuantity int            `json:"available_quantity" gorm:"not null;default:0"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Item) TableName() string {
	return "items"
}

// QuantitiesValid reports whether the quantity invariant holds:
// 0 <= available <= total.
func (i *Item) QuantitiesValid() bool {
	return i.TotalQuantity >= 0 &&
		i.AvailableQuantity >= 0 &&
		i.AvailableQuantity <= i.TotalQuantity
}

// ItemRepository defines the contract for item data access.
// AdjustStock is the stock ledger: it applies delta to an item's
// available quantity under a row lock, positive delta releasing stock
// and negative delta reserving it.
type ItemRepository interface {
	Create(ctx context.Context, item *Item) error
	FindByID(ctx context.Context, id uint) (*Item, error)
	FindAll(ctx context.Context, limit, offset int) ([]Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id uint) error
	AdjustStock(ctx context.Context, id uint, delta int) error
}
