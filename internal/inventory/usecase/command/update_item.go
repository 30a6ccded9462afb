package command

import (
	"context"
	"fmt"

	"github.com/tansu/stockroom/internal/inventory/domain"
)

// UpdateItemCommand represents an admin edit of an item record. Both
// quantity fields are reset together and must satisfy the invariant
// 0 <= available <= total.
type UpdateItemCommand struct {
	ItemID            uint
	Name              string
	Description       string
	ImageURL          string
	TotalQuantity     int
	AvailableQuantity int
}

// UpdateItemHandler handles update item command
type UpdateItemHandler struct {
	repo domain.ItemRepository
}

// NewUpdateItemHandler creates a new update item handler
func NewUpdateItemHandler(repo domain.ItemRepository) *UpdateItemHandler {
	return &UpdateItemHandler{repo: repo}
}

// Handle executes the update item command
func (h *UpdateItemHandler) Handle(ctx context.Context, cmd UpdateItemCommand) (*domain.Item, error) {
	if cmd.ItemID == 0 {
		return nil, fmt.Errorf("item_id is required")
	}
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	item := &domain.Item{
		ID:                cmd.ItemID,
		Name:              cmd.Name,
		Description:       cmd.Description,
		ImageURL:          cmd.ImageURL,
		TotalQuantity:     cmd.TotalQuantity,
		AvailableQuantity: cmd.AvailableQuantity,
	}
	if !item.QuantitiesValid() {
		return nil, domain.ErrConstraintViolation
	}

	if err := h.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}
