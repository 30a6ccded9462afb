package command

import (
	"context"
	"fmt"

	"github.com/tansu/stockroom/internal/inventory/domain"
)

// DeleteItemCommand represents the command to delete an item
type DeleteItemCommand struct {
	ItemID uint
}

// DeleteItemHandler handles delete item command
type DeleteItemHandler struct {
	repo domain.ItemRepository
}

// NewDeleteItemHandler creates a new delete item handler
func NewDeleteItemHandler(repo domain.ItemRepository) *DeleteItemHandler {
	return &DeleteItemHandler{repo: repo}
}

// Handle executes the delete item command. Deletion fails with
// ErrConstraintViolation while borrow requests still reference the item.
func (h *DeleteItemHandler) Handle(ctx context.Context, cmd DeleteItemCommand) error {
	if cmd.ItemID == 0 {
		return fmt.Errorf("item_id is required")
	}
	return h.repo.Delete(ctx, cmd.ItemID)
}
