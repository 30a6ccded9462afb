package command

import (
	"context"
	"fmt"

	"github.com/tansu/stockroom/internal/inventory/domain"
)

// AdjustStockCommand represents a direct stock ledger adjustment, used
// by item-edit flows outside the borrow lifecycle. Positive delta
// releases stock, negative delta reserves it.
type AdjustStockCommand struct {
	ItemID uint
	Delta  int
}

// AdjustStockHandler handles adjust stock command
type AdjustStockHandler struct {
	repo domain.ItemRepository
}

// NewAdjustStockHandler creates a new adjust stock handler
func NewAdjustStockHandler(repo domain.ItemRepository) *AdjustStockHandler {
	return &AdjustStockHandler{repo: repo}
}

// Handle executes the adjust stock command
func (h *AdjustStockHandler) Handle(ctx context.Context, cmd AdjustStockCommand) error {
	if cmd.ItemID == 0 {
		return fmt.Errorf("item_id is required")
	}
	if cmd.Delta == 0 {
		return fmt.Errorf("delta cannot be zero")
	}
	return h.repo.AdjustStock(ctx, cmd.ItemID, cmd.Delta)
}
