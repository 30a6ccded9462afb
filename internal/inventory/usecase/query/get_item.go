package query

import (
	"context"
	"fmt"

	"github.com/tansu/stockroom/internal/inventory/domain"
)

// GetItemQuery represents the query to get an item by ID
type GetItemQuery struct {
	ItemID uint
}

// GetItemHandler handles get item query
type GetItemHandler struct {
	repo domain.ItemRepository
}

// NewGetItemHandler creates a new get item handler
func NewGetItemHandler(repo domain.ItemRepository) *GetItemHandler {
	return &GetItemHandler{repo: repo}
}

// Handle executes the get item query
func (h *GetItemHandler) Handle(ctx context.Context, q GetItemQuery) (*domain.Item, error) {
	if q.ItemID == 0 {
		return nil, fmt.Errorf("item_id is required")
	}
	return h.repo.FindByID(ctx, q.ItemID)
}
