package query

import (
	"context"

	"github.com/tansu/stockroom/internal/inventory/domain"
)

// ListItemsQuery represents the query to list items with pagination
type ListItemsQuery struct {
	Limit  int
	Offset int
}

// ListItemsHandler handles list items query
type ListItemsHandler struct {
	repo domain.ItemRepository
}

// NewListItemsHandler creates a new list items handler
func NewListItemsHandler(repo domain.ItemRepository) *ListItemsHandler {
	return &ListItemsHandler{repo: repo}
}

// Handle executes the list items query
func (h *ListItemsHandler) Handle(ctx context.Context, q ListItemsQuery) ([]domain.Item, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}
	return h.repo.FindAll(ctx, limit, q.Offset)
}
