package command

import (
	"context"
	"fmt"

	"github.com/tansu/stockroom/internal/inventory/domain"
)

// CreateItemCommand represents the command to add an inventory item
type CreateItemCommand struct {
	Name          string
	Description   string
	ImageURL      string
	TotalQuantity int
}

// CreateItemHandler handles create item command
type CreateItemHandler struct {
	repo domain.ItemRepository
}

// NewCreateItemHandler creates a new create item handler
func NewCreateItemHandler(repo domain.ItemRepository) *CreateItemHandler {
	return &CreateItemHandler{repo: repo}
}

// Handle executes the create item command. A new item starts with all
// units available.
func (h *CreateItemHandler) Handle(ctx context.Context, cmd CreateItemCommand) (*domain.Item, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if cmd.TotalQuantity < 0 {
		return nil, fmt.Errorf("total quantity cannot be negative")
	}

	item := &domain.Item{
		Name:              cmd.Name,
		Description:       cmd.Description,
		ImageURL:          cmd.ImageURL,
		TotalQuantity:     cmd.TotalQuantity,
		AvailableQuantity: cmd.TotalQuantity,
	}

	if err := h.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return item, nil
}
