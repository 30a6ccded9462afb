package command

import (
	"context"
	"fmt"
	"time"

	"github.com/tansu/stockroom/internal/inventory/domain"
	"github.com/tansu/stockroom/kafka"
	"github.com/tansu/stockroom/pkg/logger"
)

// CreateRequestCommand represents an employee's request to borrow units
// of an item.
type CreateRequestCommand struct {
	UserID             uint
	ItemID             uint
	Quantity           int
	ExpectedReturnDate *time.Time
}

// CreateRequestHandler handles create borrow request command
type CreateRequestHandler struct {
	requests  domain.BorrowRequestRepository
	items     domain.ItemRepository
	publisher *kafka.Publisher
}

// NewCreateRequestHandler creates a new create request handler
func NewCreateRequestHandler(requests domain.BorrowRequestRepository, items domain.ItemRepository, publisher *kafka.Publisher) *CreateRequestHandler {
	return &CreateRequestHandler{requests: requests, items: items, publisher: publisher}
}

// Handle executes the create request command. The stock check here is
// advisory only: it can race with a concurrent approval of another
// request for the same item. The binding reservation happens at
// approval time inside the ledger transaction, so the race is accepted.
func (h *CreateRequestHandler) Handle(ctx context.Context, cmd CreateRequestCommand) (*domain.BorrowRequest, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("user_id is required")
	}
	if cmd.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}

	item, err := h.items.FindByID(ctx, cmd.ItemID)
	if err != nil {
		return nil, err
	}

	if cmd.Quantity > item.AvailableQuantity {
		return nil, domain.ErrInsufficientStock
	}

	now := time.Now()
	if cmd.ExpectedReturnDate != nil && cmd.ExpectedReturnDate.Before(now.Truncate(24*time.Hour)) {
		return nil, fmt.Errorf("expected return date cannot be in the past")
	}

	request := &domain.BorrowRequest{
		UserID:             cmd.UserID,
		ItemID:             cmd.ItemID,
		QuantityRequested:  cmd.Quantity,
		Status:             domain.StatusPending,
		RequestDate:        now,
		ExpectedReturnDate: cmd.ExpectedReturnDate,
	}

	// No stock is deducted at creation.
	if err := h.requests.Create(ctx, request); err != nil {
		return nil, err
	}

	if h.publisher != nil {
		event := kafka.BorrowRequestedEvent{
			RequestID: request.ID,
			ItemID:    request.ItemID,
			UserID:    request.UserID,
			Quantity:  int32(request.QuantityRequested),
		}
		if err := h.publisher.PublishBorrowRequested(ctx, event); err != nil {
			logger.Error(ctx).
				Err(err).
				Uint("request_id", request.ID).
				Msg("Failed to publish borrow requested event")
		}
	}

	return request, nil
}
