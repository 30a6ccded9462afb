package command

import (
	"context"
	"fmt"
	"time"

	"github.com/tansu/stockroom/internal/inventory/domain"
	"github.com/tansu/stockroom/kafka"
	"github.com/tansu/stockroom/pkg/logger"
)

// TransitionRequestCommand represents a lifecycle transition of a
// borrow request.
type TransitionRequestCommand struct {
	RequestID        uint
	TargetStatus     string
	Actor            domain.Actor
	AdminRemarks     *string
	ActualReturnDate *time.Time
}

// TransitionRequestHandler handles transition request command
type TransitionRequestHandler struct {
	requests  domain.BorrowRequestRepository
	publisher *kafka.Publisher
}

// NewTransitionRequestHandler creates a new transition request handler
func NewTransitionRequestHandler(requests domain.BorrowRequestRepository, publisher *kafka.Publisher) *TransitionRequestHandler {
	return &TransitionRequestHandler{requests: requests, publisher: publisher}
}

// Handle executes the transition. Validation order: unknown target
// status first, then everything stateful (missing request, no-op,
// authorization, illegal transition, stock effects) inside the
// repository transaction. Authorization happens under the request row
// lock so a concurrent approval cannot slip between an ownership check
// here and the transition itself.
func (h *TransitionRequestHandler) Handle(ctx context.Context, cmd TransitionRequestCommand) (*domain.BorrowRequest, error) {
	if cmd.RequestID == 0 {
		return nil, fmt.Errorf("request_id is required")
	}
	if !domain.ValidStatus(cmd.TargetStatus) {
		return nil, domain.ErrInvalidStatus
	}

	request, err := h.requests.Transition(ctx, cmd.RequestID, domain.TransitionInput{
		TargetStatus:     cmd.TargetStatus,
		Actor:            cmd.Actor,
		AdminRemarks:     cmd.AdminRemarks,
		ActualReturnDate: cmd.ActualReturnDate,
	})
	if err != nil {
		return nil, err
	}

	// Best-effort event publish after commit; a broker outage must not
	// fail an already-committed transition.
	if h.publisher != nil {
		event := kafka.BorrowTransitionedEvent{
			RequestID: request.ID,
			ItemID:    request.ItemID,
			UserID:    request.UserID,
			Quantity:  int32(request.QuantityRequested),
			NewStatus: request.Status,
			ActorID:   cmd.Actor.ID,
		}
		if err := h.publisher.PublishBorrowTransitioned(ctx, event); err != nil {
			logger.Error(ctx).
				Err(err).
				Uint("request_id", request.ID).
				Str("status", request.Status).
				Msg("Failed to publish borrow transitioned event")
		}
	}

	return request, nil
}
