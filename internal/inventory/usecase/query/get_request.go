package query

import (
	"context"
	"fmt"

	"github.com/tansu/stockroom/internal/inventory/domain"
)

// GetRequestQuery represents the query to get a borrow request by ID
type GetRequestQuery struct {
	RequestID uint
	Actor     domain.Actor
}

// GetRequestHandler handles get request query
type GetRequestHandler struct {
	repo domain.BorrowRequestRepository
}

// NewGetRequestHandler creates a new get request handler
func NewGetRequestHandler(repo domain.BorrowRequestRepository) *GetRequestHandler {
	return &GetRequestHandler{repo: repo}
}

// Handle executes the get request query. Employees may only read their
// own requests; admins may read any.
func (h *GetRequestHandler) Handle(ctx context.Context, q GetRequestQuery) (*domain.BorrowRequestDetail, error) {
	if q.RequestID == 0 {
		return nil, fmt.Errorf("request_id is required")
	}

	request, err := h.repo.FindDetailByID(ctx, q.RequestID)
	if err != nil {
		return nil, err
	}

	if !q.Actor.IsAdmin() && request.UserID != q.Actor.ID {
		return nil, domain.ErrRequestNotFound
	}

	return request, nil
}
