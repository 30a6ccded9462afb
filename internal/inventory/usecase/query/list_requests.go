package query

import (
	"context"

	"github.com/tansu/stockroom/internal/inventory/domain"
)

// ListRequestsQuery represents the query to list borrow requests,
// optionally filtered by status.
type ListRequestsQuery struct {
	Actor  domain.Actor
	Status string
	Limit  int
	Offset int
}

// ListRequestsHandler handles list requests query
type ListRequestsHandler struct {
	repo domain.BorrowRequestRepository
}

// NewListRequestsHandler creates a new list requests handler
func NewListRequestsHandler(repo domain.BorrowRequestRepository) *ListRequestsHandler {
	return &ListRequestsHandler{repo: repo}
}

// Handle executes the list requests query. Admins see all requests;
// employees see only their own. Rows come back joined with the item
// name and image so clients need no follow-up item lookups.
func (h *ListRequestsHandler) Handle(ctx context.Context, q ListRequestsQuery) ([]domain.BorrowRequestDetail, error) {
	if q.Status != "" && !domain.ValidStatus(q.Status) {
		return nil, domain.ErrInvalidStatus
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}

	if q.Actor.IsAdmin() {
		return h.repo.FindAll(ctx, q.Status, limit, q.Offset)
	}
	return h.repo.FindByUserID(ctx, q.Actor.ID, q.Status, limit, q.Offset)
}
