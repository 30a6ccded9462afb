package query

import (
	"fmt"

	"github.com/tansu/stockroom/internal/user/domain"
)

// ListUsersQuery represents the query to list users with optional role filter
type ListUsersQuery struct {
	Role   string
	Limit  int
	Offset int
}

// ListUsersHandler handles list users query
type ListUsersHandler struct {
	repo domain.UserRepository
}

// NewListUsersHandler creates a new list users handler
func NewListUsersHandler(repo domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{repo: repo}
}

// Handle executes the list users query
func (h *ListUsersHandler) Handle(query ListUsersQuery) ([]domain.User, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 10
	}

	if query.Role != "" {
		if !domain.ValidRole(query.Role) {
			return nil, fmt.Errorf("invalid role")
		}
		users, err := h.repo.FindByRole(query.Role, limit, query.Offset)
		if err != nil {
			return nil, fmt.Errorf("failed to list users by role: %w", err)
		}
		return users, nil
	}

	users, err := h.repo.FindAll(limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}
