package command

import (
	"fmt"
	"time"

	"github.com/tansu/stockroom/internal/user/domain"
	"github.com/tansu/stockroom/pkg/auth"
)

// UpdateUserCommand represents the command to update a user's profile
type UpdateUserCommand struct {
	ID       uint
	Email    string
	FullName string
	Password string // Optional, only updated when non-empty
}

// UpdateUserHandler handles user update command
type UpdateUserHandler struct {
	repo domain.UserRepository
}

// NewUpdateUserHandler creates a new update user handler
func NewUpdateUserHandler(repo domain.UserRepository) *UpdateUserHandler {
	return &UpdateUserHandler{repo: repo}
}

// Handle executes the update user command
func (h *UpdateUserHandler) Handle(cmd UpdateUserCommand) (*domain.User, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("invalid user id")
	}

	user, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}

	if cmd.Email != "" && cmd.Email != user.Email {
		if existing, _ := h.repo.FindByEmail(cmd.Email); existing != nil {
			return nil, fmt.Errorf("email already exists")
		}
		user.Email = cmd.Email
	}
	if cmd.FullName != "" {
		user.FullName = cmd.FullName
	}
	if cmd.Password != "" {
		if len(cmd.Password) < 6 {
			return nil, fmt.Errorf("password must be at least 6 characters")
		}
		hashed, err := auth.HashPassword(cmd.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = hashed
	}

	user.UpdatedAt = time.Now()

	if err := h.repo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}
