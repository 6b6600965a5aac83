package command

import (
	"fmt"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/user/domain"
)

// UpdateUserCommand represents the command to update a user's own profile.
// Nil fields are left unchanged.
type UpdateUserCommand struct {
	ID      uint
	Email   *string
	Address *string
	Phone   *string
	Tier    *string
}

// UpdateUserHandler handles user profile update command
type UpdateUserHandler struct {
	repo domain.UserRepository
}

// NewUpdateUserHandler creates a new update user handler
func NewUpdateUserHandler(repo domain.UserRepository) *UpdateUserHandler {
	return &UpdateUserHandler{repo: repo}
}

// Handle executes the update user command
func (h *UpdateUserHandler) Handle(cmd UpdateUserCommand) (*domain.User, error) {
	user, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, apperrors.NotFoundf("user %d not found", cmd.ID)
	}

	if cmd.Email != nil && *cmd.Email != user.Email {
		if existing, _ := h.repo.FindByEmail(*cmd.Email); existing != nil {
			return nil, apperrors.Conflictf("email already exists")
		}
		user.Email = *cmd.Email
	}
	if cmd.Address != nil {
		user.Address = *cmd.Address
	}
	if cmd.Phone != nil {
		user.PhoneNumber = *cmd.Phone
	}
	if cmd.Tier != nil {
		if !domain.ValidTier(*cmd.Tier) {
			return nil, apperrors.Validationf("invalid membership tier")
		}
		user.MembershipTier = *cmd.Tier
	}

	if err := h.repo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}
