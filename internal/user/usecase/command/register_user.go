package command

import (
	"fmt"

	"github.com/cedarmart/commerce/pkg/apperrors"
	"github.com/cedarmart/commerce/pkg/auth"

	"github.com/cedarmart/commerce/internal/user/domain"
)

// RegisterUserCommand represents the command to register a new user
type RegisterUserCommand struct {
	Username string
	Email    string
	Password string
	Address  string
	Phone    string
}

// RegisterUserHandler handles user registration command
type RegisterUserHandler struct {
	repo domain.UserRepository
}

// NewRegisterUserHandler creates a new register user handler
func NewRegisterUserHandler(repo domain.UserRepository) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

// Handle executes the register user command. New accounts always start as
// Customer in the Normal tier; role changes go through ChangeRoleHandler.
func (h *RegisterUserHandler) Handle(cmd RegisterUserCommand) (*domain.User, error) {
	if cmd.Username == "" {
		return nil, apperrors.Validationf("username is required")
	}
	if cmd.Email == "" {
		return nil, apperrors.Validationf("email is required")
	}
	if len(cmd.Password) < 8 {
		return nil, apperrors.Validationf("password must be at least 8 characters")
	}

	if existing, _ := h.repo.FindByUsername(cmd.Username); existing != nil {
		return nil, apperrors.Conflictf("username already exists")
	}
	if existing, _ := h.repo.FindByEmail(cmd.Email); existing != nil {
		return nil, apperrors.Conflictf("email already exists")
	}

	hashed, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:       cmd.Username,
		Email:          cmd.Email,
		Password:       hashed,
		Role:           domain.RoleCustomer,
		MembershipTier: domain.TierNormal,
		Address:        cmd.Address,
		PhoneNumber:    cmd.Phone,
		IsActive:       true,
	}

	if err := h.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}
