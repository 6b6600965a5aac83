package command

import (
	"fmt"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/user/domain"
)

// UpdateWishlistCommand adds or removes a product from a user's wishlist.
type UpdateWishlistCommand struct {
	UserID    uint
	ProductID uint
	Remove    bool
}

// UpdateWishlistHandler handles wishlist mutations
type UpdateWishlistHandler struct {
	repo domain.UserRepository
}

// NewUpdateWishlistHandler creates a new update wishlist handler
func NewUpdateWishlistHandler(repo domain.UserRepository) *UpdateWishlistHandler {
	return &UpdateWishlistHandler{repo: repo}
}

// Handle executes the wishlist mutation. Adding an already-present product
// is a no-op.
func (h *UpdateWishlistHandler) Handle(cmd UpdateWishlistCommand) (*domain.User, error) {
	if cmd.ProductID == 0 {
		return nil, apperrors.Validationf("product_id is required")
	}

	user, err := h.repo.FindByID(cmd.UserID)
	if err != nil {
		return nil, apperrors.NotFoundf("user %d not found", cmd.UserID)
	}

	if cmd.Remove {
		next := user.Wishlist[:0]
		for _, id := range user.Wishlist {
			if id != cmd.ProductID {
				next = append(next, id)
			}
		}
		user.Wishlist = next
	} else {
		present := false
		for _, id := range user.Wishlist {
			if id == cmd.ProductID {
				present = true
				break
			}
		}
		if !present {
			user.Wishlist = append(user.Wishlist, cmd.ProductID)
		}
	}

	if err := h.repo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update wishlist: %w", err)
	}

	return user, nil
}
