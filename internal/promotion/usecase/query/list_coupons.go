package query

import (
	"fmt"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/promotion/domain"
)

// ListCouponsQuery lists coupons visible to a user: their own plus
// universal ones.
type ListCouponsQuery struct {
	UserID uint
}

// ListCouponsHandler handles listing coupons
type ListCouponsHandler struct {
	repo domain.CouponRepository
}

// NewListCouponsHandler creates a new list coupons handler
func NewListCouponsHandler(repo domain.CouponRepository) *ListCouponsHandler {
	return &ListCouponsHandler{repo: repo}
}

// Handle executes the list coupons query
func (h *ListCouponsHandler) Handle(q ListCouponsQuery) ([]domain.Coupon, error) {
	coupons, err := h.repo.FindForUser(q.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	return coupons, nil
}

// GetCouponQuery represents the query to get one coupon
type GetCouponQuery struct {
	ID     uint
	UserID uint
}

// GetCouponHandler handles getting a single coupon
type GetCouponHandler struct {
	repo domain.CouponRepository
}

// NewGetCouponHandler creates a new get coupon handler
func NewGetCouponHandler(repo domain.CouponRepository) *GetCouponHandler {
	return &GetCouponHandler{repo: repo}
}

// Handle executes the get coupon query. User-bound coupons are visible
// only to their owner.
func (h *GetCouponHandler) Handle(q GetCouponQuery) (*domain.Coupon, error) {
	coupon, err := h.repo.FindByID(q.ID)
	if err != nil {
		return nil, apperrors.NotFoundf("coupon %d not found", q.ID)
	}
	if coupon.UserID != nil && *coupon.UserID != q.UserID {
		return nil, apperrors.Forbiddenf("you are not authorized to view this coupon")
	}
	return coupon, nil
}
