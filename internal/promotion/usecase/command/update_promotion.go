package command

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/promotion/domain"
)

// UpdatePromotionCommand represents the command to update a promotion. Nil
// fields are left unchanged; a non-nil ProductIDs replaces the whole
// association set.
type UpdatePromotionCommand struct {
	ActorID            uint
	ID                 uint
	Name               *string
	Description        *string
	DiscountPercentage *decimal.Decimal
	StartDate          *time.Time
	EndDate            *time.Time
	ApplicableTiers    *string
	ProductIDs         *[]uint
}

// UpdatePromotionHandler handles promotion updates
type UpdatePromotionHandler struct {
	uow domain.UnitOfWork
}

// NewUpdatePromotionHandler creates a new update promotion handler
func NewUpdatePromotionHandler(uow domain.UnitOfWork) *UpdatePromotionHandler {
	return &UpdatePromotionHandler{uow: uow}
}

// Handle executes the update promotion command
func (h *UpdatePromotionHandler) Handle(ctx context.Context, cmd UpdatePromotionCommand) (*domain.Promotion, error) {
	var promotion *domain.Promotion
	err := h.uow.Execute(ctx, func(repos domain.Repos) error {
		var err error
		promotion, err = repos.Promotions.FindByID(cmd.ID)
		if err != nil {
			return apperrors.NotFoundf("promotion %d not found", cmd.ID)
		}

		if cmd.Name != nil {
			promotion.Name = *cmd.Name
		}
		if cmd.Description != nil {
			promotion.Description = *cmd.Description
		}
		if cmd.DiscountPercentage != nil {
			promotion.DiscountPercentage = *cmd.DiscountPercentage
		}
		if cmd.StartDate != nil {
			promotion.StartDate = *cmd.StartDate
		}
		if cmd.EndDate != nil {
			promotion.EndDate = *cmd.EndDate
		}
		if cmd.ApplicableTiers != nil {
			promotion.ApplicableTiers = *cmd.ApplicableTiers
		}

		if err := validatePromotionFields(promotion.Name, promotion.DiscountPercentage,
			promotion.StartDate, promotion.EndDate, promotion.ApplicableTiers); err != nil {
			return err
		}

		if err := repos.Promotions.Update(promotion); err != nil {
			return fmt.Errorf("failed to update promotion: %w", err)
		}

		if cmd.ProductIDs != nil {
			if err := repos.Promotions.ReplaceProducts(promotion.ID, *cmd.ProductIDs); err != nil {
				return fmt.Errorf("failed to replace product associations: %w", err)
			}
			promotion.ProductIDs = *cmd.ProductIDs
		}

		if err := repos.Audit.Record(cmd.ActorID, fmt.Sprintf("Updated promotion '%s'", promotion.Name)); err != nil {
			return fmt.Errorf("failed to record activity: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return promotion, nil
}
