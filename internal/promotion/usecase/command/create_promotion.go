package command

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/promotion/domain"
)

// CreatePromotionCommand represents the command to create a promotion
type CreatePromotionCommand struct {
	ActorID            uint
	Name               string
	Description        string
	DiscountPercentage decimal.Decimal
	StartDate          time.Time
	EndDate            time.Time
	ApplicableTiers    string
	ProductIDs         []uint
}

// CreatePromotionHandler handles promotion creation
type CreatePromotionHandler struct {
	uow domain.UnitOfWork
}

// NewCreatePromotionHandler creates a new create promotion handler
func NewCreatePromotionHandler(uow domain.UnitOfWork) *CreatePromotionHandler {
	return &CreatePromotionHandler{uow: uow}
}

func validatePromotionFields(name string, pct decimal.Decimal, start, end time.Time, tiers string) error {
	if name == "" {
		return apperrors.Validationf("name is required")
	}
	if pct.LessThanOrEqual(decimal.Zero) || pct.GreaterThan(decimal.NewFromInt(100)) {
		return apperrors.Validationf("discount_percentage must be between 0 and 100")
	}
	if start.IsZero() || end.IsZero() {
		return apperrors.Validationf("start_date and end_date are required")
	}
	if end.Before(start) {
		return apperrors.Validationf("end_date must not precede start_date")
	}
	if tiers == "" {
		return apperrors.Validationf("applicable_tiers is required")
	}
	return nil
}

// Handle executes the create promotion command
func (h *CreatePromotionHandler) Handle(ctx context.Context, cmd CreatePromotionCommand) (*domain.Promotion, error) {
	if err := validatePromotionFields(cmd.Name, cmd.DiscountPercentage, cmd.StartDate, cmd.EndDate, cmd.ApplicableTiers); err != nil {
		return nil, err
	}

	promotion := &domain.Promotion{
		Name:               cmd.Name,
		Description:        cmd.Description,
		DiscountPercentage: cmd.DiscountPercentage,
		StartDate:          cmd.StartDate,
		EndDate:            cmd.EndDate,
		ApplicableTiers:    cmd.ApplicableTiers,
	}

	err := h.uow.Execute(ctx, func(repos domain.Repos) error {
		if err := repos.Promotions.Create(promotion); err != nil {
			return fmt.Errorf("failed to create promotion: %w", err)
		}

		if len(cmd.ProductIDs) > 0 {
			if err := repos.Promotions.ReplaceProducts(promotion.ID, cmd.ProductIDs); err != nil {
				return fmt.Errorf("failed to associate products: %w", err)
			}
		}

		if err := repos.Audit.Record(cmd.ActorID, fmt.Sprintf("Created promotion '%s'", promotion.Name)); err != nil {
			return fmt.Errorf("failed to record activity: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	promotion.ProductIDs = cmd.ProductIDs
	return promotion, nil
}
