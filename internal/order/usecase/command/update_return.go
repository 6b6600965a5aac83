package command

import (
	"context"
	"fmt"

	"github.com/cedarmart/commerce/pkg/apperrors"

	"github.com/cedarmart/commerce/internal/order/domain"
)

// UpdateReturnCommand represents the command to change a return's status
type UpdateReturnCommand struct {
	ActorID  uint
	ReturnID uint
	Status   string
}

// UpdateReturnHandler handles return status updates
type UpdateReturnHandler struct {
	uow domain.UnitOfWork
}

// NewUpdateReturnHandler creates a new update return handler
func NewUpdateReturnHandler(uow domain.UnitOfWork) *UpdateReturnHandler {
	return &UpdateReturnHandler{uow: uow}
}

// Handle executes the update return command. Changing a return's status has
// no side effects beyond the audit entry.
func (h *UpdateReturnHandler) Handle(ctx context.Context, cmd UpdateReturnCommand) (*domain.Return, error) {
	if !domain.ValidReturnStatus(cmd.Status) {
		return nil, apperrors.Validationf("invalid return status")
	}

	var ret *domain.Return
	err := h.uow.Execute(ctx, func(repos domain.Repos) error {
		var err error
		ret, err = repos.Orders.FindReturnByID(cmd.ReturnID)
		if err != nil {
			return apperrors.NotFoundf("return %d not found", cmd.ReturnID)
		}

		ret.Status = cmd.Status
		if err := repos.Orders.UpdateReturn(ret); err != nil {
			return fmt.Errorf("failed to update return: %w", err)
		}

		action := fmt.Sprintf("Return %d marked %s", ret.ID, cmd.Status)
		if err := repos.Audit.Record(cmd.ActorID, action); err != nil {
			return fmt.Errorf("failed to record activity: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return ret, nil
}
