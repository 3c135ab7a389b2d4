package commands

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/warehouse"
)

// CreateWarehouseCommandHandler handles warehouse registration.
type CreateWarehouseCommandHandler struct {
	uowFactory WarehouseUoWFactory
}

// NewCreateWarehouseCommandHandler creates a handler for warehouse registration.
func NewCreateWarehouseCommandHandler(uowFactory WarehouseUoWFactory) CreateWarehouseCommandHandler {
	return CreateWarehouseCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the warehouse registration command.
func (h *CreateWarehouseCommandHandler) Handle(ctx context.Context, cmd CreateWarehouseCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := warehouse.NewWarehouse(
		cmd.WarehouseID(), cmd.Code(), cmd.Name(), cmd.Address(),
		cmd.Capacity(), cmd.SupportedParcelTypes(), cmd.AvailableServices(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = uow.WarehouseRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
