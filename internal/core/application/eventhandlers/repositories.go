// Package eventhandlers contains the consumers that react to published
// events. Each handler applies its effect inside one transaction together
// with the inbox mark that deduplicates redeliveries, so a consumed event
// either takes full effect once or not at all.
package eventhandlers

import (
	"context"

	"parcelhub/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for event handlers.
// Every consumer UoW carries the inbox, so the deduplication mark commits
// atomically with the handler's effect, and the outbox, so follow-up events
// commit with it too.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ParcelRepoFactory provides access to the parcel repository within a transaction.
	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	// WarehouseRepoFactory provides access to the warehouse repository within a transaction.
	WarehouseRepoFactory interface {
		WarehouseRepository() ports.WarehouseRepository
	}

	// OutboxRepoFactory provides access to the outbox within a transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// InboxRepoFactory provides access to the inbox within a transaction.
	InboxRepoFactory interface {
		InboxRepository() ports.InboxRepository
	}

	// WarehouseCapacityUoW manages transactions for the capacity consumer.
	WarehouseCapacityUoW interface {
		TxManager
		WarehouseRepoFactory
		OutboxRepoFactory
		InboxRepoFactory
	}

	// WarehouseCapacityUoWFactory creates capacity consumer unit of work instances.
	WarehouseCapacityUoWFactory interface {
		Create() WarehouseCapacityUoW
	}

	// ParcelPropagationUoW manages transactions for the parcel propagation consumer.
	ParcelPropagationUoW interface {
		TxManager
		ParcelRepoFactory
		OutboxRepoFactory
		InboxRepoFactory
	}

	// ParcelPropagationUoWFactory creates propagation consumer unit of work instances.
	ParcelPropagationUoWFactory interface {
		Create() ParcelPropagationUoW
	}
)
