// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// and persistence.
package commands

import (
	"context"

	"stitchfactory/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// UnitRepoFactory provides access to the inventory unit repository within a transaction.
	UnitRepoFactory interface {
		UnitRepository() ports.UnitRepository
	}

	// ProductionRepoFactory provides access to the production request and
	// waitlist repositories within a transaction.
	ProductionRepoFactory interface {
		ProductionRequestRepository() ports.ProductionRequestRepository
		WaitlistRepository() ports.WaitlistRepository
	}

	// FinishingRepoFactory provides access to the finishing request repository
	// within a transaction.
	FinishingRepoFactory interface {
		FinishingRequestRepository() ports.FinishingRequestRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UnitUoW manages transactions for inventory-intake operations.
	UnitUoW interface {
		TxManager
		UnitRepoFactory
	}

	// UnitUoWFactory creates new unit-of-work instances for inventory intake.
	UnitUoWFactory interface {
		Create() UnitUoW
	}

	// AllocationUoW manages transactions spanning every aggregate the
	// allocation pass touches: orders, units, production requests, waitlist
	// entries and finishing requests.
	AllocationUoW interface {
		TxManager
		OrderRepoFactory
		UnitRepoFactory
		ProductionRepoFactory
		FinishingRepoFactory
	}

	// AllocationUoWFactory creates new allocation unit of work instances.
	// Every line item allocation draws a fresh instance so that each runs in
	// its own transaction.
	AllocationUoWFactory interface {
		Create() AllocationUoW
	}
)
