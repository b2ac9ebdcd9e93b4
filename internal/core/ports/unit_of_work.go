package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations; in particular,
// every line item allocation runs inside its own unit of work.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and repositories bound to the transaction.
// Client code must explicitly manage the transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// UnitRepository returns a UnitRepository bound to the current transaction.
	UnitRepository() UnitRepository

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// ProductionRequestRepository returns a ProductionRequestRepository bound
	// to the current transaction.
	ProductionRequestRepository() ProductionRequestRepository

	// WaitlistRepository returns a WaitlistRepository bound to the current transaction.
	WaitlistRepository() WaitlistRepository

	// FinishingRequestRepository returns a FinishingRequestRepository bound
	// to the current transaction.
	FinishingRequestRepository() FinishingRequestRepository
}
