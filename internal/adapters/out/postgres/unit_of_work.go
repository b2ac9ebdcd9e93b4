// Package postgres provides the GORM-based implementation of the Unit of
// Work pattern for the fulfillment store.
//
// A unit of work is a business transaction boundary: it hands out
// repositories bound to one database transaction and tracks every aggregate
// those repositories touch. The allocation engine draws a fresh unit of work
// per line item so that each item's allocation commits or rolls back on its
// own.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.UnitRepository().UpdateIfUncommitted(ctx, u); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency notes:
//   - Each instance owns one transaction; goroutines must not share one.
//   - Reservation races are resolved inside the repositories (guarded
//     updates, partial unique index), not with long-held row locks; keep
//     transactions short.
package postgres

import (
	"context"

	"stitchfactory/internal/adapters/out/postgres/finishingrepo"
	"stitchfactory/internal/adapters/out/postgres/orderrepo"
	"stitchfactory/internal/adapters/out/postgres/productionrepo"
	"stitchfactory/internal/adapters/out/postgres/unitrepo"
	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate interface{}
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database
// connections. Each business operation gets a fresh instance with proper
// isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates a database transaction and tracks aggregate
// changes for one business operation.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction. Calling Begin again on an
// instance with an active transaction is a no-op rather than a nested
// transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns error if no active transaction exists or the commit fails.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// Returns error if no active transaction exists or the rollback fails.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository returns an order repository bound to the current
// transaction, or to the main connection when none is active.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// UnitRepository returns an inventory unit repository bound to the current
// transaction.
func (uow *GormUnitOfWork) UnitRepository() ports.UnitRepository {
	return unitrepo.NewGormUnitRepository(uow.conn(), uow)
}

// ProductionRequestRepository returns a production request repository bound
// to the current transaction.
func (uow *GormUnitOfWork) ProductionRequestRepository() ports.ProductionRequestRepository {
	return productionrepo.NewGormProductionRequestRepository(uow.conn(), uow)
}

// WaitlistRepository returns a waitlist repository bound to the current
// transaction.
func (uow *GormUnitOfWork) WaitlistRepository() ports.WaitlistRepository {
	return productionrepo.NewGormWaitlistRepository(uow.conn(), uow)
}

// FinishingRequestRepository returns a finishing request repository bound to
// the current transaction.
func (uow *GormUnitOfWork) FinishingRequestRepository() ports.FinishingRequestRepository {
	return finishingrepo.NewGormFinishingRequestRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// TrackAggregate registers a domain aggregate as modified within this unit
// of work. Repository implementations call it on every add or update; the
// collected aggregates enable post-commit processing such as event
// publication.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
