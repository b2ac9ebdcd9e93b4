package cmd

import (
	"stitchfactory/internal/adapters/out/postgres"
	"stitchfactory/internal/core/application/usecases/commands"
	"stitchfactory/internal/core/application/usecases/queries"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateProcessOrderCommandHandler() commands.ProcessOrderCommandHandler {
	var f commands.AllocationUoWFactory = FuncAllocationUoWFactory(func() commands.AllocationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewProcessOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateAddInventoryUnitCommandHandler() commands.AddInventoryUnitCommandHandler {
	var f commands.UnitUoWFactory = FuncUnitUoWFactory(func() commands.UnitUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddInventoryUnitCommandHandler(f)
}

func (c *CompositionRoot) CreateAllocatePendingOrdersCommandHandler() commands.AllocatePendingOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAllocatePendingOrdersCommandHandler(f, c.CreateProcessOrderCommandHandler())
}

func (c *CompositionRoot) CreateGetOpenOrdersQueryHandler() queries.GetOpenOrdersQueryHandler {
	return queries.NewGetOpenOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingProductionQueryHandler() queries.GetPendingProductionQueryHandler {
	return queries.NewGetPendingProductionQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUnitUoWFactory func() commands.UnitUoW

func (f FuncUnitUoWFactory) Create() commands.UnitUoW {
	return f()
}

type FuncAllocationUoWFactory func() commands.AllocationUoW

func (f FuncAllocationUoWFactory) Create() commands.AllocationUoW {
	return f()
}
