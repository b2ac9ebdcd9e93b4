package commands

import (
	"fmt"

	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/core/domain/model/order"
	"stitchfactory/internal/core/domain/model/sku"
	"stitchfactory/internal/pkg/errs"
	"stitchfactory/internal/pkg/guard"
)

// ErrCreateOrderCommandIsNotConstructed is returned when attempting to use
// a command that was not created through its constructor.
var ErrCreateOrderCommandIsNotConstructed = errs.NewValueIsRequiredError("create order command")

// OrderItemInput is a single requested variant in an incoming order, as
// submitted by the storefront: a raw SKU code plus how many of it.
type OrderItemInput struct {
	SkuCode  string
	Quantity int
}

// CreateOrderCommand represents a request to register a new customer order.
// SKU codes are parsed during construction, so an instance that exists is
// already known to reference well-formed variants.
type CreateOrderCommand struct {
	orderID kernel.UUID
	items   []order.ItemSpec

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register an order.
//
// Each item's SKU code is parsed up front; a malformed code fails the whole
// command with an error naming the offending item, before any state is
// touched.
func NewCreateOrderCommand(orderID kernel.UUID, items []OrderItemInput) (CreateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}
	if len(items) == 0 {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("items")
	}

	specs := make([]order.ItemSpec, 0, len(items))
	for i, item := range items {
		variant, err := sku.Parse(item.SkuCode)
		if err != nil {
			return CreateOrderCommand{}, fmt.Errorf("item %d (%s): %w", i, item.SkuCode, err)
		}
		if item.Quantity < 1 || item.Quantity > maxItemQuantity {
			return CreateOrderCommand{}, errs.NewValueIsOutOfRangeError(
				fmt.Sprintf("item %d quantity", i), item.Quantity, 1, maxItemQuantity)
		}
		specs = append(specs, order.ItemSpec{Sku: variant, Quantity: item.Quantity})
	}

	return CreateOrderCommand{
		orderID: orderID,
		items:   specs,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// maxItemQuantity caps per-item quantity at intake. Each requested garment
// becomes its own line item, so this bounds aggregate fan-out.
const maxItemQuantity = 100

// OrderID returns the client-supplied identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Items returns the parsed variant specifications.
func (c CreateOrderCommand) Items() []order.ItemSpec {
	return c.items
}

// Validate checks that the command was properly constructed.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}
