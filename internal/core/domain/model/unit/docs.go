// Package unit contains the InventoryUnit aggregate: a single physical item
// with its manufacturing status (stock, production, wash), its reservation
// status (uncommitted, committed, assigned) and the commitment audit record
// binding a reserved unit to an order line item.
package unit
