// Package order contains the Order aggregate and its LineItem entities.
//
// An order owns one line item per requested physical unit; requested
// quantities are expanded at intake. Line items move through the allocation
// state machine (pending assignment, assigned, in production, pending
// production) while the order status itself is purely derived from them.
package order
