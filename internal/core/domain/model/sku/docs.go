// Package sku implements the variant identifier codec for the fulfillment domain.
//
// A SKU is the five-field identifier STYLE-WAIST-SHAPE-LENGTH-FINISH.
// The package parses and formats SKUs, classifies finishes into wash groups
// (light or dark), and derives the universal manufacturing variant: the raw,
// untrimmed unit (length 36, finish RAW or BRW) that can be finished into any
// ordered variant sharing style, waist, shape and wash group.
package sku
