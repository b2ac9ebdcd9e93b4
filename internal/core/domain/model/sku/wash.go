package sku

import "fmt"

// Finish is the three-letter finish code of a variant, the last SKU field.
// A finish belongs to exactly one wash group, which determines the raw
// (universal) finish that can substitute for it.
type Finish string

// Known finish codes carried by the catalog.
const (
	FinishStone  Finish = "STA"
	FinishIndigo Finish = "IND"
	FinishRaw    Finish = "RAW"
	FinishBlkRaw Finish = "BRW"
	FinishJagger Finish = "JAG"
	FinishBlack  Finish = "BLK"
	FinishGrey   Finish = "GRY"
)

// finishGroups maps every known finish to its wash group.
// STA, IND and the light universal finish RAW belong to the light group;
// every other known finish is dark.
func finishGroups() map[Finish]WashGroup {
	return map[Finish]WashGroup{
		FinishStone:  Light,
		FinishIndigo: Light,
		FinishRaw:    Light,
		FinishBlkRaw: Dark,
		FinishJagger: Dark,
		FinishBlack:  Dark,
		FinishGrey:   Dark,
	}
}

// Validate checks that the finish is a known catalog finish code.
func (f Finish) Validate() error {
	if _, ok := finishGroups()[f]; !ok {
		return fmt.Errorf("%w: unknown finish %q", ErrMalformedSku, string(f))
	}
	return nil
}

// WashGroup returns the wash group the finish belongs to.
// Unknown finishes report the zero WashGroup together with an error.
func (f Finish) WashGroup() (WashGroup, error) {
	group, ok := finishGroups()[f]
	if !ok {
		return 0, fmt.Errorf("%w: unknown finish %q", ErrMalformedSku, string(f))
	}
	return group, nil
}

// WashGroup partitions finishes into the two families a raw unit can be
// finished into. A raw light unit can become any light finish; a raw dark
// unit any dark finish. The groups never substitute for each other.
type WashGroup int

const (
	// UnknownGroup is the invalid zero value.
	UnknownGroup WashGroup = iota

	// Light covers stone and indigo style finishes; its universal finish is RAW.
	Light

	// Dark covers all other known finishes; its universal finish is BRW.
	Dark
)

// String returns the human-readable name of the wash group.
func (g WashGroup) String() string {
	switch g {
	case Light:
		return "Light"
	case Dark:
		return "Dark"
	default:
		return "Unknown"
	}
}

// UniversalFinish returns the not-yet-finished manufacturing finish for the
// group: RAW for light, BRW for dark.
func (g WashGroup) UniversalFinish() Finish {
	if g == Dark {
		return FinishBlkRaw
	}
	return FinishRaw
}
