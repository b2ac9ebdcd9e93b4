package sku

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"stitchfactory/internal/pkg/errs"
	"stitchfactory/internal/pkg/guard"
)

// ErrMalformedSku is returned when a variant identifier does not match the
// STYLE-WAIST-SHAPE-LENGTH-FINISH shape or carries an unknown finish code.
var ErrMalformedSku = errors.New("malformed sku")

// ErrSkuIsNotConstructed indicates a SKU that was not created via NewSKU or Parse.
var ErrSkuIsNotConstructed = errs.NewValueIsRequiredError(
	"SKU must be created via NewSKU or Parse constructors")

const (
	fieldCount = 5

	// UniversalLength is the length every universal manufacturing variant is
	// produced at. Manufacturing always cuts the longest standard length and
	// finishing trims down to the ordered one.
	UniversalLength = 36

	minSize = 10
	maxSize = 99
)

// SKU is the immutable five-field variant identifier of a product:
// STYLE-WAIST-SHAPE-LENGTH-FINISH, e.g. "ST-32-X-34-STA".
// STYLE is two letters, WAIST and LENGTH two-digit numbers, SHAPE a single
// letter and FINISH a known three-letter finish code.
type SKU struct { //nolint:recvcheck //using for validation
	style  string
	waist  int
	shape  string
	length int
	finish Finish
	guard  guard.ConstructorGuard
}

// NewSKU creates a SKU from its five fields, validating each of them.
func NewSKU(style string, waist int, shape string, length int, finish Finish) (SKU, error) {
	s := SKU{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setStyle(style),
		s.setWaist(waist),
		s.setShape(shape),
		s.setLength(length),
		s.setFinish(finish),
	); err != nil {
		return SKU{}, err
	}

	return s, nil
}

// Parse decodes a dash-separated variant identifier into a SKU.
// It fails with an error wrapping ErrMalformedSku when the field count or any
// field shape does not match.
func Parse(raw string) (SKU, error) {
	fields := strings.Split(raw, "-")
	if len(fields) != fieldCount {
		return SKU{}, fmt.Errorf("%w: %q has %d fields, want %d", ErrMalformedSku, raw, len(fields), fieldCount)
	}

	waist, err := parseSize(fields[1])
	if err != nil {
		return SKU{}, fmt.Errorf("%w: %q: waist: %w", ErrMalformedSku, raw, err)
	}

	length, err := parseSize(fields[3])
	if err != nil {
		return SKU{}, fmt.Errorf("%w: %q: length: %w", ErrMalformedSku, raw, err)
	}

	s, err := NewSKU(fields[0], waist, fields[2], length, Finish(fields[4]))
	if err != nil {
		return SKU{}, fmt.Errorf("%w: %q: %w", ErrMalformedSku, raw, err)
	}

	return s, nil
}

func parseSize(field string) (int, error) {
	if len(field) != 2 {
		return 0, fmt.Errorf("%q is not a 2-digit number", field)
	}
	return strconv.Atoi(field)
}

// Validate ensures the SKU was created through one of its constructors.
func (s SKU) Validate() error {
	return s.guard.Validate(ErrSkuIsNotConstructed)
}

// Style returns the two-letter style code.
func (s SKU) Style() string {
	return s.style
}

// Waist returns the waist size.
func (s SKU) Waist() int {
	return s.waist
}

// Shape returns the single-letter shape code.
func (s SKU) Shape() string {
	return s.shape
}

// Length returns the inseam length.
func (s SKU) Length() int {
	return s.length
}

// Finish returns the finish code.
func (s SKU) Finish() Finish {
	return s.finish
}

// WashGroup returns the wash group of the SKU's finish.
func (s SKU) WashGroup() (WashGroup, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return s.finish.WashGroup()
}

// Universal derives the canonical manufacturing variant for the SKU: same
// style, waist and shape, length forced to UniversalLength and the finish
// replaced by the wash group's universal finish. One universal unit can
// satisfy any ordered variant sharing style, waist, shape and wash group
// whose length does not exceed UniversalLength.
func (s SKU) Universal() (SKU, error) {
	group, err := s.WashGroup()
	if err != nil {
		return SKU{}, err
	}
	return NewSKU(s.style, s.waist, s.shape, UniversalLength, group.UniversalFinish())
}

// IsUniversal reports whether the SKU already is a universal manufacturing variant.
func (s SKU) IsUniversal() bool {
	return s.length == UniversalLength && (s.finish == FinishRaw || s.finish == FinishBlkRaw)
}

// String encodes the SKU back into its dash-separated wire form.
func (s SKU) String() string {
	return fmt.Sprintf("%s-%02d-%s-%02d-%s", s.style, s.waist, s.shape, s.length, s.finish)
}

// IsEqual compares two SKUs field by field.
func (s SKU) IsEqual(other SKU) bool {
	return s.style == other.style &&
		s.waist == other.waist &&
		s.shape == other.shape &&
		s.length == other.length &&
		s.finish == other.finish
}

func (s *SKU) setStyle(style string) error {
	if len(style) != 2 || !isLetters(style) {
		return errs.NewValueIsInvalidErrorWithCause("style",
			fmt.Errorf("%q is not a 2-letter style code", style))
	}
	s.style = style
	return nil
}

func (s *SKU) setWaist(waist int) error {
	if waist < minSize || waist > maxSize {
		return errs.NewValueIsOutOfRangeError("waist", waist, minSize, maxSize)
	}
	s.waist = waist
	return nil
}

func (s *SKU) setShape(shape string) error {
	if len(shape) != 1 || !isLetters(shape) {
		return errs.NewValueIsInvalidErrorWithCause("shape",
			fmt.Errorf("%q is not a 1-letter shape code", shape))
	}
	s.shape = shape
	return nil
}

func (s *SKU) setLength(length int) error {
	if length < minSize || length > maxSize {
		return errs.NewValueIsOutOfRangeError("length", length, minSize, maxSize)
	}
	s.length = length
	return nil
}

func (s *SKU) setFinish(finish Finish) error {
	if err := finish.Validate(); err != nil {
		return err
	}
	s.finish = finish
	return nil
}

func isLetters(v string) bool {
	for _, r := range v {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
