package parcel

import (
	"errors"
	"fmt"

	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrDimensionsAreNotConstructed is returned when attempting to use
// improperly initialized Dimensions. Use NewDimensions.
var ErrDimensionsAreNotConstructed = errs.NewValueIsRequiredError(
	"dimensions must be created via NewDimensions constructor")

// Dimensions is an immutable value object holding the physical measurements
// of a parcel. Weight is in kilograms, length/width/height in centimeters.
// All four values must be strictly positive.
type Dimensions struct { //nolint:recvcheck //using for validation
	weight decimal.Decimal
	length decimal.Decimal
	width  decimal.Decimal
	height decimal.Decimal

	guard guard.ConstructorGuard
}

// NewDimensions creates validated Dimensions. Each measurement must be
// strictly greater than zero.
func NewDimensions(weight, length, width, height decimal.Decimal) (Dimensions, error) {
	d := Dimensions{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setMeasure(&d.weight, "weight", weight),
		d.setMeasure(&d.length, "length", length),
		d.setMeasure(&d.width, "width", width),
		d.setMeasure(&d.height, "height", height),
	); err != nil {
		return Dimensions{}, err
	}

	return d, nil
}

// Weight returns the parcel weight.
func (d Dimensions) Weight() decimal.Decimal {
	return d.weight
}

// Length returns the parcel length.
func (d Dimensions) Length() decimal.Decimal {
	return d.length
}

// Width returns the parcel width.
func (d Dimensions) Width() decimal.Decimal {
	return d.width
}

// Height returns the parcel height.
func (d Dimensions) Height() decimal.Decimal {
	return d.height
}

// Volume returns length * width * height, the cubic volume the parcel
// occupies. Warehouse utilization and consolidation totals are sums over
// this value.
func (d Dimensions) Volume() decimal.Decimal {
	return d.length.Mul(d.width).Mul(d.height)
}

// Validate ensures the Dimensions were created via NewDimensions.
func (d Dimensions) Validate() error {
	return d.guard.Validate(ErrDimensionsAreNotConstructed)
}

func (d *Dimensions) setMeasure(target *decimal.Decimal, name string, value decimal.Decimal) error {
	if !value.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(name,
			fmt.Errorf("%s is not greater than 0", value))
	}
	*target = value
	return nil
}
