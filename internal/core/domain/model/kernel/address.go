package kernel

import (
	"errors"
	"fmt"
	"strings"

	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when attempting to use an improperly
// initialized Address. Addresses must be created via NewAddress.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address is an immutable value object representing a postal address.
// Every field is required and must be non-blank. The zero value is invalid;
// use NewAddress.
//
// Example:
//
//	addr, err := kernel.NewAddress("1 Main St", "Boston", "MA", "02101", "US")
//	if err != nil {
//	    // handle validation error
//	}
type Address struct { //nolint:recvcheck //using for validation
	street  string
	city    string
	state   string
	zipCode string
	country string

	guard guard.ConstructorGuard
}

// NewAddress creates a validated Address. All fields are required; blank or
// whitespace-only values are rejected.
func NewAddress(street, city, state, zipCode, country string) (Address, error) {
	addr := Address{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		addr.setField(&addr.street, "street", street),
		addr.setField(&addr.city, "city", city),
		addr.setField(&addr.state, "state", state),
		addr.setField(&addr.zipCode, "zipCode", zipCode),
		addr.setField(&addr.country, "country", country),
	); err != nil {
		return Address{}, err
	}

	return addr, nil
}

// Street returns the street line of the address.
func (a Address) Street() string {
	return a.street
}

// City returns the city of the address.
func (a Address) City() string {
	return a.city
}

// State returns the state or region of the address.
func (a Address) State() string {
	return a.state
}

// ZipCode returns the postal code of the address.
func (a Address) ZipCode() string {
	return a.zipCode
}

// Country returns the country of the address.
func (a Address) Country() string {
	return a.country
}

// String returns a single-line rendering suitable for logs and tracking entries.
func (a Address) String() string {
	return fmt.Sprintf("%s, %s, %s %s, %s", a.street, a.city, a.state, a.zipCode, a.country)
}

// IsEqual reports whether two addresses have identical fields.
func (a Address) IsEqual(other Address) bool {
	return a.street == other.street &&
		a.city == other.city &&
		a.state == other.state &&
		a.zipCode == other.zipCode &&
		a.country == other.country
}

// Validate ensures the Address was created via NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a *Address) setField(target *string, name, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(name)
	}
	*target = value
	return nil
}
