package warehouse

import (
	"regexp"

	"parcelhub/internal/pkg/errs"
)

// codePattern matches human-assigned warehouse codes: uppercase letters,
// digits, hyphens, and underscores.
var codePattern = regexp.MustCompile(`^[A-Z0-9_-]+$`)

// ErrCodeIsInvalid is returned for warehouse codes that do not match the
// required format.
var ErrCodeIsInvalid = errs.NewValueIsInvalidError("warehouse code")

// Code is the human-assigned, unique business key of a warehouse.
type Code string

// CodeFromString validates and converts a warehouse code.
func CodeFromString(s string) (Code, error) {
	c := Code(s)
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

// Validate checks the code against the uppercase alphanumeric format.
func (c Code) Validate() error {
	if !codePattern.MatchString(string(c)) {
		return ErrCodeIsInvalid
	}
	return nil
}

// String returns the raw code.
func (c Code) String() string {
	return string(c)
}
