// Package contact defines a single address book entry and the validated
// field values it holds.
package contact

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidPhoneFormat indicates a phone number that is not exactly 10 ASCII digits.
var ErrInvalidPhoneFormat = errors.New("contact: invalid phone number format")

var validate = validator.New()

// phoneRule accepts exactly ten characters from [0-9].
const phoneRule = "len=10,number"

// Phone is a 10-digit phone number. The zero value is not a valid phone.
type Phone struct {
	digits string
}

// NewPhone validates raw and returns it as a Phone.
func NewPhone(raw string) (Phone, error) {
	if err := validate.Var(raw, phoneRule); err != nil {
		return Phone{}, fmt.Errorf("%w: %q", ErrInvalidPhoneFormat, raw)
	}
	return Phone{digits: raw}, nil
}

// String returns the digits as entered.
func (p Phone) String() string {
	return p.digits
}
