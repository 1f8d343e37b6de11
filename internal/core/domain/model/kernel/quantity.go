package kernel

import (
	"fmt"

	"workshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Quantity is a strictly positive decimal amount (metres of fabric, pieces of an accessory).
type Quantity struct {
	value decimal.Decimal
	valid bool
}

func NewQuantity(value decimal.Decimal) (Quantity, error) {
	if !value.IsPositive() {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%s is not greater than 0", value.String()))
	}
	return Quantity{value: value, valid: true}, nil
}

// QuantityFromString parses a decimal string such as "2.75".
func QuantityFromString(s string) (Quantity, error) {
	value, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause("quantity", err)
	}
	return NewQuantity(value)
}

// MustQuantity is NewQuantity for literals known to be positive.
func MustQuantity(s string) Quantity {
	q, err := QuantityFromString(s)
	if err != nil {
		panic(err)
	}
	return q
}

func (q Quantity) Decimal() decimal.Decimal {
	return q.value
}

func (q Quantity) String() string {
	return q.value.String()
}

func (q Quantity) IsEqual(other Quantity) bool {
	return q.value.Equal(other.value)
}

func (q Quantity) Validate() error {
	if !q.valid {
		return errs.NewValueIsRequiredError("quantity")
	}
	return nil
}
