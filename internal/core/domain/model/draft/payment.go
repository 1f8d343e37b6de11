package draft

import (
	"fmt"

	"workshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCard         PaymentMethod = "card"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCheque       PaymentMethod = "cheque"
)

func (m PaymentMethod) Validate() error {
	switch m {
	case PaymentCash, PaymentCard, PaymentBankTransfer, PaymentCheque:
		return nil
	case "":
		return errs.NewValueIsRequiredError("payment_method")
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment_method", fmt.Errorf("%q is not a payment method", string(m)))
	}
}

// Payment is the up-front payment captured on the payment step.
type Payment struct {
	Method     PaymentMethod
	PaidAmount decimal.Decimal
	Reference  string
}

// Totals are derived from the items and cached on the draft until the items change.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Final    decimal.Decimal
}

func computeTotals(items []*Item) Totals {
	subtotal, discount := decimal.Zero, decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Subtotal())
		discount = discount.Add(item.Discount())
	}
	subtotal = subtotal.Round(2)
	discount = discount.Round(2)
	return Totals{Subtotal: subtotal, Discount: discount, Final: subtotal.Sub(discount)}
}
