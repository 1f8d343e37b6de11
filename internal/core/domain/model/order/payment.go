package order

import (
	"errors"
	"fmt"
	"time"

	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

// Payment records money received for an order.
type Payment struct {
	id            kernel.UUID
	orderID       kernel.UUID
	amount        decimal.Decimal
	method        draft.PaymentMethod
	reference     string
	createdBy     kernel.UUID
	paidAt        time.Time
	isConstructed bool
}

func NewPayment(
	id, orderID kernel.UUID,
	amount decimal.Decimal,
	method draft.PaymentMethod,
	reference string,
	createdBy kernel.UUID,
	paidAt time.Time,
) (*Payment, error) {
	var problems []error
	problems = append(problems, id.Validate(), orderID.Validate(), method.Validate())
	if !amount.IsPositive() {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is not greater than 0", amount)))
	}
	if createdBy.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("created_by"))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	return &Payment{
		id:            id,
		orderID:       orderID,
		amount:        amount,
		method:        method,
		reference:     reference,
		createdBy:     createdBy,
		paidAt:        paidAt,
		isConstructed: true,
	}, nil
}

func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

func (p *Payment) ID() kernel.UUID             { return p.id }
func (p *Payment) OrderID() kernel.UUID        { return p.orderID }
func (p *Payment) Amount() decimal.Decimal     { return p.amount }
func (p *Payment) Method() draft.PaymentMethod { return p.method }
func (p *Payment) Reference() string           { return p.reference }
func (p *Payment) CreatedBy() kernel.UUID      { return p.createdBy }
func (p *Payment) PaidAt() time.Time           { return p.paidAt }
