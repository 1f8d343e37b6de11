package queries

import (
	"errors"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderTrackingQueryIsNotConstructed = errors.New(
	"GetOrderTrackingQuery must be created via NewGetOrderTrackingQuery constructor",
)

// GetOrderTrackingQuery reads the customer-facing progress of an order.
type GetOrderTrackingQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderTrackingQuery(orderID kernel.UUID) (GetOrderTrackingQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderTrackingQuery{}, err
	}
	return GetOrderTrackingQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTrackingQueryIsNotConstructed)
}

func (q GetOrderTrackingQuery) OrderID() kernel.UUID { return q.orderID }

// GetOrderTrackingQueryResponse summarizes an order, its payments, its
// manufacturing order and installation schedules.
type GetOrderTrackingQueryResponse struct {
	OrderID             kernel.UUID            `json:"order_id"`
	Number              string                 `json:"number"`
	Type                string                 `json:"type"`
	Status              string                 `json:"status"`
	TrackingStatus      string                 `json:"tracking_status"`
	InstallationStatus  string                 `json:"installation_status,omitempty"`
	Total               decimal.Decimal        `json:"total"`
	Paid                decimal.Decimal        `json:"paid"`
	Outstanding         decimal.Decimal        `json:"outstanding"`
	ManufacturingID     *kernel.UUID           `json:"manufacturing_order_id,omitempty"`
	ManufacturingStatus string                 `json:"manufacturing_status,omitempty"`
	ProductionLine      string                 `json:"production_line,omitempty"`
	Schedules           []InstallationSchedule `json:"schedules"`
}

type InstallationSchedule struct {
	ID           kernel.UUID `json:"id"`
	ScheduledFor *time.Time  `json:"scheduled_for,omitempty"`
	Status       string      `json:"status"`
}
