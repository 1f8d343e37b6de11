package kernel

import (
	"fmt"

	"workshop/internal/pkg/errs"
)

// OrderType is the kind of sales order chosen on the order type step.
type OrderType string

const (
	OrderTypeAccessory    OrderType = "accessory"
	OrderTypeInstallation OrderType = "installation"
	OrderTypeInspection   OrderType = "inspection"
	OrderTypeDelivery     OrderType = "delivery"
	OrderTypeProducts     OrderType = "products"
)

// ManufacturingType is the production flavour of a manufacturing order.
type ManufacturingType string

const (
	ManufacturingInstallation ManufacturingType = "installation"
	ManufacturingCustom       ManufacturingType = "custom"
	ManufacturingAccessory    ManufacturingType = "accessory"
)

func ParseOrderType(s string) (OrderType, error) {
	t := OrderType(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

func (t OrderType) Validate() error {
	switch t {
	case OrderTypeAccessory, OrderTypeInstallation, OrderTypeInspection, OrderTypeDelivery, OrderTypeProducts:
		return nil
	case "":
		return errs.NewValueIsRequiredError("selected_type")
	default:
		return errs.NewValueIsInvalidErrorWithCause("selected_type", fmt.Errorf("%q is not an order type", string(t)))
	}
}

func (t OrderType) String() string {
	return string(t)
}

// RequiresContract reports whether the wizard shows the contract step for this type.
// An unset type requires no contract.
func (t OrderType) RequiresContract() bool {
	switch t {
	case OrderTypeInstallation, OrderTypeDelivery, OrderTypeAccessory:
		return true
	default:
		return false
	}
}

// ManufacturingType returns the manufacturing order type spawned on finalization.
// The second result is false for types that are not manufactured.
func (t OrderType) ManufacturingType() (ManufacturingType, bool) {
	switch t {
	case OrderTypeInstallation:
		return ManufacturingInstallation, true
	case OrderTypeAccessory:
		return ManufacturingAccessory, true
	case OrderTypeDelivery:
		return ManufacturingCustom, true
	default:
		return "", false
	}
}

func (m ManufacturingType) Validate() error {
	switch m {
	case ManufacturingInstallation, ManufacturingCustom, ManufacturingAccessory:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("manufacturing_type", fmt.Errorf("%q is not a manufacturing type", string(m)))
	}
}
