// Package guard tells values built by their constructor apart from zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in commands, queries and aggregates. Only
// NewConstructorGuard yields a guard that validates, so a struct literal or a
// zero value is rejected as soon as it reaches a handler or repository.
//
//	type SubmitPaymentStepCommand struct {
//	    draftID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func (c SubmitPaymentStepCommand) Validate() error {
//	    return c.guard.Validate(ErrSubmitPaymentStepCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the enclosing value as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard and validationError otherwise
// (ErrDefaultConstructorGuard when validationError is nil).
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
