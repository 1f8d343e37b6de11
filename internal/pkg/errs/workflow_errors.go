package errs

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrAuthorization    = errors.New("permission denied")
	ErrStateConflict    = errors.New("state conflict")
	ErrQuotaExceeded    = errors.New("quota exceeded")
	ErrIncompleteWizard = errors.New("wizard is incomplete")
	ErrEmptyOrder       = errors.New("order has no items")
)

// ValidationError carries field level messages for interactive clients.
// Fields maps a field name to a human readable message.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// FieldErrors accumulates field messages while a form is validated.
type FieldErrors map[string]string

// Add records msg for field unless the field already has a message.
func (f FieldErrors) Add(field, msg string) {
	if _, ok := f[field]; !ok {
		f[field] = msg
	}
}

// Merge folds value errors produced by domain setters into field messages.
// Errors that are not value errors are returned untouched.
func (f FieldErrors) Merge(err error) error {
	if err == nil {
		return nil
	}
	var rest []error
	for _, e := range flatten(err) {
		if field, ok := fieldOf(e); ok {
			f.Add(field, e.Error())
			continue
		}
		rest = append(rest, e)
	}
	return errors.Join(rest...)
}

// Err returns a *ValidationError when at least one field failed, nil otherwise.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return NewValidationError(map[string]string(f))
}

// AsValidation converts value errors (possibly joined) into a ValidationError.
// The second result is false when err contains anything other than value errors.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	fields := FieldErrors{}
	if rest := fields.Merge(err); rest != nil || len(fields) == 0 {
		return nil, false
	}
	return NewValidationError(fields), true
}

func flatten(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []error{err}
}

func fieldOf(err error) (string, bool) {
	var required *ValueIsRequiredError
	var invalid *ValueIsInvalidError
	var outOfRange *ValueIsOutOfRangeError
	switch {
	case errors.As(err, &required):
		return required.ParamName, true
	case errors.As(err, &invalid):
		return invalid.ParamName, true
	case errors.As(err, &outOfRange):
		return outOfRange.ParamName, true
	}
	return "", false
}

// AuthorizationError reports an actor lacking a capability or ownership.
type AuthorizationError struct {
	ActorID string
	Action  string
}

func NewAuthorizationError(actorID, action string) *AuthorizationError {
	return &AuthorizationError{ActorID: actorID, Action: action}
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s: actor %s may not %s", ErrAuthorization, e.ActorID, e.Action)
}

func (e *AuthorizationError) Unwrap() error {
	return ErrAuthorization
}

// StateConflictError reports an illegal transition, with the current and requested state.
type StateConflictError struct {
	Subject   string
	Current   string
	Requested string
}

func NewStateConflictError(subject, current, requested string) *StateConflictError {
	return &StateConflictError{Subject: subject, Current: current, Requested: requested}
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("%s: %s is %s, requested %s", ErrStateConflict, e.Subject, e.Current, e.Requested)
}

func (e *StateConflictError) Unwrap() error {
	return ErrStateConflict
}

// OverAllocationError reports a reservation exceeding the parent item quantity.
// Requested and Available are decimal strings.
type OverAllocationError struct {
	ItemID    string
	Requested string
	Available string
}

func NewOverAllocationError(itemID, requested, available string) *OverAllocationError {
	return &OverAllocationError{ItemID: itemID, Requested: requested, Available: available}
}

func (e *OverAllocationError) Error() string {
	return fmt.Sprintf("%s: item %s over-allocated, requested %s, available %s",
		ErrStateConflict, e.ItemID, e.Requested, e.Available)
}

func (e *OverAllocationError) Unwrap() error {
	return ErrStateConflict
}

// QuotaExceededError reports too many open drafts for one actor.
type QuotaExceededError struct {
	Limit int
	Open  int
}

func NewQuotaExceededError(limit, open int) *QuotaExceededError {
	return &QuotaExceededError{Limit: limit, Open: open}
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("%s: %d open drafts, limit is %d", ErrQuotaExceeded, e.Open, e.Limit)
}

func (e *QuotaExceededError) Unwrap() error {
	return ErrQuotaExceeded
}

// IncompleteWizardError lists the wizard steps still missing before finalization.
type IncompleteWizardError struct {
	MissingSteps []int
}

func NewIncompleteWizardError(missing []int) *IncompleteWizardError {
	return &IncompleteWizardError{MissingSteps: missing}
}

func (e *IncompleteWizardError) Error() string {
	return fmt.Sprintf("%s: missing steps %v", ErrIncompleteWizard, e.MissingSteps)
}

func (e *IncompleteWizardError) Unwrap() error {
	return ErrIncompleteWizard
}
