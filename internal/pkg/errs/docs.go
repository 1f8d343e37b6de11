// Package errs provides standardized error types for the workshop application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes two families of errors:
//   - Value errors raised by domain constructors and setters: ValueIsRequiredError,
//     ValueIsInvalidError, ValueIsOutOfRangeError, and ObjectNotFoundError for lookups
//   - Workflow errors raised by the application layer: ValidationError (field level
//     detail for interactive clients), AuthorizationError, StateConflictError,
//     OverAllocationError, QuotaExceededError, IncompleteWizardError and ErrEmptyOrder
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify errors with errors.Is against the sentinels and extract details
// with errors.As against the struct types. The HTTP adapter relies on exactly that
// to map errors onto status codes.
package errs
