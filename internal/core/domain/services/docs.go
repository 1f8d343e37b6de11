// Package services holds domain logic that spans more than one aggregate.
//
// The package includes:
//   - ReservationValidator: keeps curtain line reservations within the quantity of the draft item they consume
//   - LineAssigner: routes a new manufacturing order to a production line
//   - StatusPropagator: copies a manufacturing status onto the order and its installation schedules
//
// The services are stateless and never touch storage. Command handlers load
// the aggregates inside a transaction, call a service and persist the result
// in the same transaction.
package services
