// Package order models the finalized sales order produced from a draft.
//
// An order mirrors the draft it came from (scalars, items sharing the draft item
// ids, curtains reparented to it, a payment when money changed hands) and carries
// three status fields kept in step with manufacturing: Status, TrackingStatus and,
// for installation orders, the installation status.
package order
