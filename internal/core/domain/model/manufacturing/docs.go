// Package manufacturing models production tracking for finalized orders.
//
// A ManufacturingOrder is spawned when an order of a manufacturable type is
// finalized. Its status follows a table that depends on the manufacturing
// type (installation orders go through ready_install, custom and accessory
// orders through completed), refuses backward moves unless overridden and
// never allows rejection or cancellation once production is done.
//
// Rejection has its own small workflow: Reject opens a RejectionLog, the
// salesperson may Reply exactly once to the latest rejection, and Approve
// moves the order back to pending as a new status change.
//
// ProductionLine is the routing target chosen once, when the order is created.
package manufacturing
