// Package curtain models the physical units of an order: a curtain with its
// dimensions and the fabric and accessory lines that consume the draft or order
// items it is made from.
//
// A curtain belongs to exactly one draft or exactly one order (Owner), and each
// line references an item of the same stage (ItemRef). Finalization flips both
// tags in place; ids never change.
package curtain
