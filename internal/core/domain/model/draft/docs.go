// Package draft models the mutable order being built through the wizard.
//
// A Draft belongs to the actor who started it. It carries the scalar fields of
// the future order, its items, the payment the customer made up front and the
// wizard progress (current step and completed steps). Curtains live in their
// own aggregate and point at the draft through curtain.DraftOwner.
//
// The wizard has six logical steps. When the selected order type needs no
// contract the contract step is skipped and review becomes physical step 5;
// see MapLogicalToPhysical and ScreenAt.
package draft
