package curtain

import (
	"fmt"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
)

// Stage is the lifecycle stage a curtain or an item reference belongs to.
type Stage string

const (
	StageDraft Stage = "draft"
	StageOrder Stage = "order"
)

func (s Stage) Validate() error {
	switch s {
	case StageDraft, StageOrder:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%q is not a stage", string(s)))
	}
}

// Owner is either DraftOwner(id) or OrderOwner(id).
type Owner struct {
	stage Stage
	id    kernel.UUID
}

func DraftOwner(draftID kernel.UUID) Owner { return Owner{stage: StageDraft, id: draftID} }
func OrderOwner(orderID kernel.UUID) Owner { return Owner{stage: StageOrder, id: orderID} }

// RestoreOwner rebuilds an owner from its stored stage and id.
func RestoreOwner(stage Stage, id kernel.UUID) (Owner, error) {
	o := Owner{stage: stage, id: id}
	if err := o.Validate(); err != nil {
		return Owner{}, err
	}
	return o, nil
}

func (o Owner) Stage() Stage    { return o.stage }
func (o Owner) ID() kernel.UUID { return o.id }
func (o Owner) IsDraft() bool   { return o.stage == StageDraft }
func (o Owner) IsEqual(other Owner) bool {
	return o.stage == other.stage && o.id.IsEqual(other.id)
}

func (o Owner) Validate() error {
	if err := o.stage.Validate(); err != nil {
		return err
	}
	if o.id.IsZero() {
		return errs.NewValueIsRequiredError("owner_id")
	}
	return nil
}

func (o Owner) String() string {
	return string(o.stage) + ":" + o.id.String()
}

// ItemRef is either DraftItemRef(id) or OrderItemRef(id).
type ItemRef struct {
	stage Stage
	id    kernel.UUID
}

func DraftItemRef(itemID kernel.UUID) ItemRef { return ItemRef{stage: StageDraft, id: itemID} }
func OrderItemRef(itemID kernel.UUID) ItemRef { return ItemRef{stage: StageOrder, id: itemID} }

func RestoreItemRef(stage Stage, id kernel.UUID) (ItemRef, error) {
	r := ItemRef{stage: stage, id: id}
	if err := r.Validate(); err != nil {
		return ItemRef{}, err
	}
	return r, nil
}

func (r ItemRef) Stage() Stage    { return r.stage }
func (r ItemRef) ID() kernel.UUID { return r.id }
func (r ItemRef) IsEqual(other ItemRef) bool {
	return r.stage == other.stage && r.id.IsEqual(other.id)
}

func (r ItemRef) Validate() error {
	if err := r.stage.Validate(); err != nil {
		return err
	}
	if r.id.IsZero() {
		return errs.NewValueIsRequiredError("item_id")
	}
	return nil
}
