package draft

import (
	"maps"
	"time"

	"workshop/internal/core/domain/model/kernel"
)

const (
	ActionCreated        = "created"
	ActionEditStarted    = "edit_started"
	ActionBasicInfoSaved = "basic_info_saved"
	ActionOrderTypeSaved = "order_type_saved"
	ActionItemAdded      = "item_added"
	ActionItemUpdated    = "item_updated"
	ActionItemRemoved    = "item_removed"
	ActionPaymentSaved   = "payment_saved"
	ActionCurtainAdded   = "curtain_added"
	ActionCurtainRemoved = "curtain_removed"
	ActionLineSaved      = "curtain_line_saved"
	ActionLineRemoved    = "curtain_line_removed"
	ActionStepSubmitted  = "step_submitted"
	ActionFinalized      = "finalized"
	DetailOnBehalfOf     = "on_behalf_of"
)

// HistoryEntry is one line of the append-only audit trail of a draft.
type HistoryEntry struct {
	ActorID kernel.UUID
	Action  string
	At      time.Time
	Detail  map[string]string
}

func (d *Draft) record(actor kernel.UUID, action string, detail map[string]string) {
	at := now()
	entry := HistoryEntry{ActorID: actor, Action: action, At: at, Detail: maps.Clone(detail)}
	if !actor.IsEqual(d.ownerID) {
		if entry.Detail == nil {
			entry.Detail = map[string]string{}
		}
		entry.Detail[DetailOnBehalfOf] = d.ownerID.String()
	}
	d.history = append(d.history, entry)
	d.updatedAt = at
}
