package queries

import (
	"errors"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/manufacturing"
	"workshop/internal/pkg/guard"
)

// DefaultBoardLimit caps the board when the caller sets no limit.
const DefaultBoardLimit = 100

var ErrGetManufacturingBoardQueryIsNotConstructed = errors.New(
	"GetManufacturingBoardQuery must be created via NewGetManufacturingBoardQuery constructor",
)

// GetManufacturingBoardQuery lists manufacturing orders for the production
// floor, oldest first. An empty status list means every status.
type GetManufacturingBoardQuery struct {
	statuses   []manufacturing.Status
	unreadOnly bool
	limit      int
	guard      guard.ConstructorGuard
}

func NewGetManufacturingBoardQuery(statuses []manufacturing.Status, unreadOnly bool, limit int) (GetManufacturingBoardQuery, error) {
	problems := make([]error, 0, len(statuses))
	for _, s := range statuses {
		problems = append(problems, s.Validate())
	}
	if err := errors.Join(problems...); err != nil {
		return GetManufacturingBoardQuery{}, err
	}
	if limit <= 0 {
		limit = DefaultBoardLimit
	}
	return GetManufacturingBoardQuery{
		statuses:   append([]manufacturing.Status(nil), statuses...),
		unreadOnly: unreadOnly,
		limit:      limit,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetManufacturingBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetManufacturingBoardQueryIsNotConstructed)
}

func (q GetManufacturingBoardQuery) Statuses() []manufacturing.Status { return q.statuses }
func (q GetManufacturingBoardQuery) UnreadOnly() bool                 { return q.unreadOnly }
func (q GetManufacturingBoardQuery) Limit() int                       { return q.limit }

// ManufacturingBoardEntry is one card on the board. UnreadReplies counts
// salesperson replies to rejections no approver has read yet.
type ManufacturingBoardEntry struct {
	ID               kernel.UUID          `json:"id"`
	OrderID          kernel.UUID          `json:"order_id"`
	OrderNumber      string               `json:"order_number"`
	Type             string               `json:"type"`
	Status           manufacturing.Status `json:"status"`
	ProductionLineID *kernel.UUID         `json:"production_line_id,omitempty"`
	ProductionLine   string               `json:"production_line,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
	UnreadReplies    int                  `json:"unread_replies"`
}
