package queries

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/manufacturing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type GetManufacturingBoardQueryHandler struct {
	db *sqlx.DB
}

func NewGetManufacturingBoardQueryHandler(db *sqlx.DB) GetManufacturingBoardQueryHandler {
	return GetManufacturingBoardQueryHandler{db: db}
}

type boardRow struct {
	ID               uuid.UUID      `db:"id"`
	OrderID          uuid.UUID      `db:"order_id"`
	OrderNumber      string         `db:"order_number"`
	Type             string         `db:"type"`
	Status           string         `db:"status"`
	ProductionLineID uuid.NullUUID  `db:"production_line_id"`
	ProductionLine   sql.NullString `db:"production_line"`
	CreatedAt        time.Time      `db:"created_at"`
	UnreadReplies    int            `db:"unread_replies"`
}

const boardSelect = `
	SELECT
		mo.id,
		mo.order_id,
		o.number AS order_number,
		mo.type,
		mo.status,
		mo.production_line_id,
		pl.name AS production_line,
		mo.created_at,
		(
			SELECT COUNT(*)
			FROM manufacturing_rejections r
			WHERE r.manufacturing_order_id = mo.id
				AND r.replied_by IS NOT NULL
				AND r.reply_read = ?
		) AS unread_replies
	FROM manufacturing_orders mo
	JOIN orders o ON o.id = mo.order_id
	LEFT JOIN production_lines pl ON pl.id = mo.production_line_id`

func (h GetManufacturingBoardQueryHandler) Handle(
	ctx context.Context,
	query GetManufacturingBoardQuery,
) ([]ManufacturingBoardEntry, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sb := strings.Builder{}
	sb.WriteString(boardSelect)
	args := []any{false}
	var where []string
	if statuses := query.Statuses(); len(statuses) > 0 {
		where = append(where, "mo.status IN (?)")
		raw := make([]string, 0, len(statuses))
		for _, s := range statuses {
			raw = append(raw, s.String())
		}
		args = append(args, raw)
	}
	if query.UnreadOnly() {
		where = append(where, `EXISTS (
			SELECT 1 FROM manufacturing_rejections u
			WHERE u.manufacturing_order_id = mo.id AND u.replied_by IS NOT NULL AND u.reply_read = ?)`)
		args = append(args, false)
	}
	if len(where) > 0 {
		sb.WriteString("\n\tWHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	sb.WriteString("\n\tORDER BY mo.created_at, mo.id\n\tLIMIT ?")
	args = append(args, query.Limit())

	q, args, err := sqlx.In(sb.String(), args...)
	if err != nil {
		return nil, err
	}
	var rows []boardRow
	if err = h.db.SelectContext(ctx, &rows, h.db.Rebind(q), args...); err != nil {
		return nil, err
	}

	entries := make([]ManufacturingBoardEntry, 0, len(rows))
	for _, row := range rows {
		entry, convErr := boardEntry(row)
		if convErr != nil {
			return nil, convErr
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func boardEntry(row boardRow) (ManufacturingBoardEntry, error) {
	id, err := kernel.UUIDFromGoogle(row.ID)
	if err != nil {
		return ManufacturingBoardEntry{}, err
	}
	orderID, err := kernel.UUIDFromGoogle(row.OrderID)
	if err != nil {
		return ManufacturingBoardEntry{}, err
	}
	entry := ManufacturingBoardEntry{
		ID:             id,
		OrderID:        orderID,
		OrderNumber:    row.OrderNumber,
		Type:           row.Type,
		Status:         manufacturing.Status(row.Status),
		ProductionLine: row.ProductionLine.String,
		CreatedAt:      row.CreatedAt,
		UnreadReplies:  row.UnreadReplies,
	}
	if row.ProductionLineID.Valid {
		lineID, lineErr := kernel.UUIDFromGoogle(row.ProductionLineID.UUID)
		if lineErr != nil {
			return ManufacturingBoardEntry{}, lineErr
		}
		entry.ProductionLineID = &lineID
	}
	return entry, nil
}
