package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// GetOrderTrackingQueryHandler answers from the read database with plain SQL.
type GetOrderTrackingQueryHandler struct {
	db *sqlx.DB
}

func NewGetOrderTrackingQueryHandler(db *sqlx.DB) GetOrderTrackingQueryHandler {
	return GetOrderTrackingQueryHandler{db: db}
}

type trackingRow struct {
	ID                  uuid.UUID       `db:"id"`
	Number              string          `db:"number"`
	Type                string          `db:"type"`
	Status              string          `db:"status"`
	TrackingStatus      string          `db:"tracking_status"`
	InstallationStatus  sql.NullString  `db:"installation_status"`
	Total               decimal.Decimal `db:"total"`
	Paid                decimal.Decimal `db:"paid"`
	ManufacturingID     uuid.NullUUID   `db:"manufacturing_order_id"`
	ManufacturingStatus sql.NullString  `db:"manufacturing_status"`
	ProductionLine      sql.NullString  `db:"production_line"`
}

type scheduleRow struct {
	ID           uuid.UUID    `db:"id"`
	ScheduledFor sql.NullTime `db:"scheduled_for"`
	Status       string       `db:"status"`
}

func (h GetOrderTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTrackingQuery,
) (*GetOrderTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	id := query.OrderID().Bytes()

	var row trackingRow
	err := h.db.GetContext(ctx, &row, h.db.Rebind(`
		SELECT
			o.id,
			o.number,
			o.type,
			o.status,
			o.tracking_status,
			o.installation_status,
			o.total,
			COALESCE((SELECT SUM(p.amount) FROM payments p WHERE p.order_id = o.id), 0) AS paid,
			mo.id AS manufacturing_order_id,
			mo.status AS manufacturing_status,
			pl.name AS production_line
		FROM orders o
		LEFT JOIN manufacturing_orders mo ON mo.order_id = o.id
		LEFT JOIN production_lines pl ON pl.id = mo.production_line_id
		WHERE o.id = ?
	`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return nil, err
	}

	var schedules []scheduleRow
	err = h.db.SelectContext(ctx, &schedules, h.db.Rebind(`
		SELECT id, scheduled_for, status
		FROM installation_schedules
		WHERE order_id = ?
		ORDER BY scheduled_for, id
	`), id)
	if err != nil {
		return nil, err
	}

	return trackingView(row, schedules)
}

func trackingView(row trackingRow, schedules []scheduleRow) (*GetOrderTrackingQueryResponse, error) {
	orderID, err := kernel.UUIDFromGoogle(row.ID)
	if err != nil {
		return nil, err
	}
	resp := &GetOrderTrackingQueryResponse{
		OrderID:             orderID,
		Number:              row.Number,
		Type:                row.Type,
		Status:              row.Status,
		TrackingStatus:      row.TrackingStatus,
		InstallationStatus:  row.InstallationStatus.String,
		Total:               row.Total,
		Paid:                row.Paid,
		Outstanding:         decimal.Max(row.Total.Sub(row.Paid), decimal.Zero),
		ManufacturingStatus: row.ManufacturingStatus.String,
		ProductionLine:      row.ProductionLine.String,
		Schedules:           make([]InstallationSchedule, 0, len(schedules)),
	}
	if row.ManufacturingID.Valid {
		moID, moErr := kernel.UUIDFromGoogle(row.ManufacturingID.UUID)
		if moErr != nil {
			return nil, moErr
		}
		resp.ManufacturingID = &moID
	}
	for _, s := range schedules {
		scheduleID, idErr := kernel.UUIDFromGoogle(s.ID)
		if idErr != nil {
			return nil, idErr
		}
		var at *time.Time
		if s.ScheduledFor.Valid {
			t := s.ScheduledFor.Time
			at = &t
		}
		resp.Schedules = append(resp.Schedules, InstallationSchedule{ID: scheduleID, ScheduledFor: at, Status: s.Status})
	}
	return resp, nil
}
