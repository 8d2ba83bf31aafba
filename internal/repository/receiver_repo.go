package repository

import (
	"context"
	"database/sql"
	"errors"

	"cdvtrack/internal/models"
)

const receiverColumns = `
	id, station_id, circuit, code, iav, ith, ratio,
	maintenance_at, collection_time, temp_celsius, maintenance_type
`

// LatestSameDayReceiver finds the newest receiver row matching the key whose
// maintenance date equals the key's calendar day. Returns nil when the day
// has no matching row yet.
func (t *readingTx) LatestSameDayReceiver(ctx context.Context, key ReadingKey) (*models.Receiver, error) {
	const query = `
		SELECT` + receiverColumns + `
		FROM receivers
		WHERE station_id = $1
		  AND circuit = $2
		  AND code = $3
		  AND collection_time IS NOT DISTINCT FROM $4
		  AND maintenance_at::date = $5::date
		ORDER BY id DESC
		LIMIT 1
	`
	row := t.q.QueryRowContext(ctx, query,
		key.StationID, key.Circuit, key.Code, key.CollectionTime, key.Day.Format("2006-01-02"))

	rx, err := scanReceiver(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rx, err
}

// InsertReceiver creates a new reading row.
func (t *readingTx) InsertReceiver(ctx context.Context, rc *models.Receiver) error {
	const query = `
		INSERT INTO receivers
			(station_id, circuit, code, iav, ith, ratio,
			 maintenance_at, collection_time, temp_celsius, maintenance_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	return t.q.QueryRowContext(ctx, query,
		rc.StationID, rc.Circuit, rc.Code, rc.IAV, rc.ITH, rc.Ratio,
		rc.MaintenanceAt, rc.CollectionTime, rc.TempCelsius, rc.MaintenanceType,
	).Scan(&rc.ID)
}

// UpdateReceiver overwrites the mutable fields of an existing row.
func (t *readingTx) UpdateReceiver(ctx context.Context, rc *models.Receiver) error {
	const query = `
		UPDATE receivers
		SET iav = $2,
		    ith = $3,
		    ratio = $4,
		    temp_celsius = $5,
		    maintenance_type = $6
		WHERE id = $1
	`
	result, err := t.q.ExecContext(ctx, query,
		rc.ID, rc.IAV, rc.ITH, rc.Ratio, rc.TempCelsius, rc.MaintenanceType)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ReceiversForReport returns filtered receiver readings ordered for the report.
func (s *Store) ReceiversForReport(ctx context.Context, f ReadingFilter) ([]models.Receiver, error) {
	query := `
		SELECT` + receiverColumns + `
		FROM receivers
		WHERE station_id = $1
	`
	args := []any{f.StationID}
	query, args = appendReadingFilters(query, args, f)
	query += ` ORDER BY maintenance_at, collection_time NULLS FIRST, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Receiver
	for rows.Next() {
		rc, err := scanReceiver(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rc)
	}
	return result, rows.Err()
}

func scanReceiver(row rowScanner) (*models.Receiver, error) {
	var rc models.Receiver
	if err := row.Scan(
		&rc.ID,
		&rc.StationID,
		&rc.Circuit,
		&rc.Code,
		&rc.IAV,
		&rc.ITH,
		&rc.Ratio,
		&rc.MaintenanceAt,
		&rc.CollectionTime,
		&rc.TempCelsius,
		&rc.MaintenanceType,
	); err != nil {
		return nil, err
	}
	return &rc, nil
}
