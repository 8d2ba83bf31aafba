package repository

import (
	"context"
	"database/sql"
	"errors"

	"cdvtrack/internal/models"
)

const transmitterColumns = `
	id, station_id, circuit, code, vout, pout, tap, tx_type,
	maintenance_at, collection_time, temp_celsius, maintenance_type
`

// LatestSameDayTransmitter finds the newest transmitter row matching the key
// whose maintenance date equals the key's calendar day. Returns nil when the
// day has no matching row yet.
func (t *readingTx) LatestSameDayTransmitter(ctx context.Context, key ReadingKey) (*models.Transmitter, error) {
	const query = `
		SELECT` + transmitterColumns + `
		FROM transmitters
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

	tx, err := scanTransmitter(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return tx, err
}

// InsertTransmitter creates a new reading row.
func (t *readingTx) InsertTransmitter(ctx context.Context, tr *models.Transmitter) error {
	const query = `
		INSERT INTO transmitters
			(station_id, circuit, code, vout, pout, tap, tx_type,
			 maintenance_at, collection_time, temp_celsius, maintenance_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	return t.q.QueryRowContext(ctx, query,
		tr.StationID, tr.Circuit, tr.Code, tr.Vout, tr.Pout, tr.Tap, tr.TxType,
		tr.MaintenanceAt, tr.CollectionTime, tr.TempCelsius, tr.MaintenanceType,
	).Scan(&tr.ID)
}

// UpdateTransmitter overwrites the mutable fields of an existing row.
func (t *readingTx) UpdateTransmitter(ctx context.Context, tr *models.Transmitter) error {
	const query = `
		UPDATE transmitters
		SET vout = $2,
		    pout = $3,
		    tap = $4,
		    tx_type = $5,
		    temp_celsius = $6,
		    maintenance_type = $7
		WHERE id = $1
	`
	result, err := t.q.ExecContext(ctx, query,
		tr.ID, tr.Vout, tr.Pout, tr.Tap, tr.TxType, tr.TempCelsius, tr.MaintenanceType)
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

// TransmittersForReport returns filtered transmitter readings ordered for the
// report. Rows without temperature are never reportable.
func (s *Store) TransmittersForReport(ctx context.Context, f ReadingFilter) ([]models.Transmitter, error) {
	query := `
		SELECT` + transmitterColumns + `
		FROM transmitters
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

	var result []models.Transmitter
	for rows.Next() {
		tr, err := scanTransmitter(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *tr)
	}
	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransmitter(row rowScanner) (*models.Transmitter, error) {
	var tr models.Transmitter
	if err := row.Scan(
		&tr.ID,
		&tr.StationID,
		&tr.Circuit,
		&tr.Code,
		&tr.Vout,
		&tr.Pout,
		&tr.Tap,
		&tr.TxType,
		&tr.MaintenanceAt,
		&tr.CollectionTime,
		&tr.TempCelsius,
		&tr.MaintenanceType,
	); err != nil {
		return nil, err
	}
	return &tr, nil
}
