package repository

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strconv"
	"strings"

	"cdvtrack/internal/models"
)

// ListStations returns all stations ordered by name.
func (s *Store) ListStations(ctx context.Context) ([]models.Station, error) {
	const query = `SELECT id, name FROM stations ORDER BY name`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stations []models.Station
	for rows.Next() {
		var st models.Station
		if err := rows.Scan(&st.ID, &st.Name); err != nil {
			return nil, err
		}
		stations = append(stations, st)
	}
	return stations, rows.Err()
}

// StationByID fetches one station.
func (s *Store) StationByID(ctx context.Context, id int64) (*models.Station, error) {
	const query = `SELECT id, name FROM stations WHERE id = $1`
	return scanStation(s.db.QueryRowContext(ctx, query, id))
}

// StationByName fetches a station by its exact name.
func (s *Store) StationByName(ctx context.Context, name string) (*models.Station, error) {
	const query = `SELECT id, name FROM stations WHERE name = $1`
	return scanStation(s.db.QueryRowContext(ctx, query, name))
}

// ResolveStation accepts a numeric id or an exact name, trying the id first.
func (s *Store) ResolveStation(ctx context.Context, idOrName string) (*models.Station, error) {
	idOrName = strings.TrimSpace(idOrName)
	if id, err := strconv.ParseInt(idOrName, 10, 64); err == nil {
		if st, err := s.StationByID(ctx, id); err == nil {
			return st, nil
		} else if !errors.Is(err, ErrStationNotFound) {
			return nil, err
		}
	}
	return s.StationByName(ctx, idOrName)
}

// EnsureStation creates a station if it does not exist yet.
func (s *Store) EnsureStation(ctx context.Context, name string) error {
	const query = `INSERT INTO stations (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`
	_, err := s.db.ExecContext(ctx, query, name)
	return err
}

// DistinctCircuits returns the sorted union of circuit codes already
// recorded for the station, across transmitters and receivers.
func (s *Store) DistinctCircuits(ctx context.Context, stationID int64) ([]string, error) {
	const query = `
		SELECT circuit FROM transmitters WHERE station_id = $1
		UNION
		SELECT circuit FROM receivers WHERE station_id = $1
	`
	rows, err := s.db.QueryContext(ctx, query, stationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var circuits []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		if c = strings.TrimSpace(c); c != "" {
			circuits = append(circuits, c)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Strings(circuits)
	return circuits, nil
}

func scanStation(row *sql.Row) (*models.Station, error) {
	var st models.Station
	if err := row.Scan(&st.ID, &st.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStationNotFound
		}
		return nil, err
	}
	return &st, nil
}
