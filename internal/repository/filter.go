package repository

import (
	"time"

	"cdvtrack/internal/models"
)

// ReadingKey identifies the logical reading being reconciled: a second
// submission for the same key on the same calendar day updates in place.
type ReadingKey struct {
	StationID      int64
	Circuit        string
	Code           string
	CollectionTime *string
	Day            time.Time
}

// ReadingFilter narrows report queries. Zero values mean "no filter" except
// StationID, which is always required.
type ReadingFilter struct {
	StationID       int64
	Circuit         string
	MaintenanceType models.MaintenanceType
	HasType         bool
	Start           *time.Time
	End             *time.Time
}
