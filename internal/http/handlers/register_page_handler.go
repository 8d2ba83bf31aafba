package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"cdvtrack/internal/models"
	"cdvtrack/internal/repository"
)

// StationResolver resolves a station by id-or-name and lists its circuits.
type StationResolver interface {
	ResolveStation(ctx context.Context, idOrName string) (*models.Station, error)
	DistinctCircuits(ctx context.Context, stationID int64) ([]string, error)
}

// NewRegisterPageHandler renders the reading-capture page with the circuits
// already recorded for the selected station. A missing or unknown station
// sends the user back to the index.
func NewRegisterPageHandler(stations StationResolver, templates *Templates, logger *zap.Logger) http.HandlerFunc {
	type pageData struct {
		StationName string
		StationID   int64
		Circuits    []string
	}

	return func(w http.ResponseWriter, r *http.Request) {
		param := r.URL.Query().Get("estacao")
		if param == "" {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		station, err := stations.ResolveStation(r.Context(), param)
		if err != nil {
			if errors.Is(err, repository.ErrStationNotFound) {
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}
			logger.Error("resolve station", zap.String("param", param), zap.Error(err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		circuits, err := stations.DistinctCircuits(r.Context(), station.ID)
		if err != nil {
			logger.Error("list circuits", zap.Int64("station_id", station.ID), zap.Error(err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		templates.render(w, "registrar_cdv.html", pageData{
			StationName: station.Name,
			StationID:   station.ID,
			Circuits:    circuits,
		})
	}
}
