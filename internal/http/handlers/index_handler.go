package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"cdvtrack/internal/models"
)

// StationLister lists stations for page rendering.
type StationLister interface {
	ListStations(ctx context.Context) ([]models.Station, error)
}

// NewIndexHandler renders the station-selection page.
func NewIndexHandler(stations StationLister, templates *Templates, logger *zap.Logger) http.HandlerFunc {
	type pageData struct {
		Stations   []models.Station
		SelectedID string
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		list, err := stations.ListStations(r.Context())
		if err != nil {
			logger.Error("list stations", zap.Error(err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		templates.render(w, "index.html", pageData{
			Stations:   list,
			SelectedID: r.URL.Query().Get("estacao_id"),
		})
	}
}
