package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"cdvtrack/internal/models"
)

// NewReportPageHandler renders the report filter-selection page.
func NewReportPageHandler(stations StationLister, templates *Templates, logger *zap.Logger) http.HandlerFunc {
	type pageData struct {
		Stations        []models.Station
		LastStationName string
		MaintenanceType string
	}

	return func(w http.ResponseWriter, r *http.Request) {
		list, err := stations.ListStations(r.Context())
		if err != nil {
			logger.Error("list stations", zap.Error(err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		query := r.URL.Query()
		templates.render(w, "gerar_relatorio_excel.html", pageData{
			Stations:        list,
			LastStationName: query.Get("last_estacao_nome"),
			MaintenanceType: query.Get("tipo_manutencao"),
		})
	}
}
