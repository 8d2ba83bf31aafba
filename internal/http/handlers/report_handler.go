package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"cdvtrack/internal/report"
	"cdvtrack/internal/repository"
	"cdvtrack/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportGenerator builds the filtered workbook.
type ReportGenerator interface {
	Generate(ctx context.Context, req service.ReportRequest) (*report.Document, error)
}

// NewReportHandler handles GET /gerar_excel/: it streams the Excel workbook
// for the requested station and filters.
func NewReportHandler(reports ReportGenerator, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		rawID := query.Get("estacao_id")
		if rawID == "" {
			http.Error(w, "Por favor, selecione uma estação.", http.StatusBadRequest)
			return
		}
		stationID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		doc, err := reports.Generate(r.Context(), service.ReportRequest{
			StationID:       stationID,
			Circuit:         query.Get("circuito_filtro"),
			MaintenanceType: query.Get("tipo_manutencao"),
			StartDate:       query.Get("data_inicio"),
			EndDate:         query.Get("data_fim"),
		})
		if err != nil {
			if errors.Is(err, repository.ErrStationNotFound) {
				http.NotFound(w, r)
				return
			}
			logger.Error("generate report", zap.Int64("station_id", stationID), zap.Error(err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename()))
		if err := doc.Write(w); err != nil {
			logger.Error("stream report", zap.Error(err))
		}
	}
}
