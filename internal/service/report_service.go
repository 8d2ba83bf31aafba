package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"cdvtrack/internal/models"
	"cdvtrack/internal/report"
	"cdvtrack/internal/repository"
)

// ReportStore is the read-only persistence contract for report generation.
type ReportStore interface {
	StationByID(ctx context.Context, id int64) (*models.Station, error)
	TransmittersForReport(ctx context.Context, f repository.ReadingFilter) ([]models.Transmitter, error)
	ReceiversForReport(ctx context.Context, f repository.ReadingFilter) ([]models.Receiver, error)
}

// ReportRequest carries the raw filter parameters. Dates are YYYY-MM-DD;
// unparseable dates drop that bound instead of failing.
type ReportRequest struct {
	StationID       int64
	Circuit         string
	MaintenanceType string
	StartDate       string
	EndDate         string
}

// ReportService filters stored readings and renders the Excel workbook.
type ReportService struct {
	store  ReportStore
	logger *zap.Logger
}

// NewReportService builds the report generator.
func NewReportService(store ReportStore, logger *zap.Logger) *ReportService {
	return &ReportService{store: store, logger: logger}
}

// Generate builds the workbook for the requested station and filters.
func (s *ReportService) Generate(ctx context.Context, req ReportRequest) (*report.Document, error) {
	station, err := s.store.StationByID(ctx, req.StationID)
	if err != nil {
		return nil, err
	}

	filter := repository.ReadingFilter{
		StationID: station.ID,
		Circuit:   req.Circuit,
		Start:     parseDate(req.StartDate),
		End:       parseDate(req.EndDate),
	}
	if kind, ok := models.ParseMaintenanceFilter(req.MaintenanceType); ok {
		filter.MaintenanceType = kind
		filter.HasType = true
	}

	s.logger.Info("report filter",
		zap.Int64("station_id", station.ID),
		zap.String("circuit", req.Circuit),
		zap.String("type_raw", req.MaintenanceType),
		zap.Bool("type_applied", filter.HasType),
		zap.String("start", req.StartDate),
		zap.String("end", req.EndDate))

	transmitters, err := s.store.TransmittersForReport(ctx, filter)
	if err != nil {
		return nil, err
	}
	receivers, err := s.store.ReceiversForReport(ctx, filter)
	if err != nil {
		return nil, err
	}

	s.logger.Info("report rows",
		zap.Int("transmitters", len(transmitters)),
		zap.Int("receivers", len(receivers)))

	doc, err := report.Build(station.Name, transmitters, receivers)
	if err != nil {
		return nil, fmt.Errorf("report: build workbook: %w", err)
	}
	return doc, nil
}

// parseDate returns nil for anything that is not a YYYY-MM-DD date.
func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}
