package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"cdvtrack/internal/models"
	"cdvtrack/internal/repository"
)

type fakeReportStore struct {
	station      *models.Station
	stationErr   error
	lastFilter   repository.ReadingFilter
	transmitters []models.Transmitter
	receivers    []models.Receiver
}

func (f *fakeReportStore) StationByID(_ context.Context, id int64) (*models.Station, error) {
	if f.stationErr != nil {
		return nil, f.stationErr
	}
	return f.station, nil
}

func (f *fakeReportStore) TransmittersForReport(_ context.Context, filter repository.ReadingFilter) ([]models.Transmitter, error) {
	f.lastFilter = filter
	return f.transmitters, nil
}

func (f *fakeReportStore) ReceiversForReport(_ context.Context, filter repository.ReadingFilter) ([]models.Receiver, error) {
	f.lastFilter = filter
	return f.receivers, nil
}

func TestGenerateBuildsFilter(t *testing.T) {
	store := &fakeReportStore{station: &models.Station{ID: 3, Name: "ETV Leste"}}
	svc := NewReportService(store, zap.NewNop())

	doc, err := svc.Generate(context.Background(), ReportRequest{
		StationID:       3,
		Circuit:         "C1",
		MaintenanceType: "corretivas",
		StartDate:       "2026-03-01",
		EndDate:         "2026-03-31",
	})
	if err != nil {
		t.Fatal(err)
	}
	if doc.Filename() != "dados_ETV Leste.xlsx" {
		t.Errorf("filename = %q", doc.Filename())
	}

	f := store.lastFilter
	if f.StationID != 3 || f.Circuit != "C1" {
		t.Errorf("station/circuit filter = %d/%q", f.StationID, f.Circuit)
	}
	if !f.HasType || f.MaintenanceType != models.MaintenanceCorrective {
		t.Errorf("type filter = (%v, %q)", f.HasType, f.MaintenanceType)
	}
	if f.Start == nil || !f.Start.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", f.Start)
	}
	if f.End == nil || !f.End.Equal(time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v", f.End)
	}
}

func TestGenerateDropsBadDatesAndUnknownType(t *testing.T) {
	store := &fakeReportStore{station: &models.Station{ID: 1, Name: "ETV Norte"}}
	svc := NewReportService(store, zap.NewNop())

	if _, err := svc.Generate(context.Background(), ReportRequest{
		StationID:       1,
		MaintenanceType: "todas",
		StartDate:       "01/03/2026",
		EndDate:         "not-a-date",
	}); err != nil {
		t.Fatal(err)
	}

	f := store.lastFilter
	if f.Start != nil || f.End != nil {
		t.Errorf("bad dates must be ignored: %v / %v", f.Start, f.End)
	}
	if f.HasType {
		t.Errorf("unrecognized type must not filter, got %q", f.MaintenanceType)
	}
}

func TestGenerateStationLookupError(t *testing.T) {
	store := &fakeReportStore{stationErr: repository.ErrStationNotFound}
	svc := NewReportService(store, zap.NewNop())

	if _, err := svc.Generate(context.Background(), ReportRequest{StationID: 99}); err == nil {
		t.Fatal("expected station lookup error")
	}
}
