package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"cdvtrack/internal/models"
	"cdvtrack/internal/repository"
)

// ErrStationNameMissing means the batch carried no station name.
var ErrStationNameMissing = errors.New("station name not provided")

// StationNotFoundError reports the station the batch referenced.
type StationNotFoundError struct {
	Name string
}

func (e *StationNotFoundError) Error() string {
	return fmt.Sprintf("station %q not found", e.Name)
}

// ReadingStore is the persistence contract the reconciler needs.
type ReadingStore interface {
	StationByName(ctx context.Context, name string) (*models.Station, error)
	InTx(ctx context.Context, fn func(tx repository.Tx) error) error
}

// ReadingsService reconciles submitted batches against stored readings: each
// entry updates at most one same-day row or creates a new one, atomically for
// the whole batch.
type ReadingsService struct {
	store  ReadingStore
	logger *zap.Logger
	now    func() time.Time
}

// NewReadingsService builds the reconciler.
func NewReadingsService(store ReadingStore, logger *zap.Logger) *ReadingsService {
	return &ReadingsService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// SaveBatch persists every entry of the batch in one transaction.
func (s *ReadingsService) SaveBatch(ctx context.Context, batch Batch) error {
	name := strings.TrimSpace(batch.Station)
	if name == "" {
		return ErrStationNameMissing
	}

	station, err := s.store.StationByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrStationNotFound) {
			return &StationNotFoundError{Name: name}
		}
		return err
	}

	today := s.now()

	err = s.store.InTx(ctx, func(tx repository.Tx) error {
		for i := range batch.Transmitters {
			if err := s.upsertTransmitter(ctx, tx, station.ID, today, &batch.Transmitters[i]); err != nil {
				return err
			}
		}
		for i := range batch.Receivers {
			if err := s.upsertReceiver(ctx, tx, station.ID, today, &batch.Receivers[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("batch saved",
		zap.String("station", station.Name),
		zap.Int("transmitters", len(batch.Transmitters)),
		zap.Int("receivers", len(batch.Receivers)))
	return nil
}

func (s *ReadingsService) upsertTransmitter(ctx context.Context, tx repository.Tx, stationID int64, today time.Time, e *TransmitterEntry) error {
	key := repository.ReadingKey{
		StationID:      stationID,
		Circuit:        e.Circuit.Value,
		Code:           e.Code.Value,
		CollectionTime: collectionTime(e.CollectionTime),
		Day:            today,
	}
	temp := temperature(e.TempCelsius, e.LocalTemp)
	kind := models.NormalizeMaintenanceType(e.MaintenanceType.Value)

	existing, err := tx.LatestSameDayTransmitter(ctx, key)
	if err != nil {
		return err
	}

	if existing != nil {
		// A later update without temperature keeps the recorded one.
		if temp != nil {
			existing.TempCelsius = temp
		}
		existing.Vout = e.Vout.Value
		existing.Pout = e.Pout.Value
		existing.Tap = e.Tap.Value
		existing.TxType = e.TxType.Value
		existing.MaintenanceType = kind
		return tx.UpdateTransmitter(ctx, existing)
	}

	return tx.InsertTransmitter(ctx, &models.Transmitter{
		StationID:       stationID,
		Circuit:         key.Circuit,
		Code:            key.Code,
		Vout:            e.Vout.Value,
		Pout:            e.Pout.Value,
		Tap:             e.Tap.Value,
		TxType:          e.TxType.Value,
		MaintenanceAt:   s.now(),
		CollectionTime:  key.CollectionTime,
		TempCelsius:     temp,
		MaintenanceType: kind,
	})
}

func (s *ReadingsService) upsertReceiver(ctx context.Context, tx repository.Tx, stationID int64, today time.Time, e *ReceiverEntry) error {
	key := repository.ReadingKey{
		StationID:      stationID,
		Circuit:        e.Circuit.Value,
		Code:           e.Code.Value,
		CollectionTime: collectionTime(e.CollectionTime),
		Day:            today,
	}
	temp := temperature(e.TempCelsius, e.LocalTemp)
	kind := models.NormalizeMaintenanceType(e.MaintenanceType.Value)
	ratio := deriveRatio(e.IAV.Value, e.ITH.Value, e.Ratio.Value)

	existing, err := tx.LatestSameDayReceiver(ctx, key)
	if err != nil {
		return err
	}

	if existing != nil {
		if temp != nil {
			existing.TempCelsius = temp
		}
		existing.IAV = e.IAV.Value
		existing.ITH = e.ITH.Value
		existing.Ratio = ratio
		existing.MaintenanceType = kind
		return tx.UpdateReceiver(ctx, existing)
	}

	return tx.InsertReceiver(ctx, &models.Receiver{
		StationID:       stationID,
		Circuit:         key.Circuit,
		Code:            key.Code,
		IAV:             e.IAV.Value,
		ITH:             e.ITH.Value,
		Ratio:           ratio,
		MaintenanceAt:   s.now(),
		CollectionTime:  key.CollectionTime,
		TempCelsius:     temp,
		MaintenanceType: kind,
	})
}

// deriveRatio computes ITH/IAV as a "NN.NN%" string. Either value being zero
// or absent falls back to the ratio the client supplied directly, then null.
func deriveRatio(iav, ith, explicit *float64) *string {
	if iav != nil && ith != nil && *iav != 0 && *ith != 0 {
		s := fmt.Sprintf("%.2f%%", (*ith / *iav) * 100)
		return &s
	}
	if explicit != nil {
		s := fmt.Sprintf("%.2f%%", *explicit)
		return &s
	}
	return nil
}
