package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/vitascope/internal/logger"
	"github.com/MKhiriev/vitascope/models"
)

type measurementRepository struct {
	*DB
	logger *logger.Logger
}

// NewMeasurementRepository constructs a [MeasurementRepository] backed by db.
func NewMeasurementRepository(db *DB, logger *logger.Logger) MeasurementRepository {
	logger.Debug().Msg("creating measurement repository")
	return &measurementRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveMeasurement appends m and returns it with its id.
func (r *measurementRepository) SaveMeasurement(ctx context.Context, m models.Measurement) (models.Measurement, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSaveMeasurementQuery(r.builder(), m)
	if err != nil {
		log.Err(err).Str("func", "*measurementRepository.SaveMeasurement").Msg("failed to create query")
		return models.Measurement{}, err
	}

	err = r.withRetry(ctx, func(ctx context.Context) error {
		return r.DB.QueryRowContext(ctx, query, args...).Scan(&m.ID)
	})
	if err != nil {
		log.Err(err).
			Str("func", "*measurementRepository.SaveMeasurement").
			Str("device_id", m.DeviceID).
			Msg("failed to insert measurement")
		return models.Measurement{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return m, nil
}

// GetLatestMeasurement returns the newest row or [ErrNoMeasurementsFound].
func (r *measurementRepository) GetLatestMeasurement(ctx context.Context) (models.Measurement, error) {
	recent, err := r.GetRecentMeasurements(ctx, 1)
	if err != nil {
		return models.Measurement{}, err
	}
	if len(recent) == 0 {
		return models.Measurement{}, ErrNoMeasurementsFound
	}
	return recent[0], nil
}

// GetRecentMeasurements returns up to limit rows, newest first.
func (r *measurementRepository) GetRecentMeasurements(ctx context.Context, limit uint64) ([]models.Measurement, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildRecentMeasurementsQuery(r.builder(), limit)
	if err != nil {
		log.Err(err).Str("func", "*measurementRepository.GetRecentMeasurements").Msg("failed to create query")
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*measurementRepository.GetRecentMeasurements").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	result := make([]models.Measurement, 0, limit)
	for rows.Next() {
		var m models.Measurement
		if err := rows.Scan(&m.ID, &m.Timestamp, &m.DeviceID, &m.HeartRate, &m.SpO2, &m.Resp); err != nil {
			log.Err(err).Str("func", "*measurementRepository.GetRecentMeasurements").Msg("failed to scan measurement")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*measurementRepository.GetRecentMeasurements").Msg("rows iteration error")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return result, nil
}
