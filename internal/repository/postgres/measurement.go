package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RMahshie/trfdesign/internal/repository"
	"github.com/RMahshie/trfdesign/pkg/models"
	"github.com/google/uuid"
)

// PostgresMeasurementRepository implements repository.Repository for PostgreSQL
type PostgresMeasurementRepository struct {
	db *sql.DB
}

// NewPostgresMeasurementRepository creates a new PostgreSQL measurement repository
func NewPostgresMeasurementRepository(db *sql.DB) repository.Repository {
	return &PostgresMeasurementRepository{db: db}
}

// Create inserts a new measurement record, assigning an ID and timestamps when unset
func (r *PostgresMeasurementRepository) Create(ctx context.Context, measurement *models.Measurement) error {
	if measurement.ID == "" {
		measurement.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if measurement.CreatedAt.IsZero() {
		measurement.CreatedAt = now
	}
	if measurement.UpdatedAt.IsZero() {
		measurement.UpdatedAt = now
	}
	if measurement.Status == "" {
		measurement.Status = models.StatusPending
	}

	query := `
		INSERT INTO measurements (id, session_id, file_name, status, progress, source_s3_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		measurement.ID,
		measurement.SessionID,
		measurement.FileName,
		measurement.Status,
		measurement.Progress,
		measurement.SourceS3Key,
		measurement.CreatedAt,
		measurement.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert measurement: %w", err)
	}
	return nil
}

// GetByID retrieves a measurement by ID
func (r *PostgresMeasurementRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Measurement, error) {
	query := `
		SELECT id, session_id, file_name, status, progress, source_s3_key, error_message, created_at, updated_at, completed_at
		FROM measurements
		WHERE id = $1`

	var m models.Measurement
	var sourceKey, errorMsg sql.NullString
	var completedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID,
		&m.SessionID,
		&m.FileName,
		&m.Status,
		&m.Progress,
		&sourceKey,
		&errorMsg,
		&m.CreatedAt,
		&m.UpdatedAt,
		&completedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if sourceKey.Valid {
		m.SourceS3Key = &sourceKey.String
	}
	if errorMsg.Valid {
		m.ErrorMsg = &errorMsg.String
	}
	if completedAt.Valid {
		m.CompletedAt = &completedAt.Time
	}

	return &m, nil
}

// UpdateStatus updates the status and progress of a measurement
func (r *PostgresMeasurementRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, progress int) error {
	query := `
		UPDATE measurements
		SET status = $1, progress = $2, updated_at = NOW(),
		    completed_at = CASE WHEN $1 = 'completed' THEN NOW() ELSE completed_at END
		WHERE id = $3`

	return execOne(ctx, r.db, query, status, progress, id)
}

// UpdateError marks a measurement failed with the given message
func (r *PostgresMeasurementRepository) UpdateError(ctx context.Context, id uuid.UUID, errorMsg string) error {
	query := `
		UPDATE measurements
		SET status = 'failed', error_message = $1, updated_at = NOW()
		WHERE id = $2`

	return execOne(ctx, r.db, query, errorMsg, id)
}

// StoreMeasurementSet stores the parsed set and its quality report, replacing any earlier parse
func (r *PostgresMeasurementRepository) StoreMeasurementSet(ctx context.Context, results *models.MeasurementResults) error {
	if results.ID == "" {
		results.ID = uuid.New().String()
	}
	if results.CreatedAt.IsZero() {
		results.CreatedAt = time.Now().UTC()
	}

	set, err := json.Marshal(results.Set)
	if err != nil {
		return fmt.Errorf("failed to marshal measurement set: %w", err)
	}
	assessment, err := json.Marshal(results.Assessment)
	if err != nil {
		return fmt.Errorf("failed to marshal assessment: %w", err)
	}
	var analysis []byte
	if results.Analysis != nil {
		analysis, err = json.Marshal(results.Analysis)
		if err != nil {
			return fmt.Errorf("failed to marshal analysis: %w", err)
		}
	}

	query := `
		INSERT INTO measurement_sets (id, measurement_id, measurement_set, analysis, assessment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (measurement_id) DO UPDATE
		SET measurement_set = EXCLUDED.measurement_set,
		    analysis = EXCLUDED.analysis,
		    assessment = EXCLUDED.assessment,
		    created_at = EXCLUDED.created_at`

	_, err = r.db.ExecContext(ctx, query,
		results.ID,
		results.MeasurementID,
		string(set),
		nullableJSON(analysis),
		string(assessment),
		results.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to store measurement set: %w", err)
	}
	return nil
}

// GetMeasurementSet retrieves the stored parse of a measurement
func (r *PostgresMeasurementRepository) GetMeasurementSet(ctx context.Context, measurementID uuid.UUID) (*models.MeasurementResults, error) {
	query := `
		SELECT id, measurement_id, measurement_set, analysis, assessment, created_at
		FROM measurement_sets
		WHERE measurement_id = $1`

	var results models.MeasurementResults
	var set, assessment string
	var analysis sql.NullString

	err := r.db.QueryRowContext(ctx, query, measurementID).Scan(
		&results.ID,
		&results.MeasurementID,
		&set,
		&analysis,
		&assessment,
		&results.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(set), &results.Set); err != nil {
		return nil, fmt.Errorf("failed to unmarshal measurement set: %w", err)
	}
	if err := json.Unmarshal([]byte(assessment), &results.Assessment); err != nil {
		return nil, fmt.Errorf("failed to unmarshal assessment: %w", err)
	}
	if analysis.Valid {
		if err := json.Unmarshal([]byte(analysis.String), &results.Analysis); err != nil {
			return nil, fmt.Errorf("failed to unmarshal analysis: %w", err)
		}
	}

	return &results, nil
}

func execOne(ctx context.Context, db *sql.DB, query string, args ...any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func nullableJSON(b []byte) any {
	if b == nil {
		return nil
	}
	return string(b)
}
