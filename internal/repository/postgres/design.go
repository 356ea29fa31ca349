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

// StoreDesign inserts a filter design, assigning an ID when unset
func (r *PostgresMeasurementRepository) StoreDesign(ctx context.Context, design *models.FilterDesign) error {
	if design.ID == "" {
		design.ID = uuid.New().String()
	}
	if design.CreatedAt.IsZero() {
		design.CreatedAt = time.Now().UTC()
	}

	config, err := json.Marshal(design.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal design config: %w", err)
	}
	coefficients, err := json.Marshal(design.Result.Coefficients)
	if err != nil {
		return fmt.Errorf("failed to marshal coefficients: %w", err)
	}
	response, err := json.Marshal(design.Result.FrequencyResponse)
	if err != nil {
		return fmt.Errorf("failed to marshal frequency response: %w", err)
	}
	metadata, err := json.Marshal(design.Result.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal design metadata: %w", err)
	}

	query := `
		INSERT INTO filter_designs (id, measurement_id, config, coefficients, frequency_response, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.ExecContext(ctx, query,
		design.ID,
		design.MeasurementID,
		string(config),
		string(coefficients),
		string(response),
		string(metadata),
		design.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to store design: %w", err)
	}
	return nil
}

// GetDesign retrieves a filter design by ID
func (r *PostgresMeasurementRepository) GetDesign(ctx context.Context, id uuid.UUID) (*models.FilterDesign, error) {
	query := `
		SELECT id, measurement_id, config, coefficients, frequency_response, metadata, created_at
		FROM filter_designs
		WHERE id = $1`

	var d models.FilterDesign
	var config, coefficients, response, metadata string

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID,
		&d.MeasurementID,
		&config,
		&coefficients,
		&response,
		&metadata,
		&d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	columns := []struct {
		name string
		raw  string
		dst  any
	}{
		{"config", config, &d.Config},
		{"coefficients", coefficients, &d.Result.Coefficients},
		{"frequency response", response, &d.Result.FrequencyResponse},
		{"metadata", metadata, &d.Result.Metadata},
	}
	for _, c := range columns {
		if err := json.Unmarshal([]byte(c.raw), c.dst); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", c.name, err)
		}
	}

	return &d, nil
}
