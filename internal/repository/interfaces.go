package repository

import (
	"context"
	"errors"

	"github.com/RMahshie/trfdesign/pkg/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a lookup matches no row
var ErrNotFound = errors.New("record not found")

// MeasurementRepository defines the interface for measurement data operations
type MeasurementRepository interface {
	Create(ctx context.Context, measurement *models.Measurement) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Measurement, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, progress int) error
	UpdateError(ctx context.Context, id uuid.UUID, errorMsg string) error
	StoreMeasurementSet(ctx context.Context, results *models.MeasurementResults) error
	GetMeasurementSet(ctx context.Context, measurementID uuid.UUID) (*models.MeasurementResults, error)
}

// DesignRepository defines the interface for filter design operations
type DesignRepository interface {
	StoreDesign(ctx context.Context, design *models.FilterDesign) error
	GetDesign(ctx context.Context, id uuid.UUID) (*models.FilterDesign, error)
}

// Repository is the full persistence surface used by the processing service
type Repository interface {
	MeasurementRepository
	DesignRepository
}
