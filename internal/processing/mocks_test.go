package processing

import (
	"context"

	"github.com/RMahshie/trfdesign/internal/events"
	"github.com/RMahshie/trfdesign/pkg/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockRepository implements repository.Repository for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, measurement *models.Measurement) error {
	args := m.Called(ctx, measurement)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Measurement, error) {
	args := m.Called(ctx, id)
	measurement, _ := args.Get(0).(*models.Measurement)
	return measurement, args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, progress int) error {
	args := m.Called(ctx, id, status, progress)
	return args.Error(0)
}

func (m *MockRepository) UpdateError(ctx context.Context, id uuid.UUID, errorMsg string) error {
	args := m.Called(ctx, id, errorMsg)
	return args.Error(0)
}

func (m *MockRepository) StoreMeasurementSet(ctx context.Context, results *models.MeasurementResults) error {
	args := m.Called(ctx, results)
	return args.Error(0)
}

func (m *MockRepository) GetMeasurementSet(ctx context.Context, measurementID uuid.UUID) (*models.MeasurementResults, error) {
	args := m.Called(ctx, measurementID)
	results, _ := args.Get(0).(*models.MeasurementResults)
	return results, args.Error(1)
}

func (m *MockRepository) StoreDesign(ctx context.Context, design *models.FilterDesign) error {
	args := m.Called(ctx, design)
	return args.Error(0)
}

func (m *MockRepository) GetDesign(ctx context.Context, id uuid.UUID) (*models.FilterDesign, error) {
	args := m.Called(ctx, id)
	design, _ := args.Get(0).(*models.FilterDesign)
	return design, args.Error(1)
}

// MockS3Service implements storage.S3Service for testing
type MockS3Service struct {
	mock.Mock
}

func (m *MockS3Service) GenerateUploadURL(ctx context.Context, key string, contentType string) (string, error) {
	args := m.Called(ctx, key, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockS3Service) GenerateDownloadURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockS3Service) DownloadFile(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockS3Service) UploadFile(ctx context.Context, key string, contentType string, data []byte) error {
	args := m.Called(ctx, key, contentType, data)
	return args.Error(0)
}

func (m *MockS3Service) DeleteFile(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// recordingPublisher collects published events
type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(eventType events.EventType, subjectID string, err error) bool {
	p.events = append(p.events, events.Event{Type: eventType, SubjectID: subjectID, Err: err})
	return true
}
