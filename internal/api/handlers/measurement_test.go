package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/RMahshie/trfdesign/internal/apperr"
	"github.com/RMahshie/trfdesign/internal/repository"
	"github.com/RMahshie/trfdesign/internal/storage"
	"github.com/RMahshie/trfdesign/pkg/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	require.True(t, errors.As(err, &se), "expected huma status error, got %v", err)
	return se.GetStatus()
}

func TestCreateMeasurement(t *testing.T) {
	tests := []struct {
		name      string
		fileSize  int64
		mockSetup func(*MockRepository, *MockS3Service)
		wantCode  int
	}{
		{
			name:     "valid TRF file",
			fileSize: 64 * 1024,
			mockSetup: func(repo *MockRepository, s3 *MockS3Service) {
				s3.On("GenerateUploadURL", mock.Anything, mock.AnythingOfType("string"), storage.ContentTypeTRF).
					Return("https://example.com/upload", nil)
				repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Measurement")).Return(nil)
			},
		},
		{
			name:      "file too large",
			fileSize:  models.MaxUploadBytes + 1,
			mockSetup: func(*MockRepository, *MockS3Service) {},
			wantCode:  http.StatusRequestEntityTooLarge,
		},
		{
			name:      "empty file",
			fileSize:  0,
			mockSetup: func(*MockRepository, *MockS3Service) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:     "storage rejects content type",
			fileSize: 1024,
			mockSetup: func(repo *MockRepository, s3 *MockS3Service) {
				s3.On("GenerateUploadURL", mock.Anything, mock.Anything, mock.Anything).
					Return("", fmt.Errorf("invalid content type: x"))
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "database failure",
			fileSize: 1024,
			mockSetup: func(repo *MockRepository, s3 *MockS3Service) {
				s3.On("GenerateUploadURL", mock.Anything, mock.Anything, mock.Anything).Return("https://example.com/upload", nil)
				repo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockRepository{}
			s3 := &MockS3Service{}
			proc := &MockProcessingService{}
			tt.mockSetup(repo, s3)

			handler := NewMeasurementHandler(repo, s3, proc)
			req := &models.CreateMeasurementRequest{Body: models.CreateMeasurementRequestBody{
				SessionID: "test-session-123",
				FileName:  "speaker.trf",
				FileSize:  tt.fileSize,
			}}

			resp, err := handler.CreateMeasurement(context.Background(), req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, statusOf(t, err))
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, resp.Body.ID)
				assert.Equal(t, "https://example.com/upload", resp.Body.UploadURL)
				assert.Equal(t, 900, resp.Body.ExpiresIn)
			}

			repo.AssertExpectations(t)
			s3.AssertExpectations(t)
		})
	}
}

func TestStartProcessing(t *testing.T) {
	id := uuid.New()
	repo := &MockRepository{}
	proc := &MockProcessingService{}
	done := make(chan struct{})

	repo.On("GetByID", mock.Anything, id).Return(&models.Measurement{ID: id.String()}, nil)
	proc.On("ProcessMeasurement", mock.Anything, id).Return(nil).Run(func(mock.Arguments) { close(done) })

	handler := NewMeasurementHandler(repo, &MockS3Service{}, proc)
	resp, err := handler.StartProcessing(context.Background(), &models.MeasurementIDRequest{ID: id.String()})
	require.NoError(t, err)
	assert.Equal(t, "Processing started successfully", resp.Body.Message)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("processing was not started")
	}
}

func TestStartProcessing_Errors(t *testing.T) {
	handler := NewMeasurementHandler(&MockRepository{}, &MockS3Service{}, &MockProcessingService{})
	_, err := handler.StartProcessing(context.Background(), &models.MeasurementIDRequest{ID: "not-a-uuid"})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	id := uuid.New()
	repo := &MockRepository{}
	repo.On("GetByID", mock.Anything, id).Return(nil, repository.ErrNotFound)
	handler = NewMeasurementHandler(repo, &MockS3Service{}, &MockProcessingService{})
	_, err = handler.StartProcessing(context.Background(), &models.MeasurementIDRequest{ID: id.String()})
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestGetMeasurementStatus(t *testing.T) {
	id := uuid.New()
	failure := "no valid data points found in text TRF data"

	tests := []struct {
		name        string
		measurement *models.Measurement
		wantMessage string
	}{
		{"pending", &models.Measurement{Status: models.StatusPending}, "Waiting for TRF upload..."},
		{"parsing", &models.Measurement{Status: models.StatusProcessing, Progress: 50}, "Parsing measurement data..."},
		{"completed", &models.Measurement{Status: models.StatusCompleted, Progress: 100}, "Measurement processed"},
		{"failed with message", &models.Measurement{Status: models.StatusFailed, ErrorMsg: &failure}, failure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.measurement.ID = id.String()
			repo := &MockRepository{}
			repo.On("GetByID", mock.Anything, id).Return(tt.measurement, nil)

			handler := NewMeasurementHandler(repo, &MockS3Service{}, &MockProcessingService{})
			resp, err := handler.GetMeasurementStatus(context.Background(), &models.MeasurementIDRequest{ID: id.String()})
			require.NoError(t, err)
			assert.Equal(t, tt.measurement.Status, resp.Body.Status)
			assert.Equal(t, tt.wantMessage, resp.Body.Message)
		})
	}
}

func TestGetMeasurement(t *testing.T) {
	id := uuid.New()
	set := models.NewMeasurementSet(models.FormatText, 48000, []models.MeasurementPoint{{Frequency: 1000}})

	repo := &MockRepository{}
	repo.On("GetByID", mock.Anything, id).Return(&models.Measurement{ID: id.String(), FileName: "a.trf", Status: models.StatusCompleted}, nil)
	repo.On("GetMeasurementSet", mock.Anything, id).Return(&models.MeasurementResults{Set: set}, nil)

	handler := NewMeasurementHandler(repo, &MockS3Service{}, &MockProcessingService{})
	resp, err := handler.GetMeasurement(context.Background(), &models.MeasurementIDRequest{ID: id.String()})
	require.NoError(t, err)
	assert.Equal(t, "a.trf", resp.Body.FileName)
	assert.Same(t, set, resp.Body.Set)
}

func TestGetMeasurement_NotCompleted(t *testing.T) {
	id := uuid.New()
	repo := &MockRepository{}
	repo.On("GetByID", mock.Anything, id).Return(&models.Measurement{ID: id.String(), Status: models.StatusProcessing}, nil)

	handler := NewMeasurementHandler(repo, &MockS3Service{}, &MockProcessingService{})
	_, err := handler.GetMeasurement(context.Background(), &models.MeasurementIDRequest{ID: id.String()})
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
}

func TestParseContent_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"empty", apperr.New(apperr.KindEmptyFile, "op", "file is empty"), http.StatusBadRequest},
		{"oversize", apperr.New(apperr.KindOversize, "op", "too large"), http.StatusRequestEntityTooLarge},
		{"unparseable", apperr.New(apperr.KindUnparseableFormat, "op", "no points"), http.StatusUnprocessableEntity},
		{"unexpected", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proc := &MockProcessingService{}
			proc.On("ParseContent", mock.Anything, "paste", "x").Return(nil, tt.err)

			handler := NewMeasurementHandler(&MockRepository{}, &MockS3Service{}, proc)
			req := &models.ParseContentRequest{}
			req.Body.Name = "paste"
			req.Body.Content = "x"

			_, err := handler.ParseContent(context.Background(), req)
			assert.Equal(t, tt.wantCode, statusOf(t, err))
		})
	}
}
