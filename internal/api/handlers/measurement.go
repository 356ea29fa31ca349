package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/RMahshie/trfdesign/internal/processing"
	"github.com/RMahshie/trfdesign/internal/repository"
	"github.com/RMahshie/trfdesign/internal/storage"
	"github.com/RMahshie/trfdesign/internal/trf"
	"github.com/RMahshie/trfdesign/pkg/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const uploadURLExpiry = 15 * time.Minute

// MeasurementHandler handles measurement-related HTTP requests
type MeasurementHandler struct {
	repo          repository.Repository
	s3Service     storage.S3Service
	processingSvc processing.ProcessingService
}

// NewMeasurementHandler creates a new measurement handler
func NewMeasurementHandler(repo repository.Repository, s3Service storage.S3Service, processingSvc processing.ProcessingService) *MeasurementHandler {
	return &MeasurementHandler{
		repo:          repo,
		s3Service:     s3Service,
		processingSvc: processingSvc,
	}
}

// CreateMeasurement registers a TRF upload and returns an upload URL
func (h *MeasurementHandler) CreateMeasurement(ctx context.Context, req *models.CreateMeasurementRequest) (*models.CreateMeasurementResponse, error) {
	log.Info().Int64("fileSize", req.Body.FileSize).Str("fileName", req.Body.FileName).Msg("Creating new measurement")

	if err := trf.ValidateSize(req.Body.FileSize); err != nil {
		return nil, toHTTPError(err, "")
	}

	measurementID := uuid.New()
	sourceKey := fmt.Sprintf("trf/%s.trf", measurementID)

	uploadURL, err := h.s3Service.GenerateUploadURL(ctx, sourceKey, storage.ContentTypeTRF)
	if err != nil {
		if strings.Contains(err.Error(), "invalid content type") {
			return nil, huma.Error400BadRequest("File type not supported", err)
		}
		return nil, huma.Error500InternalServerError("Failed to prepare upload. Please try again.", err)
	}

	now := time.Now().UTC()
	measurement := &models.Measurement{
		ID:          measurementID.String(),
		SessionID:   req.Body.SessionID,
		FileName:    req.Body.FileName,
		Status:      models.StatusPending,
		SourceS3Key: &sourceKey,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.repo.Create(ctx, measurement); err != nil {
		return nil, huma.Error500InternalServerError("Failed to create measurement", err)
	}

	log.Info().Str("measurementID", measurement.ID).Str("sourceKey", sourceKey).Msg("Measurement created, returning upload URL")
	return &models.CreateMeasurementResponse{
		Body: models.CreateMeasurementResponseBody{
			ID:        measurement.ID,
			UploadURL: uploadURL,
			ExpiresIn: int(uploadURLExpiry.Seconds()),
		},
	}, nil
}

// StartProcessing parses an uploaded TRF file in the background
func (h *MeasurementHandler) StartProcessing(ctx context.Context, req *models.MeasurementIDRequest) (*models.StartProcessingResponse, error) {
	measurementID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid measurement ID", err)
	}

	if _, err := h.repo.GetByID(ctx, measurementID); err != nil {
		return nil, toHTTPError(err, "Measurement not found")
	}

	log.Info().Str("measurementID", measurementID.String()).Msg("Starting background processing goroutine")
	go func() {
		if err := h.processingSvc.ProcessMeasurement(context.Background(), measurementID); err != nil {
			log.Error().Err(err).Str("measurementID", measurementID.String()).Msg("Processing failed")
		}
	}()

	resp := &models.StartProcessingResponse{}
	resp.Body.Message = "Processing started successfully"
	return resp, nil
}

// GetMeasurementStatus returns the current status of a measurement
func (h *MeasurementHandler) GetMeasurementStatus(ctx context.Context, req *models.MeasurementIDRequest) (*models.GetMeasurementStatusResponse, error) {
	measurementID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid measurement ID", err)
	}

	m, err := h.repo.GetByID(ctx, measurementID)
	if err != nil {
		return nil, toHTTPError(err, "Measurement not found")
	}

	message := statusMessage(m.Status, m.Progress)
	if m.Status == models.StatusFailed && m.ErrorMsg != nil {
		message = *m.ErrorMsg
	}

	return &models.GetMeasurementStatusResponse{
		Body: models.GetMeasurementStatusResponseBody{
			ID:       m.ID,
			Status:   m.Status,
			Progress: m.Progress,
			Message:  message,
		},
	}, nil
}

// GetMeasurement returns the parsed set and quality report of a processed measurement
func (h *MeasurementHandler) GetMeasurement(ctx context.Context, req *models.MeasurementIDRequest) (*models.GetMeasurementResponse, error) {
	measurementID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid measurement ID", err)
	}

	m, err := h.repo.GetByID(ctx, measurementID)
	if err != nil {
		return nil, toHTTPError(err, "Measurement not found")
	}
	if m.Status != models.StatusCompleted {
		return nil, huma.Error409Conflict("Measurement not yet processed",
			fmt.Errorf("measurement status is %s", m.Status))
	}

	results, err := h.repo.GetMeasurementSet(ctx, measurementID)
	if err != nil {
		return nil, toHTTPError(err, "Measurement results not found")
	}

	return &models.GetMeasurementResponse{
		Body: models.MeasurementResponseBody{
			ID:         m.ID,
			FileName:   m.FileName,
			Set:        results.Set,
			Analysis:   results.Analysis,
			Assessment: results.Assessment,
			CreatedAt:  results.CreatedAt,
		},
	}, nil
}

// ParseContent parses pasted TRF text without storing it
func (h *MeasurementHandler) ParseContent(ctx context.Context, req *models.ParseContentRequest) (*models.GetMeasurementResponse, error) {
	body, err := h.processingSvc.ParseContent(ctx, req.Body.Name, req.Body.Content)
	if err != nil {
		return nil, toHTTPError(err, "")
	}
	return &models.GetMeasurementResponse{Body: *body}, nil
}

// statusMessage creates a human-readable status message
func statusMessage(status string, progress int) string {
	switch status {
	case models.StatusPending:
		return "Waiting for TRF upload..."
	case models.StatusProcessing:
		switch {
		case progress < 20:
			return "Starting processing..."
		case progress < 50:
			return "Downloading TRF file..."
		case progress < 80:
			return "Parsing measurement data..."
		default:
			return "Assessing data quality..."
		}
	case models.StatusCompleted:
		return "Measurement processed"
	case models.StatusFailed:
		return "Processing failed. Please check the file and try again."
	default:
		return "Unknown status"
	}
}
