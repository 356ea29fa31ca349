package processing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RMahshie/trfdesign/internal/apperr"
	"github.com/RMahshie/trfdesign/internal/design"
	"github.com/RMahshie/trfdesign/internal/events"
	"github.com/RMahshie/trfdesign/internal/export"
	"github.com/RMahshie/trfdesign/internal/quality"
	"github.com/RMahshie/trfdesign/internal/repository"
	"github.com/RMahshie/trfdesign/internal/storage"
	"github.com/RMahshie/trfdesign/internal/trf"
	"github.com/RMahshie/trfdesign/pkg/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrNotProcessed is returned when a design is requested for a measurement
// whose TRF source has not been parsed yet
var ErrNotProcessed = errors.New("measurement has not been processed")

// ProcessingService orchestrates parsing, design and export of measurements
type ProcessingService interface {
	ProcessMeasurement(ctx context.Context, measurementID uuid.UUID) error
	ParseContent(ctx context.Context, name, content string) (*models.MeasurementResponseBody, error)
	DesignFilter(ctx context.Context, measurementID uuid.UUID, req models.DesignConfigBody) (*models.FilterDesign, error)
	ExportDesign(ctx context.Context, designID uuid.UUID, format string, sampleRate float64, persist bool) (*models.ExportResult, error)
}

// Publisher receives failure notifications
type Publisher interface {
	Publish(eventType events.EventType, subjectID string, err error) bool
}

// Options tunes the processing service
type Options struct {
	// MaxUploadBytes lowers the 100 MB source cap when positive
	MaxUploadBytes int64
	// Defaults fill zero fields of design requests
	Defaults models.FilterDesignConfig
}

type processingService struct {
	s3         storage.S3Service
	repository repository.Repository
	events     Publisher
	opts       Options
}

// NewProcessingService creates a processing service. publisher may be nil.
func NewProcessingService(s3Service storage.S3Service, repo repository.Repository, publisher Publisher, opts Options) ProcessingService {
	opts.Defaults = design.ApplyDefaults(opts.Defaults)
	return &processingService{
		s3:         s3Service,
		repository: repo,
		events:     publisher,
		opts:       opts,
	}
}

func (s *processingService) ProcessMeasurement(ctx context.Context, measurementID uuid.UUID) error {
	// Step 1: Update to processing status
	if err := s.repository.UpdateStatus(ctx, measurementID, models.StatusProcessing, 10); err != nil {
		return err
	}

	measurement, err := s.repository.GetByID(ctx, measurementID)
	if err != nil {
		return err
	}
	if measurement.SourceS3Key == nil {
		return s.fail(ctx, measurementID, events.FileValidationError,
			apperr.New(apperr.KindFileAccess, "processing.ProcessMeasurement", "measurement has no uploaded source"))
	}

	// Step 2: Download from S3
	if err := s.repository.UpdateStatus(ctx, measurementID, models.StatusProcessing, 20); err != nil {
		return err
	}
	data, err := s.s3.DownloadFile(ctx, *measurement.SourceS3Key)
	if err != nil {
		return s.fail(ctx, measurementID, events.FileValidationError,
			apperr.Wrap(apperr.KindFileAccess, "processing.ProcessMeasurement", err))
	}
	if err := s.validateSize(int64(len(data))); err != nil {
		return s.fail(ctx, measurementID, events.FileValidationError, err)
	}

	// Step 3: Parse
	if err := s.repository.UpdateStatus(ctx, measurementID, models.StatusProcessing, 50); err != nil {
		return err
	}
	set, err := trf.Parse(data)
	if err != nil {
		return s.fail(ctx, measurementID, events.TRFProcessError, err)
	}

	// Step 4: Quality report
	if err := s.repository.UpdateStatus(ctx, measurementID, models.StatusProcessing, 80); err != nil {
		return err
	}
	report := quality.Report(set.Points)

	// Step 5: Store results
	if err := s.repository.UpdateStatus(ctx, measurementID, models.StatusProcessing, 90); err != nil {
		return err
	}
	results := &models.MeasurementResults{
		ID:            uuid.New().String(),
		MeasurementID: measurement.ID,
		Set:           set,
		Analysis:      report.Analysis,
		Assessment:    report.Assessment,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repository.StoreMeasurementSet(ctx, results); err != nil {
		return err
	}

	// Step 6: Mark complete
	if err := s.repository.UpdateStatus(ctx, measurementID, models.StatusCompleted, 100); err != nil {
		return err
	}

	log.Info().
		Str("measurementID", measurement.ID).
		Str("format", string(set.Format)).
		Int("points", set.PointCount).
		Str("quality", report.Assessment.Overall).
		Msg("Measurement processed")
	return nil
}

func (s *processingService) ParseContent(ctx context.Context, name, content string) (*models.MeasurementResponseBody, error) {
	if err := s.validateSize(int64(len(content))); err != nil {
		s.publish(events.FileValidationError, "", err)
		return nil, err
	}

	set, err := trf.Parse([]byte(content))
	if err != nil {
		s.publish(events.TRFProcessError, "", err)
		return nil, err
	}
	report := quality.Report(set.Points)

	if name == "" {
		name = "Pasted TRF Data"
	}
	log.Info().Str("name", name).Int("points", set.PointCount).Msg("Pasted TRF data parsed")

	return &models.MeasurementResponseBody{
		FileName:   name,
		Set:        set,
		Analysis:   report.Analysis,
		Assessment: report.Assessment,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

func (s *processingService) DesignFilter(ctx context.Context, measurementID uuid.UUID, req models.DesignConfigBody) (*models.FilterDesign, error) {
	cfg, err := ResolveDesignConfig(req, s.opts.Defaults)
	if err != nil {
		s.publish(events.FilterDesignError, measurementID.String(), err)
		return nil, err
	}

	measurement, err := s.repository.GetByID(ctx, measurementID)
	if err != nil {
		return nil, err
	}
	if measurement.Status != models.StatusCompleted {
		return nil, fmt.Errorf("%w: status is %s", ErrNotProcessed, measurement.Status)
	}

	stored, err := s.repository.GetMeasurementSet(ctx, measurementID)
	if err != nil {
		return nil, err
	}

	result, err := design.Design(stored.Set.Points, cfg)
	if err != nil {
		s.publish(events.FilterDesignError, measurementID.String(), err)
		return nil, err
	}

	fd := &models.FilterDesign{
		ID:            uuid.New().String(),
		MeasurementID: measurement.ID,
		Config:        cfg,
		Result:        *result,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repository.StoreDesign(ctx, fd); err != nil {
		return nil, err
	}

	log.Info().
		Str("measurementID", measurement.ID).
		Str("designID", fd.ID).
		Int("numTaps", result.Metadata.NumTaps).
		Int("filteredPoints", result.Metadata.FilteredDataPoints).
		Msg("Filter designed")
	return fd, nil
}

func (s *processingService) ExportDesign(ctx context.Context, designID uuid.UUID, format string, sampleRate float64, persist bool) (*models.ExportResult, error) {
	fd, err := s.repository.GetDesign(ctx, designID)
	if err != nil {
		return nil, err
	}

	if !export.IsSupported(format) {
		format = export.FormatText
	}
	if !(sampleRate > 0) {
		sampleRate = fd.Result.Metadata.SampleRate
	}

	content := export.Format(fd.Result.Coefficients, format, sampleRate)
	result := &models.ExportResult{
		Format:   format,
		FileName: fmt.Sprintf("fir_coefficients_%s.%s", fd.ID, export.FileExtension(format)),
		Content:  content,
	}
	if !persist {
		return result, nil
	}

	key := fmt.Sprintf("exports/%s.%s", fd.ID, export.FileExtension(format))
	if err := s.s3.UploadFile(ctx, key, export.ContentType(format), []byte(content)); err != nil {
		s.publish(events.ExportError, fd.ID, err)
		return nil, fmt.Errorf("failed to persist export: %w", err)
	}
	url, err := s.s3.GenerateDownloadURL(ctx, key)
	if err != nil {
		s.publish(events.ExportError, fd.ID, err)
		return nil, err
	}
	result.DownloadURL = url

	log.Info().Str("designID", fd.ID).Str("format", format).Str("key", key).Msg("Export persisted")
	return result, nil
}

// ResolveDesignConfig merges a design request over defaults. A preset name
// selects its range unless an explicit range is given. Only an omitted tap
// count takes the default.
func ResolveDesignConfig(req models.DesignConfigBody, defaults models.FilterDesignConfig) (models.FilterDesignConfig, error) {
	cfg := models.FilterDesignConfig{
		Method:              req.Method,
		SampleRate:          req.SampleRate,
		FilterType:          req.FilterType,
		CutoffFrequency:     req.CutoffFrequency,
		WindowType:          req.WindowType,
		PassbandRipple:      req.PassbandRipple,
		StopbandAttenuation: req.StopbandAttenuation,
	}

	switch {
	case req.FrequencyRange != nil:
		cfg.FrequencyRange = *req.FrequencyRange
	case req.Preset != "":
		r, err := design.SelectPreset(req.Preset)
		if err != nil {
			return models.FilterDesignConfig{}, err
		}
		cfg.FrequencyRange = r
	}

	def := design.ApplyDefaults(defaults)
	if cfg.Method == "" {
		cfg.Method = def.Method
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = def.SampleRate
	}
	if cfg.FrequencyRange == (models.FrequencyRange{}) {
		cfg.FrequencyRange = def.FrequencyRange
	}
	cfg = design.ApplyDefaults(cfg)
	// an explicit tap count, zero included, is validated as given
	cfg.NumTaps = def.NumTaps
	if req.NumTaps != nil {
		cfg.NumTaps = *req.NumTaps
	}

	if err := design.ValidateConfig(cfg); err != nil {
		return models.FilterDesignConfig{}, err
	}
	return cfg, nil
}

func (s *processingService) validateSize(size int64) error {
	if err := trf.ValidateSize(size); err != nil {
		return err
	}
	if s.opts.MaxUploadBytes > 0 && size > s.opts.MaxUploadBytes {
		return apperr.New(apperr.KindOversize, "processing.validateSize",
			"file too large (%d bytes, max %d)", size, s.opts.MaxUploadBytes)
	}
	return nil
}

// fail marks the measurement failed, reports the event and returns err
func (s *processingService) fail(ctx context.Context, measurementID uuid.UUID, eventType events.EventType, err error) error {
	if updateErr := s.repository.UpdateError(ctx, measurementID, err.Error()); updateErr != nil {
		log.Error().Err(updateErr).Str("measurementID", measurementID.String()).Msg("Failed to record processing error")
	}
	s.publish(eventType, measurementID.String(), err)
	return err
}

func (s *processingService) publish(eventType events.EventType, subjectID string, err error) {
	if s.events == nil {
		return
	}
	if !s.events.Publish(eventType, subjectID, err) {
		log.Warn().Str("event", string(eventType)).Str("subject", subjectID).Msg("Event dropped")
	}
}
