package handlers

import (
	"context"

	"github.com/RMahshie/trfdesign/internal/design"
	"github.com/RMahshie/trfdesign/internal/processing"
	"github.com/RMahshie/trfdesign/pkg/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DesignReader loads stored designs
type DesignReader interface {
	GetDesign(ctx context.Context, id uuid.UUID) (*models.FilterDesign, error)
}

// DesignHandler handles filter design HTTP requests
type DesignHandler struct {
	designs       DesignReader
	processingSvc processing.ProcessingService
}

// NewDesignHandler creates a new design handler
func NewDesignHandler(designs DesignReader, processingSvc processing.ProcessingService) *DesignHandler {
	return &DesignHandler{designs: designs, processingSvc: processingSvc}
}

// CreateDesign designs a FIR filter for a processed measurement
func (h *DesignHandler) CreateDesign(ctx context.Context, req *models.CreateDesignRequest) (*models.DesignResponse, error) {
	measurementID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid measurement ID", err)
	}

	fd, err := h.processingSvc.DesignFilter(ctx, measurementID, req.Body)
	if err != nil {
		log.Warn().Err(err).Str("measurementID", req.ID).Msg("Filter design failed")
		return nil, toHTTPError(err, "Measurement not found")
	}
	return &models.DesignResponse{Body: *fd}, nil
}

// GetDesign returns a stored design
func (h *DesignHandler) GetDesign(ctx context.Context, req *models.DesignIDRequest) (*models.DesignResponse, error) {
	designID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid design ID", err)
	}

	fd, err := h.designs.GetDesign(ctx, designID)
	if err != nil {
		return nil, toHTTPError(err, "Design not found")
	}
	return &models.DesignResponse{Body: *fd}, nil
}

// ExportDesign formats the coefficients of a stored design
func (h *DesignHandler) ExportDesign(ctx context.Context, req *models.ExportDesignRequest) (*models.ExportDesignResponse, error) {
	designID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid design ID", err)
	}

	result, err := h.processingSvc.ExportDesign(ctx, designID, req.Format, req.SampleRate, req.Persist)
	if err != nil {
		return nil, toHTTPError(err, "Design not found")
	}
	return &models.ExportDesignResponse{Body: *result}, nil
}

// ListPresets returns the named frequency ranges
func (h *DesignHandler) ListPresets(ctx context.Context, _ *struct{}) (*models.ListPresetsResponse, error) {
	resp := &models.ListPresetsResponse{}
	resp.Body.Presets = append([]models.PresetInfo(nil), design.Presets...)
	return resp, nil
}
