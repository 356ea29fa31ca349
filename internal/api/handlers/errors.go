package handlers

import (
	"errors"

	"github.com/RMahshie/trfdesign/internal/apperr"
	"github.com/RMahshie/trfdesign/internal/processing"
	"github.com/RMahshie/trfdesign/internal/repository"
	"github.com/danielgtaylor/huma/v2"
)

// toHTTPError maps service errors onto huma status errors
func toHTTPError(err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return huma.Error404NotFound(notFoundMsg, err)
	case errors.Is(err, processing.ErrNotProcessed):
		return huma.Error409Conflict("Measurement not yet processed", err)
	}

	switch apperr.KindOf(err) {
	case apperr.KindEmptyFile:
		return huma.Error400BadRequest("TRF data is empty", err)
	case apperr.KindOversize:
		return huma.Error413RequestEntityTooLarge("TRF data exceeds the 100MB limit", err)
	case apperr.KindUnparseableFormat:
		return huma.Error422UnprocessableEntity("Could not parse TRF data", err)
	case apperr.KindFrequencyRangeEmpty:
		return huma.Error422UnprocessableEntity("No measurement points in the selected frequency range", err)
	case apperr.KindInvalidConfig:
		return huma.Error400BadRequest("Invalid filter design configuration", err)
	case apperr.KindFileAccess:
		return huma.Error422UnprocessableEntity("TRF source could not be read", err)
	}
	return huma.Error500InternalServerError("Internal error", err)
}
