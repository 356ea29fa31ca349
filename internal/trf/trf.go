package trf

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	"github.com/RMahshie/trfdesign/internal/apperr"
	"github.com/RMahshie/trfdesign/pkg/models"
)

// HearingLimitHz is the upper bound of retained measurement frequencies
const HearingLimitHz = 22000.0

// DefaultSampleRate is used whenever the data fits below the hearing limit
const DefaultSampleRate = 48000

// Parse detects the source format, extracts points, applies the hearing
// cutoff and builds the measurement set.
func Parse(buf []byte) (*models.MeasurementSet, error) {
	format := DetectFormat(buf)

	var points []models.MeasurementPoint
	switch format {
	case models.FormatBinary:
		var err error
		points, err = ParseBinary(buf)
		if err != nil {
			return nil, err
		}
	default:
		points = ParseText(buf)
	}

	points = ApplyHearingCutoff(points)
	if len(points) == 0 {
		return nil, apperr.New(apperr.KindUnparseableFormat, "trf.Parse",
			"no valid data points found in %s TRF data", format)
	}

	return models.NewMeasurementSet(format, DetectOptimalSampleRate(points), points), nil
}

// ApplyHearingCutoff keeps points within [0, 22000] Hz, preserving order
func ApplyHearingCutoff(points []models.MeasurementPoint) []models.MeasurementPoint {
	out := make([]models.MeasurementPoint, 0, len(points))
	for _, p := range points {
		if p.Frequency >= 0 && p.Frequency <= HearingLimitHz {
			out = append(out, p)
		}
	}
	return out
}

// DetectOptimalSampleRate picks a sample rate for the measured band.
// Data below the hearing limit always gets 48 kHz; anything wider gets
// twice its top frequency plus a 10% margin.
func DetectOptimalSampleRate(points []models.MeasurementPoint) int {
	if len(points) == 0 {
		return DefaultSampleRate
	}

	maxFreq := 0.0
	for _, p := range points {
		maxFreq = math.Max(maxFreq, p.Frequency)
	}
	if maxFreq <= HearingLimitHz {
		return DefaultSampleRate
	}
	return int(math.Ceil(maxFreq * 2 * 1.1))
}

// ValidateSize rejects empty sources and sources above the upload cap
func ValidateSize(size int64) error {
	if size == 0 {
		return apperr.New(apperr.KindEmptyFile, "trf.ValidateSize", "file is empty")
	}
	if size > models.MaxUploadBytes {
		return apperr.New(apperr.KindOversize, "trf.ValidateSize",
			"file too large (%d bytes, max 100MB)", size)
	}
	return nil
}

// ReadFile loads a TRF source from disk after checking its size
func ReadFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindFileAccess, "trf.ReadFile", err)
	}
	if info.IsDir() {
		return nil, apperr.Wrap(apperr.KindFileAccess, "trf.ReadFile",
			&fs.PathError{Op: "read", Path: path, Err: errors.New("is a directory")})
	}
	if err := ValidateSize(info.Size()); err != nil {
		return nil, err
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindFileAccess, "trf.ReadFile", fmt.Errorf("failed to read %s: %w", path, err))
	}
	return buf, nil
}
