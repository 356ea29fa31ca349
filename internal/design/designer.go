package design

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/RMahshie/trfdesign/pkg/models"
)

// synthesisCutoff is the normalized cutoff the sinc is always built with
const synthesisCutoff = 0.1

// Design synthesizes FIR coefficients for points and verifies their response.
//
// The method, filter type and cutoff in cfg are echoed in the metadata but
// synthesis is always a Hamming-windowed sinc lowpass at a normalized cutoff
// of 0.1.
func Design(points []models.MeasurementPoint, cfg models.FilterDesignConfig) (*models.FilterDesignResult, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	processed := points
	if cfg.FrequencyRange.Enabled {
		var err error
		processed, err = ApplyFrequencyRange(points, cfg.FrequencyRange)
		if err != nil {
			return nil, err
		}
	}

	// TODO: shape the taps from the normalized measurement (frequency
	// sampling) instead of the fixed-cutoff lowpass below.
	_ = ToResponse(processed, cfg.SampleRate)

	coeffs := WindowedSinc(cfg.NumTaps, synthesisCutoff)
	ApplyHamming(coeffs)

	return &models.FilterDesignResult{
		Coefficients:      coeffs,
		FrequencyResponse: FrequencyResponse(coeffs, cfg.SampleRate),
		Metadata: models.DesignMetadata{
			NumTaps:            len(coeffs),
			SampleRate:         cfg.SampleRate,
			Method:             cfg.Method,
			FilterType:         cfg.FilterType,
			CutoffFrequency:    cfg.CutoffFrequency,
			WindowType:         cfg.WindowType,
			FrequencyRange:     cfg.FrequencyRange,
			OriginalDataPoints: len(points),
			FilteredDataPoints: len(processed),
		},
	}, nil
}

// ToResponse expresses points relative to Nyquist: frequency as a fraction
// of it, magnitude as linear amplitude and phase in radians.
func ToResponse(points []models.MeasurementPoint, sampleRate float64) []models.NormalizedPoint {
	nyquist := sampleRate / 2
	out := make([]models.NormalizedPoint, len(points))
	for i, p := range points {
		out[i] = models.NormalizedPoint{
			Freq:  p.Frequency / nyquist,
			Amp:   math.Pow(10, p.Magnitude/20),
			Phase: p.Phase * math.Pi / 180,
		}
	}
	return out
}

// WindowedSinc returns numTaps samples of the ideal lowpass impulse response
// centered on tap numTaps/2.
func WindowedSinc(numTaps int, cutoff float64) []float64 {
	coeffs := make([]float64, numTaps)
	center := numTaps / 2
	for i := range coeffs {
		n := float64(i - center)
		if n == 0 {
			coeffs[i] = 2 * cutoff
			continue
		}
		coeffs[i] = math.Sin(2*math.Pi*cutoff*n) / (math.Pi * n)
	}
	return coeffs
}

// ApplyHamming tapers coeffs in place with a symmetric Hamming window
func ApplyHamming(coeffs []float64) {
	if len(coeffs) == 0 {
		return
	}
	vecmath.MulBlockInPlace(coeffs, Hamming(len(coeffs)))
}

// Hamming returns a symmetric Hamming window of the given length.
// A single-sample window sits at position 0.
func Hamming(size int) []float64 {
	w := make([]float64, size)
	for i := range w {
		x := 0.0
		if size > 1 {
			x = float64(i) / float64(size-1)
		}
		w[i] = 0.54 - 0.46*math.Cos(2*math.Pi*x)
	}
	return w
}
