package models

import "math"

// SourceFormat tags which TRF variant a measurement set was parsed from
type SourceFormat string

const (
	FormatText   SourceFormat = "text"
	FormatBinary SourceFormat = "binary"
)

// ValueRange holds min/max of a measured quantity
type ValueRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// MeasurementSet is the ordered result of parsing one TRF source
type MeasurementSet struct {
	Format         SourceFormat       `json:"format" enum:"text,binary" doc:"Detected source format"`
	SampleRate     int                `json:"sample_rate" doc:"Detected sample rate in Hz"`
	PointCount     int                `json:"point_count" doc:"Number of measurement points"`
	FrequencyRange ValueRange         `json:"frequency_range" doc:"Frequency range in Hz"`
	MagnitudeRange ValueRange         `json:"magnitude_range" doc:"Magnitude range in dB"`
	PhaseRange     ValueRange         `json:"phase_range" doc:"Phase range in degrees"`
	HasCoherence   bool               `json:"has_coherence" doc:"Whether any point carries coherence"`
	Points         []MeasurementPoint `json:"points" doc:"Measurement points"`
}

// NewMeasurementSet builds a set from points and computes its ranges
func NewMeasurementSet(format SourceFormat, sampleRate int, points []MeasurementPoint) *MeasurementSet {
	set := &MeasurementSet{
		Format:     format,
		SampleRate: sampleRate,
	}
	set.setPoints(points)
	return set
}

// WithPoints returns a copy of the set holding points, with ranges recomputed.
// The receiver is left untouched.
func (s *MeasurementSet) WithPoints(points []MeasurementPoint) *MeasurementSet {
	out := &MeasurementSet{
		Format:     s.Format,
		SampleRate: s.SampleRate,
	}
	out.setPoints(points)
	return out
}

func (s *MeasurementSet) setPoints(points []MeasurementPoint) {
	s.Points = points
	s.PointCount = len(points)
	s.FrequencyRange = ValueRange{}
	s.MagnitudeRange = ValueRange{}
	s.PhaseRange = ValueRange{}
	s.HasCoherence = false
	if len(points) == 0 {
		return
	}

	freq := ValueRange{Min: math.Inf(1), Max: math.Inf(-1)}
	mag := freq
	phase := freq
	for _, p := range points {
		freq.Min = math.Min(freq.Min, p.Frequency)
		freq.Max = math.Max(freq.Max, p.Frequency)
		mag.Min = math.Min(mag.Min, p.Magnitude)
		mag.Max = math.Max(mag.Max, p.Magnitude)
		phase.Min = math.Min(phase.Min, p.Phase)
		phase.Max = math.Max(phase.Max, p.Phase)
		if p.Coherence != nil {
			s.HasCoherence = true
		}
	}
	s.FrequencyRange = freq
	s.MagnitudeRange = mag
	s.PhaseRange = phase
}
