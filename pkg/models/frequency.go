package models

// MeasurementPoint represents a single frequency-domain sample from a TRF file
type MeasurementPoint struct {
	Frequency float64  `json:"frequency" doc:"Frequency in Hz"`
	Magnitude float64  `json:"magnitude" doc:"Magnitude in dB"`
	Phase     float64  `json:"phase" doc:"Phase in degrees"`
	Coherence *float64 `json:"coherence,omitempty" doc:"Measurement coherence (0-1)"`
}

// HasCoherence reports whether the point carries a coherence value
func (p MeasurementPoint) HasCoherence() bool {
	return p.Coherence != nil
}

// ResponsePoint is one sample of a computed frequency response
type ResponsePoint struct {
	Frequency float64 `json:"frequency" doc:"Frequency in Hz"`
	Magnitude float64 `json:"magnitude" doc:"Magnitude in dB"`
	Phase     float64 `json:"phase" doc:"Phase in degrees"`
}

// NormalizedPoint is a measurement point expressed relative to Nyquist
type NormalizedPoint struct {
	Freq  float64 `json:"freq"`
	Amp   float64 `json:"amp"`
	Phase float64 `json:"phase"`
}

// Int returns a pointer to v
func Int(v int) *int {
	return &v
}

// Float64 returns a pointer to v
func Float64(v float64) *float64 {
	return &v
}
