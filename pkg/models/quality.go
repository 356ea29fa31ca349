package models

// Quality ratings
const (
	QualityGood = "good"
	QualityFair = "fair"
	QualityPoor = "poor"
)

// FrequencyStats summarizes the frequency axis of a measurement
type FrequencyStats struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Span float64 `json:"span"`
}

// LevelStats summarizes magnitude or phase values
type LevelStats struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}

// CoherenceStats summarizes coherence over the points that carry it
type CoherenceStats struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// DataAnalysis holds aggregate statistics of a measurement set
type DataAnalysis struct {
	PointCount     int             `json:"point_count"`
	FrequencyRange FrequencyStats  `json:"frequency_range"`
	MagnitudeRange LevelStats      `json:"magnitude_range"`
	PhaseRange     LevelStats      `json:"phase_range"`
	HasCoherence   bool            `json:"has_coherence"`
	CoherenceStats *CoherenceStats `json:"coherence_stats,omitempty"`
}

// QualityAssessment is the qualitative verdict on a measurement set
type QualityAssessment struct {
	Overall         string   `json:"overall" enum:"good,fair,poor" doc:"Overall data quality"`
	Issues          []string `json:"issues" doc:"Blocking issues"`
	Warnings        []string `json:"warnings" doc:"Quality warnings"`
	Recommendations []string `json:"recommendations" doc:"Suggested improvements"`
}

// QualityReport bundles statistics with their assessment
type QualityReport struct {
	Analysis   *DataAnalysis     `json:"analysis"`
	Assessment QualityAssessment `json:"assessment"`
}
