// Package quality scores a measurement set: aggregate statistics plus a
// rule-based assessment of how usable the data is for filter design.
package quality

import (
	"fmt"
	"math"

	"github.com/RMahshie/trfdesign/pkg/models"
)

// hearingLimitHz mirrors trf.HearingLimitHz; data topping out exactly here
// was most likely truncated by the cutoff stage.
const hearingLimitHz = 22000.0

// Analyze computes aggregate statistics. It returns nil for no points.
func Analyze(points []models.MeasurementPoint) *models.DataAnalysis {
	if len(points) == 0 {
		return nil
	}

	inf := math.Inf(1)
	freq := models.FrequencyStats{Min: inf, Max: -inf}
	mag := models.LevelStats{Min: inf, Max: -inf}
	phase := models.LevelStats{Min: inf, Max: -inf}
	coh := models.CoherenceStats{Min: inf, Max: -inf}

	var magSum, phaseSum, cohSum float64
	for _, p := range points {
		freq.Min = math.Min(freq.Min, p.Frequency)
		freq.Max = math.Max(freq.Max, p.Frequency)
		mag.Min = math.Min(mag.Min, p.Magnitude)
		mag.Max = math.Max(mag.Max, p.Magnitude)
		phase.Min = math.Min(phase.Min, p.Phase)
		phase.Max = math.Max(phase.Max, p.Phase)
		magSum += p.Magnitude
		phaseSum += p.Phase

		if p.Coherence != nil {
			c := *p.Coherence
			coh.Count++
			cohSum += c
			coh.Min = math.Min(coh.Min, c)
			coh.Max = math.Max(coh.Max, c)
		}
	}

	n := float64(len(points))
	freq.Span = freq.Max - freq.Min
	mag.Average = magSum / n
	phase.Average = phaseSum / n

	analysis := &models.DataAnalysis{
		PointCount:     len(points),
		FrequencyRange: freq,
		MagnitudeRange: mag,
		PhaseRange:     phase,
		HasCoherence:   coh.Count > 0,
	}
	if coh.Count > 0 {
		coh.Average = cohSum / float64(coh.Count)
		analysis.CoherenceStats = &coh
	}
	return analysis
}

// Assess applies the quality rules to points and their analysis.
// The overall rating depends on warnings only.
func Assess(points []models.MeasurementPoint, analysis *models.DataAnalysis) models.QualityAssessment {
	a := models.QualityAssessment{
		Overall:         models.QualityGood,
		Issues:          []string{},
		Warnings:        []string{},
		Recommendations: []string{},
	}
	if len(points) == 0 || analysis == nil {
		return a
	}

	var veryLow, veryHigh, lowBand, highBand int
	for _, p := range points {
		if p.Magnitude < -100 {
			veryLow++
		}
		if p.Magnitude > 20 {
			veryHigh++
		}
		if p.Frequency >= 20 && p.Frequency < 200 {
			lowBand++
		}
		if p.Frequency >= 2000 && p.Frequency < 20000 {
			highBand++
		}
	}

	if veryLow > 0 {
		a.Warnings = append(a.Warnings, fmt.Sprintf("%d points with very low magnitude (< -100 dB)", veryLow))
	}
	if veryHigh > 0 {
		a.Warnings = append(a.Warnings, fmt.Sprintf("%d points with very high magnitude (> 20 dB)", veryHigh))
	}

	if analysis.HasCoherence && analysis.CoherenceStats != nil {
		switch avg := analysis.CoherenceStats.Average; {
		case avg < 0.1:
			a.Warnings = append(a.Warnings, "Low average coherence (< 0.1) - measurement may be noisy")
			a.Recommendations = append(a.Recommendations, "Consider averaging multiple measurements")
		case avg < 0.5:
			a.Warnings = append(a.Warnings, "Moderate coherence - some measurement noise detected")
		}
	}

	total := float64(len(points))
	if float64(lowBand)/total < 0.1 {
		a.Warnings = append(a.Warnings, "Limited low frequency data (< 200 Hz)")
	}
	if float64(highBand)/total < 0.1 {
		a.Warnings = append(a.Warnings, "Limited high frequency data (2k-20k Hz)")
	}

	if analysis.FrequencyRange.Max == hearingLimitHz {
		a.Warnings = append(a.Warnings, "Data automatically cut at 22kHz (human hearing limit)")
		a.Recommendations = append(a.Recommendations, "Original data may have extended beyond 22kHz")
	}

	switch {
	case len(a.Warnings) > 3:
		a.Overall = models.QualityPoor
	case len(a.Warnings) > 1:
		a.Overall = models.QualityFair
	}

	if len(points) < 100 {
		a.Recommendations = append(a.Recommendations, "Consider using more frequency points for better resolution")
	}
	if analysis.FrequencyRange.Span < 1000 {
		a.Recommendations = append(a.Recommendations, "Limited frequency span - consider wider measurement range")
	}

	return a
}

// Report runs Analyze and Assess over points
func Report(points []models.MeasurementPoint) models.QualityReport {
	analysis := Analyze(points)
	return models.QualityReport{
		Analysis:   analysis,
		Assessment: Assess(points, analysis),
	}
}
