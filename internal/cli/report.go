package cli

import (
	"fmt"
	"io"

	"github.com/RMahshie/trfdesign/pkg/models"
)

// PrintMeasurement writes a summary of a parsed set and its quality report
func PrintMeasurement(w io.Writer, name string, set *models.MeasurementSet, report models.QualityReport) {
	fmt.Fprintln(w, TitleStyle.Render(name))

	printKV(w, "Format", set.Format)
	printKV(w, "Points", set.PointCount)
	printKV(w, "Sample rate", fmt.Sprintf("%d Hz", set.SampleRate))
	printKV(w, "Frequency", fmt.Sprintf("%.1f - %.1f Hz", set.FrequencyRange.Min, set.FrequencyRange.Max))
	printKV(w, "Magnitude", fmt.Sprintf("%.2f - %.2f dB", set.MagnitudeRange.Min, set.MagnitudeRange.Max))
	printKV(w, "Phase", fmt.Sprintf("%.2f - %.2f deg", set.PhaseRange.Min, set.PhaseRange.Max))
	printKV(w, "Coherence", set.HasCoherence)

	if c := coherenceStats(report); c != nil {
		printKV(w, "Coherence avg", fmt.Sprintf("%.3f (%d points)", c.Average, c.Count))
	}

	fmt.Fprintln(w, SectionStyle.Render("Quality"))
	fmt.Fprintf(w, "  %s %s\n", KeyStyle.Render("Overall:"), ratingStyle(report.Assessment.Overall).Render(report.Assessment.Overall))
	printList(w, "Issue", report.Assessment.Issues)
	printList(w, "Warning", report.Assessment.Warnings)
	printList(w, "Recommendation", report.Assessment.Recommendations)
}

// PrintDesign writes a summary of a design result
func PrintDesign(w io.Writer, result *models.FilterDesignResult) {
	md := result.Metadata
	fmt.Fprintln(w, SectionStyle.Render("Filter"))
	printKV(w, "Taps", md.NumTaps)
	printKV(w, "Sample rate", fmt.Sprintf("%.0f Hz", md.SampleRate))
	printKV(w, "Method", md.Method)
	printKV(w, "Window", md.WindowType)
	if md.FrequencyRange.Enabled {
		printKV(w, "Range", fmt.Sprintf("%g - %g Hz %s", md.FrequencyRange.Min, md.FrequencyRange.Max, md.FrequencyRange.Preset))
	}
	printKV(w, "Points used", fmt.Sprintf("%d of %d", md.FilteredDataPoints, md.OriginalDataPoints))
	if len(result.FrequencyResponse) > 0 {
		printKV(w, "DC gain", fmt.Sprintf("%.2f dB", result.FrequencyResponse[0].Magnitude))
	}
}

// PrintPresets lists frequency range presets
func PrintPresets(w io.Writer, presets []models.PresetInfo) {
	fmt.Fprintln(w, TitleStyle.Render("Frequency range presets"))
	for _, p := range presets {
		printKV(w, fmt.Sprintf("%-14s", p.Name), fmt.Sprintf("%g - %g Hz", p.Min, p.Max))
	}
}

func printList(w io.Writer, label string, items []string) {
	for _, item := range items {
		fmt.Fprintf(w, "  %s %s\n", KeyStyle.Render(label+":"), item)
	}
}

func coherenceStats(report models.QualityReport) *models.CoherenceStats {
	if report.Analysis == nil {
		return nil
	}
	return report.Analysis.CoherenceStats
}
