package design

import (
	"math"
	"sort"

	"github.com/RMahshie/trfdesign/internal/apperr"
	"github.com/RMahshie/trfdesign/pkg/models"
)

// DefaultPreset is the range used when none is selected
const DefaultPreset = "human-hearing"

// Presets lists the named frequency ranges in display order
var Presets = []models.PresetInfo{
	{Name: "human-hearing", Min: 20, Max: 22000},
	{Name: "full-spectrum", Min: 0, Max: 22000},
	{Name: "speech", Min: 300, Max: 3400},
	{Name: "music", Min: 20, Max: 20000},
	{Name: "sub-bass", Min: 20, Max: 60},
	{Name: "bass", Min: 60, Max: 250},
	{Name: "low-mid", Min: 250, Max: 500},
	{Name: "mid", Min: 500, Max: 2000},
	{Name: "high-mid", Min: 2000, Max: 4000},
	{Name: "presence", Min: 4000, Max: 6000},
	{Name: "brilliance", Min: 6000, Max: 20000},
}

// PresetRange returns the bounds of a named preset
func PresetRange(name string) (models.PresetInfo, bool) {
	for _, p := range Presets {
		if p.Name == name {
			return p, true
		}
	}
	return models.PresetInfo{}, false
}

// SelectPreset returns an enabled range for the named preset
func SelectPreset(name string) (models.FrequencyRange, error) {
	p, ok := PresetRange(name)
	if !ok {
		return models.FrequencyRange{}, apperr.New(apperr.KindInvalidConfig, "design.SelectPreset",
			"unknown frequency range preset %q", name)
	}
	return models.FrequencyRange{Enabled: true, Min: p.Min, Max: p.Max, Preset: p.Name}, nil
}

// DefaultFrequencyRange is the disabled human-hearing range
func DefaultFrequencyRange() models.FrequencyRange {
	return models.FrequencyRange{Enabled: false, Min: 20, Max: 22000, Preset: DefaultPreset}
}

// ApplyFrequencyRange keeps points with min <= frequency <= max, sorted by
// ascending frequency. Equal frequencies keep their input order.
func ApplyFrequencyRange(points []models.MeasurementPoint, r models.FrequencyRange) ([]models.MeasurementPoint, error) {
	out := make([]models.MeasurementPoint, 0, len(points))
	for _, p := range points {
		if p.Frequency >= r.Min && p.Frequency <= r.Max {
			out = append(out, p)
		}
	}

	if len(out) == 0 {
		return nil, apperr.New(apperr.KindFrequencyRangeEmpty, "design.ApplyFrequencyRange",
			"no data points found in frequency range %g-%g Hz", r.Min, r.Max)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Frequency < out[j].Frequency
	})
	return out, nil
}

// FilterSet applies r to a measurement set, returning a new set
func FilterSet(set *models.MeasurementSet, r models.FrequencyRange) (*models.MeasurementSet, error) {
	if !r.Enabled {
		return set, nil
	}
	points, err := ApplyFrequencyRange(set.Points, r)
	if err != nil {
		return nil, err
	}
	return set.WithPoints(points), nil
}

func validRange(r models.FrequencyRange) bool {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) {
		return false
	}
	return r.Min >= 0 && r.Min <= r.Max
}
