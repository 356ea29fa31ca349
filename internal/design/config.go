package design

import (
	"math"

	"github.com/RMahshie/trfdesign/internal/apperr"
	"github.com/RMahshie/trfdesign/pkg/models"
)

// Defaults for a design request
const (
	DefaultMethod              = "least-squares"
	DefaultNumTaps             = 512
	DefaultSampleRate          = 48000.0
	DefaultFilterType          = "lowpass"
	DefaultCutoffFrequency     = 0.1
	DefaultWindowType          = "hamming"
	DefaultPassbandRipple      = 0.1
	DefaultStopbandAttenuation = 80.0
)

// DefaultConfig returns a design configuration with every field defaulted
func DefaultConfig() models.FilterDesignConfig {
	return models.FilterDesignConfig{
		Method:              DefaultMethod,
		NumTaps:             DefaultNumTaps,
		SampleRate:          DefaultSampleRate,
		FilterType:          DefaultFilterType,
		CutoffFrequency:     DefaultCutoffFrequency,
		WindowType:          DefaultWindowType,
		PassbandRipple:      DefaultPassbandRipple,
		StopbandAttenuation: DefaultStopbandAttenuation,
		FrequencyRange:      DefaultFrequencyRange(),
	}
}

// ApplyDefaults fills zero-valued fields of cfg from DefaultConfig
func ApplyDefaults(cfg models.FilterDesignConfig) models.FilterDesignConfig {
	def := DefaultConfig()
	if cfg.Method == "" {
		cfg.Method = def.Method
	}
	if cfg.NumTaps == 0 {
		cfg.NumTaps = def.NumTaps
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = def.SampleRate
	}
	if cfg.FilterType == "" {
		cfg.FilterType = def.FilterType
	}
	if cfg.CutoffFrequency == 0 {
		cfg.CutoffFrequency = def.CutoffFrequency
	}
	if cfg.WindowType == "" {
		cfg.WindowType = def.WindowType
	}
	if cfg.PassbandRipple == 0 {
		cfg.PassbandRipple = def.PassbandRipple
	}
	if cfg.StopbandAttenuation == 0 {
		cfg.StopbandAttenuation = def.StopbandAttenuation
	}
	if cfg.FrequencyRange == (models.FrequencyRange{}) {
		cfg.FrequencyRange = def.FrequencyRange
	}
	return cfg
}

// ValidateConfig rejects structurally invalid configurations
func ValidateConfig(cfg models.FilterDesignConfig) error {
	const op = "design.ValidateConfig"
	if cfg.NumTaps < 1 {
		return apperr.New(apperr.KindInvalidConfig, op, "num taps must be positive, got %d", cfg.NumTaps)
	}
	if !(cfg.SampleRate > 0) || math.IsInf(cfg.SampleRate, 0) {
		return apperr.New(apperr.KindInvalidConfig, op, "sample rate must be positive, got %g", cfg.SampleRate)
	}
	if cfg.FrequencyRange.Enabled && !validRange(cfg.FrequencyRange) {
		return apperr.New(apperr.KindInvalidConfig, op, "invalid frequency range %g-%g Hz",
			cfg.FrequencyRange.Min, cfg.FrequencyRange.Max)
	}
	return nil
}
