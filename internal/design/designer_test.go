package design

import (
	"math"
	"testing"

	"github.com/RMahshie/trfdesign/internal/apperr"
	"github.com/RMahshie/trfdesign/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "least-squares", cfg.Method)
	assert.Equal(t, 512, cfg.NumTaps)
	assert.Equal(t, 48000.0, cfg.SampleRate)
	assert.Equal(t, "lowpass", cfg.FilterType)
	assert.Equal(t, 0.1, cfg.CutoffFrequency)
	assert.Equal(t, "hamming", cfg.WindowType)
	assert.Equal(t, 0.1, cfg.PassbandRipple)
	assert.Equal(t, 80.0, cfg.StopbandAttenuation)
	assert.Equal(t, DefaultFrequencyRange(), cfg.FrequencyRange)
}

func TestApplyDefaults_KeepsExplicitFields(t *testing.T) {
	cfg := ApplyDefaults(models.FilterDesignConfig{NumTaps: 64, WindowType: "blackman"})
	assert.Equal(t, 64, cfg.NumTaps)
	assert.Equal(t, "blackman", cfg.WindowType)
	assert.Equal(t, DefaultSampleRate, cfg.SampleRate)
	assert.Equal(t, DefaultMethod, cfg.Method)
	assert.Equal(t, DefaultFrequencyRange(), cfg.FrequencyRange)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.FilterDesignConfig)
		wantErr bool
	}{
		{"defaults", func(*models.FilterDesignConfig) {}, false},
		{"single tap", func(c *models.FilterDesignConfig) { c.NumTaps = 1 }, false},
		{"zero taps", func(c *models.FilterDesignConfig) { c.NumTaps = 0 }, true},
		{"negative taps", func(c *models.FilterDesignConfig) { c.NumTaps = -4 }, true},
		{"zero sample rate", func(c *models.FilterDesignConfig) { c.SampleRate = 0 }, true},
		{"NaN sample rate", func(c *models.FilterDesignConfig) { c.SampleRate = math.NaN() }, true},
		{"inverted range", func(c *models.FilterDesignConfig) {
			c.FrequencyRange = models.FrequencyRange{Enabled: true, Min: 500, Max: 100}
		}, true},
		{"negative range min", func(c *models.FilterDesignConfig) {
			c.FrequencyRange = models.FrequencyRange{Enabled: true, Min: -1, Max: 100}
		}, true},
		{"inverted but disabled range", func(c *models.FilterDesignConfig) {
			c.FrequencyRange = models.FrequencyRange{Enabled: false, Min: 500, Max: 100}
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperr.Is(err, apperr.KindInvalidConfig))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDesign_CoefficientCount(t *testing.T) {
	for _, n := range []int{1, 2, 5, 64, 101, 512} {
		cfg := DefaultConfig()
		cfg.NumTaps = n

		result, err := Design(pts(100, 1000, 10000), cfg)
		require.NoError(t, err)
		assert.Len(t, result.Coefficients, n)
		assert.Equal(t, n, result.Metadata.NumTaps)
		assert.Len(t, result.FrequencyResponse, ResponsePoints)
	}
}

func TestDesign_FiveTaps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumTaps = 5

	result, err := Design(pts(1000), cfg)
	require.NoError(t, err)

	want := []float64{0.0121092, 0.1010330, 0.2, 0.1010330, 0.0121092}
	require.Len(t, result.Coefficients, len(want))
	for i := range want {
		assert.InDelta(t, want[i], result.Coefficients[i], 1e-6, "tap %d", i)
	}
}

func TestDesign_SingleTap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumTaps = 1

	result, err := Design(pts(1000), cfg)
	require.NoError(t, err)
	assert.InDelta(t, 2*0.1*0.08, result.Coefficients[0], 1e-12)
}

func TestDesign_SymmetricForOddLengths(t *testing.T) {
	for _, n := range []int{3, 31, 101, 255} {
		cfg := DefaultConfig()
		cfg.NumTaps = n

		result, err := Design(pts(1000), cfg)
		require.NoError(t, err)

		c := result.Coefficients
		for i := range c {
			assert.InDelta(t, c[i], c[n-1-i], 1e-12, "n=%d tap %d", n, i)
		}
	}
}

func TestDesign_IgnoresCutoffAndType(t *testing.T) {
	a := DefaultConfig()
	a.NumTaps = 33
	b := a
	b.CutoffFrequency = 0.35
	b.FilterType = "highpass"
	b.Method = "parks-mcclellan"

	ra, err := Design(pts(1000), a)
	require.NoError(t, err)
	rb, err := Design(pts(1000), b)
	require.NoError(t, err)

	assert.Equal(t, ra.Coefficients, rb.Coefficients)
	assert.Equal(t, "highpass", rb.Metadata.FilterType)
	assert.Equal(t, 0.35, rb.Metadata.CutoffFrequency)
	assert.Equal(t, "parks-mcclellan", rb.Metadata.Method)
}

func TestDesign_FrequencyRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumTaps = 11
	cfg.FrequencyRange = models.FrequencyRange{Enabled: true, Min: 300, Max: 3400, Preset: "speech"}

	result, err := Design(pts(100, 500, 1000, 5000), cfg)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Metadata.OriginalDataPoints)
	assert.Equal(t, 2, result.Metadata.FilteredDataPoints)
	assert.Equal(t, cfg.FrequencyRange, result.Metadata.FrequencyRange)

	cfg.FrequencyRange = models.FrequencyRange{Enabled: true, Min: 15000, Max: 16000}
	_, err = Design(pts(100, 500), cfg)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindFrequencyRangeEmpty))
}

func TestDesign_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumTaps = 0

	result, err := Design(pts(1000), cfg)
	assert.Nil(t, result)
	assert.True(t, apperr.Is(err, apperr.KindInvalidConfig))
}

func TestToResponse(t *testing.T) {
	out := ToResponse([]models.MeasurementPoint{
		{Frequency: 12000, Magnitude: 0, Phase: 180},
		{Frequency: 0, Magnitude: -20, Phase: -90},
	}, 48000)

	require.Len(t, out, 2)
	assert.InDelta(t, 0.5, out[0].Freq, 1e-12)
	assert.InDelta(t, 1.0, out[0].Amp, 1e-12)
	assert.InDelta(t, math.Pi, out[0].Phase, 1e-12)
	assert.InDelta(t, 0.1, out[1].Amp, 1e-12)
	assert.InDelta(t, -math.Pi/2, out[1].Phase, 1e-12)
}

func TestHamming(t *testing.T) {
	w := Hamming(5)
	assert.InDeltaSlice(t, []float64{0.08, 0.54, 1, 0.54, 0.08}, w, 1e-12)
	assert.InDeltaSlice(t, []float64{0.08}, Hamming(1), 1e-12)
	assert.Empty(t, Hamming(0))
}
