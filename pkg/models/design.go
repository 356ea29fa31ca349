package models

// FrequencyRange restricts the band of measurement data fed to the designer
type FrequencyRange struct {
	Enabled bool    `json:"enabled" doc:"Whether the range restriction is active"`
	Min     float64 `json:"min" doc:"Lower bound in Hz"`
	Max     float64 `json:"max" doc:"Upper bound in Hz"`
	Preset  string  `json:"preset,omitempty" doc:"Named preset the bounds came from"`
}

// FilterDesignConfig holds the parameters of one design request
type FilterDesignConfig struct {
	Method              string         `json:"method" doc:"Design method name"`
	NumTaps             int            `json:"num_taps" doc:"Number of FIR taps"`
	SampleRate          float64        `json:"sample_rate" doc:"Sample rate in Hz"`
	FilterType          string         `json:"filter_type" doc:"Filter type"`
	CutoffFrequency     float64        `json:"cutoff_frequency" doc:"Normalized cutoff frequency"`
	WindowType          string         `json:"window_type" doc:"Window function"`
	PassbandRipple      float64        `json:"passband_ripple" doc:"Passband ripple in dB"`
	StopbandAttenuation float64        `json:"stopband_attenuation" doc:"Stopband attenuation in dB"`
	FrequencyRange      FrequencyRange `json:"frequency_range" doc:"Optional band restriction"`
}

// DesignMetadata echoes the effective configuration of a design
type DesignMetadata struct {
	NumTaps            int            `json:"num_taps"`
	SampleRate         float64        `json:"sample_rate"`
	Method             string         `json:"method"`
	FilterType         string         `json:"filter_type"`
	CutoffFrequency    float64        `json:"cutoff_frequency"`
	WindowType         string         `json:"window_type"`
	FrequencyRange     FrequencyRange `json:"frequency_range"`
	OriginalDataPoints int            `json:"original_data_points"`
	FilteredDataPoints int            `json:"filtered_data_points"`
}

// FilterDesignResult is the output of a single design invocation
type FilterDesignResult struct {
	Coefficients      []float64       `json:"coefficients" doc:"FIR coefficients"`
	FrequencyResponse []ResponsePoint `json:"frequency_response" doc:"Response of the designed filter"`
	Metadata          DesignMetadata  `json:"metadata" doc:"Effective configuration"`
}
