package models

import (
	"time"
)

// Measurement statuses
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// MaxUploadBytes is the largest TRF source accepted (100 MB)
const MaxUploadBytes = 100 * 1024 * 1024

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// CreateMeasurementRequestBody is the body of a create measurement request
type CreateMeasurementRequestBody struct {
	SessionID string `json:"session_id" minLength:"10" maxLength:"50" required:"true" doc:"Client session identifier"`
	FileName  string `json:"file_name" minLength:"1" maxLength:"255" required:"true" doc:"Original TRF file name"`
	FileSize  int64  `json:"file_size" minimum:"1" maximum:"104857600" required:"true" doc:"TRF file size in bytes"`
}

// CreateMeasurementRequest represents a request to register a TRF upload
type CreateMeasurementRequest struct {
	Body CreateMeasurementRequestBody
}

// CreateMeasurementResponseBody is the body of the create measurement response
type CreateMeasurementResponseBody struct {
	ID        string `json:"id" doc:"Measurement unique identifier"`
	UploadURL string `json:"upload_url" doc:"Pre-signed S3 URL for file upload"`
	ExpiresIn int    `json:"expires_in" doc:"URL expiration time in seconds"`
}

// CreateMeasurementResponse represents the response from creating a measurement
type CreateMeasurementResponse struct {
	Body CreateMeasurementResponseBody
}

// MeasurementIDRequest addresses a single measurement
type MeasurementIDRequest struct {
	ID string `path:"id" doc:"Measurement ID"`
}

// GetMeasurementStatusResponseBody is the body of the status response
type GetMeasurementStatusResponseBody struct {
	ID       string `json:"id" doc:"Measurement ID"`
	Status   string `json:"status" enum:"pending,processing,completed,failed" doc:"Processing status"`
	Progress int    `json:"progress" minimum:"0" maximum:"100" doc:"Processing progress percentage"`
	Message  string `json:"message,omitempty" doc:"Human-readable status message"`
}

// GetMeasurementStatusResponse represents the current status of a measurement
type GetMeasurementStatusResponse struct {
	Body GetMeasurementStatusResponseBody
}

// MeasurementResponseBody carries a parsed measurement set and its quality report
type MeasurementResponseBody struct {
	ID         string            `json:"id,omitempty" doc:"Measurement ID"`
	FileName   string            `json:"file_name" doc:"Source name"`
	Set        *MeasurementSet   `json:"set" doc:"Parsed measurement set"`
	Analysis   *DataAnalysis     `json:"analysis" doc:"Aggregate statistics"`
	Assessment QualityAssessment `json:"assessment" doc:"Quality assessment"`
	CreatedAt  time.Time         `json:"created_at" doc:"Parse timestamp"`
}

// GetMeasurementResponse returns a processed measurement
type GetMeasurementResponse struct {
	Body MeasurementResponseBody
}

// ParseContentRequest carries pasted TRF text
type ParseContentRequest struct {
	Body struct {
		Name    string `json:"name,omitempty" maxLength:"255" doc:"Display name for the pasted data"`
		Content string `json:"content" minLength:"1" required:"true" doc:"Raw TRF text"`
	}
}

// StartProcessingResponse represents the response from starting processing
type StartProcessingResponse struct {
	Body struct {
		Message string `json:"message" doc:"Confirmation message"`
	}
}

// DesignConfigBody is the design request body. Zero fields take their defaults.
type DesignConfigBody struct {
	Method              string          `json:"method,omitempty" doc:"Design method name"`
	NumTaps             *int            `json:"num_taps,omitempty" maximum:"65536" doc:"Number of FIR taps; omit for the default"`
	SampleRate          float64         `json:"sample_rate,omitempty" minimum:"0" doc:"Sample rate in Hz"`
	FilterType          string          `json:"filter_type,omitempty" doc:"Filter type"`
	CutoffFrequency     float64         `json:"cutoff_frequency,omitempty" doc:"Normalized cutoff frequency"`
	WindowType          string          `json:"window_type,omitempty" doc:"Window function"`
	PassbandRipple      float64         `json:"passband_ripple,omitempty" doc:"Passband ripple in dB"`
	StopbandAttenuation float64         `json:"stopband_attenuation,omitempty" doc:"Stopband attenuation in dB"`
	Preset              string          `json:"preset,omitempty" doc:"Frequency range preset name"`
	FrequencyRange      *FrequencyRange `json:"frequency_range,omitempty" doc:"Explicit band restriction"`
}

// CreateDesignRequest requests a filter design for a processed measurement
type CreateDesignRequest struct {
	ID   string `path:"id" doc:"Measurement ID"`
	Body DesignConfigBody
}

// DesignIDRequest addresses a stored design
type DesignIDRequest struct {
	ID string `path:"id" doc:"Design ID"`
}

// DesignResponse returns a stored design
type DesignResponse struct {
	Body FilterDesign
}

// ExportDesignRequest asks for a coefficient export of a stored design
type ExportDesignRequest struct {
	ID         string  `path:"id" doc:"Design ID"`
	Format     string  `query:"format" enum:"text,csv,matlab,python,high-res" default:"text" doc:"Export encoding"`
	SampleRate float64 `query:"sample_rate" minimum:"0" doc:"Sample rate for the high-res header"`
	Persist    bool    `query:"persist" doc:"Store the export and return a download URL"`
}

// ExportResult is the outcome of an export
type ExportResult struct {
	Format      string `json:"format" doc:"Export encoding"`
	FileName    string `json:"file_name" doc:"Suggested file name"`
	Content     string `json:"content" doc:"Formatted coefficients"`
	DownloadURL string `json:"download_url,omitempty" doc:"Pre-signed URL when persisted"`
}

// ExportDesignResponse returns formatted coefficients
type ExportDesignResponse struct {
	Body ExportResult
}

// PresetInfo describes a named frequency range
type PresetInfo struct {
	Name string  `json:"name"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// ListPresetsResponse lists frequency range presets
type ListPresetsResponse struct {
	Body struct {
		Presets []PresetInfo `json:"presets"`
	}
}

// Measurement represents an uploaded TRF source (for internal use)
type Measurement struct {
	ID          string     `json:"id"`
	SessionID   string     `json:"session_id"`
	FileName    string     `json:"file_name"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"`
	SourceS3Key *string    `json:"source_s3_key,omitempty"`
	ErrorMsg    *string    `json:"error_message,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// MeasurementResults represents a stored parse of a measurement
type MeasurementResults struct {
	ID            string            `json:"id"`
	MeasurementID string            `json:"measurement_id"`
	Set           *MeasurementSet   `json:"set"`
	Analysis      *DataAnalysis     `json:"analysis"`
	Assessment    QualityAssessment `json:"assessment"`
	CreatedAt     time.Time         `json:"created_at"`
}

// FilterDesign represents a stored design
type FilterDesign struct {
	ID            string             `json:"id" doc:"Design ID"`
	MeasurementID string             `json:"measurement_id" doc:"Source measurement ID"`
	Config        FilterDesignConfig `json:"config" doc:"Requested configuration"`
	Result        FilterDesignResult `json:"result" doc:"Design output"`
	CreatedAt     time.Time          `json:"created_at" doc:"Design timestamp"`
}
