package api

import (
	"net/http"

	"github.com/RMahshie/trfdesign/internal/api/handlers"
	"github.com/RMahshie/trfdesign/internal/processing"
	"github.com/RMahshie/trfdesign/internal/repository"
	"github.com/RMahshie/trfdesign/internal/storage"
	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(api huma.API, s3Service storage.S3Service, repo repository.Repository, processingSvc processing.ProcessingService) {
	measurementHandler := handlers.NewMeasurementHandler(repo, s3Service, processingSvc)
	designHandler := handlers.NewDesignHandler(repo, processingSvc)

	huma.Register(api, huma.Operation{
		OperationID: "createMeasurement",
		Method:      http.MethodPost,
		Path:        "/api/measurements",
		Summary:     "Create a new measurement",
		Description: "Creates a measurement record and returns an upload URL for the TRF file",
		Tags:        []string{"Measurements"},
	}, measurementHandler.CreateMeasurement)

	huma.Register(api, huma.Operation{
		OperationID: "parseContent",
		Method:      http.MethodPost,
		Path:        "/api/measurements/parse",
		Summary:     "Parse pasted TRF data",
		Description: "Parses TRF text and returns the measurement set with its quality report",
		Tags:        []string{"Measurements"},
	}, measurementHandler.ParseContent)

	huma.Register(api, huma.Operation{
		OperationID: "startProcessing",
		Method:      http.MethodPost,
		Path:        "/api/measurements/{id}/process",
		Summary:     "Start processing a measurement",
		Description: "Starts parsing an uploaded TRF file",
		Tags:        []string{"Measurements"},
	}, measurementHandler.StartProcessing)

	huma.Register(api, huma.Operation{
		OperationID: "getMeasurementStatus",
		Method:      http.MethodGet,
		Path:        "/api/measurements/{id}/status",
		Summary:     "Get measurement status",
		Description: "Returns the current status and progress of a measurement",
		Tags:        []string{"Measurements"},
	}, measurementHandler.GetMeasurementStatus)

	huma.Register(api, huma.Operation{
		OperationID: "getMeasurement",
		Method:      http.MethodGet,
		Path:        "/api/measurements/{id}",
		Summary:     "Get a processed measurement",
		Description: "Returns the parsed measurement set, analysis and quality assessment",
		Tags:        []string{"Measurements"},
	}, measurementHandler.GetMeasurement)

	huma.Register(api, huma.Operation{
		OperationID: "createDesign",
		Method:      http.MethodPost,
		Path:        "/api/measurements/{id}/designs",
		Summary:     "Design a FIR filter",
		Description: "Designs a FIR filter from a processed measurement",
		Tags:        []string{"Designs"},
	}, designHandler.CreateDesign)

	huma.Register(api, huma.Operation{
		OperationID: "getDesign",
		Method:      http.MethodGet,
		Path:        "/api/designs/{id}",
		Summary:     "Get a filter design",
		Description: "Returns coefficients, verified response and metadata of a design",
		Tags:        []string{"Designs"},
	}, designHandler.GetDesign)

	huma.Register(api, huma.Operation{
		OperationID: "exportDesign",
		Method:      http.MethodGet,
		Path:        "/api/designs/{id}/export",
		Summary:     "Export filter coefficients",
		Description: "Formats coefficients as text, csv, matlab, python or high-res; optionally stores the export",
		Tags:        []string{"Designs"},
	}, designHandler.ExportDesign)

	huma.Register(api, huma.Operation{
		OperationID: "listPresets",
		Method:      http.MethodGet,
		Path:        "/api/presets",
		Summary:     "List frequency range presets",
		Tags:        []string{"Designs"},
	}, designHandler.ListPresets)
}
