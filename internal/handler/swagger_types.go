package handler

import (
	"docverify/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// VerificationResponse is the payload of process-complete and reverify.
type VerificationResponse struct {
	Report       *domain.Report `json:"report"`
	Cached       bool           `json:"cached" example:"false"`
	WorkflowHash string         `json:"workflow_hash" example:"9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"`
	Forced       bool           `json:"forced" example:"false"`
	ReportFile   string         `json:"report_file,omitempty" example:"report_20250115_103000_1a2b3c4d.json"`
	Warnings     []string       `json:"warnings"`
}

// ExtractResponse is the payload of the single-document extract endpoint.
type ExtractResponse struct {
	DocType     domain.DocumentKind    `json:"doc_type" example:"BL"`
	Data        *domain.ShippingRecord `json:"data"`
	Cached      bool                   `json:"cached" example:"true"`
	Fingerprint string                 `json:"fingerprint" example:"2c26b46b68ffc68ff99b453c1d30413413422d706483bfa0f98a5e886266e7ae"`
	Warnings    []string               `json:"warnings,omitempty"`
}

// ReportDownloadResponse carries a presigned report URL.
type ReportDownloadResponse struct {
	Name        string `json:"name" example:"report_20250115_103000_1a2b3c4d.json"`
	DownloadURL string `json:"download_url" example:"https://docverify-reports.s3.amazonaws.com/reports/report_20250115_103000_1a2b3c4d.json?X-Amz-Signature=..."`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"cache store not reachable"`
}

// Response wraps a successful response.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
