package handler

import (
	"github.com/gin-gonic/gin"

	"docverify/internal/service"
)

// ReportHandler handles the archived report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// List handles GET /api/v1/reports
// @Summary List archived reports
// @Description List archived verification reports, newest first.
// @Tags reports
// @Produce json
// @Success 200 {object} Response{data=[]service.ReportFile} "Archived reports"
// @Failure 500 {object} ErrorResponseBody "Internal error"
// @Router /reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	files, err := h.reportService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	if files == nil {
		files = []service.ReportFile{}
	}
	RespondOK(c, files)
}

// Download handles GET /api/v1/reports/:name
// @Summary Get report download URL
// @Description Get a presigned URL for downloading an archived report.
// @Tags reports
// @Produce json
// @Param name path string true "Report file name"
// @Success 200 {object} Response{data=ReportDownloadResponse} "Download URL"
// @Failure 404 {object} ErrorResponseBody "Report not found"
// @Failure 500 {object} ErrorResponseBody "Internal error"
// @Router /reports/{name} [get]
func (h *ReportHandler) Download(c *gin.Context) {
	name := c.Param("name")
	url, err := h.reportService.DownloadURL(c.Request.Context(), name)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, ReportDownloadResponse{Name: name, DownloadURL: url})
}
