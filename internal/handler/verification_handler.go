package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"docverify/internal/csvexport"
	"docverify/internal/domain"
	"docverify/internal/service"
)

// VerificationHandler handles document verification endpoints.
type VerificationHandler struct {
	verificationService service.VerificationService
	maxFileBytes        int64
}

// NewVerificationHandler creates a new VerificationHandler. Uploads larger
// than maxFileSizeMB are rejected; zero disables the check.
func NewVerificationHandler(verificationService service.VerificationService, maxFileSizeMB int64) *VerificationHandler {
	return &VerificationHandler{
		verificationService: verificationService,
		maxFileBytes:        maxFileSizeMB * 1024 * 1024,
	}
}

// ProcessComplete handles POST /api/v1/process-complete
// @Summary Verify a document set
// @Description Extract and compare a bill of lading, an invoice and an optional packing list. Results are cached by content; pass force=1 to bypass the cache.
// @Tags verification
// @Accept multipart/form-data
// @Produce json
// @Param bl formData file true "Bill of lading (PDF, JPG, PNG or XLSX)"
// @Param invoice formData file true "Commercial invoice (PDF, JPG, PNG or XLSX)"
// @Param packing formData file false "Packing list (PDF, JPG, PNG or XLSX)"
// @Param force query string false "Bypass cached results (1 or true)"
// @Param format query string false "Set to csv to download the field checks as CSV"
// @Success 200 {object} Response{data=VerificationResponse} "Verification report"
// @Failure 400 {object} ErrorResponseBody "Missing document or unsupported type"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 429 {object} ErrorResponseBody "Extraction provider rate limited"
// @Failure 502 {object} ErrorResponseBody "Extraction failed"
// @Failure 500 {object} ErrorResponseBody "Comparison failed"
// @Router /process-complete [post]
func (h *VerificationHandler) ProcessComplete(c *gin.Context) {
	input, ok := h.bindWorkflow(c)
	if !ok {
		return
	}
	input.Force = forceRequested(c)

	result, err := h.verificationService.Process(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	h.respond(c, result)
}

// Reverify handles POST /api/v1/reverify
// @Summary Re-verify a document set
// @Description Drop every cached result for the submitted documents and verify them again.
// @Tags verification
// @Accept multipart/form-data
// @Produce json
// @Param bl formData file true "Bill of lading (PDF, JPG, PNG or XLSX)"
// @Param invoice formData file true "Commercial invoice (PDF, JPG, PNG or XLSX)"
// @Param packing formData file false "Packing list (PDF, JPG, PNG or XLSX)"
// @Param format query string false "Set to csv to download the field checks as CSV"
// @Success 200 {object} Response{data=VerificationResponse} "Fresh verification report"
// @Failure 400 {object} ErrorResponseBody "Missing document or unsupported type"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 502 {object} ErrorResponseBody "Extraction failed"
// @Failure 500 {object} ErrorResponseBody "Comparison failed"
// @Router /reverify [post]
func (h *VerificationHandler) Reverify(c *gin.Context) {
	input, ok := h.bindWorkflow(c)
	if !ok {
		return
	}

	result, err := h.verificationService.Reverify(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	h.respond(c, result)
}

// Extract handles POST /api/v1/extract
// @Summary Extract a single document
// @Description Extract shipping data from one document. Only the per-document cache is used.
// @Tags verification
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document (PDF, JPG, PNG or XLSX)"
// @Param doc_type formData string true "Document role: bl, invoice or packing"
// @Param force query string false "Bypass cached results (1 or true)"
// @Success 200 {object} Response{data=ExtractResponse} "Extracted record"
// @Failure 400 {object} ErrorResponseBody "Missing file, invalid doc_type or unsupported type"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 502 {object} ErrorResponseBody "Extraction failed"
// @Router /extract [post]
func (h *VerificationHandler) Extract(c *gin.Context) {
	kind, ok := domain.ParseDocumentKind(c.PostForm("doc_type"))
	if !ok {
		HandleError(c, domain.ErrInvalidDocumentKind)
		return
	}

	doc, err := formDocument(c, "file", kind, h.maxFileBytes)
	if err != nil {
		HandleError(c, err)
		return
	}
	if doc == nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}

	result, err := h.verificationService.Extract(c.Request.Context(), *doc, forceRequested(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, ExtractResponse{
		DocType:     kind,
		Data:        result.Record,
		Cached:      result.Cached,
		Fingerprint: string(result.Fingerprint),
		Warnings:    result.Warnings,
	})
}

// bindWorkflow reads the bl, invoice and packing fields. It writes the error
// response itself and reports false when the request cannot proceed.
func (h *VerificationHandler) bindWorkflow(c *gin.Context) (*service.ProcessInput, bool) {
	bl, err := formDocument(c, "bl", domain.DocumentKindBL, h.maxFileBytes)
	if err != nil {
		HandleError(c, err)
		return nil, false
	}
	invoice, err := formDocument(c, "invoice", domain.DocumentKindInvoice, h.maxFileBytes)
	if err != nil {
		HandleError(c, err)
		return nil, false
	}
	if bl == nil || invoice == nil {
		HandleError(c, domain.ErrMissingDocument)
		return nil, false
	}
	packing, err := formDocument(c, "packing", domain.DocumentKindPacking, h.maxFileBytes)
	if err != nil {
		HandleError(c, err)
		return nil, false
	}

	log.Printf("VerificationHandler: received bl=%s invoice=%s packing=%t",
		bl.Name, invoice.Name, packing != nil)

	return &service.ProcessInput{BL: *bl, Invoice: *invoice, Packing: packing}, true
}

// respond writes the result as JSON, or as a CSV attachment when format=csv.
func (h *VerificationHandler) respond(c *gin.Context, result *service.ProcessResult) {
	if c.Query("format") != "csv" {
		RespondOK(c, toVerificationResponse(result))
		return
	}

	filename := csvexport.BuildFilename(string(result.WorkflowFingerprint), time.Now())
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	_, _ = c.Writer.Write(csvexport.BOM)
	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		log.Printf("VerificationHandler.respond: writing CSV header: %v", err)
		return
	}
	if err := w.WriteReport(result.Report); err != nil {
		log.Printf("VerificationHandler.respond: writing CSV rows: %v", err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Printf("VerificationHandler.respond: flushing CSV: %v", err)
	}
}

func toVerificationResponse(result *service.ProcessResult) VerificationResponse {
	warnings := result.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return VerificationResponse{
		Report:       result.Report,
		Cached:       result.Cached,
		WorkflowHash: string(result.WorkflowFingerprint),
		Forced:       result.Forced,
		ReportFile:   result.ReportFile,
		Warnings:     warnings,
	}
}
