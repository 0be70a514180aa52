package domain

import (
	"fmt"
	"strings"
	"time"
)

// Document is one uploaded file declared under a workflow role.
type Document struct {
	Kind        DocumentKind
	Name        string
	ContentType string
	Bytes       []byte
}

// Fingerprint is the hex SHA-256 digest of a document's raw bytes.
type Fingerprint string

// DocumentCacheKey identifies one cached extraction result. The same bytes
// submitted under two kinds produce two distinct keys.
type DocumentCacheKey struct {
	Fingerprint Fingerprint  `json:"fingerprint"`
	Kind        DocumentKind `json:"kind"`
}

// String renders the key as stored in the cache store.
func (k DocumentCacheKey) String() string {
	return fmt.Sprintf("doc:%s:%s", k.Kind, k.Fingerprint)
}

// WorkflowFingerprint is the composite fingerprint of one BL/invoice/packing set.
type WorkflowFingerprint string

// StoreKey renders the workflow fingerprint as stored in the cache store.
func (w WorkflowFingerprint) StoreKey() string {
	return "workflow:" + string(w)
}

// PackingRef is either a packing list fingerprint or the explicit absence of one.
// The zero value is the absent variant.
type PackingRef struct {
	fingerprint Fingerprint
	present     bool
}

// SomePacking wraps the fingerprint of a submitted packing list.
func SomePacking(fp Fingerprint) PackingRef {
	return PackingRef{fingerprint: fp, present: true}
}

// NoPacking is the variant for workflows submitted without a packing list.
func NoPacking() PackingRef {
	return PackingRef{}
}

// Get returns the fingerprint and whether a packing list was submitted.
func (p PackingRef) Get() (Fingerprint, bool) {
	return p.fingerprint, p.present
}

// ShippingRecord is the structured data extracted from one trade document.
type ShippingRecord struct {
	ShipperName      *string  `json:"shipper_name"`
	Consignee        *string  `json:"consignee"`
	CNPJ             *string  `json:"cnpj"`
	Localization     *string  `json:"localization"`
	NCM4D            *string  `json:"ncm_4d"`
	NCM8D            *string  `json:"ncm_8d"`
	Packages         *int     `json:"packages"`
	GrossWeight      *float64 `json:"gross_weight"`
	CBM              *float64 `json:"cbm"`
	ExtractionMethod string   `json:"extraction_method,omitempty"`
	Confidence       *float64 `json:"confidence,omitempty"`
}

// IsMeaningful reports whether at least one comparable field was extracted.
func (r *ShippingRecord) IsMeaningful() bool {
	for _, s := range []*string{r.ShipperName, r.Consignee, r.CNPJ, r.Localization, r.NCM4D, r.NCM8D} {
		if s != nil && strings.TrimSpace(*s) != "" {
			return true
		}
	}
	return r.Packages != nil || r.GrossWeight != nil || r.CBM != nil
}

// FieldCheck is the comparison of one field across documents.
type FieldCheck struct {
	Field  string         `json:"field"`
	Values map[string]any `json:"values"`
	Status CheckStatus    `json:"status"`
}

// Comparison holds the per-field results of comparing a workflow's records.
type Comparison struct {
	TotalChecks int          `json:"total_checks"`
	Passed      int          `json:"passed"`
	Failed      int          `json:"failed"`
	Warnings    int          `json:"warnings"`
	Details     []FieldCheck `json:"details"`
}

// CNPJValidation is the offline check-digit validation of the workflow's CNPJ.
type CNPJValidation struct {
	CNPJ      string `json:"cnpj"`
	Formatted string `json:"formatted"`
	Valid     bool   `json:"valid"`
}

// ReportSummary condenses the comparison counts.
type ReportSummary struct {
	TotalChecks int    `json:"total_checks"`
	Passed      int    `json:"passed"`
	Failed      int    `json:"failed"`
	SuccessRate string `json:"success_rate"`
}

// Report is the finished discrepancy report for one workflow.
type Report struct {
	Timestamp          time.Time                       `json:"timestamp"`
	DocumentsProcessed []DocumentKind                  `json:"documents_processed"`
	ExtractedData      map[DocumentKind]ShippingRecord `json:"extracted_data"`
	CNPJValidation     *CNPJValidation                 `json:"cnpj_validation"`
	Comparison         Comparison                      `json:"comparison"`
	Summary            ReportSummary                   `json:"summary"`
}

// DocumentCacheEntry is a cached extraction result. It is usable only while
// now < CreatedAt+TTL; a zero TTL never expires.
type DocumentCacheEntry struct {
	Key       DocumentCacheKey `json:"key"`
	Record    ShippingRecord   `json:"record"`
	CreatedAt time.Time        `json:"created_at"`
	TTL       time.Duration    `json:"ttl"`
}

// WorkflowCacheEntry is a cached report together with the document keys it was built from.
type WorkflowCacheEntry struct {
	Workflow   WorkflowFingerprint `json:"workflow"`
	Report     Report              `json:"report"`
	Documents  []DocumentCacheKey  `json:"documents"`
	CreatedAt  time.Time           `json:"created_at"`
	TTL        time.Duration       `json:"ttl"`
	LastAccess time.Time           `json:"last_access"`
}

// Expired reports whether an entry created at createdAt with ttl is stale at now.
func Expired(createdAt time.Time, ttl time.Duration, now time.Time) bool {
	if ttl <= 0 {
		return false
	}
	return !now.Before(createdAt.Add(ttl))
}
