// Package comparison compares the records extracted from a workflow's
// documents and renders the discrepancy report.
package comparison

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"docverify/internal/domain"
	"docverify/internal/port"
)

type fieldType int

const (
	fieldText fieldType = iota
	fieldCNPJ
	fieldNumeric
)

// rule describes one field compared across documents.
type rule struct {
	field       string
	value       func(*domain.ShippingRecord) any
	withPacking bool
	kind        fieldType
	tolerance   float64
	requireBoth bool // must be present in both BL and invoice
}

var rules = []rule{
	{field: "Shipper Name", value: func(r *domain.ShippingRecord) any { return strPtr(r.ShipperName) }, kind: fieldText},
	{field: "Consignee", value: func(r *domain.ShippingRecord) any { return strPtr(r.Consignee) }, withPacking: true, kind: fieldText},
	{field: "CNPJ", value: func(r *domain.ShippingRecord) any { return strPtr(r.CNPJ) }, kind: fieldCNPJ},
	{field: "NCM 4 Digits", value: func(r *domain.ShippingRecord) any { return strPtr(r.NCM4D) }, kind: fieldText, requireBoth: true},
	{field: "NCM 8 Digits", value: func(r *domain.ShippingRecord) any { return strPtr(r.NCM8D) }, kind: fieldText, requireBoth: true},
	{field: "Number of Packages", value: func(r *domain.ShippingRecord) any { return intPtr(r.Packages) }, withPacking: true, kind: fieldNumeric},
	{field: "Gross Weight (kg)", value: func(r *domain.ShippingRecord) any { return floatPtr(r.GrossWeight) }, withPacking: true, kind: fieldNumeric, tolerance: 0.02},
	{field: "CBM (m³)", value: func(r *domain.ShippingRecord) any { return floatPtr(r.CBM) }, withPacking: true, kind: fieldNumeric, tolerance: 0.02},
}

func strPtr(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func intPtr(i *int) any {
	if i == nil {
		return nil
	}
	return float64(*i)
}

func floatPtr(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

// Engine is the deterministic port.ComparisonEngine.
type Engine struct {
	now func() time.Time
}

// NewEngine creates a comparison Engine.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

var _ port.ComparisonEngine = (*Engine)(nil)

// Compare builds the report for bl, invoice and the optional packing record.
func (e *Engine) Compare(ctx context.Context, bl, invoice domain.ShippingRecord, packing *domain.ShippingRecord) (*domain.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	comparison := Compare(&bl, &invoice, packing)

	processed := []domain.DocumentKind{domain.DocumentKindBL, domain.DocumentKindInvoice}
	extracted := map[domain.DocumentKind]domain.ShippingRecord{
		domain.DocumentKindBL:      bl,
		domain.DocumentKindInvoice: invoice,
	}
	if packing != nil {
		processed = append(processed, domain.DocumentKindPacking)
		extracted[domain.DocumentKindPacking] = *packing
	}

	var cnpjCheck *domain.CNPJValidation
	if c := firstNonEmpty(bl.CNPJ, invoice.CNPJ); c != "" {
		cnpjCheck = &domain.CNPJValidation{
			CNPJ:      c,
			Formatted: FormatCNPJ(c),
			Valid:     ValidCNPJ(c),
		}
	}

	return &domain.Report{
		Timestamp:          e.now().UTC(),
		DocumentsProcessed: processed,
		ExtractedData:      extracted,
		CNPJValidation:     cnpjCheck,
		Comparison:         comparison,
		Summary: domain.ReportSummary{
			TotalChecks: comparison.TotalChecks,
			Passed:      comparison.Passed,
			Failed:      comparison.Failed,
			SuccessRate: successRate(comparison),
		},
	}, nil
}

// Compare runs every field rule over the records. Fields with no values in
// any document are skipped.
func Compare(bl, invoice, packing *domain.ShippingRecord) domain.Comparison {
	result := domain.Comparison{Details: []domain.FieldCheck{}}

	for _, r := range rules {
		docs := []struct {
			kind domain.DocumentKind
			rec  *domain.ShippingRecord
		}{
			{domain.DocumentKindBL, bl},
			{domain.DocumentKindInvoice, invoice},
		}
		if r.withPacking && packing != nil {
			docs = append(docs, struct {
				kind domain.DocumentKind
				rec  *domain.ShippingRecord
			}{domain.DocumentKindPacking, packing})
		}

		values := map[string]any{}
		for _, d := range docs {
			if d.rec == nil {
				continue
			}
			if v := r.value(d.rec); v != nil {
				values[d.kind.Label()] = v
			}
		}
		if len(values) == 0 {
			continue
		}

		result.TotalChecks++
		match := false
		switch {
		case r.requireBoth && len(values) != 2:
			match = false
		case r.kind == fieldText:
			match = sameText(values)
		case r.kind == fieldCNPJ:
			match = sameCNPJ(values)
		case r.kind == fieldNumeric:
			match = withinTolerance(values, r.tolerance)
		}

		status := domain.CheckStatusMismatch
		if match {
			result.Passed++
			status = domain.CheckStatusMatch
		} else {
			result.Failed++
		}
		result.Details = append(result.Details, domain.FieldCheck{
			Field:  r.field,
			Values: values,
			Status: status,
		})
	}

	return result
}

// sameText compares case-insensitively after trimming; empty values are ignored.
func sameText(values map[string]any) bool {
	seen := map[string]struct{}{}
	for _, v := range values {
		s, _ := v.(string)
		if s == "" {
			continue
		}
		seen[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	return len(seen) == 1
}

func sameCNPJ(values map[string]any) bool {
	seen := map[string]struct{}{}
	for _, v := range values {
		s, _ := v.(string)
		if s == "" {
			continue
		}
		seen[digitsOnly(s)] = struct{}{}
	}
	return len(seen) == 1
}

// withinTolerance reports whether every value lies within tolerance of the mean.
func withinTolerance(values map[string]any, tolerance float64) bool {
	var nums []float64
	for _, v := range values {
		if f, ok := v.(float64); ok {
			nums = append(nums, f)
		}
	}
	if len(nums) == 0 {
		return false
	}

	if tolerance == 0 {
		for _, n := range nums[1:] {
			if n != nums[0] {
				return false
			}
		}
		return true
	}

	sum := 0.0
	for _, n := range nums {
		sum += n
	}
	avg := sum / float64(len(nums))
	if avg == 0 {
		for _, n := range nums {
			if n != 0 {
				return false
			}
		}
		return true
	}
	for _, n := range nums {
		if math.Abs(n-avg)/math.Abs(avg) > tolerance {
			return false
		}
	}
	return true
}

func successRate(c domain.Comparison) string {
	if c.TotalChecks == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", float64(c.Passed)/float64(c.TotalChecks)*100)
}

func firstNonEmpty(values ...*string) string {
	for _, v := range values {
		if v != nil && strings.TrimSpace(*v) != "" {
			return *v
		}
	}
	return ""
}
