package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"docverify/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Field",
	"BL",
	"Invoice",
	"Packing",
	"Status",
}

// valueColumns maps document labels to their column index.
var valueColumns = map[string]int{
	domain.DocumentKindBL.Label():      1,
	domain.DocumentKindInvoice.Label(): 2,
	domain.DocumentKindPacking.Label(): 3,
}

// Writer wraps csv.Writer for exporting report comparisons as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteReport writes one row per field check followed by a summary row.
func (w *Writer) WriteReport(report *domain.Report) error {
	for i := range report.Comparison.Details {
		if err := w.csv.Write(checkToRow(&report.Comparison.Details[i])); err != nil {
			return err
		}
	}
	summary := make([]string, len(columns))
	summary[0] = "Success Rate"
	summary[4] = report.Summary.SuccessRate
	return w.csv.Write(summary)
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// checkToRow converts a single field check to a row. Documents that did not
// supply the field leave their column empty.
func checkToRow(check *domain.FieldCheck) []string {
	row := make([]string, len(columns))
	row[0] = check.Field
	for label, v := range check.Values {
		if idx, ok := valueColumns[label]; ok {
			row[idx] = formatValue(v)
		}
	}
	row[4] = string(check.Status)
	return row
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	default:
		return fmt.Sprint(val)
	}
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: discrepancies_{first 12 chars of workflow hash}_{YYYY-MM-DD}.csv
func BuildFilename(workflowHash string, now time.Time) string {
	if len(workflowHash) > 12 {
		workflowHash = workflowHash[:12]
	}
	name := SanitizeFilename("discrepancies_" + workflowHash)
	return fmt.Sprintf("%s_%s.csv", name, now.Format("2006-01-02"))
}
