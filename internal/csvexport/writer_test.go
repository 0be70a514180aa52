package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docverify/internal/domain"
)

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Equal(t, []string{"Field", "BL", "Invoice", "Packing", "Status"}, row)
}

func TestWriteReport(t *testing.T) {
	report := &domain.Report{
		Comparison: domain.Comparison{
			Details: []domain.FieldCheck{
				{
					Field:  "Shipper Name",
					Values: map[string]any{"BL": "ACME LTDA", "Invoice": "ACME LTDA"},
					Status: domain.CheckStatusMatch,
				},
				{
					Field:  "Gross Weight",
					Values: map[string]any{"BL": 1200.5, "Invoice": 1100.0, "Packing": 1200.5},
					Status: domain.CheckStatusMismatch,
				},
				{
					Field:  "Packages",
					Values: map[string]any{"BL": 10, "Invoice": nil},
					Status: domain.CheckStatusMismatch,
				},
			},
		},
		Summary: domain.ReportSummary{SuccessRate: "33.3%"},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteReport(report))
	w.Flush()
	require.NoError(t, w.Error())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)

	assert.Equal(t, []string{"Shipper Name", "ACME LTDA", "ACME LTDA", "", "match"}, records[1])
	assert.Equal(t, []string{"Gross Weight", "1200.5", "1100", "1200.5", "mismatch"}, records[2])
	assert.Equal(t, []string{"Packages", "10", "", "", "mismatch"}, records[3])
	assert.Equal(t, []string{"Success Rate", "", "", "", "33.3%"}, records[4])
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"simple", "simple"},
		{"with spaces here", "with_spaces_here"},
		{"special!@#$chars", "special_chars"},
		{"__leading_trailing__", "leading_trailing"},
		{"keep-hyphens_and_underscores", "keep-hyphens_and_underscores"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "discrepancies_9f86d081884c_2025-01-15.csv",
		BuildFilename("9f86d081884c7d659a2feaa0c55ad015", now))
	assert.Equal(t, "discrepancies_abc_2025-01-15.csv", BuildFilename("abc", now))
}
