package comparison_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docverify/internal/comparison"
	"docverify/internal/domain"
)

func str(s string) *string   { return &s }
func num(i int) *int         { return &i }
func flt(f float64) *float64 { return &f }

func findCheck(t *testing.T, c domain.Comparison, field string) domain.FieldCheck {
	t.Helper()
	for _, d := range c.Details {
		if d.Field == field {
			return d
		}
	}
	t.Fatalf("field %q not compared", field)
	return domain.FieldCheck{}
}

func TestCompare_AllMatch(t *testing.T) {
	bl := &domain.ShippingRecord{
		ShipperName: str("ACME Export Ltd"),
		Consignee:   str("Importadora Brasil"),
		CNPJ:        str("11.222.333/0001-81"),
		NCM4D:       str("8471"),
		NCM8D:       str("84713012"),
		Packages:    num(10),
		GrossWeight: flt(1000),
		CBM:         flt(12.5),
	}
	inv := &domain.ShippingRecord{
		ShipperName: str("  acme export ltd "),
		Consignee:   str("IMPORTADORA BRASIL"),
		CNPJ:        str("11222333000181"),
		NCM4D:       str("8471"),
		NCM8D:       str("84713012"),
		Packages:    num(10),
		GrossWeight: flt(1010),
		CBM:         flt(12.5),
	}

	c := comparison.Compare(bl, inv, nil)

	assert.Equal(t, 8, c.TotalChecks)
	assert.Equal(t, 8, c.Passed)
	assert.Equal(t, 0, c.Failed)
}

func TestCompare_NumericTolerance(t *testing.T) {
	bl := &domain.ShippingRecord{GrossWeight: flt(1000), Packages: num(10)}
	inv := &domain.ShippingRecord{GrossWeight: flt(1100), Packages: num(11)}

	c := comparison.Compare(bl, inv, nil)

	assert.Equal(t, domain.CheckStatusMismatch, findCheck(t, c, "Gross Weight (kg)").Status)
	assert.Equal(t, domain.CheckStatusMismatch, findCheck(t, c, "Number of Packages").Status)
}

func TestCompare_NCMMustExistInBoth(t *testing.T) {
	bl := &domain.ShippingRecord{NCM4D: str("8471")}
	inv := &domain.ShippingRecord{}

	c := comparison.Compare(bl, inv, nil)

	check := findCheck(t, c, "NCM 4 Digits")
	assert.Equal(t, domain.CheckStatusMismatch, check.Status)
	assert.Equal(t, 1, c.Failed)
}

func TestCompare_PackingJoinsSharedFields(t *testing.T) {
	bl := &domain.ShippingRecord{Consignee: str("Importadora"), Packages: num(5), ShipperName: str("A")}
	inv := &domain.ShippingRecord{Consignee: str("Importadora"), Packages: num(5), ShipperName: str("A")}
	pk := &domain.ShippingRecord{Consignee: str("Other Co"), Packages: num(5), ShipperName: str("B")}

	c := comparison.Compare(bl, inv, pk)

	consignee := findCheck(t, c, "Consignee")
	assert.Equal(t, domain.CheckStatusMismatch, consignee.Status)
	assert.Contains(t, consignee.Values, "Packing")

	shipper := findCheck(t, c, "Shipper Name")
	assert.Equal(t, domain.CheckStatusMatch, shipper.Status)
	assert.NotContains(t, shipper.Values, "Packing")
}

func TestCompare_SkipsFieldsWithoutValues(t *testing.T) {
	c := comparison.Compare(&domain.ShippingRecord{}, &domain.ShippingRecord{}, nil)
	assert.Equal(t, 0, c.TotalChecks)
	assert.Empty(t, c.Details)
}

func TestEngine_Compare_Report(t *testing.T) {
	e := comparison.NewEngine()
	bl := domain.ShippingRecord{CNPJ: str("11222333000181"), Packages: num(3)}
	inv := domain.ShippingRecord{CNPJ: str("11.222.333/0001-81"), Packages: num(4)}
	pk := domain.ShippingRecord{Packages: num(3)}

	report, err := e.Compare(context.Background(), bl, inv, &pk)
	require.NoError(t, err)

	assert.Equal(t, []domain.DocumentKind{domain.DocumentKindBL, domain.DocumentKindInvoice, domain.DocumentKindPacking}, report.DocumentsProcessed)
	assert.Len(t, report.ExtractedData, 3)
	require.NotNil(t, report.CNPJValidation)
	assert.True(t, report.CNPJValidation.Valid)
	assert.Equal(t, "11.222.333/0001-81", report.CNPJValidation.Formatted)
	assert.Equal(t, 2, report.Summary.TotalChecks)
	assert.Equal(t, "50.0%", report.Summary.SuccessRate)
}

func TestEngine_Compare_NoChecks(t *testing.T) {
	report, err := comparison.NewEngine().Compare(context.Background(), domain.ShippingRecord{}, domain.ShippingRecord{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "N/A", report.Summary.SuccessRate)
	assert.Nil(t, report.CNPJValidation)
}

func TestEngine_Compare_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := comparison.NewEngine().Compare(ctx, domain.ShippingRecord{}, domain.ShippingRecord{}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidCNPJ(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"11.222.333/0001-81", true},
		{"11222333000181", true},
		{"11222333000182", false},
		{"11111111111111", false},
		{"1234", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, comparison.ValidCNPJ(tt.in), tt.in)
	}
}
