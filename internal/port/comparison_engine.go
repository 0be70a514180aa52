package port

import (
	"context"

	"docverify/internal/domain"
)

// ComparisonEngine builds a discrepancy report from extracted records.
// packing is nil when the workflow has no packing list.
type ComparisonEngine interface {
	Compare(ctx context.Context, bl, invoice domain.ShippingRecord, packing *domain.ShippingRecord) (*domain.Report, error)
}
