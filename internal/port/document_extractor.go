package port

import (
	"context"

	"docverify/internal/domain"
)

// ExtractInput carries the data needed for document extraction.
type ExtractInput struct {
	FileBytes   []byte
	FileName    string
	ContentType string
	Kind        domain.DocumentKind
}

// ExtractOutput contains the structured result from an extraction provider.
type ExtractOutput struct {
	Record    domain.ShippingRecord
	ModelUsed string
}

// DocumentExtractor abstracts LLM-based extraction of trade documents.
type DocumentExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (*ExtractOutput, error)
}
