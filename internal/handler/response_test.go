package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"docverify/internal/domain"
	"docverify/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"missing document", domain.ErrMissingDocument, http.StatusBadRequest, "MISSING_DOCUMENT"},
		{"empty document", fmt.Errorf("fingerprint bl: %w", domain.ErrHashingFailed), http.StatusBadRequest, "EMPTY_DOCUMENT"},
		{"invalid kind", domain.ErrInvalidDocumentKind, http.StatusBadRequest, "INVALID_DOC_TYPE"},
		{"unsupported type", domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{"too large", domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{"extraction", &domain.ExtractionError{Kind: domain.DocumentKindBL, Err: errors.New("x")}, http.StatusBadGateway, "EXTRACTION_FAILED"},
		{"comparison", &domain.ComparisonError{Err: errors.New("x")}, http.StatusInternalServerError, "COMPARISON_FAILED"},
		{"cache", &domain.CacheUnavailableError{Op: "get", Key: "k", Err: errors.New("x")}, http.StatusServiceUnavailable, "CACHE_UNAVAILABLE"},
		{"deadline", &domain.ExtractionError{Kind: domain.DocumentKindBL, Err: context.DeadlineExceeded}, http.StatusBadGateway, "EXTRACTION_FAILED"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, msg := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
			assert.NotEmpty(t, msg)
		})
	}
}
