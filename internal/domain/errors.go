package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrHashingFailed       = errors.New("cannot fingerprint empty document")
	ErrExtractionFailed    = errors.New("document extraction failed")
	ErrComparisonFailed    = errors.New("document comparison failed")
	ErrCacheUnavailable    = errors.New("cache store unavailable")
	ErrMissingDocument     = errors.New("bill of lading and invoice are required")
	ErrInvalidDocumentKind = errors.New("invalid document kind")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
)

// ExtractionError reports which document failed extraction and why.
type ExtractionError struct {
	Kind DocumentKind
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %v", e.Kind, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

func (e *ExtractionError) Is(target error) bool { return target == ErrExtractionFailed }

// ComparisonError wraps a Comparison Engine failure.
type ComparisonError struct {
	Err error
}

func (e *ComparisonError) Error() string {
	return fmt.Sprintf("comparison failed: %v", e.Err)
}

func (e *ComparisonError) Unwrap() error { return e.Err }

func (e *ComparisonError) Is(target error) bool { return target == ErrComparisonFailed }

// CacheUnavailableError reports a backing store failure for a cache operation.
type CacheUnavailableError struct {
	Op  string
	Key string
	Err error
}

func (e *CacheUnavailableError) Error() string {
	return fmt.Sprintf("cache %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *CacheUnavailableError) Unwrap() error { return e.Err }

func (e *CacheUnavailableError) Is(target error) bool { return target == ErrCacheUnavailable }
