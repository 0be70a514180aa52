package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"docverify/internal/domain"
)

// detectedTypes lists the sniffed content types accepted for each file type.
// Workbooks are zip containers.
var detectedTypes = map[domain.FileType]string{
	domain.FileTypePDF:  "application/pdf",
	domain.FileTypeJPG:  "image/jpeg",
	domain.FileTypePNG:  "image/png",
	domain.FileTypeXLSX: "application/zip",
}

// formDocument reads the multipart file in field as a document of the given kind.
// It returns nil without error when the field is absent.
func formDocument(c *gin.Context, field string, kind domain.DocumentKind, maxBytes int64) (*domain.Document, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", field, err)
	}
	return readUpload(header, kind, maxBytes)
}

func readUpload(header *multipart.FileHeader, kind domain.DocumentKind, maxBytes int64) (*domain.Document, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if maxBytes > 0 && header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if len(data) > 0 && http.DetectContentType(data) != detectedTypes[fileType] {
		return nil, domain.ErrUnsupportedFileType
	}

	return &domain.Document{
		Kind:        kind,
		Name:        header.Filename,
		ContentType: domain.AllowedFileTypes[fileType],
		Bytes:       data,
	}, nil
}

// forceRequested reports whether the force query parameter is set ("1" or "true").
func forceRequested(c *gin.Context) bool {
	v := strings.ToLower(c.Query("force"))
	return v == "1" || v == "true"
}
