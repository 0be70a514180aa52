package domain

import "strings"

// DocumentKind is the role a document plays in a verification workflow.
type DocumentKind string

const (
	DocumentKindBL      DocumentKind = "BL"
	DocumentKindInvoice DocumentKind = "INVOICE"
	DocumentKindPacking DocumentKind = "PACKING"
)

// DocumentKinds lists every kind in workflow order.
var DocumentKinds = []DocumentKind{DocumentKindBL, DocumentKindInvoice, DocumentKindPacking}

// ParseDocumentKind maps a form value ("bl", "invoice", "packing") to a DocumentKind.
func ParseDocumentKind(s string) (DocumentKind, bool) {
	switch DocumentKind(strings.ToUpper(strings.TrimSpace(s))) {
	case DocumentKindBL:
		return DocumentKindBL, true
	case DocumentKindInvoice:
		return DocumentKindInvoice, true
	case DocumentKindPacking:
		return DocumentKindPacking, true
	default:
		return "", false
	}
}

// Label returns the short name used in comparison details.
func (k DocumentKind) Label() string {
	switch k {
	case DocumentKindBL:
		return "BL"
	case DocumentKindInvoice:
		return "Invoice"
	case DocumentKindPacking:
		return "Packing"
	default:
		return string(k)
	}
}

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeJPG  FileType = "jpg"
	FileTypePNG  FileType = "png"
	FileTypeXLSX FileType = "xlsx"
)

// ContentTypeXLSX is the MIME type of Office Open XML workbooks.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF:  "application/pdf",
	FileTypeJPG:  "image/jpeg",
	FileTypePNG:  "image/png",
	FileTypeXLSX: ContentTypeXLSX,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
	"xlsx": FileTypeXLSX,
}

// CheckStatus is the outcome of one field comparison.
type CheckStatus string

const (
	CheckStatusMatch    CheckStatus = "match"
	CheckStatusMismatch CheckStatus = "mismatch"
)
