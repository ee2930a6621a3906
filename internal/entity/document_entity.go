package entity

import "time"

type DocumentStatus string

const (
	DocumentStatusNew        DocumentStatus = "New"
	DocumentStatusProcessing DocumentStatus = "Processing"
	DocumentStatusReviewed   DocumentStatus = "Reviewed"
	DocumentStatusUnknown    DocumentStatus = "Unknown"
)

// ParseDocumentStatus maps the server-provided status string onto the known
// set, falling back to Unknown for anything unrecognized.
func ParseDocumentStatus(s string) DocumentStatus {
	switch DocumentStatus(s) {
	case DocumentStatusNew, DocumentStatusProcessing, DocumentStatusReviewed:
		return DocumentStatus(s)
	default:
		return DocumentStatusUnknown
	}
}

// Document is a server-tracked uploaded file plus its processing state. The
// client never mutates one; the whole collection is replaced on refresh.
type Document struct {
	Id         string
	Filename   string
	UploadDate time.Time
	Status     DocumentStatus
	Summary    *string // nil while summary generation is pending
	CloudPath  string
}
