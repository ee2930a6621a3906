package dto

import "time"

type DocumentResponse struct {
	Id         string    `json:"id"`
	Filename   string    `json:"filename"`
	UploadedBy string    `json:"uploaded_by"`
	UploadDate time.Time `json:"upload_date"`
	Status     string    `json:"status"`
	LlmSummary *string   `json:"llm_summary,omitempty"`
	CloudPath  string    `json:"cloud_path"`
}
