package dto

import "pdf-insight-workspace/pkg/store"

// OutlineEntry is one heading in a document's extracted outline.
type OutlineEntry struct {
	Level string `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// DocumentInfo describes one processed document in the corpus catalog.
type DocumentInfo struct {
	ID               string         `json:"id"`
	Filename         string         `json:"filename"`
	Title            string         `json:"title"`
	OriginalFilename string         `json:"original_filename"`
	UploadTime       string         `json:"upload_time"`
	TotalSections    int            `json:"total_sections"`
	FileSize         int64          `json:"file_size"`
	ProcessingStatus string         `json:"processing_status"`
	Outline          []OutlineEntry `json:"outline"`
}

// DocumentDetail is the full per-document payload: metadata plus all sections.
type DocumentDetail struct {
	Document DocumentInfo            `json:"document"`
	Sections []store.DocumentSection `json:"sections"`
}

// BatchUploadResult reports the outcome for one file in a batch upload.
type BatchUploadResult struct {
	Filename   string `json:"filename"`
	DocumentID string `json:"document_id"`
	Status     string `json:"status"`
	Success    bool   `json:"success"`
}

// BatchUploadResponse is the aggregate outcome of a batch upload.
type BatchUploadResponse struct {
	TotalFiles        int                 `json:"total_files"`
	SuccessfulUploads int                 `json:"successful_uploads"`
	Message           string              `json:"message"`
	Results           []BatchUploadResult `json:"results"`
}

// EmbedAPIResponse carries the viewer embedding credential.
type EmbedAPIResponse struct {
	ClientID string `json:"client_id"`
}
