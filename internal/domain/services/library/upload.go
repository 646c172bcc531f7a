package library

import "io"

// UploadedFile represents one file handed to the coordinator for import
type UploadedFile struct {
	Filename string
	Content  io.Reader
}

// UploadResult reports the outcome of a multi-file upload. Each file is an
// independent unit of work: one failure never aborts the batch, so the
// result can mix stored and failed entries.
type UploadResult struct {
	Summary  UploadSummary `json:"summary"`
	Outcomes []FileOutcome `json:"outcomes"`
}

// UploadSummary contains aggregate counts for an upload
type UploadSummary struct {
	Stored     int `json:"stored"`
	Failed     int `json:"failed"`
	TotalFiles int `json:"total_files"`
}

// FileOutcome is the per-file result of an upload
type FileOutcome struct {
	Filename   string `json:"filename"`
	DocumentID string `json:"document_id,omitempty"` // set when stored
	Error      string `json:"error,omitempty"`       // set when failed
}
