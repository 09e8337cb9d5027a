package api

import "time"

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	Subject   string            `json:"subject" example:"physics"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type IngestResult struct {
	ChunksCreated  int      `json:"chunks_created"`
	FilesProcessed []string `json:"files_processed,omitempty"`
	FinalCount     int      `json:"final_count"`
}

type Result struct {
	Status       string        `json:"status"`
	IngestResult *IngestResult `json:"ingest_result,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

// SourceDocument is one retrieved chunk returned alongside an answer.
type SourceDocument struct {
	Content  string         `json:"content"`
	Metadata SourceMetadata `json:"metadata"`
}

type SourceMetadata struct {
	Id       string  `json:"id" example:"physics_0"`
	Distance float32 `json:"distance"`
}

// QueryResponse always carries Query and SourceDocuments, even when Error is
// set - retrieval provenance survives a failed generation step.
type QueryResponse struct {
	Query           string           `json:"query"`
	Answer          string           `json:"answer"`
	SourceDocuments []SourceDocument `json:"source_documents"`
	Error           string           `json:"error,omitempty"`
}

type IngestResponse struct {
	Message        string   `json:"message"`
	ChunksCreated  int      `json:"chunks_created"`
	FilesProcessed []string `json:"files_processed"`
	FinalCount     int      `json:"final_count"`
}

type ExtractResponse struct {
	Message        string            `json:"message"`
	ProcessedFiles []ProcessedFile   `json:"processed_files"`
	ExtractedTexts map[string]string `json:"extracted_texts,omitempty"`
}

type ProcessedFile struct {
	OriginalFile string `json:"original_file"`
	TextFile     string `json:"text_file"`
	TextLength   int    `json:"text_length"`
}

type FolderResponse struct {
	Message string `json:"message"`
	Path    string `json:"path"`
}

// requests---------------------

type QueryRequest struct {
	Subject string `json:"subject" validate:"required"`
	Query   string `json:"query" validate:"required"`
}

type SubjectRequest struct {
	Subject string `json:"subject" validate:"required"`
}

type FolderRequest struct {
	Parent string `json:"parent,omitempty"`
	Name   string `json:"name" validate:"required"`
}

type JobStatusRequest struct {
	JobId string `json:"job_id" validate:"required"`
}
