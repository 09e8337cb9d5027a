package jobModel

import (
	"context"
	"time"
)

type JobStatus string
type InternalStatus string

type JobType string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	ProcessInit      InternalStatus = "Init"
	ExtractCall      InternalStatus = "Extraction"
	IngestProcessing InternalStatus = "IngestProcessing"
	Complete         InternalStatus = "Complete"

	//JobTypeProcess runs extract-then-ingest for a subject after an upload
	JobTypeProcess JobType = "Process"
	//JobTypeIngest re-indexes whatever extracted text a subject already has
	JobTypeIngest JobType = "Ingest"
)

type Job struct {
	Id          string         `json:"id"`
	TraceId     string         `json:"trace_id"`
	JobType     JobType        `json:"job_type"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobPayload struct {
	Subject        string   `json:"subject"`
	UploadFileName string   `json:"upload_file_name,omitempty"`
	ChunksCreated  int      `json:"chunks_created,omitempty"`
	FilesProcessed []string `json:"files_processed,omitempty"`
	FinalCount     int      `json:"final_count,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}
