package adapter

import (
	"fmt"
	"time"

	"github.com/nkatturi/NotesAPI/internal/api"
	"github.com/nkatturi/NotesAPI/internal/domain/commonModels"
	"github.com/nkatturi/NotesAPI/internal/domain/jobModel"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("status/%s", id), //pass "status/job.Id"
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status:       string(job.Status),
		IngestResult: ToIngestResult(job.JobPayload),
	}

	return api.JobResponse{
		Id:        job.Id,
		Subject:   job.JobPayload.Subject,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

func ToIngestResult(payload jobModel.JobPayload) *api.IngestResult {
	if payload.ChunksCreated == 0 && payload.FinalCount == 0 {
		return nil
	}

	return &api.IngestResult{
		ChunksCreated:  payload.ChunksCreated,
		FilesProcessed: payload.FilesProcessed,
		FinalCount:     payload.FinalCount,
	}
}

// ToQueryResponse flattens a pipeline result for the wire. errMessage is ""
// on success; the source documents travel either way.
func ToQueryResponse(result commonModels.QueryResult, errMessage string) api.QueryResponse {
	sources := make([]api.SourceDocument, 0, len(result.Sources))
	for _, hit := range result.Sources {
		sources = append(sources, api.SourceDocument{
			Content: hit.Content,
			Metadata: api.SourceMetadata{
				Id:       hit.ChunkKey,
				Distance: hit.Distance,
			},
		})
	}

	return api.QueryResponse{
		Query:           result.Query,
		Answer:          result.Answer,
		SourceDocuments: sources,
		Error:           errMessage,
	}
}

func ToIngestResponse(report commonModels.IngestReport) api.IngestResponse {
	return api.IngestResponse{
		Message:        fmt.Sprintf("Ingested subject %q", report.Subject),
		ChunksCreated:  report.ChunksCreated,
		FilesProcessed: report.FilesProcessed,
		FinalCount:     report.FinalCount,
	}
}

func ToExtractResponse(report commonModels.ExtractReport) api.ExtractResponse {
	processed := make([]api.ProcessedFile, 0, len(report.ProcessedFiles))
	for _, file := range report.ProcessedFiles {
		processed = append(processed, api.ProcessedFile{
			OriginalFile: file.OriginalFile,
			TextFile:     file.TextFile,
			TextLength:   file.TextLength,
		})
	}

	return api.ExtractResponse{
		Message:        fmt.Sprintf("Extracted %d files", len(processed)),
		ProcessedFiles: processed,
		ExtractedTexts: report.ExtractedTexts,
	}
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		Subject:   "",
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status: string(api.JobStatusError),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
