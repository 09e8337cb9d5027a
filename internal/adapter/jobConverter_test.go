package adapter

import (
	"testing"

	"github.com/nkatturi/NotesAPI/internal/domain/commonModels"
	"github.com/nkatturi/NotesAPI/internal/domain/jobModel"
)

func TestToQueryResponse(t *testing.T) {
	result := commonModels.QueryResult{
		Query: "what is entropy?",
		Sources: []commonModels.SearchHit{
			{Content: "first chunk", ChunkKey: "physics_0", Distance: 0.1},
			{Content: "second chunk", ChunkKey: "physics_500", Distance: 0.4},
		},
	}

	t.Run("Failure keeps sources and empty answer", func(t *testing.T) {
		response := ToQueryResponse(result, "generation failed")

		if response.Error != "generation failed" {
			t.Errorf("Expected error message, got %q", response.Error)
		}
		if response.Answer != "" {
			t.Errorf("Answer should be empty on failure, got %q", response.Answer)
		}
		if len(response.SourceDocuments) != 2 {
			t.Fatalf("Expected 2 source documents, got %d", len(response.SourceDocuments))
		}
		if response.SourceDocuments[0].Metadata.Id != "physics_0" {
			t.Errorf("Chunk key not carried into metadata: %+v", response.SourceDocuments[0].Metadata)
		}
	})

	t.Run("Success has no error field", func(t *testing.T) {
		result.Answer = "entropy measures disorder"
		response := ToQueryResponse(result, "")

		if response.Error != "" {
			t.Errorf("Unexpected error: %q", response.Error)
		}
		if response.Answer != "entropy measures disorder" {
			t.Errorf("Answer not carried over: %q", response.Answer)
		}
	})

	t.Run("No sources marshals as empty array not null", func(t *testing.T) {
		response := ToQueryResponse(commonModels.QueryResult{Query: "q"}, "collection not found")
		if response.SourceDocuments == nil {
			t.Error("SourceDocuments must be an empty slice, not nil")
		}
	})
}

func TestToAPIResponse(t *testing.T) {
	job := jobModel.Job{
		Id:     "job-1",
		Status: jobModel.JobStatusComplete,
		JobPayload: jobModel.JobPayload{
			Subject:        "physics",
			ChunksCreated:  12,
			FilesProcessed: []string{"notes.pdf"},
			FinalCount:     12,
		},
	}

	response := ToAPIResponse(job)

	if response.Subject != "physics" {
		t.Errorf("Expected subject physics, got %q", response.Subject)
	}
	if response.Error != nil {
		t.Errorf("Unexpected error: %+v", response.Error)
	}
	if response.Result.IngestResult == nil || response.Result.IngestResult.ChunksCreated != 12 {
		t.Errorf("Ingest result not carried over: %+v", response.Result.IngestResult)
	}

	t.Run("Queued job has no ingest result yet", func(t *testing.T) {
		queued := jobModel.Job{Id: "job-2", Status: jobModel.JobStatusQueued}
		if r := ToAPIResponse(queued); r.Result.IngestResult != nil {
			t.Errorf("Expected nil ingest result, got %+v", r.Result.IngestResult)
		}
	})

	t.Run("Job error becomes outgoing error", func(t *testing.T) {
		failed := job
		failed.Status = jobModel.JobStatusError
		failed.Error = jobModel.JobError{Code: 500, Message: "Ingestion failed", Retry: true}

		r := ToAPIResponse(failed)
		if r.Error == nil || !r.Error.Retry {
			t.Errorf("Expected retryable outgoing error, got %+v", r.Error)
		}
	})
}
