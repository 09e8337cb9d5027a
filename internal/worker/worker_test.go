package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nkatturi/NotesAPI/internal/config"
	"github.com/nkatturi/NotesAPI/internal/domain/commonModels"
	"github.com/nkatturi/NotesAPI/internal/domain/jobModel"
	"github.com/nkatturi/NotesAPI/internal/job"
	"github.com/nkatturi/NotesAPI/pkg/logger_i"
)

// MockRagService to track if jobs are executed
type MockRagService struct {
	IngestedCount int32
	OnIngest      func(ctx context.Context, subject string) (commonModels.IngestReport, error)
}

func (m *MockRagService) IngestSubject(ctx context.Context, subject string) (commonModels.IngestReport, error) {
	atomic.AddInt32(&m.IngestedCount, 1)
	if m.OnIngest != nil {
		return m.OnIngest(ctx, subject)
	}
	return commonModels.IngestReport{Subject: subject, ChunksCreated: 3, FinalCount: 3}, nil
}

func (m *MockRagService) Answer(ctx context.Context, subject, query string) (commonModels.QueryResult, error) {
	panic("workers never answer queries")
}

type MockExtractor struct {
	ExtractedCount int32
	OnExtract      func(ctx context.Context, subject string) (commonModels.ExtractReport, error)
}

func (m *MockExtractor) ExtractSubject(ctx context.Context, subject string) (commonModels.ExtractReport, error) {
	atomic.AddInt32(&m.ExtractedCount, 1)
	if m.OnExtract != nil {
		return m.OnExtract(ctx, subject)
	}
	return commonModels.ExtractReport{}, nil
}

type MockJobStore struct {
	mu       sync.Mutex
	SavedJob jobModel.Job
}

func (m *MockJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SavedJob, m.SavedJob.Id == jobId
}

func (m *MockJobStore) DeleteJob(ctx context.Context, jobID string) {}

func (m *MockJobStore) SaveJob(ctx context.Context, j jobModel.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SavedJob = j
	return nil
}

func TestWorkerPool_Flow(t *testing.T) {
	// 1. Setup
	jobSvc := &job.Service{
		JobChannel:        make(chan jobModel.Job, 10),
		DispatcherChannel: make(chan bool, 10),
		JobStore:          &MockJobStore{},
	}
	mockRag := &MockRagService{}
	mockExtractor := &MockExtractor{}
	stopChan := make(chan bool)
	wg := &sync.WaitGroup{}

	InitServices(jobSvc, mockRag, mockExtractor)
	InitWorkerPool(stopChan, wg)

	// Reset global state for test
	atomic.StoreInt64(&currentWorkerCount, 0)

	t.Run("Dispatcher creates worker on signal", func(t *testing.T) {
		// Signal dispatcher to create a worker
		jobSvc.DispatcherChannel <- true

		// Give it a millisecond to spawn
		time.Sleep(50 * time.Millisecond)

		count := atomic.LoadInt64(&currentWorkerCount)
		if count < 1 {
			t.Errorf("Expected at least 1 worker, got %d", count)
		}
	})

	t.Run("Worker processes an ingest job", func(t *testing.T) {
		testJob := jobModel.Job{
			Id:         "test-1",
			JobType:    jobModel.JobTypeIngest,
			JobPayload: jobModel.JobPayload{Subject: "physics"},
		}
		jobSvc.JobChannel <- testJob

		// Wait for worker to pick up and process
		time.Sleep(50 * time.Millisecond)

		ingested := atomic.LoadInt32(&mockRag.IngestedCount)
		if ingested != 1 {
			t.Errorf("Expected 1 job ingested, got %d", ingested)
		}
		if extracted := atomic.LoadInt32(&mockExtractor.ExtractedCount); extracted != 0 {
			t.Errorf("Ingest job should not trigger extraction, got %d calls", extracted)
		}
	})

	t.Run("Process job runs extraction first", func(t *testing.T) {
		testJob := jobModel.Job{
			Id:         "test-2",
			JobType:    jobModel.JobTypeProcess,
			JobPayload: jobModel.JobPayload{Subject: "physics"},
		}
		jobSvc.JobChannel <- testJob

		time.Sleep(50 * time.Millisecond)

		if extracted := atomic.LoadInt32(&mockExtractor.ExtractedCount); extracted != 1 {
			t.Errorf("Expected 1 extraction, got %d", extracted)
		}
		if ingested := atomic.LoadInt32(&mockRag.IngestedCount); ingested != 2 {
			t.Errorf("Expected ingestion to follow extraction, got %d total", ingested)
		}
	})

	t.Run("Stop signal retires workers", func(t *testing.T) {
		// Send stop signal
		close(stopChan)

		// Wait for workers to exit
		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			// Success
		case <-time.After(2 * time.Second):
			t.Error("Workers did not stop within timeout")
		}
	})
}

func TestExecuteJob_StatusTransitions(t *testing.T) {
	store := &MockJobStore{}
	jobSvc := &job.Service{
		JobChannel: make(chan jobModel.Job),
		JobStore:   store,
	}
	logger = logger_i.NewLogger("TestWorkerPool")

	t.Run("Successful ingest completes with report data", func(t *testing.T) {
		InitServices(jobSvc, &MockRagService{}, &MockExtractor{})

		executeJob(jobModel.Job{
			Id:         "job-ok",
			JobType:    jobModel.JobTypeIngest,
			JobPayload: jobModel.JobPayload{Subject: "history"},
		})

		saved, found := store.GetJob(context.Background(), "job-ok")
		if !found {
			t.Fatal("Job was never saved")
		}
		if saved.Status != jobModel.JobStatusComplete {
			t.Errorf("Expected COMPLETE, got %s", saved.Status)
		}
		if saved.CurrentStep != jobModel.Complete {
			t.Errorf("Expected final step Complete, got %s", saved.CurrentStep)
		}
		if saved.JobPayload.ChunksCreated != 3 || saved.JobPayload.FinalCount != 3 {
			t.Errorf("Report data not carried into payload: %+v", saved.JobPayload)
		}
	})

	t.Run("Extraction failure marks job errored without ingesting", func(t *testing.T) {
		mockRag := &MockRagService{}
		mockExtractor := &MockExtractor{
			OnExtract: func(ctx context.Context, subject string) (commonModels.ExtractReport, error) {
				return commonModels.ExtractReport{}, errors.New("tesseract not found")
			},
		}
		InitServices(jobSvc, mockRag, mockExtractor)

		executeJob(jobModel.Job{
			Id:         "job-bad",
			JobType:    jobModel.JobTypeProcess,
			JobPayload: jobModel.JobPayload{Subject: "history"},
		})

		saved, _ := store.GetJob(context.Background(), "job-bad")
		if saved.Status != jobModel.JobStatusError {
			t.Errorf("Expected Error status, got %s", saved.Status)
		}
		if atomic.LoadInt32(&mockRag.IngestedCount) != 0 {
			t.Error("Ingestion ran despite extraction failure")
		}
	})

	t.Run("Ingestion failure is retryable", func(t *testing.T) {
		mockRag := &MockRagService{
			OnIngest: func(ctx context.Context, subject string) (commonModels.IngestReport, error) {
				return commonModels.IngestReport{}, errors.New("qdrant unavailable")
			},
		}
		InitServices(jobSvc, mockRag, &MockExtractor{})

		executeJob(jobModel.Job{
			Id:         "job-retry",
			JobType:    jobModel.JobTypeIngest,
			JobPayload: jobModel.JobPayload{Subject: "history"},
		})

		saved, _ := store.GetJob(context.Background(), "job-retry")
		if saved.Status != jobModel.JobStatusError {
			t.Errorf("Expected Error status, got %s", saved.Status)
		}
		if !saved.Error.Retry {
			t.Error("Ingestion failures should be marked retryable")
		}
	})
}

func TestWorker_IdleTimeout(t *testing.T) {
	if testing.Short() {
		t.Skip("waits a full idle timeout")
	}
	// Production config only - the pool must settle back to its floor on
	// its own once extra workers go idle.
	atomic.StoreInt64(&currentWorkerCount, 0)
	logger = logger_i.NewLogger("TestWorkerPool")
	jobSvc := &job.Service{
		JobChannel: make(chan jobModel.Job),
	}
	InitServices(jobSvc, &MockRagService{}, &MockExtractor{})

	wg := &sync.WaitGroup{}
	stopChan := make(chan bool)
	workerWaitGroup = wg
	stopWorkerChannel = stopChan

	// Two workers, staggered so their idle timers don't race each other
	createWorker()
	time.Sleep(200 * time.Millisecond)
	createWorker()

	time.Sleep(config.IdleWorkerTimeout + time.Second)

	count := atomic.LoadInt64(&currentWorkerCount)
	if count != config.MinWorkerCount {
		t.Errorf("Assertion Failed: Pool should settle at %d worker(s) after idle timeout, got %d", config.MinWorkerCount, count)
	}
}
