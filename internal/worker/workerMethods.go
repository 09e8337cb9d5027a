package worker

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/nkatturi/NotesAPI/internal/config"
	"github.com/nkatturi/NotesAPI/internal/domain/jobModel"
	"github.com/nkatturi/NotesAPI/internal/metrics"
)

func executeJob(job jobModel.Job) {
	start := time.Now()
	defer func() {
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, 5*time.Minute)
	defer cancel()
	log := logger.With("trace Id ", job.TraceId)
	log.Debug("Processing job:", "job Id:", job.Id, "type", job.JobType)

	saveJobState(ctx, job, jobModel.JobStatusRunning)

	if job.JobType == jobModel.JobTypeProcess {
		job = processSubject(ctx, job)
	} else {
		job = ingestSubject(ctx, job)
	}

	job.EndTime = time.Now()
	if job.Status != jobModel.JobStatusError {
		job.CurrentStep = jobModel.Complete
		job.Status = jobModel.JobStatusComplete
	}
	saveJobState(ctx, job, job.Status)
}

// processSubject is the upload follow-up: refresh the extraction artifacts,
// then rebuild the subject index from them.
func processSubject(ctx context.Context, job jobModel.Job) jobModel.Job {
	job.CurrentStep = jobModel.ExtractCall
	if _, err := _extractor.ExtractSubject(ctx, job.JobPayload.Subject); err != nil {
		return jobError(job, "Extraction failed", false)
	}
	return ingestSubject(ctx, job)
}

func ingestSubject(ctx context.Context, job jobModel.Job) jobModel.Job {
	job.CurrentStep = jobModel.IngestProcessing
	report, err := _ragService.IngestSubject(ctx, job.JobPayload.Subject)
	if err != nil {
		logger.Error("Ingestion failed", "subject", job.JobPayload.Subject, "error", err)
		return jobError(job, "Ingestion failed", true)
	}

	job.JobPayload.ChunksCreated = report.ChunksCreated
	job.JobPayload.FilesProcessed = report.FilesProcessed
	job.JobPayload.FinalCount = report.FinalCount
	return job
}

func jobError(job jobModel.Job, message string, canRetry bool) jobModel.Job {
	job.Error = jobModel.JobError{
		Code:    http.StatusInternalServerError,
		Message: message,
		Retry:   canRetry,
	}
	job.Status = jobModel.JobStatusError
	return job
}

func removeWorker(reason string) {

	workerWaitGroup.Done()
	atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker ", "reason", reason, "workerCount", currentWorkerCount)
	metrics.DecrementActiveWorkerCount()

}

func saveJobState(ctx context.Context, job jobModel.Job, jobStatus jobModel.JobStatus) {
	job.Status = jobStatus
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		logger.Error("Failed to update status in Redis", "err", err)
	}
}
