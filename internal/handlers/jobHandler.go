package handlers

import (
	"context"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nkatturi/NotesAPI/internal/adapter"
	"github.com/nkatturi/NotesAPI/internal/adapter/utils"
	"github.com/nkatturi/NotesAPI/internal/config"
	"github.com/nkatturi/NotesAPI/internal/data/notesStore"
	"github.com/nkatturi/NotesAPI/internal/domain/commonModels"
	"github.com/nkatturi/NotesAPI/internal/domain/jobModel"
	"github.com/nkatturi/NotesAPI/internal/job"
	"github.com/nkatturi/NotesAPI/internal/metrics"
	"github.com/nkatturi/NotesAPI/internal/rag"
	"github.com/nkatturi/NotesAPI/pkg/logger_i"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           *logger_i.Logger
)

// NotesStore is what the handlers need from the folder storage layer.
type NotesStore interface {
	CreateFolder(parent string, name string) (string, error)
	SubjectExists(subject string) bool
	SaveUpload(subject string, filename string, r io.Reader) (string, error)
	ListTree() ([]notesStore.TreeNode, error)
}

type SubjectExtractor interface {
	ExtractSubject(ctx context.Context, subject string) (commonModels.ExtractReport, error)
}

type JobHandler struct {
	service    *job.Service
	notes      NotesStore
	ragService rag.Service
	extractor  SubjectExtractor
}

func InitJobHandler(jobService *job.Service, notes NotesStore, ragService rag.Service, extractor SubjectExtractor) {
	once.Do(func() {
		handlerInstance = &JobHandler{
			service:    jobService,
			notes:      notes,
			ragService: ragService,
			extractor:  extractor,
		}

		logJH = logger_i.NewLogger("JobHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logJH.Info("Starting job handler")
	})

}

func CreateNewJob(newJob newJobData) {
	logJH.With("traceId", newJob.traceId, "job id", newJob.id)
	logJH.Info("To create new job")
	handlerInstance.pushToJobChannel(newJob)
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

// private methods
func (h *JobHandler) pushToJobChannel(newJob newJobData) {

	_job := jobModel.Job{}
	_job.Id = newJob.id
	_job.CreatedTime = time.Now()
	_job.TraceId = newJob.traceId
	_job.Status = jobModel.JobStatusQueued
	_job.JobType = jobModel.JobType(newJob.jobType)
	_job.CurrentStep = jobModel.ProcessInit
	_job.JobPayload.Subject = newJob.subject
	_job.JobPayload.UploadFileName = newJob.fileName

	//metrics
	metrics.IncrementJobsInQueue()

	h.service.JobChannel <- _job //this is a blocking send to prevent the system from being overwhelmed
	logJH.Info("Created new job")

	//a new worker is added every N requests, and always for an upload-process
	//job: extraction plus batch embedding takes time - external system calls.
	//idle workers retire on their own, so the pool settles back to one worker.
	accurateCount := atomic.AddInt64(&h.service.RequestCount, 1) //after sending a request increment counter
	if accurateCount%config.RequestsPerNewWorkerCount == 0 || _job.JobType == jobModel.JobTypeProcess {
		metrics.StartDispatcherSignalCount() //metrics
		logJH.Debug("Worker count ", accurateCount)
		h.service.DispatcherChannel <- true
	}
}

func processNewJobData(request *http.Request, w http.ResponseWriter, subject string, fileName string) {
	newJob := newJobData{
		id:       utils.GetNewUUID(),
		subject:  subject,
		fileName: fileName,
		traceId:  request.Context().Value(config.TRACE_ID_KEY).(string),
		jobType:  string(jobModel.JobTypeProcess),
	}
	CreateNewJob(newJob)
	res := adapter.ToInitJobResponse(newJob.id)
	writeJsonResponse(w, http.StatusAccepted, res)
}
