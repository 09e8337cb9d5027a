package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nkatturi/NotesAPI/internal/config"
	"github.com/nkatturi/NotesAPI/internal/domain/commonModels"
	"github.com/nkatturi/NotesAPI/internal/job"
	"github.com/nkatturi/NotesAPI/internal/metrics"
	"github.com/nkatturi/NotesAPI/internal/rag"
	"github.com/nkatturi/NotesAPI/pkg/logger_i"
)

// SubjectExtractor is what the worker needs from the extraction stage.
type SubjectExtractor interface {
	ExtractSubject(ctx context.Context, subject string) (commonModels.ExtractReport, error)
}

var (
	_jobService        *job.Service
	stopWorkerChannel  chan bool
	workerWaitGroup    *sync.WaitGroup
	dispatcherChannel  chan bool
	currentWorkerCount int64
	logger             *logger_i.Logger
	_ragService        rag.Service
	_extractor         SubjectExtractor
)

func InitServices(jobService *job.Service, ragService rag.Service, extractor SubjectExtractor) {
	_jobService = jobService
	_ragService = ragService
	_extractor = extractor
	dispatcherChannel = jobService.DispatcherChannel
}

func InitWorkerPool(stopWorkerChan chan bool, waitGroup *sync.WaitGroup) {
	stopWorkerChannel = stopWorkerChan
	workerWaitGroup = waitGroup
	logger = logger_i.NewLogger("WorkerPool")
	logger.Info("Initializing worker pool")
	go dispatcher()
}

func dispatcher() {
	createWorker()
	logger.Info("Dispatcher started")
	for range dispatcherChannel {
		if atomic.LoadInt64(&currentWorkerCount) < config.MaxWorkerCount {
			logger.Info("Creating new worker", "WorkerCount :", currentWorkerCount)
			createWorker()
		}
	}
}

func createWorker() {
	workerWaitGroup.Add(1)
	go worker()
	atomic.AddInt64(&currentWorkerCount, 1)
	metrics.IncrementActiveWorkerCount()
	logger.Info("Created new worker")
}

func worker() {
	for {
		select {
		case currentJob := <-_jobService.JobChannel:
			executeJob(currentJob)
			metrics.DecrementJobsInQueue()

		case <-stopWorkerChannel:
			removeWorker("Stop worker signal received")

			return

		case <-time.After(config.IdleWorkerTimeout):
			// Worker was idle for too long, retire unless the pool is
			// already down to its floor
			if atomic.LoadInt64(&currentWorkerCount) > config.MinWorkerCount {
				removeWorker(" Idle worker timeout - Removed worker")
				return
			}
		}
	}
}
