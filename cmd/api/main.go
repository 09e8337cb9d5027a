// @title           Notes RAG API
// @version         1.0
// @description     Per-subject notes ingestion and retrieval-augmented querying.
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/nkatturi/NotesAPI/internal/config"
	"github.com/nkatturi/NotesAPI/internal/data/notesStore"
	"github.com/nkatturi/NotesAPI/internal/data/store"
	jobmodel "github.com/nkatturi/NotesAPI/internal/domain/jobModel"
	"github.com/nkatturi/NotesAPI/internal/extract"
	"github.com/nkatturi/NotesAPI/internal/handlers"
	"github.com/nkatturi/NotesAPI/internal/job"
	"github.com/nkatturi/NotesAPI/internal/rag"
	"github.com/nkatturi/NotesAPI/internal/rag/embedding/googleEmbedding"
	"github.com/nkatturi/NotesAPI/internal/rag/llm/gemini"
	"github.com/nkatturi/NotesAPI/internal/rag/vectorDB/qdrantDB"
	"github.com/nkatturi/NotesAPI/internal/server"
	"github.com/nkatturi/NotesAPI/internal/worker"
	"github.com/nkatturi/NotesAPI/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	notesRoot := config.NotesRootDir()
	notes, err := notesStore.NewStore(notesRoot)
	if err != nil {
		logger.Error("Couldn't initialize the notes root", "dir", notesRoot, "err", err)
		return
	}

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init job service and job store
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
	}
	logger.Info("Starting job service")

	if redisJobStore := store.GetRedisJobStore(serviceContext); redisJobStore != nil {
		serviceConfig.JobStore = redisJobStore
	} else {
		logger.Error("Redis store is offline")
		serviceConfig.JobStore = store.InitInMemoryJobStore()
	}
	service := job.InitJobService(serviceConfig)

	apiKey := config.GeminiAPIKey()
	vectorDB := qdrantDB.GetQuadrantClient(serviceContext)
	embeddingService := googleEmbedding.GetGoogleEmbeddingClient(serviceContext, config.GoogleEmbeddingModel, apiKey)
	llmProvider := gemini.GetGeminiClient(serviceContext, config.GeminiModelName, apiKey)

	if vectorDB == nil || embeddingService == nil || llmProvider == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		logger.Debug("Available services : ", "VectorDB", vectorDB != nil, "EmbeddingService", embeddingService != nil, "LLMProvider", llmProvider != nil)
		return
	}

	ragService := rag.NewService(vectorDB, llmProvider, embeddingService, notes)
	extractor := extract.NewExtractor(notesRoot, extract.NewTesseractOCR())

	handlers.InitJobHandler(service, notes, ragService, extractor)

	//init worker pool
	worker.InitServices(service, ragService, extractor)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr, notesRoot)

	<-stopExecution
	logger.Info("Server stopped")
}
