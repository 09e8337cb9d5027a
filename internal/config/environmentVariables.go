package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	NoAuthBypass = true //flip once a token is provisioned
	AuthToken    = ""

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//notes storage
	NotesRoot = "user_notes"

	//chunking - the retrieval side depends on these staying put between runs
	ChunkSize    = 500
	ChunkOverlap = 50

	//embedding model output size - index and query must agree on this
	EmbeddingOutputDimensionality int32 = 1536
	EmbeddingBatchSize                  = 50

	//retrieval
	TopKResults = 4

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 30 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//vectorDB
	QdrantHost             = ""
	QdrantGrpcPort         = 6334
	QdrantUseTLS           = false //set for https
	QdrantPoolSize         = 1     //2-5 is preferred for prod according to documentation
	QdrantKeepAliveTimeout = 30 * time.Second

	//llm
	GeminiModelName      = "gemini-2.5-flash-lite-preview-09-2025"
	GoogleEmbeddingModel = "gemini-embedding-001"

	QueryPromptTemplate = "Based on the following context, answer the question. If the answer cannot be found in the context, say so.\n\nContext:\n%s\n\nQuestion: %s\n\nAnswer:"

	//extraction
	TesseractBinary       = "tesseract"
	ExtractionPageTimeout = 10 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	RedisPassword = ""

	//redis has 16 DB we can use
	RedisJobStore = 0

	//redis timeouts
	RedisJobStoreTTL = 24 * time.Hour
)

// GeminiAPIKey is the one credential generation cannot run without.
// It stays an env lookup (not a const) so the query pipeline can tell
// "unconfigured" apart from "provider down".
func GeminiAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

func NotesRootDir() string {
	if dir := os.Getenv("NOTES_ROOT"); dir != "" {
		return dir
	}
	return NotesRoot
}
