package rag

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/nkatturi/NotesAPI/internal/config"
	"github.com/nkatturi/NotesAPI/internal/domain/commonModels"
	"github.com/nkatturi/NotesAPI/internal/metrics"
	"github.com/nkatturi/NotesAPI/internal/rag/embedding"
	"github.com/nkatturi/NotesAPI/internal/rag/ingest"
	"github.com/nkatturi/NotesAPI/internal/rag/llm"
	"github.com/nkatturi/NotesAPI/internal/rag/vectorDB"
	"github.com/nkatturi/NotesAPI/pkg/logger_i"
)

// Querying a subject nobody ever ingested is a caller mistake, not a reason
// to conjure a collection into existence.
var ErrCollectionNotFound = errors.New("collection not found for subject")

// ErrEmptyCollection: the subject was indexed at some point but holds nothing.
var ErrEmptyCollection = errors.New("collection holds no documents")

// Service is the public contract. Handlers and workers only ever see this -
// they don't need to know about the vector index or the llm underneath.
type Service interface {
	IngestSubject(ctx context.Context, subject string) (commonModels.IngestReport, error)
	Answer(ctx context.Context, subject string, query string) (commonModels.QueryResult, error)
}

type service struct {
	index       vectorDB.Index
	llmProvider llm.Provider
	embedder    embedding.Embedder
	source      ingest.TextSource
	logger      *logger_i.Logger

	// the collection replace in ingestion is drop-then-recreate, so two
	// concurrent ingests of one subject must never interleave
	lockMu       sync.Mutex
	subjectLocks map[string]*sync.Mutex
}

// NewService constructor - wires the capability implementations in once so
// tests can hand in mocks instead.
func NewService(index vectorDB.Index, llmProvider llm.Provider, embedder embedding.Embedder, source ingest.TextSource) Service {
	return &service{
		index:        index,
		llmProvider:  llmProvider,
		embedder:     embedder,
		source:       source,
		logger:       logger_i.NewLogger("RAG Service :"),
		subjectLocks: make(map[string]*sync.Mutex),
	}
}

func (s *service) IngestSubject(ctx context.Context, subject string) (commonModels.IngestReport, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("subject_ingestion", time.Since(start)) }()

	lock := s.subjectLock(subject)
	lock.Lock()
	defer lock.Unlock()

	return ingest.IngestSubject(ctx, subject, s.source, s.embedder, s.index)
}

// Answer runs the retrieve-then-generate flow for one subject. Whatever
// sources were fetched before a failure stay in the returned result, and the
// error is one of the sentinel kinds so callers can label it.
func (s *service) Answer(ctx context.Context, subject string, query string) (commonModels.QueryResult, error) {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "subject", subject)

	result := commonModels.QueryResult{Query: query}

	if err := s.checkCollection(ctx, subject); err != nil {
		inMethodLogger.Warn("Collection check failed", "error", err)
		return result, err
	}

	// Embedding
	queryVector, err := s.executeEmbeddingStep(ctx, query)
	if err != nil {
		inMethodLogger.Error("EMBEDDING_FAILURE", "error", err)
		return result, err
	}

	// Vector DB Search
	hits, err := s.executeVectorSearchStep(ctx, subject, queryVector)
	if err != nil {
		inMethodLogger.Error("VECTOR_DB_FAILURE", "error", err)
		return result, err
	}
	result.Sources = hits

	// LLM Generation
	answer, err := s.executeLLMStep(ctx, query, hits)
	if err != nil {
		// sources survive a generation failure on purpose
		inMethodLogger.Error("LLM_GENERATION_FAILURE", "error", err)
		return result, err
	}

	result.Answer = answer
	return result, nil
}

func (s *service) subjectLock(subject string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	lock, exists := s.subjectLocks[subject]
	if !exists {
		lock = &sync.Mutex{}
		s.subjectLocks[subject] = lock
	}
	return lock
}
