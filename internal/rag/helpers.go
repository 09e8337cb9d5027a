package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nkatturi/NotesAPI/internal/config"
	"github.com/nkatturi/NotesAPI/internal/domain/commonModels"
	"github.com/nkatturi/NotesAPI/internal/metrics"
)

func (s *service) checkCollection(ctx context.Context, subject string) error {
	exists, err := s.index.CollectionExists(ctx, subject)
	if err != nil {
		return fmt.Errorf("checking collection %q: %w", subject, err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrCollectionNotFound, subject)
	}

	count, err := s.index.Count(ctx, subject)
	if err != nil {
		return fmt.Errorf("counting collection %q: %w", subject, err)
	}
	if count == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyCollection, subject)
	}
	return nil
}

func (s *service) executeEmbeddingStep(ctx context.Context, query string) ([]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	return s.embedder.EmbedQuery(ctx, query)
}

func (s *service) executeVectorSearchStep(ctx context.Context, subject string, queryVector []float32) ([]commonModels.SearchHit, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	return s.index.Query(ctx, subject, queryVector, config.TopKResults)
}

func (s *service) executeLLMStep(ctx context.Context, query string, hits []commonModels.SearchHit) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	return s.llmProvider.Complete(ctx, buildPrompt(query, hits))
}

// buildPrompt glues the retrieved chunks (already closest-first) into one
// context block, blank line between chunks, no dedup and no truncation.
func buildPrompt(query string, hits []commonModels.SearchHit) string {
	contents := make([]string, 0, len(hits))
	for _, hit := range hits {
		contents = append(contents, hit.Content)
	}
	return fmt.Sprintf(config.QueryPromptTemplate, strings.Join(contents, "\n\n"), query)
}
