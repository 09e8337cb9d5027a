package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/nkatturi/NotesAPI/internal/config"
	"github.com/nkatturi/NotesAPI/internal/domain/commonModels"
	"github.com/nkatturi/NotesAPI/internal/metrics"
	"github.com/nkatturi/NotesAPI/internal/rag/chunker"
	"github.com/nkatturi/NotesAPI/internal/rag/embedding"
	"github.com/nkatturi/NotesAPI/internal/rag/vectorDB"
	"github.com/nkatturi/NotesAPI/pkg/logger_i"
)

// ErrNoContent means a subject has no non-empty extracted text to index.
// The existing collection, if any, is left exactly as it was.
var ErrNoContent = errors.New("no extracted text found for subject")

// TextSource enumerates the persisted extraction artifacts of a subject.
type TextSource interface {
	ExtractedTexts(subject string) ([]commonModels.ExtractedText, error)
}

// IngestSubject rebuilds a subject's collection from scratch: chunk every
// extracted text, embed everything, then drop-and-recreate the collection
// and upsert the lot. Full replace every time - there is no incremental path.
// The old collection is only touched once valid chunks and vectors exist.
func IngestSubject(ctx context.Context, subject string, source TextSource, embedder embedding.Embedder, index vectorDB.Index) (commonModels.IngestReport, error) {
	logger := logger_i.NewLogger("Subject Ingestion ").With("traceId", ctx.Value(config.TRACE_ID_KEY), "subject", subject)

	report := commonModels.IngestReport{Subject: subject}

	texts, err := source.ExtractedTexts(subject)
	if err != nil {
		return report, fmt.Errorf("listing extracted texts: %w", err)
	}

	entries, files := prepareEntries(subject, texts)
	if len(entries) == 0 {
		logger.Warn("Nothing to ingest")
		return report, ErrNoContent
	}
	report.FilesProcessed = files
	report.ChunksCreated = len(entries)
	logger.Debug("Prepared chunks", "files", len(files), "chunks", len(entries))

	vectors, err := embedAll(ctx, entries, embedder)
	if err != nil {
		return report, fmt.Errorf("embedding chunks: %w", err)
	}

	// destructive part starts here, after every upstream step has succeeded
	if err := index.DropCollection(ctx, subject); err != nil {
		return report, fmt.Errorf("dropping collection %q: %w", subject, err)
	}
	if err := index.CreateCollection(ctx, subject); err != nil {
		return report, fmt.Errorf("creating collection %q: %w", subject, err)
	}

	batchSize := config.EmbeddingBatchSize
	for i := 0; i < len(entries); i += batchSize {
		end := i + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := index.UpsertBatch(ctx, subject, entries[i:end], vectors[i:end]); err != nil {
			return report, fmt.Errorf("upserting batch at offset %d: %w", i, err)
		}
	}

	finalCount, err := index.Count(ctx, subject)
	if err != nil {
		return report, fmt.Errorf("counting collection %q: %w", subject, err)
	}
	report.FinalCount = finalCount
	metrics.AddChunksIndexed(subject, len(entries))

	if finalCount != len(entries) {
		logger.Warn("Stored count does not match produced count", "produced", len(entries), "stored", finalCount)
	}
	logger.Debug("Ingestion finished", "final count", finalCount)
	return report, nil
}

// prepareEntries chunks every non-blank text in order and assigns each chunk
// its positional key "{subject}_{offset}". Offsets run across the whole
// subject, so the keys are stable for a given set of extracted texts.
func prepareEntries(subject string, texts []commonModels.ExtractedText) ([]commonModels.IndexEntry, []string) {
	var entries []commonModels.IndexEntry
	var files []string

	offset := 0
	for _, text := range texts {
		if chunker.IsBlank(text.Content) {
			continue
		}
		chunks, err := chunker.Split(text.Content, config.ChunkSize, config.ChunkOverlap)
		if err != nil {
			// config-level sizes are validated at startup; treat like blank input
			continue
		}
		files = append(files, text.TextFile)
		for _, c := range chunks {
			entries = append(entries, commonModels.IndexEntry{
				ChunkKey: fmt.Sprintf("%s_%d", subject, offset),
				Offset:   offset,
				Content:  c,
			})
			offset++
		}
	}
	return entries, files
}

// embedAll walks the chunk sequence in bounded batches. Batch size is purely
// an API-limit concern - the vectors come back indexed exactly like entries.
func embedAll(ctx context.Context, entries []commonModels.IndexEntry, embedder embedding.Embedder) ([][]float32, error) {
	vectors := make([][]float32, 0, len(entries))

	batchSize := config.EmbeddingBatchSize
	for i := 0; i < len(entries); i += batchSize {
		end := i + batchSize
		if end > len(entries) {
			end = len(entries)
		}

		texts := make([]string, 0, end-i)
		for _, e := range entries[i:end] {
			texts = append(texts, e.Content)
		}

		batchVectors, err := embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, err
		}
		if len(batchVectors) != len(texts) {
			return nil, fmt.Errorf("embedder returned %d vectors for %d chunks", len(batchVectors), len(texts))
		}
		vectors = append(vectors, batchVectors...)
	}
	return vectors, nil
}
