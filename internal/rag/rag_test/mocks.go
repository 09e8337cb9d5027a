package rag_test

import (
	"context"

	"github.com/nkatturi/NotesAPI/internal/domain/commonModels"
)

// MockIndex implements vectorDB.Index
type MockIndex struct {
	// Control fields to simulate different behaviors
	OnCollectionExists func(ctx context.Context, name string) (bool, error)
	OnCount            func(ctx context.Context, name string) (int, error)
	OnQuery            func(ctx context.Context, name string, vector []float32, k int) ([]commonModels.SearchHit, error)
	OnCreateCollection func(ctx context.Context, name string) error
	OnDropCollection   func(ctx context.Context, name string) error
	OnUpsertBatch      func(ctx context.Context, name string, entries []commonModels.IndexEntry, vectors [][]float32) error
}

func (m *MockIndex) CollectionExists(ctx context.Context, name string) (bool, error) {
	if m.OnCollectionExists != nil {
		return m.OnCollectionExists(ctx, name)
	}
	return true, nil
}

func (m *MockIndex) Count(ctx context.Context, name string) (int, error) {
	if m.OnCount != nil {
		return m.OnCount(ctx, name)
	}
	return 2, nil
}

func (m *MockIndex) Query(ctx context.Context, name string, vector []float32, k int) ([]commonModels.SearchHit, error) {
	if m.OnQuery != nil {
		return m.OnQuery(ctx, name, vector, k)
	}
	return []commonModels.SearchHit{
		{Content: "default context", ChunkKey: name + "_0", Distance: 0.1},
		{Content: "more context", ChunkKey: name + "_1", Distance: 0.4},
	}, nil
}

func (m *MockIndex) CreateCollection(ctx context.Context, name string) error {
	if m.OnCreateCollection != nil {
		return m.OnCreateCollection(ctx, name)
	}
	return nil
}

func (m *MockIndex) DropCollection(ctx context.Context, name string) error {
	if m.OnDropCollection != nil {
		return m.OnDropCollection(ctx, name)
	}
	return nil
}

func (m *MockIndex) UpsertBatch(ctx context.Context, name string, entries []commonModels.IndexEntry, vectors [][]float32) error {
	if m.OnUpsertBatch != nil {
		return m.OnUpsertBatch(ctx, name, entries, vectors)
	}
	return nil
}

type MockEmbedder struct {
	OnEmbedQuery func(ctx context.Context, text string) ([]float32, error)
	OnEmbedBatch func(ctx context.Context, chunks []string) ([][]float32, error)
}

func (m *MockEmbedder) EmbedBatch(ctx context.Context, chunks []string) ([][]float32, error) {
	if m.OnEmbedBatch != nil {
		return m.OnEmbedBatch(ctx, chunks)
	}
	// Return dummy vectors matching chunk count
	return make([][]float32, len(chunks)), nil
}

func (m *MockEmbedder) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	if m.OnEmbedQuery != nil {
		return m.OnEmbedQuery(ctx, query)
	}
	return []float32{0.1}, nil
}

// MockLLM implements llm.Provider
type MockLLM struct {
	OnComplete func(ctx context.Context, prompt string) (string, error)

	LastPrompt string
}

func (m *MockLLM) Complete(ctx context.Context, prompt string) (string, error) {
	m.LastPrompt = prompt
	if m.OnComplete != nil {
		return m.OnComplete(ctx, prompt)
	}
	return "mocked llm response", nil
}

// MockTextSource implements ingest.TextSource
type MockTextSource struct {
	Texts []commonModels.ExtractedText
	Err   error
}

func (m *MockTextSource) ExtractedTexts(subject string) ([]commonModels.ExtractedText, error) {
	return m.Texts, m.Err
}
