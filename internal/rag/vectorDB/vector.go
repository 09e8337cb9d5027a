package vectorDB

import (
	"context"

	"github.com/nkatturi/NotesAPI/internal/domain/commonModels"
)

// Index is the per-subject collection surface the pipelines depend on.
// One collection per subject name; DropCollection on a collection that does
// not exist is a no-op, never an error.
type Index interface {
	CreateCollection(ctx context.Context, collectionName string) error
	DropCollection(ctx context.Context, collectionName string) error
	CollectionExists(ctx context.Context, collectionName string) (bool, error)
	Count(ctx context.Context, collectionName string) (int, error)

	UpsertBatch(ctx context.Context, collectionName string, entries []commonModels.IndexEntry, vectors [][]float32) error
	Query(ctx context.Context, collectionName string, vector []float32, k int) ([]commonModels.SearchHit, error)
}
