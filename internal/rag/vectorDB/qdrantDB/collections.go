package qdrantDB

import (
	"context"

	"github.com/nkatturi/NotesAPI/internal/config"
	"github.com/qdrant/go-client/qdrant"
)

func (db *ClientHolder) CreateCollection(ctx context.Context, collectionName string) error {
	return createCollection(ctx, db.QObj, collectionName)
}

// DropCollection is idempotent: dropping a collection that was never created
// reports success, which is what the replace-on-reingest flow expects.
func (db *ClientHolder) DropCollection(ctx context.Context, collectionName string) error {
	loggr := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	exists, err := db.QObj.CollectionExists(ctx, collectionName)
	if err != nil {
		return err
	}
	if !exists {
		loggr.Debug("No existing collection to drop", "collection", collectionName)
		return nil
	}

	if err := db.QObj.DeleteCollection(ctx, collectionName); err != nil {
		loggr.Error("Error dropping collection", "collection", collectionName, "error", err)
		return err
	}
	loggr.Debug("Dropped collection", "collection", collectionName)
	return nil
}

func (db *ClientHolder) CollectionExists(ctx context.Context, collectionName string) (bool, error) {
	return db.QObj.CollectionExists(ctx, collectionName)
}

func (db *ClientHolder) Count(ctx context.Context, collectionName string) (int, error) {
	count, err := db.QObj.Count(ctx, &qdrant.CountPoints{
		CollectionName: collectionName,
		Exact:          qdrant.PtrOf(true),
	})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
