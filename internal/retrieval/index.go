package retrieval

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/chainguard-dev/clog"
	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"ragjudge/internal/llm"
)

// IndexOptions controls document ingestion into the vector index.
type IndexOptions struct {
	Collection string
	VectorSize int
	ChunkWords int
}

// IndexSummary reports what an indexing pass wrote.
type IndexSummary struct {
	Files             int
	Chunks            int
	CreatedCollection bool
}

// Indexer chunks documents, embeds each chunk and upserts it.
type Indexer struct {
	store    pointStore
	embedder llm.Embedder
	opts     IndexOptions
	newID    func() string
}

// NewIndexer builds an indexer over an open Qdrant client.
func NewIndexer(client *qdrant.Client, embedder llm.Embedder, opts IndexOptions) *Indexer {
	return &Indexer{store: client, embedder: embedder, opts: opts, newID: uuid.NewString}
}

// IndexGlob indexes every file matching pattern.
func (ix *Indexer) IndexGlob(ctx context.Context, pattern string) (IndexSummary, error) {
	paths, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return IndexSummary{}, fmt.Errorf("glob %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return IndexSummary{}, fmt.Errorf("no documents match %q", pattern)
	}
	sort.Strings(paths)
	return ix.IndexFiles(ctx, paths)
}

// IndexFiles ensures the collection exists and upserts the chunks of each file.
func (ix *Indexer) IndexFiles(ctx context.Context, paths []string) (IndexSummary, error) {
	log := clog.FromContext(ctx)
	summary := IndexSummary{}
	created, err := ix.ensureCollection(ctx)
	if err != nil {
		return summary, err
	}
	summary.CreatedCollection = created

	var points []*qdrant.PointStruct
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return summary, fmt.Errorf("read %s: %w", path, err)
		}
		source := filepath.Base(path)
		chunks := Chunk(documentText(path, data), ix.opts.ChunkWords)
		for _, chunk := range chunks {
			vector, err := ix.embedder.Embed(ctx, chunk, llm.TaskRetrievalDocument)
			if err != nil {
				return summary, fmt.Errorf("embed chunk of %s: %w", source, err)
			}
			points = append(points, &qdrant.PointStruct{
				Id:      qdrant.NewID(ix.newID()),
				Vectors: qdrant.NewVectorsDense(vector),
				Payload: qdrant.NewValueMap(map[string]any{
					PayloadText:   chunk,
					PayloadSource: source,
				}),
			})
		}
		log.Debugf("chunked %s into %d chunks", source, len(chunks))
		summary.Files++
	}
	summary.Chunks = len(points)
	if len(points) == 0 {
		return summary, nil
	}
	if _, err := ix.store.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: ix.opts.Collection,
		Wait:           qdrant.PtrOf(true),
		Points:         points,
	}); err != nil {
		return summary, fmt.Errorf("upsert %d points: %w", len(points), err)
	}
	log.Infof("indexed %d chunks from %d files into %s", summary.Chunks, summary.Files, ix.opts.Collection)
	return summary, nil
}

func (ix *Indexer) ensureCollection(ctx context.Context) (bool, error) {
	exists, err := ix.store.CollectionExists(ctx, ix.opts.Collection)
	if err != nil {
		return false, fmt.Errorf("check collection %s: %w", ix.opts.Collection, err)
	}
	if exists {
		return false, nil
	}
	if err := ix.store.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: ix.opts.Collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(ix.opts.VectorSize),
			Distance: qdrant.Distance_Cosine,
		}),
	}); err != nil {
		return false, fmt.Errorf("create collection %s: %w", ix.opts.Collection, err)
	}
	return true, nil
}
