// Package retrieval queries and populates the Qdrant document index.
package retrieval

import (
	"context"
	"fmt"

	"github.com/qdrant/go-client/qdrant"

	"ragjudge/internal/config"
	"ragjudge/internal/llm"
)

// Retriever returns snippets relevant to a query, most relevant first.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]string, error)
}

// PayloadText and PayloadSource are the payload keys written for each chunk.
const (
	PayloadText   = "text"
	PayloadSource = "source"
)

type pointStore interface {
	Query(ctx context.Context, request *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error)
	CollectionExists(ctx context.Context, collectionName string) (bool, error)
	CreateCollection(ctx context.Context, request *qdrant.CreateCollection) error
	Upsert(ctx context.Context, request *qdrant.UpsertPoints) (*qdrant.UpdateResult, error)
}

// Connect opens a gRPC client to the Qdrant endpoint.
func Connect(endpoint config.QdrantEndpoint) (*qdrant.Client, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   endpoint.Host,
		Port:   endpoint.Port,
		APIKey: endpoint.APIKey,
		UseTLS: endpoint.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("connect qdrant %s:%d: %w", endpoint.Host, endpoint.Port, err)
	}
	return client, nil
}

// QdrantRetriever embeds queries and searches a Qdrant collection.
type QdrantRetriever struct {
	store      pointStore
	embedder   llm.Embedder
	collection string
}

// NewQdrantRetriever builds a retriever over an open Qdrant client.
func NewQdrantRetriever(client *qdrant.Client, embedder llm.Embedder, collection string) *QdrantRetriever {
	return &QdrantRetriever{store: client, embedder: embedder, collection: collection}
}

// Retrieve returns the text payloads of the topK nearest chunks. Hits without text are skipped.
func (r *QdrantRetriever) Retrieve(ctx context.Context, query string, topK int) ([]string, error) {
	if topK < 1 {
		return nil, nil
	}
	vector, err := r.embedder.Embed(ctx, query, llm.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	hits, err := r.store.Query(ctx, &qdrant.QueryPoints{
		CollectionName: r.collection,
		Query:          qdrant.NewQueryDense(vector),
		Limit:          qdrant.PtrOf(uint64(topK)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", r.collection, err)
	}
	snippets := make([]string, 0, len(hits))
	for _, hit := range hits {
		value, ok := hit.GetPayload()[PayloadText]
		if !ok {
			continue
		}
		snippets = append(snippets, value.GetStringValue())
	}
	return snippets, nil
}
