package retrieval

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/qdrant/go-client/qdrant"

	"ragjudge/internal/llm"
)

type fakeStore struct {
	hits        []*qdrant.ScoredPoint
	lastQuery   *qdrant.QueryPoints
	exists      bool
	created     *qdrant.CreateCollection
	upserted    *qdrant.UpsertPoints
	upsertCalls int
}

func (f *fakeStore) Query(_ context.Context, request *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error) {
	f.lastQuery = request
	return f.hits, nil
}

func (f *fakeStore) CollectionExists(context.Context, string) (bool, error) {
	return f.exists, nil
}

func (f *fakeStore) CreateCollection(_ context.Context, request *qdrant.CreateCollection) error {
	f.created = request
	return nil
}

func (f *fakeStore) Upsert(_ context.Context, request *qdrant.UpsertPoints) (*qdrant.UpdateResult, error) {
	f.upserted = request
	f.upsertCalls++
	return &qdrant.UpdateResult{}, nil
}

type fakeEmbedder struct {
	tasks []llm.TaskType
}

func (f *fakeEmbedder) Embed(_ context.Context, text string, task llm.TaskType) ([]float32, error) {
	f.tasks = append(f.tasks, task)
	return []float32{float32(len(text)), 1}, nil
}

// TestRetrieveReturnsTextPayloads verifies hits without text are skipped and order is kept.
func TestRetrieveReturnsTextPayloads(t *testing.T) {
	store := &fakeStore{hits: []*qdrant.ScoredPoint{
		{Payload: qdrant.NewValueMap(map[string]any{"text": "pertama", "source": "a.md"})},
		{Payload: qdrant.NewValueMap(map[string]any{"source": "b.md"})},
		{Payload: qdrant.NewValueMap(map[string]any{"text": "kedua"})},
	}}
	embedder := &fakeEmbedder{}
	r := &QdrantRetriever{store: store, embedder: embedder, collection: "nara_documents"}
	got, err := r.Retrieve(context.Background(), "siapa rektor", 3)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if diff := cmp.Diff([]string{"pertama", "kedua"}, got); diff != "" {
		t.Fatalf("snippets mismatch (-want +got):\n%s", diff)
	}
	if store.lastQuery.GetLimit() != 3 || store.lastQuery.GetCollectionName() != "nara_documents" {
		t.Fatalf("unexpected query %+v", store.lastQuery)
	}
	if embedder.tasks[0] != llm.TaskRetrievalQuery {
		t.Fatalf("expected query task type, got %v", embedder.tasks)
	}
}

// TestChunkPacksParagraphs verifies greedy packing by word count.
func TestChunkPacksParagraphs(t *testing.T) {
	text := "satu dua\n\ntiga empat\n\nlima enam tujuh\r\n\r\n\n\ndelapan"
	got := Chunk(text, 4)
	want := []string{"satu dua\n\ntiga empat", "lima enam tujuh\n\ndelapan"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("chunks mismatch (-want +got):\n%s", diff)
	}
	long := Chunk(strings.Repeat("kata ", 10), 3)
	if len(long) != 1 {
		t.Fatalf("expected oversized paragraph kept whole, got %d chunks", len(long))
	}
	if got := Chunk("  \n\n ", 3); len(got) != 0 {
		t.Fatalf("expected no chunks for blank text, got %v", got)
	}
}

// TestMarkdownTextStripsMarkup verifies markdown documents are indexed as plain paragraphs.
func TestMarkdownTextStripsMarkup(t *testing.T) {
	src := "# Profil UKRI\n\nUKRI **berdiri** tahun 1950\ndi [Jakarta](https://ukri.ac.id).\n\n" +
		"- Fakultas Hukum\n- Fakultas Ekonomi\n\n<div>navigasi</div>\n"
	want := "Profil UKRI\n\nUKRI berdiri tahun 1950 di Jakarta.\n\nFakultas Hukum\n\nFakultas Ekonomi"
	if diff := cmp.Diff(want, MarkdownText([]byte(src))); diff != "" {
		t.Fatalf("text mismatch (-want +got):\n%s", diff)
	}
	if got := documentText("catatan.txt", []byte("**tetap**")); got != "**tetap**" {
		t.Fatalf("expected non-markdown file untouched, got %q", got)
	}
}

// TestIndexFilesCreatesCollectionAndUpserts verifies collection setup and chunk payloads.
func TestIndexFilesCreatesCollectionAndUpserts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profil.md")
	if err := os.WriteFile(path, []byte("UKRI berdiri 1950.\n\nRektor saat ini."), 0o644); err != nil {
		t.Fatalf("write doc: %v", err)
	}
	store := &fakeStore{}
	embedder := &fakeEmbedder{}
	n := 0
	ix := &Indexer{store: store, embedder: embedder, opts: IndexOptions{Collection: "c", VectorSize: 768, ChunkWords: 300}, newID: func() string {
		n++
		return fmt.Sprintf("00000000-0000-0000-0000-%012d", n)
	}}
	summary, err := ix.IndexGlob(context.Background(), filepath.Join(dir, "*.md"))
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if !summary.CreatedCollection || summary.Files != 1 || summary.Chunks != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	params := store.created.GetVectorsConfig().GetParams()
	if params.GetSize() != 768 || params.GetDistance() != qdrant.Distance_Cosine {
		t.Fatalf("unexpected vector params %+v", params)
	}
	point := store.upserted.GetPoints()[0]
	if point.GetPayload()[PayloadSource].GetStringValue() != "profil.md" {
		t.Fatalf("unexpected payload %+v", point.GetPayload())
	}
	if !strings.HasPrefix(point.GetPayload()[PayloadText].GetStringValue(), "UKRI berdiri") {
		t.Fatalf("unexpected text payload %+v", point.GetPayload())
	}
	if embedder.tasks[0] != llm.TaskRetrievalDocument {
		t.Fatalf("expected document task type, got %v", embedder.tasks)
	}
}

// TestIndexGlobNoMatches verifies an empty glob is reported.
func TestIndexGlobNoMatches(t *testing.T) {
	ix := &Indexer{store: &fakeStore{exists: true}, embedder: &fakeEmbedder{}, opts: IndexOptions{Collection: "c", ChunkWords: 10}}
	if _, err := ix.IndexGlob(context.Background(), filepath.Join(t.TempDir(), "*.md")); err == nil {
		t.Fatalf("expected error for empty glob")
	}
}
