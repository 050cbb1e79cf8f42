package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"ragjudge/internal/config"
	"ragjudge/internal/llm"
	"ragjudge/internal/retrieval"
	"ragjudge/internal/spec"
)

// documentIndexer is the part of retrieval.Indexer the index command drives.
type documentIndexer interface {
	IndexGlob(ctx context.Context, pattern string) (retrieval.IndexSummary, error)
	IndexFiles(ctx context.Context, paths []string) (retrieval.IndexSummary, error)
}

// buildIndexer is a test seam for the embedder and vector store.
var buildIndexer = defaultIndexer

func defaultIndexer(ctx context.Context, cfg spec.Config, secrets config.Secrets) (documentIndexer, func(), error) {
	embedder, err := llm.NewGeminiEmbedder(ctx, secrets.GoogleAPIKey, cfg.Retrieval.EmbeddingModel, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create embedder: %w", err)
	}
	endpoint, err := secrets.Qdrant()
	if err != nil {
		return nil, nil, err
	}
	client, err := retrieval.Connect(endpoint)
	if err != nil {
		return nil, nil, err
	}
	indexer := retrieval.NewIndexer(client, embedder, retrieval.IndexOptions{
		Collection: secrets.Collection(cfg.Retrieval.Collection),
		VectorSize: cfg.Retrieval.VectorSize,
		ChunkWords: cfg.Retrieval.ChunkWords,
	})
	return indexer, func() { _ = client.Close() }, nil
}

// runIndex builds the handler for the index command.
func runIndex(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		common := addCommonFlags(fs)
		glob := fs.String("glob", "", "Documents pattern (default: retrieval.documents_glob)")
		ctx, cancel, code := parseCommand(cmd, fs, common, args, stdout, stderr)
		if ctx == nil {
			return code
		}
		defer cancel()

		cfg, _, err := loadConfig(common.specPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		secrets, err := config.LoadSecrets(ctx, lookupEnv)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to read environment: %v\n", err)
			return ExitError
		}
		indexer, closeFn, err := buildIndexer(ctx, cfg, secrets)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to set up index: %v\n", err)
			return ExitError
		}
		if closeFn != nil {
			defer closeFn()
		}

		var summary retrieval.IndexSummary
		if fs.NArg() > 0 {
			summary, err = indexer.IndexFiles(ctx, fs.Args())
		} else {
			pattern := cfg.Retrieval.DocumentsGlob
			if *glob != "" {
				pattern = *glob
			}
			summary, err = indexer.IndexGlob(ctx, pattern)
		}
		if err != nil {
			fmt.Fprintf(stderr, "Indexing failed: %v\n", err)
			return ExitError
		}
		if summary.CreatedCollection {
			fmt.Fprintf(stdout, "Created collection %s\n", secrets.Collection(cfg.Retrieval.Collection))
		}
		fmt.Fprintf(stdout, "Indexed %d chunks from %d files\n", summary.Chunks, summary.Files)
		return ExitOK
	}
}
