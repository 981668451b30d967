package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/call-coach/internal/pipeline"
	"github.com/sells-group/call-coach/internal/rag"
)

// openStore opens the configured knowledge-base store.
func openStore(ctx context.Context) (rag.Store, error) {
	switch cfg.KB.Driver {
	case "sqlite":
		path := cfg.KB.Path
		if path == "" {
			path = "callcoach.db"
		}
		return rag.NewSQLite(path)
	case "postgres":
		return rag.NewPostgres(ctx, cfg.KB.DatabaseURL)
	default:
		return nil, eris.Errorf("unsupported kb driver: %s", cfg.KB.Driver)
	}
}

// newRunner builds the analysis pipeline from config. In fake-retrieval
// mode no store is opened and every query answers from the fixed
// fallback snippets.
func newRunner(ctx context.Context) (*pipeline.Runner, func(), error) {
	if cfg.RAG.Fake {
		retriever := rag.NewRetriever(nil, true, cfg.RAG.TopK)
		return pipeline.NewRunner(retriever, cfg.RAG.Company), func() {}, nil
	}

	store, err := openStore(ctx)
	if err != nil {
		return nil, nil, err
	}

	retriever := rag.NewRetriever(store, false, cfg.RAG.TopK)
	cleanup := func() {
		if err := store.Close(); err != nil {
			zap.L().Warn("close kb store", zap.Error(err))
		}
	}
	return pipeline.NewRunner(retriever, cfg.RAG.Company), cleanup, nil
}
