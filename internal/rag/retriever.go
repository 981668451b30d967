package rag

import (
	"context"

	"go.uber.org/zap"
)

// DefaultTopK caps how many snippets a retrieval returns.
const DefaultTopK = 5

// fallbackSnippets is the fixed degraded-mode response, returned when
// retrieval is disabled or the index fails.
var fallbackSnippets = []string{
	"Always confirm next steps before ending a sales call.",
	"Address pricing objections proactively.",
	"Use discovery questions to uncover customer pain points.",
	"Clarify decision timelines and buying authority.",
}

// FallbackSnippets returns a copy of the degraded-mode snippet list.
func FallbackSnippets() []string {
	out := make([]string, len(fallbackSnippets))
	copy(out, fallbackSnippets)
	return out
}

// Retriever answers free-text queries with ranked knowledge-base
// snippets. A retrieval never fails: store errors degrade to the fixed
// fallback list instead of propagating.
type Retriever struct {
	store Store
	fake  bool
	topK  int
}

// NewRetriever creates a Retriever. With fake set (or a nil store) every
// query is answered from the fixed fallback list, for memory-constrained
// deployments and tests.
func NewRetriever(store Store, fake bool, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{store: store, fake: fake, topK: topK}
}

// Retrieve returns up to topK snippet texts for the query. A non-empty
// company restricts part of the search to that company's KB; generic
// snippets supplement it. Results are deduplicated by exact text with
// company-specific snippets first.
func (r *Retriever) Retrieve(ctx context.Context, query, company string) []string {
	if r.fake || r.store == nil {
		return FallbackSnippets()
	}

	var found []Snippet
	if company != "" {
		docs, err := r.store.Search(ctx, query, Filter{Company: company}, r.topK)
		if err != nil {
			zap.L().Warn("rag: company search failed, using fallback snippets",
				zap.String("company", company),
				zap.Error(err),
			)
			return FallbackSnippets()
		}
		found = append(found, docs...)
	}

	generic, err := r.store.Search(ctx, query, Filter{Type: TypeGeneric}, r.topK)
	if err != nil {
		zap.L().Warn("rag: generic search failed, using fallback snippets", zap.Error(err))
		return FallbackSnippets()
	}
	found = append(found, generic...)

	seen := make(map[string]struct{}, len(found))
	out := make([]string, 0, r.topK)
	for _, doc := range found {
		if _, ok := seen[doc.Content]; ok {
			continue
		}
		seen[doc.Content] = struct{}{}
		out = append(out, doc.Content)
		if len(out) >= r.topK {
			break
		}
	}
	return out
}
