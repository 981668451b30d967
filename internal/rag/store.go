// Package rag retrieves best-practice grounding snippets from a
// pre-built knowledge-base index, with graceful degradation to a fixed
// snippet list when the index is unavailable.
package rag

import "context"

// Snippet types. Company snippets belong to one company's knowledge
// base; generic snippets apply to every call.
const (
	TypeGeneric = "generic"
	TypeCompany = "company"
)

// Snippet is one indexed knowledge-base chunk.
type Snippet struct {
	Content string `yaml:"content"`
	Type    string `yaml:"kb_type"`
	Company string `yaml:"company"`
	Source  string `yaml:"source"`
}

// Filter restricts a search to a snippet type or a company KB.
type Filter struct {
	Type    string
	Company string
}

// Store is a full-text index over snippets. Search must be safe for
// concurrent readers; writes happen only during indexing.
type Store interface {
	Search(ctx context.Context, query string, filter Filter, limit int) ([]Snippet, error)
	Add(ctx context.Context, snippets []Snippet) error
	Count(ctx context.Context) (int, error)
	Close() error
}
