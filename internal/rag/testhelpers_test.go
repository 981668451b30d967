package rag

import "context"

// stubStore serves canned search results keyed by company or type and
// records additions.
type stubStore struct {
	byCompany map[string][]Snippet
	byType    map[string][]Snippet
	searchErr error
	added     []Snippet
	closed    bool
}

func (s *stubStore) Search(ctx context.Context, query string, filter Filter, limit int) ([]Snippet, error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	if filter.Company != "" {
		return s.byCompany[filter.Company], nil
	}
	return s.byType[filter.Type], nil
}

func (s *stubStore) Add(ctx context.Context, snippets []Snippet) error {
	s.added = append(s.added, snippets...)
	return nil
}

func (s *stubStore) Count(ctx context.Context) (int, error) {
	return len(s.added), nil
}

func (s *stubStore) Close() error {
	s.closed = true
	return nil
}

func generic(texts ...string) []Snippet {
	out := make([]Snippet, 0, len(texts))
	for _, t := range texts {
		out = append(out, Snippet{Content: t, Type: TypeGeneric})
	}
	return out
}
