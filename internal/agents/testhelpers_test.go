package agents

import "context"

// stubRetriever records queries and returns a canned snippet list.
type stubRetriever struct {
	snippets  []string
	queries   []string
	companies []string
}

func (s *stubRetriever) Retrieve(ctx context.Context, query, company string) []string {
	s.queries = append(s.queries, query)
	s.companies = append(s.companies, company)
	return s.snippets
}
