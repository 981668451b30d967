package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRetriever_FakeModeReturnsFallback(t *testing.T) {
	r := NewRetriever(&stubStore{}, true, 5)

	got := r.Retrieve(context.Background(), "discovery questions", "acme")
	assert.Equal(t, FallbackSnippets(), got)
}

func TestRetriever_NilStoreReturnsFallback(t *testing.T) {
	r := NewRetriever(nil, false, 5)

	got := r.Retrieve(context.Background(), "anything", "")
	assert.Equal(t, FallbackSnippets(), got)
}

func TestRetriever_SearchErrorDegradesToFallback(t *testing.T) {
	store := &stubStore{searchErr: errors.New("index corrupted")}
	r := NewRetriever(store, false, 5)

	got := r.Retrieve(context.Background(), "closing techniques", "acme")
	assert.Equal(t, FallbackSnippets(), got)
}

func TestRetriever_CompanyResultsComeFirst(t *testing.T) {
	store := &stubStore{
		byCompany: map[string][]Snippet{
			"acme": {
				{Content: "Acme buyers expect ROI numbers up front.", Type: TypeCompany, Company: "acme"},
			},
		},
		byType: map[string][]Snippet{
			TypeGeneric: generic("Use discovery questions.", "Confirm next steps."),
		},
	}
	r := NewRetriever(store, false, 5)

	got := r.Retrieve(context.Background(), "discovery", "acme")
	assert.Equal(t, []string{
		"Acme buyers expect ROI numbers up front.",
		"Use discovery questions.",
		"Confirm next steps.",
	}, got)
}

func TestRetriever_DeduplicatesAndCaps(t *testing.T) {
	store := &stubStore{
		byCompany: map[string][]Snippet{
			"acme": {
				{Content: "shared advice", Type: TypeCompany, Company: "acme"},
				{Content: "acme-only advice", Type: TypeCompany, Company: "acme"},
			},
		},
		byType: map[string][]Snippet{
			TypeGeneric: generic("shared advice", "g1", "g2", "g3", "g4"),
		},
	}
	r := NewRetriever(store, false, 5)

	got := r.Retrieve(context.Background(), "advice", "acme")
	assert.Equal(t, []string{"shared advice", "acme-only advice", "g1", "g2", "g3"}, got)
}

func TestRetriever_NoCompanySkipsCompanySearch(t *testing.T) {
	store := &stubStore{
		byType: map[string][]Snippet{
			TypeGeneric: generic("generic only"),
		},
	}
	r := NewRetriever(store, false, 5)

	got := r.Retrieve(context.Background(), "whatever", "")
	assert.Equal(t, []string{"generic only"}, got)
}

func TestNewRetriever_TopKDefault(t *testing.T) {
	r := NewRetriever(nil, true, 0)
	assert.Equal(t, DefaultTopK, r.topK)
}

func TestFallbackSnippets_ReturnsCopy(t *testing.T) {
	first := FallbackSnippets()
	first[0] = "mutated"
	assert.NotEqual(t, first[0], FallbackSnippets()[0])
}
