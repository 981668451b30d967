// Package agents implements the three heuristic analyzers that scan a
// sales-call transcript: the transcript analyzer, the sales coach and
// the objection/opportunity expert. All three are stateless phrase
// matchers; they never fail on transcript content, and an absent
// transcript is treated as empty.
package agents

import (
	"context"
	"strings"

	"golang.org/x/text/cases"

	"github.com/sells-group/call-coach/internal/model"
)

// Retriever supplies grounding snippets from the knowledge base. A
// retrieval never fails; on error it degrades to a fixed snippet list.
type Retriever interface {
	Retrieve(ctx context.Context, query, company string) []string
}

// maxEvidenceHits caps how many matched phrases are quoted as evidence.
const maxEvidenceHits = 2

// foldCaser lowercases with full Unicode case folding so phrase
// membership is not ASCII-only.
var foldCaser = cases.Fold()

func normalize(s string) string {
	return foldCaser.String(s)
}

func containsAny(t string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(t, p) {
			return true
		}
	}
	return false
}

// matchedPhrases returns up to max phrases present in t, in phrase-table
// order rather than transcript order.
func matchedPhrases(t string, phrases []string, max int) []string {
	var hits []string
	for _, p := range phrases {
		if strings.Contains(t, p) {
			hits = append(hits, p)
			if len(hits) >= max {
				break
			}
		}
	}
	return hits
}

// SentimentReading is the transcript-level sentiment with its evidence.
type SentimentReading struct {
	Label        string
	Score        float64
	NegativeHits []string
	PositiveHits []string
}

// ReadSentiment scores the transcript: -2 for each matched negative
// phrase, +2 for each matched positive phrase. Multiple matches stack;
// there is no cap.
func ReadSentiment(transcript string) SentimentReading {
	t := normalize(transcript)

	var score float64
	for _, p := range negativePhrases {
		if strings.Contains(t, p) {
			score -= 2
		}
	}
	for _, p := range positivePhrases {
		if strings.Contains(t, p) {
			score += 2
		}
	}

	return SentimentReading{
		Label:        sentimentLabel(score),
		Score:        score,
		NegativeHits: matchedPhrases(t, negativePhrases, maxEvidenceHits),
		PositiveHits: matchedPhrases(t, positivePhrases, maxEvidenceHits),
	}
}

func sentimentLabel(score float64) string {
	switch {
	case score <= -2:
		return model.SentimentNegative
	case score >= 2:
		return model.SentimentPositive
	default:
		return model.SentimentNeutral
	}
}
