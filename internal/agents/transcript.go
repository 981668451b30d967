package agents

import (
	"context"
	"strings"

	"github.com/sells-group/call-coach/internal/model"
)

// transcriptRubricQuery grounds the analyzer in rubric-style guidance
// (what to look for), not in facts about the call.
const transcriptRubricQuery = "how to identify customer intent and sentiment in sales calls; tone and empathy best practices; follow-up strategies"

// Canned summary/intent pairs keyed by sentiment label.
var transcriptSummaries = map[string][2]string{
	model.SentimentNegative: {
		"The conversation showed customer resistance and did not progress toward a constructive next step.",
		"The customer appears uninterested or dissatisfied and is not currently open to the offer.",
	},
	model.SentimentPositive: {
		"The call showed positive engagement with signs of interest and potential readiness to proceed.",
		"The customer appears interested and open to moving forward or scheduling a next step.",
	},
	model.SentimentNeutral: {
		"The sales representative engaged the customer and attempted discovery to assess fit and needs.",
		"The customer appears to be evaluating relevance and gathering information before deciding.",
	},
}

// TranscriptAnalyzer derives summary, customer intent, sentiment and an
// ordered list of key moments from the raw transcript.
type TranscriptAnalyzer struct {
	retriever Retriever
	company   string
}

// NewTranscriptAnalyzer creates a TranscriptAnalyzer. The company name
// scopes retrieval to a company knowledge base; empty means generic only.
func NewTranscriptAnalyzer(retriever Retriever, company string) *TranscriptAnalyzer {
	return &TranscriptAnalyzer{retriever: retriever, company: company}
}

// Analyze scans the transcript and produces the analyzer's opinion.
func (a *TranscriptAnalyzer) Analyze(ctx context.Context, transcript string) (*model.TranscriptAnalysis, error) {
	ragContext := a.retriever.Retrieve(ctx, transcriptRubricQuery, a.company)

	signals := ScanTranscript(transcript)
	sentiment := signals.Sentiment
	canned := transcriptSummaries[sentiment]

	// Key moments build up in a fixed order: greeting, discovery depth,
	// conditional topic moments, then one sentiment-specific closing.
	keyMoments := []string{"Greeting and introduction"}

	switch {
	case signals.AskedQuestionsCount >= 2:
		keyMoments = append(keyMoments, "Multiple discovery questions were asked")
	case signals.AskedQuestionsCount == 1:
		keyMoments = append(keyMoments, "A discovery question was asked")
	default:
		keyMoments = append(keyMoments, "Discovery was limited (few/no questions)")
	}

	if signals.MentionsBudget {
		keyMoments = append(keyMoments, "Pricing/budget topic came up")
	}
	if signals.MentionsTimeline {
		keyMoments = append(keyMoments, "Timeline/urgency was discussed")
	}
	if signals.MentionsFollowUp {
		keyMoments = append(keyMoments, "Follow-up / next steps were mentioned")
	}
	if signals.ShowsEmpathy {
		keyMoments = append(keyMoments, "Empathy/acknowledgement language was used")
	}

	switch sentiment {
	case model.SentimentNegative:
		keyMoments = append(keyMoments, "Customer expressed resistance or dissatisfaction")
	case model.SentimentPositive:
		keyMoments = append(keyMoments, "Customer expressed interest or agreement")
	default:
		keyMoments = append(keyMoments, "Customer engagement remained mostly neutral")
	}

	var evidenceNotes []string
	if sentiment == model.SentimentNegative && len(signals.NegativeHits) > 0 {
		evidenceNotes = append(evidenceNotes, "Negative cue(s) detected: "+strings.Join(signals.NegativeHits, ", "))
	}
	if sentiment == model.SentimentPositive && len(signals.PositiveHits) > 0 {
		evidenceNotes = append(evidenceNotes, "Positive cue(s) detected: "+strings.Join(signals.PositiveHits, ", "))
	}

	return &model.TranscriptAnalysis{
		Summary:        canned[0],
		CustomerIntent: canned[1],
		Sentiment:      sentiment,
		KeyMoments:     keyMoments,
		Signals:        signals,
		EvidenceNotes:  evidenceNotes,
		RAGContextUsed: ragContext,
	}, nil
}

// ScanTranscript computes the transcript analyzer's signal set.
func ScanTranscript(transcript string) model.TranscriptSignals {
	t := normalize(transcript)
	reading := ReadSentiment(transcript)

	return model.TranscriptSignals{
		Sentiment:           reading.Label,
		SentimentScore:      reading.Score,
		AskedQuestionsCount: strings.Count(transcript, "?"),
		MentionsBudget:      containsAny(t, budgetPhrases),
		MentionsTimeline:    containsAny(t, timelinePhrases),
		MentionsFollowUp:    containsAny(t, followUpPhrases),
		ShowsEmpathy:        containsAny(t, empathyPhrases),
		NegativeHits:        reading.NegativeHits,
		PositiveHits:        reading.PositiveHits,
	}
}
