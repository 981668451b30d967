package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/call-coach/internal/model"
)

func TestAggregate_NilOpinions(t *testing.T) {
	report := Aggregate(nil, nil, nil)

	assert.Equal(t, model.ReportVersion, report.ReportVersion)
	assert.Empty(t, report.CallSummary)
	assert.Empty(t, report.Sentiment)

	// Every list renders as a JSON array, never null.
	assert.NotNil(t, report.RepPerformance.WhatWentWell)
	assert.NotNil(t, report.RepPerformance.WhatToImprove)
	assert.NotNil(t, report.ObjectionAnalysis.MissedObjections)
	assert.NotNil(t, report.ObjectionAnalysis.BuyingSignals)
	assert.NotNil(t, report.ObjectionAnalysis.MissedOpportunities)
	assert.NotNil(t, report.ObjectionAnalysis.RAGContextUsed)
	assert.NotNil(t, report.RecommendedNextActions)
	assert.NotNil(t, report.RAG.TopSnippets)

	// Without a coach opinion the missing score is neither a strength nor
	// a gap; the zero signals still read as value/next-step gaps.
	assert.Equal(t,
		"Agents agree the call needs improvement in value articulation, closing and next-step confirmation.",
		report.AgentConsensus.OverallAssessment)
}

func TestAggregate_FieldMapping(t *testing.T) {
	analysis := &model.TranscriptAnalysis{
		Summary:        "summary",
		CustomerIntent: "intent",
		Sentiment:      model.SentimentPositive,
	}
	coaching := &model.CoachingFeedback{
		RepPerformanceScore:    7.3,
		WhatWentWell:           []string{"well"},
		WhatToImprove:          []string{"improve"},
		RecommendedNextActions: []string{"action"},
		RAGQuery:               "query",
		CoachingReferences:     []string{"ref"},
	}
	objections := &model.ObjectionFeedback{
		MissedObjections:    []string{"objection"},
		BuyingSignals:       []string{"signal"},
		MissedOpportunities: []string{"opportunity"},
		RAGContextUsed:      []string{"context"},
	}

	report := Aggregate(analysis, coaching, objections)

	assert.Equal(t, "summary", report.CallSummary)
	assert.Equal(t, "intent", report.CustomerIntent)
	assert.Equal(t, model.SentimentPositive, report.Sentiment)
	assert.Equal(t, 7.3, report.RepPerformance.Score)
	assert.Equal(t, []string{"well"}, report.RepPerformance.WhatWentWell)
	assert.Equal(t, []string{"improve"}, report.RepPerformance.WhatToImprove)
	assert.Equal(t, []string{"action"}, report.RecommendedNextActions)
	assert.Equal(t, "query", report.RAG.Query)
	assert.Equal(t, []string{"ref"}, report.RAG.TopSnippets)
	assert.Equal(t, []string{"objection"}, report.ObjectionAnalysis.MissedObjections)
	assert.Equal(t, []string{"signal"}, report.ObjectionAnalysis.BuyingSignals)
	assert.Equal(t, []string{"opportunity"}, report.ObjectionAnalysis.MissedOpportunities)
	assert.Equal(t, []string{"context"}, report.ObjectionAnalysis.RAGContextUsed)
}

func TestConsensus_StrengthsOnly(t *testing.T) {
	coaching := &model.CoachingFeedback{
		RepPerformanceScore: 7.5,
		Signals: model.CallSignals{
			MentionedValueProp: true,
			MentionedNextSteps: true,
			ShowedEmpathy:      true,
		},
	}
	objections := &model.ObjectionFeedback{
		BuyingSignals: []string{"Customer used positive language indicating openness or interest."},
	}

	assert.Equal(t,
		"Agents agree the call went well, with clear strengths in overall selling effectiveness, "+
			"clear value articulation, clear next-step confirmation, positive customer engagement, empathetic listening.",
		consensus(coaching, objections))
}

func TestConsensus_GapsOnly(t *testing.T) {
	coaching := &model.CoachingFeedback{RepPerformanceScore: 5.3}
	objections := &model.ObjectionFeedback{
		MissedObjections:    []string{"budget not discussed"},
		MissedOpportunities: []string{"no discovery"},
		BuyingSignals:       []string{"Customer engagement appeared neutral with no explicit buying signals detected."},
	}

	assert.Equal(t,
		"Agents agree the call needs improvement in value articulation, closing and next-step confirmation, "+
			"overall selling effectiveness, objection handling, opportunity capture.",
		consensus(coaching, objections))
}

func TestConsensus_Mixed(t *testing.T) {
	coaching := &model.CoachingFeedback{
		RepPerformanceScore: 7.3,
		Signals: model.CallSignals{
			MentionedValueProp: true,
			MentionedNextSteps: true,
		},
	}
	objections := &model.ObjectionFeedback{
		MissedObjections: []string{"timeline not clarified"},
	}

	assert.Equal(t,
		"Agents agree the call showed strengths in overall selling effectiveness, clear value articulation, "+
			"clear next-step confirmation, but improvements are needed in objection handling.",
		consensus(coaching, objections))
}

func TestConsensus_NeutralBuyingSignalsAreNotEngagement(t *testing.T) {
	coaching := &model.CoachingFeedback{
		RepPerformanceScore: 8,
		Signals: model.CallSignals{
			MentionedValueProp: true,
			MentionedNextSteps: true,
		},
	}
	objections := &model.ObjectionFeedback{
		BuyingSignals: []string{"Customer engagement appeared neutral with no explicit buying signals detected."},
	}

	assert.NotContains(t, consensus(coaching, objections), "positive customer engagement")
}

func TestConsensus_MissingScoreDefaults(t *testing.T) {
	// With no coaching opinion the score contributes nothing either way:
	// no effectiveness strength, no effectiveness gap.
	got := consensus(nil, &model.ObjectionFeedback{
		BuyingSignals: []string{"Customer used positive language indicating openness or interest."},
	})
	assert.NotContains(t, got, "overall selling effectiveness")
	assert.Contains(t, got, "positive customer engagement")
}
