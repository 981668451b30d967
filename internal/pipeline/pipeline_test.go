package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/call-coach/internal/model"
)

type stubRetriever struct {
	snippets []string
}

func (s *stubRetriever) Retrieve(ctx context.Context, query, company string) []string {
	return s.snippets
}

func newTestRunner() *Runner {
	return NewRunner(&stubRetriever{snippets: []string{"always confirm next steps"}}, "acme")
}

func TestRunner_EmptyTranscript(t *testing.T) {
	report, err := newTestRunner().Run(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, model.ReportVersion, report.ReportVersion)
	assert.Equal(t, model.SentimentNeutral, report.Sentiment)
	assert.Equal(t, 5.3, report.RepPerformance.Score)
	assert.Equal(t, []string{
		"Customer engagement appeared neutral with no explicit buying signals detected.",
	}, report.ObjectionAnalysis.BuyingSignals)
	assert.NotEmpty(t, report.RecommendedNextActions)
	assert.NotEmpty(t, report.AgentConsensus.OverallAssessment)
}

func TestRunner_NegativeCall(t *testing.T) {
	report, err := newTestRunner().Run(context.Background(), "I'm not interested, stop calling me.")
	require.NoError(t, err)

	assert.Equal(t, model.SentimentNegative, report.Sentiment)
	assert.LessOrEqual(t, report.RepPerformance.Score, 5.5)

	// Both downstream agents received the computed sentiment: the coach
	// switched to recovery actions and the objection expert took the
	// negative pathway.
	assert.Equal(t, "Acknowledge the customer's frustration and ask one clarifying question to understand the root cause.",
		report.RecommendedNextActions[0])
	assert.Equal(t, []string{
		"No buying signals detected due to customer resistance / disengagement.",
	}, report.ObjectionAnalysis.BuyingSignals)
}

func TestRunner_StrongCall(t *testing.T) {
	transcript := "What challenges are you facing? What is driving the timeline? " +
		"Our platform improves ROI. I understand completely. Sounds good, let's schedule next steps."

	report, err := newTestRunner().Run(context.Background(), transcript)
	require.NoError(t, err)

	assert.Equal(t, model.SentimentPositive, report.Sentiment)
	assert.Equal(t, 7.3, report.RepPerformance.Score)
	assert.True(t, report.RepPerformance.SignalsDetected.MentionedValueProp)
	assert.True(t, report.RepPerformance.SignalsDetected.MentionedNextSteps)
	assert.Contains(t, report.AgentConsensus.OverallAssessment, "strengths in")
	assert.Equal(t, []string{"always confirm next steps"}, report.RAG.TopSnippets)
}

func TestRunner_CoveredPillarsLeaveNoGapLines(t *testing.T) {
	transcript := "What outcomes matter most to you? What budget range are you working with? " +
		"Our ROI is strong, and we'll send next steps after this call."

	report, err := newTestRunner().Run(context.Background(), transcript)
	require.NoError(t, err)

	assert.Equal(t, 7.0, report.RepPerformance.Score)
	assert.Contains(t, report.RepPerformance.WhatWentWell,
		"Asked multiple questions to understand the customer context (discovery).")
	assert.Contains(t, report.RepPerformance.WhatWentWell,
		"Mentioned customer value/benefits (value proposition).")
	assert.NotContains(t, report.RepPerformance.WhatToImprove,
		"Call lacked a clear closing or next-step confirmation.")
	assert.NotContains(t, report.ObjectionAnalysis.MissedObjections,
		"Budget/pricing topic was not discussed (risk of late-stage price objection).")
}

func TestRunner_Deterministic(t *testing.T) {
	transcript := "What's your budget? Sounds good, let's schedule a demo."

	runner := newTestRunner()
	first, err := runner.Run(context.Background(), transcript)
	require.NoError(t, err)
	second, err := runner.Run(context.Background(), transcript)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRunner_RunWithHint(t *testing.T) {
	report, err := newTestRunner().RunWithHint(context.Background(), "hello there", "Negative")
	require.NoError(t, err)

	// The hint steers the coach and objection expert even though the
	// transcript itself reads neutral.
	assert.Equal(t, model.SentimentNeutral, report.Sentiment)
	assert.Equal(t, []string{
		"No buying signals detected due to customer resistance / disengagement.",
	}, report.ObjectionAnalysis.BuyingSignals)
}

func TestRunner_RunWithHint_EmptyHintIsNeutral(t *testing.T) {
	report, err := newTestRunner().RunWithHint(context.Background(), "I'm not interested, stop calling me.", "")
	require.NoError(t, err)

	// The transcript analyzer still reports what it reads, but the other
	// two agents are steered by the substituted Neutral hint.
	assert.Equal(t, model.SentimentNegative, report.Sentiment)
	assert.Equal(t, []string{
		"Customer engagement appeared neutral with no explicit buying signals detected.",
	}, report.ObjectionAnalysis.BuyingSignals)
}
