package pipeline

import (
	"fmt"
	"strings"

	"github.com/sells-group/call-coach/internal/model"
)

// Consensus condition labels. Strengths and gaps are fixed vocabularies;
// the consensus sentence joins whichever conditions fired.
const (
	strengthEffectiveness = "overall selling effectiveness"
	strengthValue         = "clear value articulation"
	strengthNextStep      = "clear next-step confirmation"
	strengthEngagement    = "positive customer engagement"
	strengthEmpathy       = "empathetic listening"

	gapValue         = "value articulation"
	gapNextStep      = "closing and next-step confirmation"
	gapEffectiveness = "overall selling effectiveness"
	gapObjections    = "objection handling"
	gapOpportunities = "opportunity capture"
)

// noConsensusLine is the fixed sentence when neither list accumulates.
const noConsensusLine = "Agents did not find enough signal in this call to form a confident assessment."

// Aggregate merges the three analyzer opinions into one report. It is a
// pure function: nil opinions are treated as empty, and every
// list-valued field of the result is non-nil so consumers always see
// JSON arrays.
func Aggregate(analysis *model.TranscriptAnalysis, coaching *model.CoachingFeedback, objections *model.ObjectionFeedback) *model.Report {
	report := &model.Report{ReportVersion: model.ReportVersion}

	if analysis != nil {
		report.CallSummary = analysis.Summary
		report.CustomerIntent = analysis.CustomerIntent
		report.Sentiment = analysis.Sentiment
	}

	if coaching != nil {
		report.RepPerformance = model.RepPerformance{
			Score:           coaching.RepPerformanceScore,
			WhatWentWell:    coaching.WhatWentWell,
			WhatToImprove:   coaching.WhatToImprove,
			SignalsDetected: coaching.Signals,
		}
		report.RecommendedNextActions = coaching.RecommendedNextActions
		report.RAG = model.RAGContext{
			Query:       coaching.RAGQuery,
			TopSnippets: coaching.CoachingReferences,
		}
	}

	if objections != nil {
		report.ObjectionAnalysis = model.ObjectionAnalysis{
			MissedObjections:    objections.MissedObjections,
			BuyingSignals:       objections.BuyingSignals,
			MissedOpportunities: objections.MissedOpportunities,
			RAGContextUsed:      objections.RAGContextUsed,
		}
	}

	report.RepPerformance.WhatWentWell = ensure(report.RepPerformance.WhatWentWell)
	report.RepPerformance.WhatToImprove = ensure(report.RepPerformance.WhatToImprove)
	report.ObjectionAnalysis.MissedObjections = ensure(report.ObjectionAnalysis.MissedObjections)
	report.ObjectionAnalysis.BuyingSignals = ensure(report.ObjectionAnalysis.BuyingSignals)
	report.ObjectionAnalysis.MissedOpportunities = ensure(report.ObjectionAnalysis.MissedOpportunities)
	report.ObjectionAnalysis.RAGContextUsed = ensure(report.ObjectionAnalysis.RAGContextUsed)
	report.RecommendedNextActions = ensure(report.RecommendedNextActions)
	report.RAG.TopSnippets = ensure(report.RAG.TopSnippets)

	report.AgentConsensus = model.Consensus{
		OverallAssessment: consensus(coaching, objections),
	}

	return report
}

// consensus reconciles the coach's and objection expert's views into one
// sentence built from fixed strength/gap conditions.
func consensus(coaching *model.CoachingFeedback, objections *model.ObjectionFeedback) string {
	// A missing score counts as neither a strength nor a gap: the
	// strength test sees 0 and the gap test sees 10.
	strengthScore, gapScore := 0.0, 10.0
	var signals model.CallSignals
	if coaching != nil {
		strengthScore = coaching.RepPerformanceScore
		gapScore = coaching.RepPerformanceScore
		signals = coaching.Signals
	}

	var buyingSignals, missedObjections, missedOpportunities []string
	if objections != nil {
		buyingSignals = objections.BuyingSignals
		missedObjections = objections.MissedObjections
		missedOpportunities = objections.MissedOpportunities
	}

	var strengths, gaps []string

	if strengthScore >= 7 {
		strengths = append(strengths, strengthEffectiveness)
	}
	if signals.MentionedValueProp {
		strengths = append(strengths, strengthValue)
	}
	if signals.MentionedNextSteps {
		strengths = append(strengths, strengthNextStep)
	}
	if len(buyingSignals) > 0 && !anyMentionsNeutral(buyingSignals) {
		strengths = append(strengths, strengthEngagement)
	}
	if signals.ShowedEmpathy {
		strengths = append(strengths, strengthEmpathy)
	}

	if !signals.MentionedValueProp {
		gaps = append(gaps, gapValue)
	}
	if !signals.MentionedNextSteps {
		gaps = append(gaps, gapNextStep)
	}
	if gapScore < 7 {
		gaps = append(gaps, gapEffectiveness)
	}
	if len(missedObjections) > 0 {
		gaps = append(gaps, gapObjections)
	}
	if len(missedOpportunities) > 0 {
		gaps = append(gaps, gapOpportunities)
	}

	switch {
	case len(strengths) > 0 && len(gaps) > 0:
		return fmt.Sprintf("Agents agree the call showed strengths in %s, but improvements are needed in %s.",
			strings.Join(strengths, ", "), strings.Join(gaps, ", "))
	case len(strengths) > 0:
		return fmt.Sprintf("Agents agree the call went well, with clear strengths in %s.",
			strings.Join(strengths, ", "))
	case len(gaps) > 0:
		return fmt.Sprintf("Agents agree the call needs improvement in %s.",
			strings.Join(gaps, ", "))
	default:
		return noConsensusLine
	}
}

func anyMentionsNeutral(lines []string) bool {
	for _, s := range lines {
		if strings.Contains(strings.ToLower(s), "neutral") {
			return true
		}
	}
	return false
}

func ensure(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
