package agents

import (
	"context"
	"math"
	"strings"

	"github.com/sells-group/call-coach/internal/model"
)

// coachQuery pulls best-practice guidance for the coaching references.
const coachQuery = "sales discovery questions, closing techniques, tone and empathy, and follow-up strategies"

// maxCoachingReferences caps the snippets kept in the feedback.
const maxCoachingReferences = 3

// Fixed recovery actions that replace the pillar-derived next actions on
// negative calls: de-escalate and preserve the relationship instead of
// pushing toward a close.
var negativeRecoveryActions = []string{
	"Acknowledge the customer's frustration and ask one clarifying question to understand the root cause.",
	"If resistance continues, gracefully exit: ask permission to follow up later rather than pushing a demo.",
	"Log the reason for rejection (price, timing, relevance, previous experience) and tailor future outreach.",
}

// SalesCoach evaluates selling technique against four pillars
// (discovery, empathy, value proposition, next step) and tailors its
// advice to the call's sentiment.
type SalesCoach struct {
	retriever Retriever
	company   string
}

// NewSalesCoach creates a SalesCoach.
func NewSalesCoach(retriever Retriever, company string) *SalesCoach {
	return &SalesCoach{retriever: retriever, company: company}
}

// Coach evaluates the transcript. sentimentHint steers the coaching
// tone; anything containing "negative" (case-insensitive) switches the
// advice to recovery mode.
func (c *SalesCoach) Coach(ctx context.Context, transcript, sentimentHint string) (*model.CoachingFeedback, error) {
	sentimentNorm := normalize(strings.TrimSpace(sentimentHint))
	negative := strings.Contains(sentimentNorm, "negative")

	references := c.retriever.Retrieve(ctx, coachQuery, c.company)
	if len(references) > maxCoachingReferences {
		references = references[:maxCoachingReferences]
	}

	signals := ScanCallSignals(transcript)

	var wentWell, toImprove, nextActions []string

	if signals.AskedQuestionsCount >= 2 {
		wentWell = append(wentWell, "Asked multiple questions to understand the customer context (discovery).")
	} else {
		toImprove = append(toImprove, "Ask more open-ended discovery questions to uncover pain points and impact.")
		nextActions = append(nextActions, "Prepare 5–7 discovery questions (pain, current process, impact, stakeholders, timeline).")
	}

	if signals.ShowedEmpathy {
		wentWell = append(wentWell, "Used empathetic language to keep the conversation respectful and collaborative.")
	} else {
		toImprove = append(toImprove, "Use more empathy/acknowledgement phrases to build trust (e.g., 'That makes sense').")
		nextActions = append(nextActions, "Add quick acknowledgement before pitching (validate concern → ask 1 clarifier).")
	}

	if signals.MentionedValueProp {
		wentWell = append(wentWell, "Mentioned customer value/benefits (value proposition).")
	} else {
		toImprove = append(toImprove, "Value proposition was not clearly articulated.")
		nextActions = append(nextActions, "Deliver a 20–30 second value pitch tied to a specific pain point + measurable outcome.")
	}

	if signals.MentionedNextSteps {
		wentWell = append(wentWell, "Discussed a next step, which helps move the deal forward.")
	} else {
		toImprove = append(toImprove, "Call lacked a clear closing or next-step confirmation.")
		nextActions = append(nextActions, "End with a clear next step (demo / follow-up) and confirm date/time on the call.")
	}

	// Pricing and timeline are situational: opportunities, not failures.
	if !signals.MentionedPricing {
		nextActions = append(nextActions, "If appropriate, qualify budget/pricing expectations early to avoid late-stage surprises.")
	}
	if !signals.MentionedTimeline {
		nextActions = append(nextActions, "Ask about decision timeline and urgency to qualify the opportunity.")
	}

	if negative {
		// Replace the salesy next steps with recovery steps.
		nextActions = append([]string(nil), negativeRecoveryActions...)

		if !mentionsEmpathy(wentWell) {
			toImprove = append([]string{"De-escalation opportunity: acknowledge frustration before continuing the pitch."}, toImprove...)
		}
		toImprove = append(toImprove, "Avoid pushing next steps when the customer is disengaged; focus on preserving trust.")
	}

	// Start from 7 and subtract for missing pillars, with a small bonus
	// for empathy. Negative calls are capped, not replaced.
	score := 7.0
	if !signals.MentionedValueProp {
		score -= 0.7
	}
	if !signals.MentionedNextSteps && sentimentNorm != "negative" {
		score -= 0.6
	}
	if signals.AskedQuestionsCount < 2 {
		score -= 0.4
	}
	if signals.ShowedEmpathy {
		score += 0.3
	}
	if negative {
		score = math.Min(score, 5.5)
	}
	score = clampScore(score)

	// The report sections must never render empty.
	if len(wentWell) == 0 {
		wentWell = []string{"Maintained a professional tone throughout the call."}
	}
	if len(toImprove) == 0 {
		toImprove = []string{"No major coaching gaps detected based on available transcript signals."}
	}

	return &model.CoachingFeedback{
		RepPerformanceScore:    score,
		WhatWentWell:           wentWell,
		WhatToImprove:          toImprove,
		RecommendedNextActions: nextActions,
		Signals:                signals,
		RAGQuery:               coachQuery,
		CoachingReferences:     references,
	}, nil
}

// ScanCallSignals computes the coach's signal set over the transcript.
func ScanCallSignals(transcript string) model.CallSignals {
	t := normalize(transcript)

	return model.CallSignals{
		AskedQuestionsCount: strings.Count(transcript, "?"),
		MentionedNextSteps:  containsAny(t, coachNextStepPhrases),
		MentionedValueProp:  containsAny(t, coachValuePhrases),
		MentionedPricing:    containsAny(t, coachPricingPhrases),
		MentionedTimeline:   containsAny(t, coachTimelinePhrases),
		ShowedEmpathy:       containsAny(t, coachEmpathyPhrases),
	}
}

// clampScore rounds to one decimal and clamps to [1.0, 10.0].
func clampScore(score float64) float64 {
	score = math.Round(score*10) / 10
	return math.Max(1.0, math.Min(10.0, score))
}

func mentionsEmpathy(lines []string) bool {
	for _, s := range lines {
		if strings.Contains(normalize(s), "empat") {
			return true
		}
	}
	return false
}
