package model

// ReportVersion tags the report schema for forward-compatible consumers.
const ReportVersion = "v1"

// Sentiment labels produced by the transcript analyzer.
const (
	SentimentNegative = "Negative"
	SentimentPositive = "Positive"
	SentimentNeutral  = "Neutral"
)

// Report is the terminal aggregate of all three analyzers. The shape is
// identical regardless of transcript content; only the contents vary.
// List-valued fields are never nil so consumers always see JSON arrays.
type Report struct {
	ReportVersion          string            `json:"report_version"`
	CallSummary            string            `json:"call_summary"`
	CustomerIntent         string            `json:"customer_intent"`
	Sentiment              string            `json:"sentiment"`
	RepPerformance         RepPerformance    `json:"rep_performance"`
	ObjectionAnalysis      ObjectionAnalysis `json:"objection_analysis"`
	RecommendedNextActions []string          `json:"recommended_next_actions"`
	RAG                    RAGContext        `json:"rag"`
	AgentConsensus         Consensus         `json:"agent_consensus"`
}

// RepPerformance holds the sales coach's evaluation of the rep.
type RepPerformance struct {
	Score           float64     `json:"score"`
	WhatWentWell    []string    `json:"what_went_well"`
	WhatToImprove   []string    `json:"what_to_improve"`
	SignalsDetected CallSignals `json:"signals_detected"`
}

// ObjectionAnalysis holds the objection expert's findings.
type ObjectionAnalysis struct {
	MissedObjections    []string `json:"missed_objections"`
	BuyingSignals       []string `json:"buying_signals"`
	MissedOpportunities []string `json:"missed_opportunities"`
	RAGContextUsed      []string `json:"rag_context_used"`
}

// RAGContext makes the knowledge-base grounding visible in the report.
type RAGContext struct {
	Query       string   `json:"query"`
	TopSnippets []string `json:"top_snippets"`
}

// Consensus is the synthesized cross-analyzer assessment.
type Consensus struct {
	OverallAssessment string `json:"overall_assessment"`
}

// CallSignals are the coach's phrase-membership observations over the
// transcript. Recomputed per call, never persisted.
type CallSignals struct {
	AskedQuestionsCount int  `json:"asked_questions_count"`
	MentionedNextSteps  bool `json:"mentioned_next_steps"`
	MentionedValueProp  bool `json:"mentioned_value_prop"`
	MentionedPricing    bool `json:"mentioned_pricing"`
	MentionedTimeline   bool `json:"mentioned_timeline"`
	ShowedEmpathy       bool `json:"showed_empathy"`
}
