package model

// TranscriptAnalysis is the transcript analyzer's opinion: summary,
// intent, sentiment and the ordered key moments, plus the signal scan
// it was derived from.
type TranscriptAnalysis struct {
	Summary        string            `json:"summary"`
	CustomerIntent string            `json:"customer_intent"`
	Sentiment      string            `json:"sentiment"`
	KeyMoments     []string          `json:"key_moments"`
	Signals        TranscriptSignals `json:"signals_detected"`
	EvidenceNotes  []string          `json:"evidence_notes"`
	RAGContextUsed []string          `json:"rag_context_used"`
}

// TranscriptSignals is the transcript analyzer's signal scan.
type TranscriptSignals struct {
	Sentiment           string   `json:"sentiment"`
	SentimentScore      float64  `json:"sentiment_score"`
	AskedQuestionsCount int      `json:"asked_questions_count"`
	MentionsBudget      bool     `json:"mentions_budget"`
	MentionsTimeline    bool     `json:"mentions_timeline"`
	MentionsFollowUp    bool     `json:"mentions_follow_up"`
	ShowsEmpathy        bool     `json:"shows_empathy"`
	NegativeHits        []string `json:"negative_hits"`
	PositiveHits        []string `json:"positive_hits"`
}

// CoachingFeedback is the sales coach's opinion.
type CoachingFeedback struct {
	RepPerformanceScore    float64     `json:"rep_performance_score"`
	WhatWentWell           []string    `json:"what_went_well"`
	WhatToImprove          []string    `json:"what_to_improve"`
	RecommendedNextActions []string    `json:"recommended_next_actions"`
	Signals                CallSignals `json:"signals_detected"`
	RAGQuery               string      `json:"rag_query"`
	CoachingReferences     []string    `json:"coaching_references"`
}

// ObjectionFeedback is the objection/opportunity expert's opinion.
type ObjectionFeedback struct {
	MissedObjections    []string `json:"missed_objections"`
	BuyingSignals       []string `json:"buying_signals"`
	MissedOpportunities []string `json:"missed_opportunities"`
	RAGContextUsed      []string `json:"rag_context_used"`
}
