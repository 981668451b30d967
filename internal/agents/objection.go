package agents

import (
	"context"
	"strings"

	"github.com/sells-group/call-coach/internal/model"
)

// Retrieval queries per pathway.
const (
	deescalationQuery      = "handling negative or resistant sales conversations: de-escalation, empathy, and graceful exit"
	objectionHandlingQuery = "common sales objections and effective objection handling techniques"
)

// noBuyingSignalsLine is the fixed buying-signals entry for negative calls.
const noBuyingSignalsLine = "No buying signals detected due to customer resistance / disengagement."

// negativeRecoveryOpportunities are the fixed recovery-oriented
// opportunities for negative calls: acknowledge, clarify once, exit.
var negativeRecoveryOpportunities = []string{
	"Acknowledge the customer's frustration to de-escalate the conversation.",
	"Ask one short, low-effort clarifying question to uncover the root issue (if the customer is willing).",
	"Gracefully end the call if resistance continues, to protect trust and brand perception.",
}

// ObjectionExpert detects objections, buying signals and missed
// opportunities. Negative calls take a disjoint recovery pathway.
type ObjectionExpert struct {
	retriever Retriever
	company   string
}

// NewObjectionExpert creates an ObjectionExpert.
func NewObjectionExpert(retriever Retriever, company string) *ObjectionExpert {
	return &ObjectionExpert{retriever: retriever, company: company}
}

// Analyze scans the transcript. The pathway is selected solely by
// whether the normalized sentiment equals "negative".
func (e *ObjectionExpert) Analyze(ctx context.Context, transcript, sentiment string) (*model.ObjectionFeedback, error) {
	t := normalize(transcript)

	if normalize(strings.TrimSpace(sentiment)) == "negative" {
		return e.negativeCall(ctx, t), nil
	}
	return e.normalCall(ctx, t), nil
}

// negativeCall coaches for recovery: on a negative call, objections are
// resistance reasons and the only opportunities are de-escalation steps.
func (e *ObjectionExpert) negativeCall(ctx context.Context, t string) *model.ObjectionFeedback {
	ragContext := e.retriever.Retrieve(ctx, deescalationQuery, e.company)

	hardRejection := containsAny(t, hardRejectionPhrases)
	anger := containsAny(t, angerPhrases)

	var missedObjections []string
	if hardRejection {
		missedObjections = append(missedObjections, "Customer expressed a clear rejection; the underlying reason was not explored.")
	}
	if anger {
		missedObjections = append(missedObjections, "Customer frustration was present; emotional concern was not acknowledged explicitly.")
	}
	if len(missedObjections) == 0 {
		missedObjections = append(missedObjections, "Customer sentiment was negative; the specific cause of resistance was not clearly uncovered.")
	}

	return &model.ObjectionFeedback{
		MissedObjections:    missedObjections,
		BuyingSignals:       []string{noBuyingSignalsLine},
		MissedOpportunities: append([]string(nil), negativeRecoveryOpportunities...),
		RAGContextUsed:      ragContext,
	}
}

func (e *ObjectionExpert) normalCall(ctx context.Context, t string) *model.ObjectionFeedback {
	mentionedBudget := containsAny(t, objectionBudgetPhrases)
	mentionedTimeline := containsAny(t, objectionTimelinePhrases)
	mentionedCurrentSolution := containsAny(t, currentSolutionPhrases)
	mentionedCompetitor := containsAny(t, competitorPhrases)
	positiveLanguage := containsAny(t, objectionPositivePhrases)

	var missedObjections, buyingSignals, missedOpportunities []string

	if !mentionedBudget {
		missedObjections = append(missedObjections, "Budget/pricing topic was not discussed (risk of late-stage price objection).")
		missedOpportunities = append(missedOpportunities, "Ask about budget range early and position value/ROI accordingly.")
	}
	if !mentionedTimeline {
		missedObjections = append(missedObjections, "Decision timeline was not clarified (urgency and priority unknown).")
		missedOpportunities = append(missedOpportunities, "Ask what timing the customer is targeting and what drives that deadline.")
	}

	if !mentionedCurrentSolution {
		missedOpportunities = append(missedOpportunities, "Explore the customer's current solution/process to surface pain points and impact.")
	}
	if mentionedCompetitor {
		buyingSignals = append(buyingSignals, "Customer mentioned alternatives/competitors, indicating active evaluation.")
		missedOpportunities = append(missedOpportunities, "Ask what they like/dislike about alternatives and differentiate clearly.")
	}

	if positiveLanguage {
		buyingSignals = append(buyingSignals, "Customer used positive language indicating openness or interest.")
	}
	if len(buyingSignals) == 0 {
		buyingSignals = append(buyingSignals, "Customer engagement appeared neutral with no explicit buying signals detected.")
	}

	if len(missedObjections) == 0 {
		missedObjections = append(missedObjections, "No explicit objections were raised or missed in this call.")
	}

	ragContext := e.retriever.Retrieve(ctx, objectionHandlingQuery, e.company)

	return &model.ObjectionFeedback{
		MissedObjections:    missedObjections,
		BuyingSignals:       buyingSignals,
		MissedOpportunities: missedOpportunities,
		RAGContextUsed:      ragContext,
	}
}
