package agents

// Phrase tables for the three analyzers. Each analyzer keeps its own
// category lists: they overlap but are deliberately not shared, so one
// analyzer's rule set can evolve without shifting another's output.
// Matching is substring membership over the case-folded transcript;
// table order is significant for evidence extraction.

// Transcript analyzer categories.
var (
	negativePhrases = []string{
		"not interested", "stop calling", "don't call", "do not call",
		"waste of time", "annoying", "frustrated", "angry", "upset",
		"terrible", "bad experience", "hate", "complaint",
		"cancel", "refund", "no thanks", "not going to", "leave me alone",
	}
	positivePhrases = []string{
		"sounds good", "interested", "makes sense", "that works",
		"great", "perfect", "love it", "excited",
		"let's do it", "go ahead", "sign me up", "okay", "works for us",
	}
	budgetPhrases = []string{
		"budget", "pricing", "price", "cost", "afford", "expensive",
		"cheap", "reasonable", "approved", "within range", "discount",
	}
	timelinePhrases = []string{
		"timeline", "deadline", "by when", "this month", "next month",
		"this quarter", "soon", "asap", "right away", "later this year",
	}
	followUpPhrases = []string{
		"follow up", "follow-up", "email", "send you", "calendar", "schedule",
		"next step", "next steps", "meeting", "demo",
	}
	empathyPhrases = []string{
		"i understand", "that makes sense", "sorry to hear",
		"thanks for sharing", "appreciate", "no worries",
	}
)

// Sales coach categories.
var (
	coachNextStepPhrases = []string{
		"next step", "next steps", "follow up", "follow-up",
		"schedule", "calendar", "book a demo", "demo", "meeting", "call back",
		"send you", "i'll email", "i will email", "let's meet", "set up",
	}
	coachValuePhrases = []string{
		"value", "benefit", "roi", "save", "savings", "increase", "reduce",
		"improve", "faster", "efficient", "time", "cost savings",
	}
	coachPricingPhrases = []string{
		"price", "pricing", "cost", "budget", "afford", "expensive",
		"discount", "quote",
	}
	coachTimelinePhrases = []string{
		"timeline", "by when", "when do you", "this quarter", "deadline",
		"next month", "this month", "asap", "soon",
	}
	coachEmpathyPhrases = []string{
		"i understand", "that makes sense", "totally understand",
		"thanks for sharing", "appreciate", "sorry to hear", "no worries",
	}
)

// Objection expert categories.
var (
	hardRejectionPhrases = []string{
		"not interested", "stop calling", "don't call", "do not call", "leave me alone",
	}
	angerPhrases = []string{
		"annoyed", "angry", "frustrated", "upset", "rude", "waste of time",
	}
	objectionBudgetPhrases = []string{
		"budget", "price", "pricing", "cost", "afford", "expensive",
		"reasonable", "within range", "approved", "discount",
	}
	objectionTimelinePhrases = []string{
		"timeline", "deadline", "by when", "this month", "next month", "this quarter",
		"asap", "soon", "right away", "later this year",
	}
	currentSolutionPhrases = []string{
		"currently using", "current solution", "existing system", "today we use", "right now we use",
	}
	competitorPhrases = []string{
		"competitor", "alternative", "other vendor", "other option",
	}
	objectionPositivePhrases = []string{
		"sounds good", "interested", "makes sense", "that helps",
		"that works", "okay", "great", "perfect", "go ahead", "let's do it",
	}
)
