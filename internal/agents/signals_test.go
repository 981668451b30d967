package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/call-coach/internal/model"
)

func TestReadSentiment_Empty(t *testing.T) {
	reading := ReadSentiment("")
	assert.Equal(t, model.SentimentNeutral, reading.Label)
	assert.Equal(t, 0.0, reading.Score)
	assert.Empty(t, reading.NegativeHits)
	assert.Empty(t, reading.PositiveHits)
}

func TestReadSentiment_NegativeStacks(t *testing.T) {
	// "not interested" also matches positive "interested": -2 -2 +2 = -2.
	reading := ReadSentiment("I'm not interested, stop calling me.")
	assert.Equal(t, -2.0, reading.Score)
	assert.Equal(t, model.SentimentNegative, reading.Label)
	assert.Equal(t, []string{"not interested", "stop calling"}, reading.NegativeHits)
}

func TestReadSentiment_Positive(t *testing.T) {
	reading := ReadSentiment("Sounds good, that works for me. Great!")
	assert.Equal(t, 6.0, reading.Score)
	assert.Equal(t, model.SentimentPositive, reading.Label)
	assert.Equal(t, []string{"sounds good", "that works"}, reading.PositiveHits)
}

func TestReadSentiment_CaseInsensitive(t *testing.T) {
	reading := ReadSentiment("NOT INTERESTED. STOP CALLING.")
	assert.Equal(t, model.SentimentNegative, reading.Label)
}

func TestReadSentiment_EvidenceCapped(t *testing.T) {
	reading := ReadSentiment("waste of time, annoying, frustrated, angry")
	assert.Len(t, reading.NegativeHits, 2)
	// Hits come in phrase-table order, not transcript order.
	assert.Equal(t, []string{"waste of time", "annoying"}, reading.NegativeHits)
}

func TestSentimentLabel_Thresholds(t *testing.T) {
	assert.Equal(t, model.SentimentNegative, sentimentLabel(-2))
	assert.Equal(t, model.SentimentNeutral, sentimentLabel(-1.9))
	assert.Equal(t, model.SentimentNeutral, sentimentLabel(0))
	assert.Equal(t, model.SentimentNeutral, sentimentLabel(1.9))
	assert.Equal(t, model.SentimentPositive, sentimentLabel(2))
}

func TestContainsAny(t *testing.T) {
	assert.True(t, containsAny("we have no budget this year", budgetPhrases))
	assert.False(t, containsAny("hello there", budgetPhrases))
}

func TestMatchedPhrases_TableOrder(t *testing.T) {
	hits := matchedPhrases("refund please, i hate this, cancel it", negativePhrases, 3)
	assert.Equal(t, []string{"hate", "cancel", "refund"}, hits)
}
