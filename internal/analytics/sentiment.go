package analytics

import "strings"

// Sentiment is a coarse polarity label.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

var (
	positiveTerms = []string{"happy", "excited", "good", "great", "awesome", "better", "proud", "love", "yay", "bestie"}
	negativeTerms = []string{"sad", "stressed", "anxious", "angry", "bad", "terrible", "worst", "unhappy", "depressed", "tired", "oouf", "uugh", "broken"}
)

// Classify estimates polarity by counting which positive and negative terms
// appear in text. Matching is plain substring containment.
func Classify(text string) Sentiment {
	if text == "" {
		return SentimentNeutral
	}
	lower := strings.ToLower(text)
	pos := countContained(lower, positiveTerms)
	neg := countContained(lower, negativeTerms)
	switch {
	case pos > neg:
		return SentimentPositive
	case neg > pos:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

func countContained(text string, terms []string) int {
	n := 0
	for _, t := range terms {
		if strings.Contains(text, t) {
			n++
		}
	}
	return n
}
