package evaluation

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// KeywordRelevance scores an answer by how many of the question's longer
// words (more than four characters) it repeats, scaled to 0-50.
func KeywordRelevance(question, answer string) Result {
	var keywords []string
	for _, w := range strings.Fields(strings.ToLower(question)) {
		if utf8.RuneCountInString(w) > 4 {
			keywords = append(keywords, w)
		}
	}

	answerLower := strings.ToLower(answer)
	hits := 0
	for _, k := range keywords {
		if strings.Contains(answerLower, k) {
			hits++
		}
	}

	score := 0
	if len(keywords) > 0 {
		score = int(math.Round(float64(hits) / float64(len(keywords)) * 50))
	}

	verdict := "lacks sufficient relevance"
	if score > 30 {
		verdict = "appears somewhat relevant"
	}
	return Result{
		Score:   clamp(float64(score)),
		Summary: fmt.Sprintf("Your answer contained %d relevant keywords from the question. The response %s to the question asked.", hits, verdict),
		Tier:    TierKeyword,
	}
}

const unavailablePrefix = "The AI evaluation system encountered an error. "

// WordCountBands scores an answer from its length alone.
func WordCountBands(answer string) Result {
	n := len(strings.Fields(answer))
	switch {
	case n == 0:
		return Result{Score: 0, Summary: "You have Skipped this Question", Tier: TierWordCount}
	case n < 20:
		return Result{Score: 10, Summary: unavailablePrefix + "Your answer was very brief and lacked sufficient detail.", Tier: TierWordCount}
	case n < 50:
		return Result{Score: 30, Summary: unavailablePrefix + "Your answer had moderate length but may have lacked depth or specificity.", Tier: TierWordCount}
	default:
		return Result{Score: 50, Summary: unavailablePrefix + "Your answer had good length but could not be evaluated for technical accuracy.", Tier: TierWordCount}
	}
}

func clamp(score float64) int {
	if math.IsNaN(score) {
		return 0
	}
	r := math.Round(score)
	if r < 0 {
		return 0
	}
	if r > 100 {
		return 100
	}
	return int(r)
}
