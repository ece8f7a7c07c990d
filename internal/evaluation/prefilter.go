package evaluation

import (
	"strings"
	"unicode/utf8"
)

const (
	minAnswerLength  = 15
	minUniqueTokens  = 5
	minAvgWordLength = 3

	shortScore    = 10
	nonsenseScore = 5

	shortSummary    = "Response is too short and lacks substantive content."
	nonsenseSummary = "Response appears to be random words or nonsensical text without coherent meaning related to the question."
)

// Prefilter rejects answers that are not worth an outbound call.
// ok is false when the answer should go on to the evaluator.
func Prefilter(answer string) (Result, bool) {
	trimmed := strings.TrimSpace(answer)
	length := utf8.RuneCountInString(trimmed)
	if length < minAnswerLength {
		return Result{Score: shortScore, Summary: shortSummary, Tier: TierTooShort}, true
	}

	words := strings.Fields(trimmed)
	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[strings.ToLower(w)] = struct{}{}
	}
	if len(unique) < minUniqueTokens || length/len(words) < minAvgWordLength {
		return Result{Score: nonsenseScore, Summary: nonsenseSummary, Tier: TierNonsense}, true
	}
	return Result{}, false
}
