package evaluation

import (
	"encoding/json"
	"regexp"
	"strconv"
)

// Outcome tags how much of an evaluator response could be used.
type Outcome int

const (
	Unrecoverable Outcome = iota
	PartiallyRecovered
	Structured
)

func (o Outcome) String() string {
	switch o {
	case Structured:
		return "structured"
	case PartiallyRecovered:
		return "partially_recovered"
	default:
		return "unrecoverable"
	}
}

const genericRecoveredSummary = "The response could not be properly evaluated, but appears to be inadequate."

var (
	fencedBlock  = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	firstObject  = regexp.MustCompile(`(?s)\{.*\}`)
	scoreField   = regexp.MustCompile(`(?i)score"?\s*:\s*(\d+)`)
	summaryField = regexp.MustCompile(`(?i)summary"?\s*:\s*"([^"]+)"`)
)

// Parsed is the tagged result of reading an evaluator response.
type Parsed struct {
	Outcome Outcome
	Score   float64
	Summary string
}

// ParseEvaluation reads {score, summary} out of free-form model output.
// A decodable object with a numeric score and a string summary is Structured;
// a score found by pattern match alone is PartiallyRecovered.
func ParseEvaluation(raw string) Parsed {
	if p, ok := parseStructured(raw); ok {
		return p
	}

	m := scoreField.FindStringSubmatch(raw)
	if m == nil {
		return Parsed{Outcome: Unrecoverable}
	}
	score, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Parsed{Outcome: Unrecoverable}
	}
	summary := genericRecoveredSummary
	if sm := summaryField.FindStringSubmatch(raw); sm != nil {
		summary = sm[1]
	}
	return Parsed{Outcome: PartiallyRecovered, Score: score, Summary: summary}
}

func parseStructured(raw string) (Parsed, bool) {
	body := raw
	if m := fencedBlock.FindStringSubmatch(raw); m != nil {
		body = m[1]
	} else if obj := firstObject.FindString(raw); obj != "" {
		body = obj
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return Parsed{}, false
	}
	score, ok := payload["score"].(float64)
	if !ok {
		return Parsed{}, false
	}
	summary, ok := payload["summary"].(string)
	if !ok {
		return Parsed{}, false
	}
	return Parsed{Outcome: Structured, Score: score, Summary: summary}, true
}
