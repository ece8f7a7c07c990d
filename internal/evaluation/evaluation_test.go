package evaluation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/dhruvi159/Voxhire-Project/internal/llm"
	"github.com/dhruvi159/Voxhire-Project/internal/models"
	"github.com/dhruvi159/Voxhire-Project/internal/prompts"
)

type fakeProvider struct {
	generateFn func(ctx context.Context, prompt, requestID string) (*models.GenerationResponse, error)
	calls      int
}

func (f *fakeProvider) GenerateContent(ctx context.Context, prompt, requestID string) (*models.GenerationResponse, error) {
	f.calls++
	if f.generateFn == nil {
		panic("unexpected GenerateContent call")
	}
	return f.generateFn(ctx, prompt, requestID)
}

func (f *fakeProvider) GetProviderName() string { return "fake" }

func replying(text string) *fakeProvider {
	return &fakeProvider{generateFn: func(context.Context, string, string) (*models.GenerationResponse, error) {
		return &models.GenerationResponse{Content: text}, nil
	}}
}

func newEngine(t *testing.T, p llm.Provider) *Engine {
	t.Helper()
	pm, err := prompts.NewPromptManager()
	if err != nil {
		t.Fatalf("NewPromptManager: %v", err)
	}
	return NewEngine(p, pm, zap.NewNop())
}

const goodAnswer = "TCP is a connection oriented transport protocol that guarantees ordered and reliable delivery of bytes."

func TestPrefilterShortAnswersNeverCallProvider(t *testing.T) {
	provider := &fakeProvider{}
	engine := newEngine(t, provider)

	for _, answer := range []string{"", "yes", "   short one    ", "asdf jkl qwer"} {
		res := engine.Evaluate(context.Background(), Input{Question: "What is TCP?", Answer: answer})
		if res.Score != 10 || res.Tier != TierTooShort {
			t.Fatalf("answer %q: expected score 10 from prefilter, got %+v", answer, res)
		}
	}
	if provider.calls != 0 {
		t.Fatalf("expected no provider calls, got %d", provider.calls)
	}
}

func TestPrefilterNonsense(t *testing.T) {
	tests := []string{
		"asdf jkl qwer asdf jkl qwer", // four distinct tokens
		"a b c d e f g h i j k l m",   // average word length below three
		"Yes yes YES yes yes yes yes",
	}
	provider := &fakeProvider{}
	engine := newEngine(t, provider)
	for _, answer := range tests {
		res := engine.Evaluate(context.Background(), Input{Question: "What is TCP?", Answer: answer})
		if res.Score != 5 || res.Tier != TierNonsense {
			t.Fatalf("answer %q: expected nonsense score 5, got %+v", answer, res)
		}
		if !strings.Contains(res.Summary, "nonsensical") {
			t.Fatalf("expected nonsensical summary, got %q", res.Summary)
		}
	}
	if provider.calls != 0 {
		t.Fatalf("expected no provider calls, got %d", provider.calls)
	}
}

func TestParseEvaluation(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		outcome Outcome
		score   float64
		summary string
	}{
		{"plain object", `{"score": 72, "summary": "Solid"}`, Structured, 72, "Solid"},
		{"fenced", "```json\n{\"score\": 64.5, \"summary\": \"Ok\"}\n```", Structured, 64.5, "Ok"},
		{"prose around object", `Here you go: {"score": 90, "summary": "Great"} thanks`, Structured, 90, "Great"},
		{"unquoted keys", `{score: 80, summary: "Quoted"}`, PartiallyRecovered, 80, "Quoted"},
		{"trailing comma", `{"score": 55, "summary": "Broken",}`, PartiallyRecovered, 55, "Broken"},
		{"score only", `score: 40 and nothing else`, PartiallyRecovered, 40, genericRecoveredSummary},
		{"nothing", `I cannot evaluate this answer.`, Unrecoverable, 0, ""},
		{"summary without score", `{"summary": "no number"}`, Unrecoverable, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseEvaluation(tt.raw)
			if got.Outcome != tt.outcome || got.Score != tt.score || got.Summary != tt.summary {
				t.Fatalf("got %+v (%s), want %s %v %q", got, got.Outcome, tt.outcome, tt.score, tt.summary)
			}
		})
	}
}

func TestEngineTiers(t *testing.T) {
	question := "Explain how congestion control works in networking protocols"
	tests := []struct {
		name     string
		provider *fakeProvider
		answer   string
		score    int
		tier     Tier
	}{
		{
			name:     "structured",
			provider: replying(`{"score": 84.6, "summary": "Clear"}`),
			answer:   goodAnswer,
			score:    85,
			tier:     TierAI,
		},
		{
			name:     "structured out of range",
			provider: replying(`{"score": 250, "summary": "Too generous"}`),
			answer:   goodAnswer,
			score:    100,
			tier:     TierAI,
		},
		{
			name:     "partially recovered",
			provider: replying(`score: 61, summary: "missing braces"`),
			answer:   goodAnswer,
			score:    61,
			tier:     TierRecovered,
		},
		{
			name:     "keyword relevance",
			provider: replying(`I refuse to grade this.`),
			// keywords: explain, congestion, control, works, networking, protocols
			answer: "Congestion control slows senders down when networking queues fill up quickly.",
			score:  25, // 3 of 6 keywords
			tier:   TierKeyword,
		},
		{
			name: "provider error",
			provider: &fakeProvider{generateFn: func(context.Context, string, string) (*models.GenerationResponse, error) {
				return nil, &llm.ProviderError{Provider: "fake", Code: llm.ErrCodeServiceDown}
			}},
			answer: goodAnswer,
			score:  10,
			tier:   TierWordCount,
		},
		{
			name:     "empty content",
			provider: replying(""),
			answer:   "Routers forward packets between networks using routing tables while switches forward frames inside one local network segment based on learned hardware addresses and ports",
			score:    30,
			tier:     TierWordCount,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newEngine(t, tt.provider).Evaluate(context.Background(), Input{Question: question, Answer: tt.answer})
			if res.Score != tt.score || res.Tier != tt.tier {
				t.Fatalf("got %+v, want score %d tier %s", res, tt.score, tt.tier)
			}
			if tt.provider.calls != 1 {
				t.Fatalf("expected exactly one provider call, got %d", tt.provider.calls)
			}
		})
	}
}

func TestEngineWithoutProviderUsesWordCount(t *testing.T) {
	res := NewEngine(nil, nil, zap.NewNop()).Evaluate(context.Background(), Input{Question: "q", Answer: goodAnswer})
	if res.Tier != TierWordCount || res.Score != 10 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestKeywordRelevanceWithoutKeywords(t *testing.T) {
	res := KeywordRelevance("What is it?", "anything at all")
	if res.Score != 0 {
		t.Fatalf("expected 0 with no keywords, got %d", res.Score)
	}
	if !strings.Contains(res.Summary, "contained 0 relevant keywords") {
		t.Fatalf("unexpected summary %q", res.Summary)
	}
}

func TestWordCountBands(t *testing.T) {
	tests := []struct {
		words int
		score int
	}{
		{0, 0}, {1, 10}, {19, 10}, {20, 30}, {49, 30}, {50, 50}, {400, 50},
	}
	for _, tt := range tests {
		answer := strings.TrimSpace(strings.Repeat("word ", tt.words))
		res := WordCountBands(answer)
		if res.Score != tt.score {
			t.Fatalf("%d words: expected %d, got %d", tt.words, tt.score, res.Score)
		}
	}
	if got := WordCountBands("").Summary; got != "You have Skipped this Question" {
		t.Fatalf("unexpected skipped summary %q", got)
	}
}

func TestClampAlwaysInRange(t *testing.T) {
	for _, v := range []float64{-20, -0.4, 0, 49.5, 99.6, 100, 1e9} {
		if got := clamp(v); got < 0 || got > 100 {
			t.Fatalf("clamp(%v) = %d out of range", v, got)
		}
	}
	if clamp(49.5) != 50 {
		t.Fatalf("expected half to round away from zero")
	}
}

func TestEngineSurvivesCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	provider := &fakeProvider{generateFn: func(ctx context.Context, _, _ string) (*models.GenerationResponse, error) {
		return nil, errors.Join(ctx.Err(), errors.New("aborted"))
	}}
	res := newEngine(t, provider).Evaluate(ctx, Input{Question: "q", Answer: goodAnswer})
	if res.Tier != TierWordCount {
		t.Fatalf("expected word-count fallback, got %+v", res)
	}
}
