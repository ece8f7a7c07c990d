package evaluation

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dhruvi159/Voxhire-Project/internal/llm"
	"github.com/dhruvi159/Voxhire-Project/internal/metrics"
	"github.com/dhruvi159/Voxhire-Project/internal/prompts"
	"github.com/dhruvi159/Voxhire-Project/internal/utils"
)

type Tier string

const (
	TierTooShort  Tier = "prefilter_short"
	TierNonsense  Tier = "prefilter_nonsense"
	TierAI        Tier = "ai"
	TierRecovered Tier = "ai_recovered"
	TierKeyword   Tier = "keyword_relevance"
	TierWordCount Tier = "word_count"
)

// Result is a final score in [0,100] and the tier that produced it.
type Result struct {
	Score   int
	Summary string
	Tier    Tier
}

type Input struct {
	Question string
	Answer   string
	Post     string
}

// Engine scores answers, degrading through local heuristics whenever the
// provider fails or its output cannot be read. It never returns an error.
type Engine struct {
	provider llm.Provider
	prompts  prompts.PromptProvider
	logger   *zap.Logger
}

func NewEngine(provider llm.Provider, promptManager prompts.PromptProvider, logger *zap.Logger) *Engine {
	return &Engine{
		provider: provider,
		prompts:  promptManager,
		logger:   utils.OrDefault(logger),
	}
}

func (e *Engine) Evaluate(ctx context.Context, in Input) Result {
	res := e.evaluate(ctx, in)
	res.Score = clamp(float64(res.Score))
	metrics.EvaluationTier(string(res.Tier))
	return res
}

func (e *Engine) evaluate(ctx context.Context, in Input) Result {
	if res, done := Prefilter(in.Answer); done {
		return res
	}

	if e.provider == nil || e.prompts == nil {
		return WordCountBands(in.Answer)
	}

	prompt, err := e.prompts.BuildPrompt("evaluate", "default", map[string]string{
		"Question": in.Question,
		"Answer":   in.Answer,
		"Post":     in.Post,
	})
	if err != nil {
		e.logger.Error("Failed to build evaluation prompt", zap.Error(err))
		return WordCountBands(in.Answer)
	}

	requestID := uuid.NewString()
	resp, err := e.provider.GenerateContent(ctx, prompt, requestID)
	if err != nil || resp == nil || resp.Content == "" {
		e.logger.Warn("Evaluator unavailable, scoring by word count",
			zap.String("request_id", requestID),
			zap.String("code", llm.ErrorCode(err)),
			zap.Error(err))
		return WordCountBands(in.Answer)
	}

	parsed := ParseEvaluation(resp.Content)
	switch parsed.Outcome {
	case Structured:
		return Result{Score: clamp(parsed.Score), Summary: parsed.Summary, Tier: TierAI}
	case PartiallyRecovered:
		e.logger.Info("Recovered score from malformed evaluator output", zap.String("request_id", requestID))
		return Result{Score: clamp(parsed.Score), Summary: parsed.Summary, Tier: TierRecovered}
	default:
		e.logger.Warn("Evaluator output unreadable, scoring by keyword relevance", zap.String("request_id", requestID))
		return KeywordRelevance(in.Question, in.Answer)
	}
}
