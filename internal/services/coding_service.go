package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dhruvi159/Voxhire-Project/internal/llm"
	"github.com/dhruvi159/Voxhire-Project/internal/models"
	"github.com/dhruvi159/Voxhire-Project/internal/prompts"
	"github.com/dhruvi159/Voxhire-Project/internal/rounds"
	"github.com/dhruvi159/Voxhire-Project/internal/utils"
)

const (
	allAnsweredMessage = "All questions answered. Click Finish Interview."
	validatedMessage   = "Validation and Evaluation Complete"
	opCodingScore      = "coding_score"
)

type CodingDeps struct {
	Provider    llm.Provider
	Prompts     prompts.PromptProvider
	Runner      CodeRunner
	Rounds      RoundStore
	Evaluations EvaluationRepository
	Detached    *Detacher
	Logger      *zap.Logger
	Now         func() time.Time
}

type CodingService struct {
	provider    llm.Provider
	prompts     prompts.PromptProvider
	runner      CodeRunner
	rounds      RoundStore
	evaluations EvaluationRepository
	detached    *Detacher
	logger      *zap.Logger
	now         func() time.Time
}

func NewCodingService(d CodingDeps) *CodingService {
	s := &CodingService{
		provider:    d.Provider,
		prompts:     d.Prompts,
		runner:      d.Runner,
		rounds:      d.Rounds,
		evaluations: d.Evaluations,
		detached:    d.Detached,
		logger:      utils.OrDefault(d.Logger),
		now:         d.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// GenerateCodingQuestions starts a fresh round for the candidate with the
// generated problems and a zero score.
func (s *CodingService) GenerateCodingQuestions(ctx context.Context, candidateID string, req *models.GenerateCodingQuestionsRequest) (*models.CodingRoundResponse, error) {
	if candidateID == "" {
		return nil, ErrUnauthorized
	}
	if s.provider == nil {
		return nil, ErrUpstreamUnavailable
	}
	prompt, err := s.prompts.BuildPrompt("coding_question", "default", map[string]interface{}{
		"Post":       req.Post,
		"Difficulty": req.Difficulty,
		"Notes":      req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	requestID := uuid.NewString()
	resp, err := s.provider.GenerateContent(ctx, prompt, requestID)
	if err != nil {
		s.logger.Error("Coding question generation failed",
			zap.String("request_id", requestID), zap.String("code", llm.ErrorCode(err)), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return nil, ErrUpstreamUnavailable
	}

	questions := []models.CodingQuestion{{Question: text}}
	if err := s.rounds.Start(ctx, candidateID, questions); err != nil {
		return nil, err
	}
	s.logger.Info("Coding round started", zap.String("candidate_id", candidateID), zap.Int("questions", len(questions)))
	return &models.CodingRoundResponse{Questions: len(questions)}, nil
}

// NextQuestion returns the first unsubmitted question of the round.
func (s *CodingService) NextQuestion(ctx context.Context, candidateID string) (*models.NextQuestionResponse, error) {
	q, err := s.rounds.Next(ctx, candidateID)
	switch {
	case errors.Is(err, rounds.ErrAllSubmitted):
		return &models.NextQuestionResponse{Message: allAnsweredMessage}, nil
	case errors.Is(err, rounds.ErrNoRound):
		return nil, ErrNotFound
	case err != nil:
		return nil, err
	}
	return &models.NextQuestionResponse{Question: q.Question}, nil
}

// Execute runs the code once with empty input.
func (s *CodingService) Execute(ctx context.Context, req *models.ExecuteRequest) (*models.ExecutionResult, error) {
	return s.runner.Run(ctx, req.SourceCode, req.LanguageID)
}

// Validate scores the submission against its test cases, adds the score to
// the candidate's round and aggregate record, and marks the current
// question submitted.
func (s *CodingService) Validate(ctx context.Context, candidateID string, req *models.ValidateCodeRequest) (*models.ValidateResponse, error) {
	if candidateID == "" {
		return nil, ErrUnauthorized
	}
	result, err := s.runner.ValidateAndScore(ctx, req.SourceCode, req.LanguageID, req.TestCases)
	if err != nil {
		return nil, err
	}

	if s.evaluations != nil && s.detached != nil {
		s.detached.Go(ctx, opCodingScore, func(ctx context.Context) error {
			return s.evaluations.AddCodingScore(ctx, candidateID, req.InterviewID, result.Score, s.now().UTC())
		})
	}

	// Without an active round the score still counts toward the aggregate
	// record; only the round total is left out.
	var roundScore *float64
	total, err := s.rounds.AddScore(ctx, candidateID, result.Score)
	switch {
	case errors.Is(err, rounds.ErrNoRound):
		s.logger.Info("Validated without an active round", zap.String("candidate_id", candidateID))
	case err != nil:
		s.logger.Error("Failed to add round score", zap.String("candidate_id", candidateID), zap.Error(err))
		return nil, err
	default:
		roundScore = &total
		if err := s.rounds.MarkSubmitted(ctx, candidateID); err != nil && !errors.Is(err, rounds.ErrNoRound) {
			s.logger.Warn("Failed to mark question submitted", zap.String("candidate_id", candidateID), zap.Error(err))
		}
	}

	outputs := make([]string, 0, len(result.Results))
	for _, r := range result.Results {
		outputs = append(outputs, r.Output)
	}
	return &models.ValidateResponse{
		Message:    validatedMessage,
		Outputs:    outputs,
		Passed:     result.Passed,
		Total:      result.Total,
		Score:      result.Score,
		RoundScore: roundScore,
		Results:    result.Results,
	}, nil
}

// Finish ends the round and returns the accumulated score, zero included.
func (s *CodingService) Finish(ctx context.Context, candidateID string) (*models.FinishResponse, error) {
	score, err := s.rounds.Finish(ctx, candidateID)
	if errors.Is(err, rounds.ErrNoRound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	s.logger.Info("Coding round finished", zap.String("candidate_id", candidateID), zap.Float64("final_score", score))
	return &models.FinishResponse{FinalScore: score}, nil
}
