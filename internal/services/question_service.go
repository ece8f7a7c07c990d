package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dhruvi159/Voxhire-Project/internal/llm"
	"github.com/dhruvi159/Voxhire-Project/internal/models"
	"github.com/dhruvi159/Voxhire-Project/internal/prompts"
	"github.com/dhruvi159/Voxhire-Project/internal/utils"
)

// DefaultQuestionCount is how many questions one generation asks for.
const DefaultQuestionCount = 2

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

type QuestionService struct {
	provider llm.Provider
	prompts  prompts.PromptProvider
	count    int
	logger   *zap.Logger
}

func NewQuestionService(provider llm.Provider, promptManager prompts.PromptProvider, logger *zap.Logger) *QuestionService {
	return &QuestionService{
		provider: provider,
		prompts:  promptManager,
		count:    DefaultQuestionCount,
		logger:   utils.OrDefault(logger),
	}
}

// GenerateQuestions asks the provider for interview questions shaped as
// [["q1"],["q2"]]. Anything else is ErrUpstreamUnavailable.
func (s *QuestionService) GenerateQuestions(ctx context.Context, req *models.GenerateQuestionsRequest) (*models.QuestionsResponse, error) {
	if s.provider == nil {
		return nil, ErrUpstreamUnavailable
	}
	prompt, err := s.prompts.BuildPrompt("questions", "default", map[string]interface{}{
		"Post":       req.Post,
		"Difficulty": req.Difficulty,
		"Notes":      req.Notes,
		"Count":      s.count,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	requestID := uuid.NewString()
	resp, err := s.provider.GenerateContent(ctx, prompt, requestID)
	if err != nil {
		s.logger.Error("Question generation failed",
			zap.String("request_id", requestID), zap.String("code", llm.ErrorCode(err)), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	questions, err := parseQuestionList(resp.Content)
	if err != nil {
		s.logger.Warn("Unreadable question list", zap.String("request_id", requestID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return &models.QuestionsResponse{Questions: questions}, nil
}

func parseQuestionList(raw string) ([][]string, error) {
	text := strings.TrimSpace(raw)
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		text = m[1]
	}
	var out [][]string
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("invalid question format: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("invalid question format: empty list")
	}
	for i, q := range out {
		if len(q) != 1 || strings.TrimSpace(q[0]) == "" {
			return nil, fmt.Errorf("invalid question format at index %d", i)
		}
	}
	return out, nil
}
