package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/dhruvi159/Voxhire-Project/internal/middleware"
	"github.com/dhruvi159/Voxhire-Project/internal/models"
	"github.com/dhruvi159/Voxhire-Project/internal/utils"
)

type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, req *models.GenerateQuestionsRequest) (*models.QuestionsResponse, error)
}

type AnswerEvaluator interface {
	Evaluate(ctx context.Context, req *models.EvaluateRequest) models.EvaluateResponse
}

// AIHandler fronts the model-backed endpoints: interview question
// generation and answer scoring.
type AIHandler struct {
	questions QuestionGenerator
	evaluator AnswerEvaluator
	logger    *zap.Logger
}

func NewAIHandler(questions QuestionGenerator, evaluator AnswerEvaluator, logger *zap.Logger) *AIHandler {
	return &AIHandler{questions: questions, evaluator: evaluator, logger: utils.OrDefault(logger)}
}

func (h *AIHandler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.GenerateQuestionsRequest](r)

	resp, err := h.questions.GenerateQuestions(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, "Question generation", err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

// Evaluate always answers 200; the evaluator degrades instead of failing.
func (h *AIHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.EvaluateRequest](r)
	utils.JSON(w, http.StatusOK, h.evaluator.Evaluate(r.Context(), req))
}
