package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/dhruvi159/Voxhire-Project/internal/middleware"
	"github.com/dhruvi159/Voxhire-Project/internal/models"
	"github.com/dhruvi159/Voxhire-Project/internal/utils"
)

type CodingService interface {
	GenerateCodingQuestions(ctx context.Context, candidateID string, req *models.GenerateCodingQuestionsRequest) (*models.CodingRoundResponse, error)
	NextQuestion(ctx context.Context, candidateID string) (*models.NextQuestionResponse, error)
	Execute(ctx context.Context, req *models.ExecuteRequest) (*models.ExecutionResult, error)
	Validate(ctx context.Context, candidateID string, req *models.ValidateCodeRequest) (*models.ValidateResponse, error)
	Finish(ctx context.Context, candidateID string) (*models.FinishResponse, error)
}

// CodingHandler runs a candidate's coding round. The candidate is taken
// from the user-id header, falling back to the token subject.
type CodingHandler struct {
	coding CodingService
	logger *zap.Logger
}

func NewCodingHandler(coding CodingService, logger *zap.Logger) *CodingHandler {
	return &CodingHandler{coding: coding, logger: utils.OrDefault(logger)}
}

// candidate writes 403 when the user-id header names another user.
func (h *CodingHandler) candidate(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := middleware.CandidateID(r)
	if err != nil {
		utils.JSONError(w, http.StatusForbidden, "candidate_mismatch", err.Error())
		return "", false
	}
	return id, true
}

func (h *CodingHandler) GenerateCodingQuestions(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.GenerateCodingQuestionsRequest](r)

	candidateID, ok := h.candidate(w, r)
	if !ok {
		return
	}
	resp, err := h.coding.GenerateCodingQuestions(r.Context(), candidateID, req)
	if err != nil {
		writeServiceError(w, h.logger, "Coding question generation", err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *CodingHandler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := h.candidate(w, r)
	if !ok {
		return
	}
	resp, err := h.coding.NextQuestion(r.Context(), candidateID)
	if err != nil {
		writeServiceError(w, h.logger, "Next question", err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *CodingHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.ExecuteRequest](r)

	result, err := h.coding.Execute(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, "Code execution", err)
		return
	}
	utils.JSON(w, http.StatusOK, result)
}

func (h *CodingHandler) Validate(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.ValidateCodeRequest](r)

	candidateID, ok := h.candidate(w, r)
	if !ok {
		return
	}
	resp, err := h.coding.Validate(r.Context(), candidateID, req)
	if err != nil {
		writeServiceError(w, h.logger, "Code validation", err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *CodingHandler) Finish(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := h.candidate(w, r)
	if !ok {
		return
	}
	resp, err := h.coding.Finish(r.Context(), candidateID)
	if err != nil {
		writeServiceError(w, h.logger, "Finish interview", err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}
