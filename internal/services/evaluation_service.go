package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dhruvi159/Voxhire-Project/internal/evaluation"
	"github.com/dhruvi159/Voxhire-Project/internal/models"
	"github.com/dhruvi159/Voxhire-Project/internal/utils"
)

const opPersistEvaluation = "persist_evaluation"

type EvaluationService struct {
	engine      Evaluator
	evaluations EvaluationRepository
	detached    *Detacher
	logger      *zap.Logger
	now         func() time.Time
}

func NewEvaluationService(engine Evaluator, evaluations EvaluationRepository, detached *Detacher, logger *zap.Logger) *EvaluationService {
	return &EvaluationService{
		engine:      engine,
		evaluations: evaluations,
		detached:    detached,
		logger:      utils.OrDefault(logger),
		now:         time.Now,
	}
}

// Evaluate always yields a score. When the request names a candidate or a
// session the result is also recorded in the background.
func (s *EvaluationService) Evaluate(ctx context.Context, req *models.EvaluateRequest) models.EvaluateResponse {
	res := s.engine.Evaluate(ctx, evaluation.Input{
		Question: req.Question,
		Answer:   req.Answer,
		Post:     req.Post,
	})

	if (req.CandidateID != "" || req.InterviewID != "") && s.evaluations != nil && s.detached != nil {
		record := &models.Evaluation{
			ID:          uuid.NewString(),
			Kind:        models.KindAnswer,
			SessionID:   req.InterviewID,
			CandidateID: req.CandidateID,
			Post:        req.Post,
			Question:    req.Question,
			Answer:      req.Answer,
			Score:       float64(res.Score),
			Summary:     res.Summary,
			Tier:        string(res.Tier),
		}
		// stamped at write time so the exporter's settle window covers it
		s.detached.Go(ctx, opPersistEvaluation, func(ctx context.Context) error {
			record.Timestamp = s.now().UTC()
			return s.evaluations.Insert(ctx, record)
		})
	}

	s.logger.Info("Answer evaluated", zap.String("tier", string(res.Tier)), zap.Int("score", res.Score))
	return models.EvaluateResponse{Score: res.Score, Summary: res.Summary}
}
