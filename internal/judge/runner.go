package judge

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dhruvi159/Voxhire-Project/internal/metrics"
	"github.com/dhruvi159/Voxhire-Project/internal/models"
	"github.com/dhruvi159/Voxhire-Project/internal/retry"
	"github.com/dhruvi159/Voxhire-Project/internal/utils"
)

const (
	noOutput       = "No output"
	caseFailOutput = "No output / Execution Error"
)

// Executor is the judge surface the runner needs.
type Executor interface {
	Submit(ctx context.Context, source string, languageID int, stdin string) (string, error)
	Status(ctx context.Context, token string) (*Submission, error)
}

type Runner struct {
	judge  Executor
	policy retry.Policy
	logger *zap.Logger
}

// DefaultPolicy polls five times, one second apart.
func DefaultPolicy() retry.Policy {
	return retry.Fixed(5, time.Second)
}

func NewRunner(judge Executor, policy retry.Policy, logger *zap.Logger) *Runner {
	return &Runner{judge: judge, policy: policy, logger: utils.OrDefault(logger)}
}

// Run executes source once with empty stdin.
func (r *Runner) Run(ctx context.Context, source string, languageID int) (*models.ExecutionResult, error) {
	sub, err := r.runOnce(ctx, source, languageID, "")
	if err != nil {
		return nil, err
	}
	stdout := decode(sub.Stdout)
	if stdout == "" {
		stdout = noOutput
	}
	stderr := decode(sub.Stderr)
	if stderr == "" {
		stderr = decode(sub.CompileOutput)
	}
	return &models.ExecutionResult{
		Stdout:   stdout,
		Stderr:   stderr,
		StatusID: sub.Status.ID,
		Status:   sub.Status.Description,
	}, nil
}

// ValidateAndScore runs source against every case. A case that fails to
// execute counts as a mismatch; only cancellation aborts the batch.
func (r *Runner) ValidateAndScore(ctx context.Context, source string, languageID int, cases []models.TestCase) (*models.ValidationResult, error) {
	out := &models.ValidationResult{Total: len(cases), Results: make([]models.CaseResult, 0, len(cases))}

	for i, tc := range cases {
		res := models.CaseResult{Input: tc.Input, Expected: tc.ExpectedOutput, Output: caseFailOutput}

		sub, err := r.runOnce(ctx, source, languageID, tc.Input)
		switch {
		case err != nil && ctx.Err() != nil:
			return nil, ctx.Err()
		case err != nil:
			r.logger.Warn("Test case execution failed", zap.Int("case", i), zap.Error(err))
		default:
			if stdout := strings.TrimSpace(decode(sub.Stdout)); stdout != "" {
				res.Output = stdout
				res.Passed = stdout == strings.TrimSpace(tc.ExpectedOutput)
			}
		}

		if res.Passed {
			out.Passed++
		}
		out.Results = append(out.Results, res)
	}

	if out.Total > 0 {
		out.Score = float64(out.Passed) / float64(out.Total) * 100
	}
	return out, nil
}

func (r *Runner) runOnce(ctx context.Context, source string, languageID int, stdin string) (*Submission, error) {
	token, err := r.judge.Submit(ctx, source, languageID, stdin)
	if err != nil {
		return nil, err
	}

	sub, err := retry.Poll(ctx, r.policy, func(ctx context.Context) (*Submission, error) {
		s, err := r.judge.Status(ctx, token)
		switch {
		case err != nil:
			metrics.JudgePoll("error")
		case s.Terminal():
			metrics.JudgePoll("terminal")
		default:
			metrics.JudgePoll("pending")
		}
		return s, err
	}, (*Submission).Terminal)
	if errors.Is(err, retry.ErrExhausted) {
		r.logger.Warn("Judge did not finish in time", zap.String("token", token), zap.Error(err))
		return nil, ErrExecutionTimeout
	}
	if err != nil {
		return nil, err
	}
	return sub, nil
}
