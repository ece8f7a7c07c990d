package services

import (
	"context"
	"time"

	"github.com/dhruvi159/Voxhire-Project/internal/evaluation"
	"github.com/dhruvi159/Voxhire-Project/internal/models"
	repo "github.com/dhruvi159/Voxhire-Project/internal/repositories/mongo"
)

// UserRepository captures the user persistence the services need.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Delete(ctx context.Context, id string) error
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	SetProfilePicture(ctx context.Context, id, url string) error
}

type CandidateRepository interface {
	Create(ctx context.Context, c *models.Candidate) error
}

// PendingStore holds registrations awaiting OTP confirmation.
type PendingStore interface {
	Put(ctx context.Context, p *models.PendingRegistration) error
	Get(ctx context.Context, email string) (*models.PendingRegistration, error)
	Claim(ctx context.Context, email string) (bool, error)
}

type InterviewRepository interface {
	Create(ctx context.Context, s *models.InterviewSession) error
	FindByID(ctx context.Context, id string) (*models.InterviewSession, error)
	List(ctx context.Context, f repo.InterviewFilter, page, limit int) ([]models.InterviewSession, int64, error)
	ForCandidateSince(ctx context.Context, email string, day time.Time) ([]models.InterviewSession, error)
}

type InvitationRepository interface {
	InsertMany(ctx context.Context, invs []models.Invitation) error
}

type EvaluationRepository interface {
	Insert(ctx context.Context, e *models.Evaluation) error
	AddCodingScore(ctx context.Context, candidateID, sessionID string, delta float64, at time.Time) error
}

type UploadRepository interface {
	Create(ctx context.Context, f *models.UploadedFile) error
}

type OTPMailer interface {
	SendOTP(ctx context.Context, email, code string) error
}

type InvitationMailer interface {
	SendInvitations(ctx context.Context, session *models.InterviewSession, invitations []models.Invitation) models.DispatchReport
}

// RoundStore keeps per-candidate coding round state.
type RoundStore interface {
	Start(ctx context.Context, candidate string, questions []models.CodingQuestion) error
	Next(ctx context.Context, candidate string) (*models.CodingQuestion, error)
	MarkSubmitted(ctx context.Context, candidate string) error
	AddScore(ctx context.Context, candidate string, delta float64) (float64, error)
	Finish(ctx context.Context, candidate string) (float64, error)
}

type CodeRunner interface {
	Run(ctx context.Context, source string, languageID int) (*models.ExecutionResult, error)
	ValidateAndScore(ctx context.Context, source string, languageID int, cases []models.TestCase) (*models.ValidationResult, error)
}

type Evaluator interface {
	Evaluate(ctx context.Context, in evaluation.Input) evaluation.Result
}
