package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dhruvi159/Voxhire-Project/internal/models"
	repo "github.com/dhruvi159/Voxhire-Project/internal/repositories/mongo"
	"github.com/dhruvi159/Voxhire-Project/internal/roster"
	"github.com/dhruvi159/Voxhire-Project/internal/storage"
	"github.com/dhruvi159/Voxhire-Project/internal/utils"
)

const (
	candidateListFolder = "candidate_lists"
	defaultPage         = 1
	defaultLimit        = 10
	maxLimit            = 100
)

type InterviewDeps struct {
	Interviews    InterviewRepository
	Invitations   InvitationRepository
	Uploads       UploadRepository
	Mailer        InvitationMailer
	Uploader      storage.Uploader
	InvitationTTL time.Duration
	// Location interprets session dates and "HH:MM" times. Defaults to UTC.
	Location *time.Location
	Logger   *zap.Logger
	Now      func() time.Time
}

type InterviewService struct {
	interviews    InterviewRepository
	invitations   InvitationRepository
	uploads       UploadRepository
	mailer        InvitationMailer
	uploader      storage.Uploader
	invitationTTL time.Duration
	loc           *time.Location
	logger        *zap.Logger
	now           func() time.Time
}

func NewInterviewService(d InterviewDeps) *InterviewService {
	s := &InterviewService{
		interviews:    d.Interviews,
		invitations:   d.Invitations,
		uploads:       d.Uploads,
		mailer:        d.Mailer,
		uploader:      d.Uploader,
		invitationTTL: d.InvitationTTL,
		loc:           d.Location,
		logger:        utils.OrDefault(d.Logger),
		now:           d.Now,
	}
	if s.invitationTTL <= 0 {
		s.invitationTTL = models.InvitationTTL
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// UploadCandidates stores the raw list, records it and returns the parsed roster.
func (s *InterviewService) UploadCandidates(ctx context.Context, adminID, filename, contentType string, body []byte) (*models.UploadCandidatesResponse, error) {
	if adminID == "" {
		return nil, ErrUnauthorized
	}
	if !roster.Supported(filename, contentType) {
		return nil, ErrUnsupportedFile
	}

	entries, err := roster.Parse(filename, contentType, body)
	switch {
	case errors.Is(err, roster.ErrNoRows), errors.Is(err, roster.ErrMissingEmail):
		return nil, ErrEmptyUploadedFile
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrEmptyUploadedFile, err)
	case len(entries) == 0:
		return nil, ErrEmptyUploadedFile
	}

	if s.uploader == nil {
		return nil, ErrUpstreamUnavailable
	}
	url, err := s.uploader.Upload(ctx, candidateListFolder, filename, contentType, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	record := &models.UploadedFile{
		ID:         uuid.NewString(),
		AdminID:    adminID,
		FileName:   filename,
		URL:        url,
		Status:     models.FileProcessed,
		UploadedAt: s.now().UTC(),
	}
	if err := s.uploads.Create(ctx, record); err != nil {
		return nil, err
	}

	resp := &models.UploadCandidatesResponse{
		FileURL:    url,
		Names:      make([]string, 0, len(entries)),
		Emails:     make([]string, 0, len(entries)),
		Candidates: len(entries),
	}
	for _, e := range entries {
		resp.Names = append(resp.Names, e.Name)
		resp.Emails = append(resp.Emails, e.Email)
	}
	s.logger.Info("Candidate list uploaded", zap.String("admin_id", adminID), zap.Int("candidates", len(entries)))
	return resp, nil
}

// CreateInterview persists a session and one invitation per candidate, then
// emails every candidate. Email failures are reported, never rolled back.
func (s *InterviewService) CreateInterview(ctx context.Context, adminID string, req *models.CreateInterviewRequest) (*models.CreateInterviewResponse, error) {
	if adminID == "" {
		return nil, ErrUnauthorized
	}
	if len(req.Candidates) == 0 {
		return nil, ErrNoCandidates
	}

	now := s.now().UTC()
	day := req.Day()
	typ := req.Type
	if typ == "" {
		typ = models.TypeMixed
	}

	session := &models.InterviewSession{
		ID:         uuid.NewString(),
		Title:      models.SessionTitle(req.Post, day),
		CreatedBy:  adminID,
		Difficulty: req.Difficulty,
		Type:       typ,
		Date:       day,
		Time:       normalizeClock(req.Time),
		Duration:   req.Duration,
		Post:       req.Post,
		Status:     models.StatusScheduled,
		Candidates: make([]models.CandidateEntry, 0, len(req.Candidates)),
		Notes:      req.Notes,
		CreatedAt:  now,
	}
	invitations := make([]models.Invitation, 0, len(req.Candidates))
	for _, c := range req.Candidates {
		session.Candidates = append(session.Candidates, models.CandidateEntry{
			Name:   c.Name,
			Email:  c.Email,
			Status: models.EntryInvited,
		})
		invitations = append(invitations, models.Invitation{
			ID:        uuid.NewString(),
			SessionID: session.ID,
			Email:     c.Email,
			Token:     uuid.NewString(),
			ExpiresAt: now.Add(s.invitationTTL),
			CreatedAt: now,
		})
	}

	if err := s.interviews.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create interview: %w", err)
	}
	if err := s.invitations.InsertMany(ctx, invitations); err != nil {
		return nil, fmt.Errorf("failed to store invitations: %w", err)
	}

	report := s.mailer.SendInvitations(ctx, session, invitations)
	if len(report.Failed) > 0 {
		s.logger.Warn("Some invitation emails failed",
			zap.String("session_id", session.ID),
			zap.Int("sent", report.Sent),
			zap.Int("failed", len(report.Failed)))
	}

	return &models.CreateInterviewResponse{
		Interview:        session,
		InvitationsSent:  report.Sent,
		FailedRecipients: report.Failed,
	}, nil
}

// ListInterviews returns one page, newest first. Non-positive page or limit
// fall back to 1 and 10.
func (s *InterviewService) ListInterviews(ctx context.Context, f repo.InterviewFilter, page, limit int) (*models.InterviewsResponse, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	items, total, err := s.interviews.List(ctx, f, page, limit)
	if err != nil {
		return nil, err
	}
	totalPages, hasNext, hasPrev := models.CalculatePaginationMeta(page, limit, int(total))
	return &models.InterviewsResponse{
		Total:      int(total),
		Items:      items,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasNext:    hasNext,
		HasPrev:    hasPrev,
	}, nil
}

// CandidateUpcoming lists the candidate's sessions on future days plus those
// today that started no more than JoinGrace ago.
func (s *InterviewService) CandidateUpcoming(ctx context.Context, email string, now time.Time) ([]models.InterviewSession, error) {
	if email == "" {
		return nil, ErrUnauthorized
	}
	local := now.In(s.loc)
	today := models.DayOf(local)

	sessions, err := s.interviews.ForCandidateSince(ctx, email, today)
	if err != nil {
		return nil, err
	}

	out := make([]models.InterviewSession, 0, len(sessions))
	for _, sess := range sessions {
		day := models.DayOf(sess.Date)
		if day.Before(today) {
			continue
		}
		if day.Equal(today) {
			w, err := s.SessionWindow(&sess)
			if err != nil {
				s.logger.Warn("Skipping session with unreadable time",
					zap.String("session_id", sess.ID), zap.String("time", sess.Time))
				continue
			}
			if w.Cutoff.Before(local) {
				continue
			}
		}
		out = append(out, sess)
	}

	sort.SliceStable(out, func(i, j int) bool {
		di, dj := models.DayOf(out[i].Date), models.DayOf(out[j].Date)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (s *InterviewService) GetInterview(ctx context.Context, id string) (*models.InterviewSession, error) {
	sess, err := s.interviews.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound
	}
	return sess, err
}

// SessionWindow resolves a session's start, end and join cut-off.
func (s *InterviewService) SessionWindow(sess *models.InterviewSession) (models.Window, error) {
	return sess.ScheduledWindow(s.loc)
}

// normalizeClock zero-pads "9:30" to "09:30" so stored times sort as strings.
func normalizeClock(hhmm string) string {
	t, err := time.Parse(models.TimeLayout, hhmm)
	if err != nil {
		return hhmm
	}
	return t.Format(models.TimeLayout)
}
