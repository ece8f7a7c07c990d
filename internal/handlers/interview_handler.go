package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dhruvi159/Voxhire-Project/internal/middleware"
	"github.com/dhruvi159/Voxhire-Project/internal/models"
	repo "github.com/dhruvi159/Voxhire-Project/internal/repositories/mongo"
	"github.com/dhruvi159/Voxhire-Project/internal/utils"
)

type InterviewService interface {
	UploadCandidates(ctx context.Context, adminID, filename, contentType string, body []byte) (*models.UploadCandidatesResponse, error)
	CreateInterview(ctx context.Context, adminID string, req *models.CreateInterviewRequest) (*models.CreateInterviewResponse, error)
	ListInterviews(ctx context.Context, f repo.InterviewFilter, page, limit int) (*models.InterviewsResponse, error)
	CandidateUpcoming(ctx context.Context, email string, now time.Time) ([]models.InterviewSession, error)
	GetInterview(ctx context.Context, id string) (*models.InterviewSession, error)
	SessionWindow(sess *models.InterviewSession) (models.Window, error)
}

// InterviewHandler serves session scheduling and lookup.
type InterviewHandler struct {
	interviews InterviewService
	logger     *zap.Logger
	now        func() time.Time
}

func NewInterviewHandler(interviews InterviewService, logger *zap.Logger) *InterviewHandler {
	return &InterviewHandler{
		interviews: interviews,
		logger:     utils.OrDefault(logger),
		now:        time.Now,
	}
}

func (h *InterviewHandler) UploadCandidates(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFrom(r)
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}
	file, err := readUpload(w, r)
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid_upload", err.Error())
		return
	}

	resp, err := h.interviews.UploadCandidates(r.Context(), id.UserID, file.Filename, file.ContentType, file.Body)
	if err != nil {
		writeServiceError(w, h.logger, "Candidate upload", err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *InterviewHandler) CreateInterview(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.CreateInterviewRequest](r)
	id, ok := middleware.IdentityFrom(r)
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	resp, err := h.interviews.CreateInterview(r.Context(), id.UserID, req)
	if err != nil {
		writeServiceError(w, h.logger, "Interview creation", err)
		return
	}
	utils.JSON(w, http.StatusCreated, resp)
}

// ListInterviews pages through sessions, optionally filtered by ?status= and ?type=.
func (h *InterviewHandler) ListInterviews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := intParam(q.Get("page"))
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid_page", "page must be a positive integer")
		return
	}
	limit, err := intParam(q.Get("limit"))
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
		return
	}
	kind := q.Get("type")
	if kind == "" {
		kind = q.Get("interviewType")
	}
	filter := repo.InterviewFilter{
		Status: models.SessionStatus(q.Get("status")),
		Type:   models.InterviewType(kind),
	}

	resp, err := h.interviews.ListInterviews(r.Context(), filter, page, limit)
	if err != nil {
		writeServiceError(w, h.logger, "Interview listing", err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

// CandidateInterviews lists the caller's upcoming sessions.
func (h *InterviewHandler) CandidateInterviews(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFrom(r)
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}
	sessions, err := h.interviews.CandidateUpcoming(r.Context(), id.Email, h.now())
	if err != nil {
		writeServiceError(w, h.logger, "Candidate interviews", err)
		return
	}
	if sessions == nil {
		sessions = []models.InterviewSession{}
	}
	utils.JSON(w, http.StatusOK, models.CandidateInterviewsResponse{Interviews: sessions})
}

func (h *InterviewHandler) CurrentInterview(w http.ResponseWriter, r *http.Request) {
	sess, err := h.interviews.GetInterview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, "Interview lookup", err)
		return
	}
	resp := models.CurrentInterviewResponse{Interview: sess}
	if win, err := h.interviews.SessionWindow(sess); err == nil {
		resp.Window = &win
	} else {
		h.logger.Warn("Session has no resolvable schedule", zap.String("interview_id", sess.ID), zap.Error(err))
	}
	utils.JSON(w, http.StatusOK, resp)
}

// intParam parses an optional positive integer; empty means zero (use default).
func intParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, strconv.ErrSyntax
	}
	return n, nil
}
