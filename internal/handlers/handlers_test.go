package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"text/template"
	"time"

	"github.com/dhruvi159/Voxhire-Project/internal/middleware"
	"github.com/dhruvi159/Voxhire-Project/internal/models"
	repo "github.com/dhruvi159/Voxhire-Project/internal/repositories/mongo"
	"github.com/dhruvi159/Voxhire-Project/internal/utils"
)

const testSecret = "test-secret"

type mockProvider struct{}

func (mockProvider) GenerateContent(context.Context, string, string) (*models.GenerationResponse, error) {
	return &models.GenerationResponse{}, nil
}

func (mockProvider) GetProviderName() string { return "mock" }

type mockPromptManager struct {
	getTemplatesFn func() map[string]map[string]*template.Template
}

func (m *mockPromptManager) BuildPrompt(string, string, interface{}) (string, error) {
	return "mock prompt", nil
}

func (m *mockPromptManager) GetTemplates() map[string]map[string]*template.Template {
	if m.getTemplatesFn == nil {
		return map[string]map[string]*template.Template{
			"evaluate": {"default": template.Must(template.New("test").Parse("test"))},
		}
	}
	return m.getTemplatesFn()
}

type fakeAuth struct {
	requestFn func(ctx context.Context, req *models.RegisterRequest) (time.Time, error)
	verifyFn  func(ctx context.Context, email, code string) (*models.User, error)
	loginFn   func(ctx context.Context, email, password string) (*models.AuthResponse, error)
	profileFn func(ctx context.Context, userID string) (*models.User, error)
	pictureFn func(ctx context.Context, userID, filename, contentType string, body []byte) (string, error)
}

func (f *fakeAuth) RequestRegistration(ctx context.Context, req *models.RegisterRequest) (time.Time, error) {
	if f.requestFn == nil {
		panic("unexpected RequestRegistration call")
	}
	return f.requestFn(ctx, req)
}

func (f *fakeAuth) VerifyRegistration(ctx context.Context, email, code string) (*models.User, error) {
	if f.verifyFn == nil {
		panic("unexpected VerifyRegistration call")
	}
	return f.verifyFn(ctx, email, code)
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	if f.loginFn == nil {
		panic("unexpected Login call")
	}
	return f.loginFn(ctx, email, password)
}

func (f *fakeAuth) Profile(ctx context.Context, userID string) (*models.User, error) {
	if f.profileFn == nil {
		panic("unexpected Profile call")
	}
	return f.profileFn(ctx, userID)
}

func (f *fakeAuth) UpdateProfilePicture(ctx context.Context, userID, filename, contentType string, body []byte) (string, error) {
	if f.pictureFn == nil {
		panic("unexpected UpdateProfilePicture call")
	}
	return f.pictureFn(ctx, userID, filename, contentType, body)
}

type fakeInterviews struct {
	uploadFn   func(ctx context.Context, adminID, filename, contentType string, body []byte) (*models.UploadCandidatesResponse, error)
	createFn   func(ctx context.Context, adminID string, req *models.CreateInterviewRequest) (*models.CreateInterviewResponse, error)
	listFn     func(ctx context.Context, f repo.InterviewFilter, page, limit int) (*models.InterviewsResponse, error)
	upcomingFn func(ctx context.Context, email string, now time.Time) ([]models.InterviewSession, error)
	getFn      func(ctx context.Context, id string) (*models.InterviewSession, error)
}

func (f *fakeInterviews) UploadCandidates(ctx context.Context, adminID, filename, contentType string, body []byte) (*models.UploadCandidatesResponse, error) {
	if f.uploadFn == nil {
		panic("unexpected UploadCandidates call")
	}
	return f.uploadFn(ctx, adminID, filename, contentType, body)
}

func (f *fakeInterviews) CreateInterview(ctx context.Context, adminID string, req *models.CreateInterviewRequest) (*models.CreateInterviewResponse, error) {
	if f.createFn == nil {
		panic("unexpected CreateInterview call")
	}
	return f.createFn(ctx, adminID, req)
}

func (f *fakeInterviews) ListInterviews(ctx context.Context, filter repo.InterviewFilter, page, limit int) (*models.InterviewsResponse, error) {
	if f.listFn == nil {
		panic("unexpected ListInterviews call")
	}
	return f.listFn(ctx, filter, page, limit)
}

func (f *fakeInterviews) CandidateUpcoming(ctx context.Context, email string, now time.Time) ([]models.InterviewSession, error) {
	if f.upcomingFn == nil {
		panic("unexpected CandidateUpcoming call")
	}
	return f.upcomingFn(ctx, email, now)
}

func (f *fakeInterviews) GetInterview(ctx context.Context, id string) (*models.InterviewSession, error) {
	if f.getFn == nil {
		panic("unexpected GetInterview call")
	}
	return f.getFn(ctx, id)
}

func (f *fakeInterviews) SessionWindow(sess *models.InterviewSession) (models.Window, error) {
	return sess.ScheduledWindow(time.UTC)
}

type fakeQuestions struct {
	fn func(ctx context.Context, req *models.GenerateQuestionsRequest) (*models.QuestionsResponse, error)
}

func (f *fakeQuestions) GenerateQuestions(ctx context.Context, req *models.GenerateQuestionsRequest) (*models.QuestionsResponse, error) {
	if f.fn == nil {
		panic("unexpected GenerateQuestions call")
	}
	return f.fn(ctx, req)
}

type fakeEvaluator struct {
	fn func(ctx context.Context, req *models.EvaluateRequest) models.EvaluateResponse
}

func (f *fakeEvaluator) Evaluate(ctx context.Context, req *models.EvaluateRequest) models.EvaluateResponse {
	if f.fn == nil {
		panic("unexpected Evaluate call")
	}
	return f.fn(ctx, req)
}

type fakeCoding struct {
	generateFn func(ctx context.Context, candidateID string, req *models.GenerateCodingQuestionsRequest) (*models.CodingRoundResponse, error)
	nextFn     func(ctx context.Context, candidateID string) (*models.NextQuestionResponse, error)
	executeFn  func(ctx context.Context, req *models.ExecuteRequest) (*models.ExecutionResult, error)
	validateFn func(ctx context.Context, candidateID string, req *models.ValidateCodeRequest) (*models.ValidateResponse, error)
	finishFn   func(ctx context.Context, candidateID string) (*models.FinishResponse, error)
}

func (f *fakeCoding) GenerateCodingQuestions(ctx context.Context, candidateID string, req *models.GenerateCodingQuestionsRequest) (*models.CodingRoundResponse, error) {
	if f.generateFn == nil {
		panic("unexpected GenerateCodingQuestions call")
	}
	return f.generateFn(ctx, candidateID, req)
}

func (f *fakeCoding) NextQuestion(ctx context.Context, candidateID string) (*models.NextQuestionResponse, error) {
	if f.nextFn == nil {
		panic("unexpected NextQuestion call")
	}
	return f.nextFn(ctx, candidateID)
}

func (f *fakeCoding) Execute(ctx context.Context, req *models.ExecuteRequest) (*models.ExecutionResult, error) {
	if f.executeFn == nil {
		panic("unexpected Execute call")
	}
	return f.executeFn(ctx, req)
}

func (f *fakeCoding) Validate(ctx context.Context, candidateID string, req *models.ValidateCodeRequest) (*models.ValidateResponse, error) {
	if f.validateFn == nil {
		panic("unexpected Validate call")
	}
	return f.validateFn(ctx, candidateID, req)
}

func (f *fakeCoding) Finish(ctx context.Context, candidateID string) (*models.FinishResponse, error) {
	if f.finishFn == nil {
		panic("unexpected Finish call")
	}
	return f.finishFn(ctx, candidateID)
}

var (
	_ AuthService       = (*fakeAuth)(nil)
	_ InterviewService  = (*fakeInterviews)(nil)
	_ QuestionGenerator = (*fakeQuestions)(nil)
	_ AnswerEvaluator   = (*fakeEvaluator)(nil)
	_ CodingService     = (*fakeCoding)(nil)
)

func performRequest(handler http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// authed wraps h with RequireAuth and returns a matching bearer token.
func authed(t *testing.T, h http.HandlerFunc, userID, email string) (http.Handler, string) {
	t.Helper()
	token, err := utils.GenerateToken(userID, email, testSecret, time.Now())
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return middleware.RequireAuth(testSecret)(h), "Bearer " + token
}

func multipartBody(t *testing.T, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	part.Write(content)
	mw.Close()
	return buf, mw.FormDataContentType()
}
