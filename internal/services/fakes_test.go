package services

import (
	"context"
	"sync"
	"text/template"
	"time"

	"github.com/dhruvi159/Voxhire-Project/internal/evaluation"
	"github.com/dhruvi159/Voxhire-Project/internal/models"
	repo "github.com/dhruvi159/Voxhire-Project/internal/repositories/mongo"
)

type fakeUsers struct {
	mu     sync.Mutex
	byID   map[string]*models.User
	create func(u *models.User) error
	login  func(id string) error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]*models.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.create != nil {
		if err := f.create(u); err != nil {
			return err
		}
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return repo.ErrDuplicate
		}
	}
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUsers) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	return nil
}

func (f *fakeUsers) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.login != nil {
		return f.login(id)
	}
	u, ok := f.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.LastLoginDate = &at
	return nil
}

func (f *fakeUsers) SetProfilePicture(_ context.Context, id, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.ProfilePicture = url
	return nil
}

func (f *fakeUsers) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

type fakeCandidates struct {
	mu      sync.Mutex
	created []*models.Candidate
	err     error
}

func (f *fakeCandidates) Create(_ context.Context, c *models.Candidate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, c)
	return nil
}

type fakeOTPMailer struct {
	mu    sync.Mutex
	codes map[string]string
	err   error
}

func (f *fakeOTPMailer) SendOTP(_ context.Context, email, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.codes == nil {
		f.codes = map[string]string{}
	}
	f.codes[email] = code
	return nil
}

func (f *fakeOTPMailer) code(email string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.codes[email]
}

type fakeUploader struct {
	calls []string
	err   error
}

func (f *fakeUploader) Upload(_ context.Context, folder, filename, _ string, _ []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.calls = append(f.calls, folder+"/"+filename)
	return "https://files.test/" + folder + "/" + filename, nil
}

type fakeInterviews struct {
	createFn  func(s *models.InterviewSession) error
	findFn    func(id string) (*models.InterviewSession, error)
	listFn    func(f repo.InterviewFilter, page, limit int) ([]models.InterviewSession, int64, error)
	forCandFn func(email string, day time.Time) ([]models.InterviewSession, error)
}

func (f *fakeInterviews) Create(_ context.Context, s *models.InterviewSession) error {
	if f.createFn == nil {
		panic("unexpected Create call")
	}
	return f.createFn(s)
}

func (f *fakeInterviews) FindByID(_ context.Context, id string) (*models.InterviewSession, error) {
	if f.findFn == nil {
		panic("unexpected FindByID call")
	}
	return f.findFn(id)
}

func (f *fakeInterviews) List(_ context.Context, filter repo.InterviewFilter, page, limit int) ([]models.InterviewSession, int64, error) {
	if f.listFn == nil {
		panic("unexpected List call")
	}
	return f.listFn(filter, page, limit)
}

func (f *fakeInterviews) ForCandidateSince(_ context.Context, email string, day time.Time) ([]models.InterviewSession, error) {
	if f.forCandFn == nil {
		panic("unexpected ForCandidateSince call")
	}
	return f.forCandFn(email, day)
}

type fakeInvitations struct {
	inserted []models.Invitation
	err      error
}

func (f *fakeInvitations) InsertMany(_ context.Context, invs []models.Invitation) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, invs...)
	return nil
}

type fakeUploads struct {
	records []*models.UploadedFile
}

func (f *fakeUploads) Create(_ context.Context, r *models.UploadedFile) error {
	f.records = append(f.records, r)
	return nil
}

type fakeInvitationMailer struct {
	fail map[string]string
}

func (f *fakeInvitationMailer) SendInvitations(_ context.Context, _ *models.InterviewSession, invs []models.Invitation) models.DispatchReport {
	report := models.DispatchReport{Failed: []models.DispatchFailure{}}
	for _, inv := range invs {
		if msg, ok := f.fail[inv.Email]; ok {
			report.Failed = append(report.Failed, models.DispatchFailure{Email: inv.Email, Error: msg})
			continue
		}
		report.Sent++
	}
	return report
}

type fakeEvaluations struct {
	mu       sync.Mutex
	inserted []*models.Evaluation
	coding   map[string]float64
	err      error
}

func (f *fakeEvaluations) Insert(_ context.Context, e *models.Evaluation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, e)
	return nil
}

func (f *fakeEvaluations) AddCodingScore(_ context.Context, candidateID, _ string, delta float64, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.coding == nil {
		f.coding = map[string]float64{}
	}
	f.coding[candidateID] += delta
	return nil
}

type fakeEvaluator struct {
	result evaluation.Result
	inputs []evaluation.Input
}

func (f *fakeEvaluator) Evaluate(_ context.Context, in evaluation.Input) evaluation.Result {
	f.inputs = append(f.inputs, in)
	return f.result
}

type fakeRunner struct {
	runFn      func(source string, languageID int) (*models.ExecutionResult, error)
	validateFn func(source string, languageID int, cases []models.TestCase) (*models.ValidationResult, error)
}

func (f *fakeRunner) Run(_ context.Context, source string, languageID int) (*models.ExecutionResult, error) {
	if f.runFn == nil {
		panic("unexpected Run call")
	}
	return f.runFn(source, languageID)
}

func (f *fakeRunner) ValidateAndScore(_ context.Context, source string, languageID int, cases []models.TestCase) (*models.ValidationResult, error) {
	if f.validateFn == nil {
		panic("unexpected ValidateAndScore call")
	}
	return f.validateFn(source, languageID, cases)
}

type mockProvider struct {
	generateContentFn func(ctx context.Context, prompt, requestID string) (*models.GenerationResponse, error)
}

func (m *mockProvider) GenerateContent(ctx context.Context, prompt, requestID string) (*models.GenerationResponse, error) {
	if m.generateContentFn == nil {
		return &models.GenerationResponse{}, nil
	}
	return m.generateContentFn(ctx, prompt, requestID)
}

func (m *mockProvider) GetProviderName() string { return "mock" }

type mockPromptManager struct {
	buildPromptFn func(mode, variant string, data interface{}) (string, error)
}

func (m *mockPromptManager) BuildPrompt(mode, variant string, data interface{}) (string, error) {
	if m.buildPromptFn == nil {
		return "mock prompt", nil
	}
	return m.buildPromptFn(mode, variant, data)
}

func (m *mockPromptManager) GetTemplates() map[string]map[string]*template.Template {
	return nil
}

func contentProvider(content string) *mockProvider {
	return &mockProvider{generateContentFn: func(context.Context, string, string) (*models.GenerationResponse, error) {
		return &models.GenerationResponse{Content: content}, nil
	}}
}
