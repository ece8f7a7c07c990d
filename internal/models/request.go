package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	validate.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(TimeLayout, fl.Field().String())
		return err == nil
	})
	validate.RegisterValidation("ymd", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(DateLayout, fl.Field().String())
		return err == nil
	})
}

// validateStruct runs the tag rules and turns failures into a uniform payload
func validateStruct(code string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ErrorResponse{Code: code, Message: err.Error()}
	}
	details := make([]ValidationErrorDetail, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, ValidationErrorDetail{
			Field:  fieldPath(fe.Namespace()),
			Reason: reason(fe),
		})
	}
	return &ErrorResponse{
		Code:    code,
		Message: "Request validation failed",
		Details: details,
	}
}

func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "len":
		return "must have length " + fe.Param()
	case "numeric":
		return "must be numeric"
	case "hhmm":
		return "must be a time in HH:MM format"
	case "ymd":
		return "must be a date in YYYY-MM-DD format"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     Role   `json:"role" validate:"omitempty,oneof=Admin Candidate"`
}

func (r *RegisterRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)
	if r.Role == "" {
		r.Role = RoleCandidate
	}
	return validateStruct("invalid_registration", r)
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

func (r *VerifyOTPRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.OTP = strings.TrimSpace(r.OTP)
	return validateStruct("invalid_otp_request", r)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return validateStruct("invalid_login", r)
}

type CandidateInput struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"required,email"`
}

type CreateInterviewRequest struct {
	Post       string           `json:"post" validate:"required"`
	Difficulty Difficulty       `json:"difficulty" validate:"required,oneof=Easy Medium Hard"`
	Type       InterviewType    `json:"type" validate:"omitempty,oneof=Q&A Technical Mixed"`
	Date       string           `json:"date" validate:"required,ymd"`
	Time       string           `json:"time" validate:"required,hhmm"`
	Duration   int              `json:"duration" validate:"required,min=1,max=600"`
	Notes      string           `json:"additional_notes"`
	Candidates []CandidateInput `json:"candidates" validate:"dive"`

	// Parallel-array form sent by the dashboard client; folded into
	// Candidates and Notes by Validate.
	CandidateEmails []string `json:"candidateEmails,omitempty"`
	CandidateNames  []string `json:"candidateNames,omitempty"`
	AdditionalNotes string   `json:"additionalNotes,omitempty"`
}

func (r *CreateInterviewRequest) Validate() error {
	r.Post = strings.TrimSpace(r.Post)
	if r.Type == "" {
		r.Type = TypeMixed
	}
	if r.Notes == "" {
		r.Notes = r.AdditionalNotes
	}
	if len(r.Candidates) == 0 {
		for i, email := range r.CandidateEmails {
			c := CandidateInput{Email: email}
			if i < len(r.CandidateNames) {
				c.Name = r.CandidateNames[i]
			}
			r.Candidates = append(r.Candidates, c)
		}
	}
	r.CandidateEmails, r.CandidateNames, r.AdditionalNotes = nil, nil, ""
	for i := range r.Candidates {
		r.Candidates[i].Email = strings.ToLower(strings.TrimSpace(r.Candidates[i].Email))
		r.Candidates[i].Name = strings.TrimSpace(r.Candidates[i].Name)
	}
	return validateStruct("invalid_interview", r)
}

// Day parses the validated date field.
func (r *CreateInterviewRequest) Day() time.Time {
	d, _ := time.Parse(DateLayout, r.Date)
	return d
}

type GenerateQuestionsRequest struct {
	Post       string `json:"post" validate:"required"`
	Difficulty string `json:"difficulty" validate:"required"`
	Notes      string `json:"additional_notes"`
	Duration   int    `json:"duration"`
}

func (r *GenerateQuestionsRequest) Validate() error {
	return validateStruct("invalid_question_request", r)
}

type EvaluateRequest struct {
	Question    string `json:"question" validate:"required"`
	Answer      string `json:"answer"`
	InterviewID string `json:"interview_id"`
	CandidateID string `json:"candidate_id"`
	Post        string `json:"post"`
}

func (r *EvaluateRequest) Validate() error {
	return validateStruct("invalid_evaluation_request", r)
}

type ExecuteRequest struct {
	SourceCode string `json:"code" validate:"required"`
	LanguageID int    `json:"languageId" validate:"required,min=1"`
}

func (r *ExecuteRequest) Validate() error {
	return validateStruct("invalid_execute_request", r)
}

type ValidateCodeRequest struct {
	SourceCode string     `json:"code" validate:"required"`
	LanguageID int        `json:"languageId" validate:"required,min=1"`
	TestCases  []TestCase `json:"testCases" validate:"required"`
	// InterviewID optionally ties the score to a session.
	InterviewID string `json:"interview_id"`
}

func (r *ValidateCodeRequest) Validate() error {
	return validateStruct("invalid_validate_request", r)
}

type GenerateCodingQuestionsRequest struct {
	Post        string `json:"post" validate:"required"`
	Difficulty  string `json:"difficulty" validate:"required"`
	Notes       string `json:"additional_notes"`
	InterviewID string `json:"interview_id"`
}

func (r *GenerateCodingQuestionsRequest) Validate() error {
	return validateStruct("invalid_coding_request", r)
}
