package models

import "time"

// helper to calculate pagination metadata
func CalculatePaginationMeta(page, limit, total int) (totalPages int, hasNext, hasPrev bool) {
	if limit <= 0 {
		limit = 1 // avoid division by zero
	}
	totalPages = (total + limit - 1) / limit // ceiling division
	hasNext = page < totalPages
	hasPrev = page > 1
	return
}

// response structure for the interview listing
type InterviewsResponse struct {
	Total      int                `json:"total"`
	Items      []InterviewSession `json:"items"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"totalPages"`
	HasNext    bool               `json:"hasNext"`
	HasPrev    bool               `json:"hasPrev"`
}

type CreateInterviewResponse struct {
	Interview        *InterviewSession `json:"interview"`
	InvitationsSent  int               `json:"invitationsSent"`
	FailedRecipients []DispatchFailure `json:"failedRecipients"`
}

type UploadCandidatesResponse struct {
	FileURL    string   `json:"fileUrl"`
	Names      []string `json:"candidateNames"`
	Emails     []string `json:"candidateEmails"`
	Candidates int      `json:"candidates"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type EvaluateResponse struct {
	Score   int    `json:"score"`
	Summary string `json:"summary"`
}

type QuestionsResponse struct {
	Questions [][]string `json:"questions"`
}

type FinishResponse struct {
	FinalScore float64 `json:"finalScore"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// uniform error payload
type ErrorResponse struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Details []ValidationErrorDetail `json:"details,omitempty"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

// a single field error
type ValidationErrorDetail struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type RegisterResponse struct {
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type ProfilePictureResponse struct {
	ProfilePic string `json:"profilePic"`
}

type CodingRoundResponse struct {
	Questions int `json:"questions"`
}

// NextQuestionResponse carries either the next question or, once every
// question is submitted, a message telling the candidate to finish.
type NextQuestionResponse struct {
	Question string `json:"question,omitempty"`
	Message  string `json:"message,omitempty"`
}

type ValidateResponse struct {
	Message    string       `json:"message"`
	Outputs    []string     `json:"outputs"`
	Passed     int          `json:"passed"`
	Total      int          `json:"total"`
	Score      float64      `json:"score"`
	RoundScore *float64     `json:"roundScore,omitempty"`
	Results    []CaseResult `json:"results"`
}

type CandidateInterviewsResponse struct {
	Interviews []InterviewSession `json:"interviews"`
}

// CurrentInterviewResponse is a session together with its resolved schedule.
type CurrentInterviewResponse struct {
	Interview *InterviewSession `json:"interview"`
	Window    *Window           `json:"window,omitempty"`
}
