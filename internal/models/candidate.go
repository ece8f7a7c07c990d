package models

type CandidateStatus string

const (
	CandidateApplied     CandidateStatus = "Applied"
	CandidateScreening   CandidateStatus = "Screening"
	CandidateInterviewed CandidateStatus = "Interviewed"
	CandidateSelected    CandidateStatus = "Selected"
	CandidateRejected    CandidateStatus = "Rejected"
)

type Education struct {
	Degree      string `bson:"degree" json:"degree"`
	Institution string `bson:"institution" json:"institution"`
	Year        int    `bson:"year,omitempty" json:"year,omitempty"`
}

// Candidate is the profile that accompanies every user registered with the Candidate role.
type Candidate struct {
	ID                string          `bson:"_id" json:"id"`
	UserID            string          `bson:"user_id" json:"userId"`
	InterviewSessions []string        `bson:"interview_sessions" json:"interviewSessions"`
	Skills            []string        `bson:"skills" json:"skills"`
	ExperienceYears   int             `bson:"experience_years" json:"experienceYears"`
	Education         []Education     `bson:"education" json:"education"`
	OverallScore      float64         `bson:"overall_score" json:"overallScore"`
	Status            CandidateStatus `bson:"status" json:"status"`
}

func NewCandidateProfile(id, userID string) *Candidate {
	return &Candidate{
		ID:                id,
		UserID:            userID,
		InterviewSessions: []string{},
		Skills:            []string{},
		Education:         []Education{},
		Status:            CandidateApplied,
	}
}
