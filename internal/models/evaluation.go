package models

import "time"

type EvaluationKind string

const (
	KindAnswer EvaluationKind = "answer"
	KindCoding EvaluationKind = "coding"
)

// Evaluation is an append-only scoring record. Coding rounds keep a single
// aggregate record per candidate whose score is incremented per validation.
type Evaluation struct {
	ID          string         `bson:"_id" json:"id"`
	Kind        EvaluationKind `bson:"kind" json:"kind"`
	SessionID   string         `bson:"interview_id,omitempty" json:"interviewId,omitempty"`
	CandidateID string         `bson:"candidate_id,omitempty" json:"candidateId,omitempty"`
	Post        string         `bson:"post,omitempty" json:"post,omitempty"`
	Question    string         `bson:"question,omitempty" json:"question,omitempty"`
	Answer      string         `bson:"answer,omitempty" json:"answer,omitempty"`
	Score       float64        `bson:"score" json:"score"`
	Summary     string         `bson:"summary,omitempty" json:"summary,omitempty"`
	Tier        string         `bson:"tier,omitempty" json:"tier,omitempty"`
	Timestamp   time.Time      `bson:"timestamp" json:"timestamp"`
}
