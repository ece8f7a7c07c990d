package models

import "time"

// InvitationTTL is the default validity of an invitation token.
const InvitationTTL = 7 * 24 * time.Hour

type Invitation struct {
	ID        string    `bson:"_id" json:"id"`
	SessionID string    `bson:"interview_id" json:"interviewId"`
	Email     string    `bson:"candidate_email" json:"candidateEmail"`
	Token     string    `bson:"token" json:"token"`
	Used      bool      `bson:"used" json:"used"`
	ExpiresAt time.Time `bson:"expires_at" json:"expiresAt"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// DispatchFailure names one invitation email that could not be delivered.
type DispatchFailure struct {
	Email string `json:"email"`
	Error string `json:"error"`
}

// DispatchReport summarises a bulk invitation send.
type DispatchReport struct {
	Sent   int               `json:"sent"`
	Failed []DispatchFailure `json:"failed"`
}
