package models

import (
	"fmt"
	"time"
)

type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

type InterviewType string

const (
	TypeQA        InterviewType = "Q&A"
	TypeTechnical InterviewType = "Technical"
	TypeMixed     InterviewType = "Mixed"
)

type SessionStatus string

const (
	StatusScheduled  SessionStatus = "Scheduled"
	StatusInProgress SessionStatus = "In Progress"
	StatusCompleted  SessionStatus = "Completed"
	StatusCancelled  SessionStatus = "Cancelled"
)

type EntryStatus string

const (
	EntryInvited   EntryStatus = "Invited"
	EntryConfirmed EntryStatus = "Confirmed"
	EntryAttended  EntryStatus = "Attended"
	EntryNoShow    EntryStatus = "No-show"
)

// DateLayout and TimeLayout are the wire formats of a session's schedule.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// JoinGrace is how long after the scheduled start a candidate may still join.
const JoinGrace = 30 * time.Minute

type CandidateEntry struct {
	Name   string      `bson:"name" json:"name"`
	Email  string      `bson:"email" json:"email"`
	Status EntryStatus `bson:"status" json:"status"`
}

// InterviewSession is a scheduled interview and the candidates invited to it.
// Date holds the calendar day at midnight UTC, Time the "HH:MM" start.
type InterviewSession struct {
	ID         string           `bson:"_id" json:"id"`
	Title      string           `bson:"title" json:"title"`
	CreatedBy  string           `bson:"created_by" json:"createdBy"`
	Difficulty Difficulty       `bson:"difficulty" json:"difficulty"`
	Type       InterviewType    `bson:"type" json:"type"`
	Date       time.Time        `bson:"date" json:"date"`
	Time       string           `bson:"time" json:"time"`
	Duration   int              `bson:"duration" json:"duration"`
	Post       string           `bson:"post" json:"post"`
	Status     SessionStatus    `bson:"status" json:"status"`
	Candidates []CandidateEntry `bson:"candidates" json:"candidates"`
	Notes      string           `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt  time.Time        `bson:"created_at" json:"createdAt"`
}

// SessionTitle is the display title given to a newly created session.
func SessionTitle(post string, date time.Time) string {
	return fmt.Sprintf("%s Interview - %s", post, date.Format(DateLayout))
}

// Window is the time span derived from a session's schedule.
type Window struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Cutoff time.Time `json:"joinCutoff"`
}

// ScheduledWindow resolves the session's day and "HH:MM" start in loc.
func (s *InterviewSession) ScheduledWindow(loc *time.Location) (Window, error) {
	clock, err := time.Parse(TimeLayout, s.Time)
	if err != nil {
		return Window{}, fmt.Errorf("invalid session time %q: %w", s.Time, err)
	}
	y, m, d := s.Date.UTC().Date()
	start := time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, loc)
	return Window{
		Start:  start,
		End:    start.Add(time.Duration(s.Duration) * time.Minute),
		Cutoff: start.Add(JoinGrace),
	}, nil
}

// DayOf truncates t to its calendar day at midnight UTC, the storage form of Date.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
