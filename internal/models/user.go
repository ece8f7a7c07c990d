package models

import "time"

type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleCandidate Role = "Candidate"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCandidate
}

// User is an account created once the registration OTP is verified.
type User struct {
	ID               string     `bson:"_id" json:"id"`
	Name             string     `bson:"name" json:"name"`
	Email            string     `bson:"email" json:"email"`
	PasswordHash     string     `bson:"password" json:"-"`
	Role             Role       `bson:"role" json:"role"`
	ProfilePicture   string     `bson:"profile_picture,omitempty" json:"profilePicture,omitempty"`
	RegistrationDate time.Time  `bson:"registration_date" json:"registrationDate"`
	LastLoginDate    *time.Time `bson:"last_login_date,omitempty" json:"lastLoginDate,omitempty"`
}

// PendingRegistration is the OTP entry held until the email owner confirms it.
type PendingRegistration struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Role         Role      `json:"role"`
	OTP          string    `json:"otp"`
	ExpiresAt    time.Time `json:"expiresAt"`
}
