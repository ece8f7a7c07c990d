package services

import "errors"

var (
	ErrDuplicateAccount    = errors.New("an account with this email already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrOtpExpired          = errors.New("OTP expired or invalid")
	ErrOtpMismatch         = errors.New("incorrect OTP")
	ErrNoCandidates        = errors.New("no candidates available")
	ErrEmptyUploadedFile   = errors.New("no valid emails found in the file")
	ErrUnsupportedFile     = errors.New("only .xlsx and .csv candidate lists are supported")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
	ErrNotFound            = errors.New("not found")
	ErrAllAnswered         = errors.New("all questions answered")
)
