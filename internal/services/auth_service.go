package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/dhruvi159/Voxhire-Project/internal/models"
	"github.com/dhruvi159/Voxhire-Project/internal/otp"
	repo "github.com/dhruvi159/Voxhire-Project/internal/repositories/mongo"
	"github.com/dhruvi159/Voxhire-Project/internal/storage"
	"github.com/dhruvi159/Voxhire-Project/internal/utils"
)

const profilePictureFolder = "profile_pictures"

type AuthDeps struct {
	Users      UserRepository
	Candidates CandidateRepository
	Pending    PendingStore
	Mailer     OTPMailer
	Uploader   storage.Uploader
	JWTSecret  string
	OTPTTL     time.Duration
	Logger     *zap.Logger
	Now        func() time.Time
	// HashCost defaults to bcrypt.DefaultCost.
	HashCost int
}

type AuthService struct {
	users      UserRepository
	candidates CandidateRepository
	pending    PendingStore
	mailer     OTPMailer
	uploader   storage.Uploader
	secret     string
	otpTTL     time.Duration
	hashCost   int
	now        func() time.Time
	logger     *zap.Logger
}

func NewAuthService(d AuthDeps) *AuthService {
	s := &AuthService{
		users:      d.Users,
		candidates: d.Candidates,
		pending:    d.Pending,
		mailer:     d.Mailer,
		uploader:   d.Uploader,
		secret:     d.JWTSecret,
		otpTTL:     d.OTPTTL,
		hashCost:   d.HashCost,
		now:        d.Now,
		logger:     utils.OrDefault(d.Logger),
	}
	if s.otpTTL <= 0 {
		s.otpTTL = otp.DefaultTTL
	}
	if s.hashCost == 0 {
		s.hashCost = bcrypt.DefaultCost
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// RequestRegistration stores a pending registration and emails its code.
// Calling it again for the same email replaces the earlier code.
func (s *AuthService) RequestRegistration(ctx context.Context, req *models.RegisterRequest) (time.Time, error) {
	_, err := s.users.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return time.Time{}, ErrDuplicateAccount
	case !errors.Is(err, repo.ErrNotFound):
		return time.Time{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to hash password: %w", err)
	}
	code, err := otp.Generate()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to generate OTP: %w", err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleCandidate
	}
	entry := &models.PendingRegistration{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		OTP:          code,
		ExpiresAt:    s.now().Add(s.otpTTL),
	}
	if err := s.pending.Put(ctx, entry); err != nil {
		return time.Time{}, err
	}
	if err := s.mailer.SendOTP(ctx, req.Email, code); err != nil {
		return time.Time{}, fmt.Errorf("failed to send OTP: %w", err)
	}

	s.logger.Info("Registration OTP issued", zap.String("email", req.Email), zap.String("role", string(role)))
	return entry.ExpiresAt, nil
}

// VerifyRegistration creates the account once the code matches. Exactly one
// of several concurrent verifications for an email can succeed.
func (s *AuthService) VerifyRegistration(ctx context.Context, email, code string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	entry, err := s.pending.Get(ctx, email)
	if errors.Is(err, otp.ErrNotFound) {
		return nil, ErrOtpExpired
	}
	if err != nil {
		return nil, err
	}
	now := s.now()
	if now.After(entry.ExpiresAt) {
		_, _ = s.pending.Claim(ctx, email)
		return nil, ErrOtpExpired
	}
	if subtle.ConstantTimeCompare([]byte(entry.OTP), []byte(code)) != 1 {
		return nil, ErrOtpMismatch
	}

	won, err := s.pending.Claim(ctx, email)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, ErrOtpExpired
	}

	user := &models.User{
		ID:               uuid.NewString(),
		Name:             entry.Name,
		Email:            entry.Email,
		PasswordHash:     entry.PasswordHash,
		Role:             entry.Role,
		RegistrationDate: now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateAccount
		}
		s.restorePending(ctx, entry)
		return nil, err
	}

	if user.Role == models.RoleCandidate {
		if err := s.candidates.Create(ctx, models.NewCandidateProfile(uuid.NewString(), user.ID)); err != nil {
			if derr := s.users.Delete(ctx, user.ID); derr != nil {
				s.logger.Error("Failed to roll back user after candidate profile error",
					zap.String("user_id", user.ID), zap.Error(derr))
			}
			s.restorePending(ctx, entry)
			return nil, fmt.Errorf("failed to create candidate profile: %w", err)
		}
	}

	s.logger.Info("Account created", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

func (s *AuthService) restorePending(ctx context.Context, entry *models.PendingRegistration) {
	if err := s.pending.Put(ctx, entry); err != nil {
		s.logger.Warn("Failed to restore pending registration", zap.String("email", entry.Email), zap.Error(err))
	}
}

// Login checks the password and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	token, err := utils.GenerateToken(user.ID, user.Email, s.secret, now)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn("Failed to record last login", zap.String("user_id", user.ID), zap.Error(err))
	} else {
		user.LastLoginDate = &now
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound
	}
	return user, err
}

// UpdateProfilePicture uploads an image and points the user's profile at it.
func (s *AuthService) UpdateProfilePicture(ctx context.Context, userID, filename, contentType string, body []byte) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: profile picture must be an image", ErrUnsupportedFile)
	}
	if s.uploader == nil {
		return "", ErrUpstreamUnavailable
	}
	url, err := s.uploader.Upload(ctx, profilePictureFolder, filename, contentType, body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if err := s.users.SetProfilePicture(ctx, userID, url); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return url, nil
}
