package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dhruvi159/Voxhire-Project/internal/middleware"
	"github.com/dhruvi159/Voxhire-Project/internal/models"
	"github.com/dhruvi159/Voxhire-Project/internal/services"
)

func TestRegisterHandlerSuccess(t *testing.T) {
	expires := time.Date(2024, 1, 10, 10, 10, 0, 0, time.UTC)
	auth := &fakeAuth{
		requestFn: func(_ context.Context, req *models.RegisterRequest) (time.Time, error) {
			assert.Equal(t, "a@x.com", req.Email)
			assert.Equal(t, models.RoleCandidate, req.Role)
			return expires, nil
		},
	}
	h := NewAuthHandler(auth, zap.NewNop())

	wrapped := middleware.ValidateRequest[models.RegisterRequest]()(http.HandlerFunc(h.Register))
	rec := performRequest(wrapped, `{"name":"Ann","email":" A@X.com ","password":"pw123456"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.RegisterResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.ExpiresAt.Equal(expires))
}

func TestRegisterHandlerDuplicate(t *testing.T) {
	auth := &fakeAuth{
		requestFn: func(context.Context, *models.RegisterRequest) (time.Time, error) {
			return time.Time{}, services.ErrDuplicateAccount
		},
	}
	h := NewAuthHandler(auth, zap.NewNop())

	wrapped := middleware.ValidateRequest[models.RegisterRequest]()(http.HandlerFunc(h.Register))
	rec := performRequest(wrapped, `{"name":"Ann","email":"a@x.com","password":"pw123456"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterHandlerRejectsShortPassword(t *testing.T) {
	h := NewAuthHandler(&fakeAuth{}, zap.NewNop())

	wrapped := middleware.ValidateRequest[models.RegisterRequest]()(http.HandlerFunc(h.Register))
	rec := performRequest(wrapped, `{"name":"Ann","email":"a@x.com","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyOTPHandler(t *testing.T) {
	auth := &fakeAuth{
		verifyFn: func(_ context.Context, email, code string) (*models.User, error) {
			if code != "123456" {
				return nil, services.ErrOtpMismatch
			}
			return &models.User{ID: "u1", Email: email, Role: models.RoleCandidate}, nil
		},
	}
	h := NewAuthHandler(auth, zap.NewNop())
	wrapped := middleware.ValidateRequest[models.VerifyOTPRequest]()(http.HandlerFunc(h.VerifyOTP))

	rec := performRequest(wrapped, `{"email":"a@x.com","otp":"654321"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var errResp models.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	assert.Equal(t, "otp_mismatch", errResp.Code)

	rec = performRequest(wrapped, `{"email":"a@x.com","otp":"123456"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	var msg models.MessageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&msg))
	assert.Equal(t, "Account created successfully", msg.Message)
}

func TestLoginHandler(t *testing.T) {
	auth := &fakeAuth{
		loginFn: func(_ context.Context, email, password string) (*models.AuthResponse, error) {
			if password != "pw123456" {
				return nil, services.ErrInvalidCredentials
			}
			return &models.AuthResponse{Token: "tok", User: &models.User{ID: "u1", Email: email}}, nil
		},
	}
	h := NewAuthHandler(auth, zap.NewNop())
	wrapped := middleware.ValidateRequest[models.LoginRequest]()(http.HandlerFunc(h.Login))

	rec := performRequest(wrapped, `{"email":"a@x.com","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = performRequest(wrapped, `{"email":"a@x.com","password":"pw123456"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "tok", resp.Token)
}

func TestProfileHandlerRequiresToken(t *testing.T) {
	h := NewAuthHandler(&fakeAuth{}, zap.NewNop())
	wrapped, _ := authed(t, h.Profile, "u1", "a@x.com")

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileHandler(t *testing.T) {
	auth := &fakeAuth{
		profileFn: func(_ context.Context, userID string) (*models.User, error) {
			return &models.User{ID: userID, Email: "a@x.com", Name: "Ann"}, nil
		},
	}
	h := NewAuthHandler(auth, zap.NewNop())
	wrapped, bearer := authed(t, h.Profile, "u1", "a@x.com")

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", bearer)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var user models.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&user))
	assert.Equal(t, "u1", user.ID)
}

func TestUploadProfilePictureHandler(t *testing.T) {
	auth := &fakeAuth{
		pictureFn: func(_ context.Context, userID, filename, contentType string, body []byte) (string, error) {
			assert.Equal(t, "u1", userID)
			assert.Equal(t, "me.png", filename)
			assert.Equal(t, "image/png", contentType)
			assert.Equal(t, []byte("png-bytes"), body)
			return "https://cdn/profile_pictures/me.png", nil
		},
	}
	h := NewAuthHandler(auth, zap.NewNop())
	wrapped, bearer := authed(t, h.UploadProfilePicture, "u1", "a@x.com")

	body, ct := multipartBody(t, "me.png", "image/png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/upload-profile-pic", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", bearer)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.ProfilePictureResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "https://cdn/profile_pictures/me.png", resp.ProfilePic)
}

func TestUploadProfilePictureWithoutFile(t *testing.T) {
	h := NewAuthHandler(&fakeAuth{}, zap.NewNop())
	wrapped, bearer := authed(t, h.UploadProfilePicture, "u1", "a@x.com")

	req := httptest.NewRequest(http.MethodPost, "/upload-profile-pic", nil)
	req.Header.Set("Authorization", bearer)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
