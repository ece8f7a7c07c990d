package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/dhruvi159/Voxhire-Project/internal/middleware"
	"github.com/dhruvi159/Voxhire-Project/internal/models"
	"github.com/dhruvi159/Voxhire-Project/internal/utils"
)

type AuthService interface {
	RequestRegistration(ctx context.Context, req *models.RegisterRequest) (time.Time, error)
	VerifyRegistration(ctx context.Context, email, code string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfilePicture(ctx context.Context, userID, filename, contentType string, body []byte) (string, error)
}

type AuthHandler struct {
	auth   AuthService
	logger *zap.Logger
}

func NewAuthHandler(auth AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: utils.OrDefault(logger)}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.RegisterRequest](r)

	expiresAt, err := h.auth.RequestRegistration(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, "Registration", err)
		return
	}
	utils.JSON(w, http.StatusOK, models.RegisterResponse{
		Message:   "OTP sent to email",
		ExpiresAt: expiresAt,
	})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.VerifyOTPRequest](r)

	user, err := h.auth.VerifyRegistration(r.Context(), req.Email, req.OTP)
	if err != nil {
		writeServiceError(w, h.logger, "OTP verification", err)
		return
	}
	h.logger.Info("Account created", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	utils.JSON(w, http.StatusCreated, models.MessageResponse{Message: "Account created successfully"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.LoginRequest](r)

	resp, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, h.logger, "Login", err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFrom(r)
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}
	user, err := h.auth.Profile(r.Context(), id.UserID)
	if err != nil {
		writeServiceError(w, h.logger, "Profile lookup", err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

// UploadProfilePicture stores the multipart "file" image and records its URL on the user.
func (h *AuthHandler) UploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFrom(r)
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}
	file, err := readUpload(w, r)
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid_upload", err.Error())
		return
	}

	url, err := h.auth.UpdateProfilePicture(r.Context(), id.UserID, file.Filename, file.ContentType, file.Body)
	if err != nil {
		writeServiceError(w, h.logger, "Profile picture upload", err)
		return
	}
	utils.JSON(w, http.StatusOK, models.ProfilePictureResponse{ProfilePic: url})
}
