package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/dhruvi159/Voxhire-Project/internal/judge"
	"github.com/dhruvi159/Voxhire-Project/internal/services"
	"github.com/dhruvi159/Voxhire-Project/internal/utils"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// checked in order; the first match wins
var errorMappings = []errorMapping{
	{services.ErrDuplicateAccount, http.StatusConflict, "duplicate_account"},
	{services.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{services.ErrOtpExpired, http.StatusBadRequest, "otp_expired"},
	{services.ErrOtpMismatch, http.StatusBadRequest, "otp_mismatch"},
	{services.ErrNoCandidates, http.StatusBadRequest, "no_candidates"},
	{services.ErrEmptyUploadedFile, http.StatusBadRequest, "empty_uploaded_file"},
	{services.ErrUnsupportedFile, http.StatusUnsupportedMediaType, "unsupported_file"},
	{services.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{services.ErrNotFound, http.StatusNotFound, "not_found"},
	{judge.ErrExecutionToken, http.StatusBadGateway, "execution_token_error"},
	{judge.ErrExecutionTimeout, http.StatusGatewayTimeout, "execution_timeout"},
	{services.ErrUpstreamUnavailable, http.StatusServiceUnavailable, "upstream_unavailable"},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "timeout"},
	{judge.ErrUnavailable, http.StatusServiceUnavailable, "upstream_unavailable"},
}

// writeServiceError maps a service error onto the uniform error payload.
// Unknown errors are logged and reported as 500 without their detail.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, op string, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			if m.status >= http.StatusInternalServerError {
				logger.Warn(op+" failed", zap.String("code", m.code), zap.Error(err))
			}
			utils.JSONError(w, m.status, m.code, m.target.Error())
			return
		}
	}
	logger.Error(op+" failed", zap.Error(err))
	utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
}
