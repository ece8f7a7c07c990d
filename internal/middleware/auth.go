package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/dhruvi159/Voxhire-Project/internal/utils"
)

const identityKey contextKey = "identity"

// ErrCandidateMismatch is returned when the user-id header names someone
// other than the token's subject.
var ErrCandidateMismatch = errors.New("user-id header does not match the authenticated user")

// CandidateHeader lets the coding-round client name the candidate explicitly.
const CandidateHeader = "user-id"

// RequireAuth rejects requests without a valid bearer token and stores the identity.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := utils.VerifyToken(r, secret)
			if err != nil {
				utils.JSONError(w, http.StatusUnauthorized, "unauthorized", err.Error())
				return
			}
			id, err := utils.IdentityFromClaims(claims)
			if err != nil {
				utils.JSONError(w, http.StatusUnauthorized, "unauthorized", err.Error())
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFrom returns the identity stored by RequireAuth.
func IdentityFrom(r *http.Request) (utils.Identity, bool) {
	id, ok := r.Context().Value(identityKey).(utils.Identity)
	return id, ok
}

// CandidateID resolves the coding-round candidate: the token subject, which
// the user-id header may repeat but never override.
func CandidateID(r *http.Request) (string, error) {
	id, ok := IdentityFrom(r)
	if !ok {
		return "", nil
	}
	if h := r.Header.Get(CandidateHeader); h != "" && h != id.UserID {
		return "", ErrCandidateMismatch
	}
	return id.UserID, nil
}
