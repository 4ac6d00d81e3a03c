package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-shop-guard/internal/logger"
	"github.com/MKhiriev/go-shop-guard/internal/utils"
)

// sessionGuard is the HTTP middleware guarding every authenticated route.
//
// It extracts the bearer token from the "Authorization" header and resolves
// it to a server-side session via [service.SessionGuard.Authenticate], which
// verifies the token signature, the session's validity, its idle and
// absolute expiry, the origin binding, and the account's active flag. On
// success the verified user ID, session ID and role are stored in the
// request context under [utils.UserIDCtxKey], [utils.SessionIDCtxKey] and
// [utils.RoleCtxKey] before delegating to the next handler.
//
// Identity and role are taken exclusively from the server-side records the
// guard returns; nothing inside the token is trusted beyond the session
// identifier it points at.
//
// Rejections carry the status the resolved error maps to (401 for
// authentication and session failures) and are logged with the
// context-scoped logger.
func (h *Handler) sessionGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		session, user, err := h.services.SessionGuard.Authenticate(ctx, tokenString, clientAddress(r))
		if err != nil {
			status := statusFromError(err)
			log.Err(err).Msg("request rejected by session guard")
			http.Error(w, http.StatusText(status), status)
			return
		}

		// Store the verified identity in the context so that downstream
		// handlers never have to touch the token again.
		ctx = context.WithValue(ctx, utils.UserIDCtxKey, user.UserID)
		ctx = context.WithValue(ctx, utils.SessionIDCtxKey, session.SessionID)
		ctx = context.WithValue(ctx, utils.RoleCtxKey, user.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value.
//
// The header is expected to follow the standard format:
//
//	Authorization: <scheme> <token>
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] — if the header contains fewer than
//     two space-separated parts (i.e. the token is missing entirely).
//   - [ErrEmptyToken] — if the second part exists but is an empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
