// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-shop-guard/internal/service"
	"github.com/MKhiriev/go-shop-guard/internal/store"
	"github.com/MKhiriev/go-shop-guard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubToken returns a models.Token with the given signed string.
func stubToken(signed string) models.Token {
	return models.Token{SignedString: signed}
}

// ─────────────────────────────────────────────
// register
// ─────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	var gotPassword, gotAddress string
	auth := &mockAuthService{
		registerFn: func(_ context.Context, u models.User, password, address string) (models.User, error) {
			gotPassword = password
			gotAddress = address
			u.UserID = 7
			u.Role = models.RoleCustomer
			u.Active = true
			return u, nil
		},
	}
	h := newTestHandlerWith(t, &service.Services{AuthService: auth})

	body := `{"email":"alice@example.com","username":"alice","password":"s3cret","first_name":"Alice"}`
	req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(body))
	req.RemoteAddr = "203.0.113.5:51514"
	rr := serve(h.register, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "s3cret", gotPassword)
	assert.Equal(t, "203.0.113.5", gotAddress)

	var got models.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, models.RoleCustomer, got.Role)
}

func TestRegister_InvalidJSON(t *testing.T) {
	h := newTestHandlerWith(t, &service.Services{AuthService: &mockAuthService{}})

	req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader("{not json"))
	rr := serve(h.register, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRegister_TableTest(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"invalid data → 400", service.ErrInvalidDataProvided, http.StatusBadRequest},
		{"duplicate email → 409", store.ErrEmailAlreadyExists, http.StatusConflict},
		{"storage failure → 500", store.ErrExecutingQuery, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &mockAuthService{
				registerFn: func(_ context.Context, _ models.User, _, _ string) (models.User, error) {
					return models.User{}, tt.serviceErr
				},
			}
			h := newTestHandlerWith(t, &service.Services{AuthService: auth})

			req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(`{"email":"a@b.c"}`))
			rr := serve(h.register, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, email, password, address string) (models.User, models.Token, error) {
			assert.Equal(t, "alice@example.com", email)
			assert.Equal(t, "s3cret", password)
			return models.User{Email: email, Role: models.RoleCustomer}, stubToken("signed.jwt.token"), nil
		},
	}
	h := newTestHandlerWith(t, &service.Services{AuthService: auth})

	body := `{"email":"alice@example.com","password":"s3cret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(body))
	rr := serve(h.login, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Bearer signed.jwt.token", rr.Header().Get("Authorization"))

	var resp loginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "signed.jwt.token", resp.Token)
}

// TestLogin_MFARequired verifies that a passing first factor on an
// MFA-enabled account yields a 200 with mfa_required instead of a token.
func TestLogin_MFARequired(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, _, _, _ string) (models.User, models.Token, error) {
			return models.User{}, models.Token{}, service.ErrMFARequired
		},
	}
	h := newTestHandlerWith(t, &service.Services{AuthService: auth})

	req := httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(`{"email":"a@b.c","password":"x"}`))
	rr := serve(h.login, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("Authorization"))

	var resp mfaRequiredResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.MFARequired)
}

func TestLogin_BadCredentials(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, _, _, _ string) (models.User, models.Token, error) {
			return models.User{}, models.Token{}, service.ErrAuthentication
		},
	}
	h := newTestHandlerWith(t, &service.Services{AuthService: auth})

	req := httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(`{"email":"a@b.c","password":"wrong"}`))
	rr := serve(h.login, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Empty(t, rr.Header().Get("Authorization"))
}

// ─────────────────────────────────────────────
// loginMFA
// ─────────────────────────────────────────────

func TestLoginMFA_Success(t *testing.T) {
	auth := &mockAuthService{
		loginMFAFn: func(_ context.Context, email, password, code, _ string) (models.User, models.Token, error) {
			assert.Equal(t, "123456", code)
			return models.User{Email: email}, stubToken("mfa.jwt.token"), nil
		},
	}
	h := newTestHandlerWith(t, &service.Services{AuthService: auth})

	body := `{"email":"a@b.c","password":"x","code":"123456"}`
	req := httptest.NewRequest(http.MethodPost, "/api/user/login/mfa", strings.NewReader(body))
	rr := serve(h.loginMFA, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Bearer mfa.jwt.token", rr.Header().Get("Authorization"))
}

func TestLoginMFA_WrongCode(t *testing.T) {
	auth := &mockAuthService{
		loginMFAFn: func(_ context.Context, _, _, _, _ string) (models.User, models.Token, error) {
			return models.User{}, models.Token{}, service.ErrAuthentication
		},
	}
	h := newTestHandlerWith(t, &service.Services{AuthService: auth})

	req := httptest.NewRequest(http.MethodPost, "/api/user/login/mfa", strings.NewReader(`{"email":"a@b.c","password":"x","code":"000000"}`))
	rr := serve(h.loginMFA, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

// ─────────────────────────────────────────────
// changePassword
// ─────────────────────────────────────────────

func TestChangePassword_HandlerSuccess(t *testing.T) {
	var gotUserID int64
	var gotSessionID, gotOld, gotNew string
	auth := &mockAuthService{
		changePasswordFn: func(_ context.Context, userID int64, sessionID, oldPassword, newPassword, _ string) error {
			gotUserID = userID
			gotSessionID = sessionID
			gotOld = oldPassword
			gotNew = newPassword
			return nil
		},
	}
	h := newTestHandlerWith(t, &service.Services{AuthService: auth})

	body := `{"old_password":"old-secret","new_password":"new-secret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/user/password", strings.NewReader(body))
	req = injectIdentity(req, 7, "session-1", models.RoleCustomer)
	rr := serve(h.changePassword, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, int64(7), gotUserID)
	assert.Equal(t, "session-1", gotSessionID)
	assert.Equal(t, "old-secret", gotOld)
	assert.Equal(t, "new-secret", gotNew)
}

func TestChangePassword_InvalidJSON(t *testing.T) {
	h := newTestHandlerWith(t, &service.Services{AuthService: &mockAuthService{}})

	req := httptest.NewRequest(http.MethodPost, "/api/user/password", strings.NewReader("{broken"))
	req = injectIdentity(req, 7, "session-1", models.RoleCustomer)
	rr := serve(h.changePassword, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestChangePassword_HandlerTableTest(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"empty password → 400", service.ErrInvalidDataProvided, http.StatusBadRequest},
		{"wrong current password → 401", service.ErrAuthentication, http.StatusUnauthorized},
		{"storage failure → 500", store.ErrExecutingQuery, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &mockAuthService{
				changePasswordFn: func(_ context.Context, _ int64, _, _, _, _ string) error {
					return tt.serviceErr
				},
			}
			h := newTestHandlerWith(t, &service.Services{AuthService: auth})

			req := httptest.NewRequest(http.MethodPost, "/api/user/password", strings.NewReader(`{"old_password":"a","new_password":"b"}`))
			req = injectIdentity(req, 7, "session-1", models.RoleCustomer)
			rr := serve(h.changePassword, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestChangePassword_NoIdentityInContext(t *testing.T) {
	h := newTestHandlerWith(t, &service.Services{AuthService: &mockAuthService{}})

	req := httptest.NewRequest(http.MethodPost, "/api/user/password", strings.NewReader(`{"old_password":"a","new_password":"b"}`))
	rr := serve(h.changePassword, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

// ─────────────────────────────────────────────
// logout
// ─────────────────────────────────────────────

func TestLogout_Success(t *testing.T) {
	var gotSessionID string
	auth := &mockAuthService{
		logoutFn: func(_ context.Context, sessionID string) error {
			gotSessionID = sessionID
			return nil
		},
	}
	h := newTestHandlerWith(t, &service.Services{AuthService: auth})

	req := httptest.NewRequest(http.MethodPost, "/api/user/logout", nil)
	req = injectIdentity(req, 7, "session-1", models.RoleCustomer)
	rr := serve(h.logout, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "session-1", gotSessionID)
}

func TestLogout_NoIdentityInContext(t *testing.T) {
	h := newTestHandlerWith(t, &service.Services{AuthService: &mockAuthService{}})

	req := httptest.NewRequest(http.MethodPost, "/api/user/logout", nil)
	rr := serve(h.logout, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
