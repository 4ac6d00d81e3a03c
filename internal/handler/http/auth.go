package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-shop-guard/internal/app"
	"github.com/MKhiriev/go-shop-guard/internal/logger"
	"github.com/MKhiriev/go-shop-guard/internal/service"
	"github.com/MKhiriev/go-shop-guard/internal/store"
	"github.com/MKhiriev/go-shop-guard/internal/utils"
	"github.com/MKhiriev/go-shop-guard/models"
)

// registerRequest carries the registration payload. The password travels
// only in this transient request value and is hashed inside the service; it
// never appears on the [models.User] model.
type registerRequest struct {
	Email     string  `json:"email"`
	Username  string  `json:"username"`
	Password  string  `json:"password"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`

	// Code is the TOTP code; only read by the MFA login endpoint.
	Code string `json:"code,omitempty"`
}

// loginResponse is returned once the full credential check has passed. The
// token is duplicated in the "Authorization" response header.
type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// mfaRequiredResponse tells a client holding valid first-factor credentials
// to repeat the login through the MFA endpoint.
type mfaRequiredResponse struct {
	MFARequired bool `json:"mfa_required"`
}

// changePasswordRequest carries the password rotation payload. Both values
// live only in this transient request; the new password is hashed inside
// the service.
type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	user := models.User{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
	}

	registeredUser, err := h.services.AuthService.Register(ctx, user, req.Password, clientAddress(r))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrEmailAlreadyExists):
			log.Err(err).Msg("email already exists")
			http.Error(w, app.MsgEmailAlreadyExists, http.StatusConflict)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, registeredUser, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	user, token, err := h.services.AuthService.Login(ctx, req.Email, req.Password, clientAddress(r))
	if err != nil {
		// The first factor passed but the account demands a TOTP code:
		// point the client at the MFA login endpoint instead of failing.
		if errors.Is(err, service.ErrMFARequired) {
			utils.WriteJSON(w, mfaRequiredResponse{MFARequired: true}, http.StatusOK)
			return
		}

		status := statusFromError(err)
		log.Err(err).Msg("login rejected")
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, loginResponse{Token: token.SignedString, User: user}, http.StatusOK)
}

func (h *Handler) loginMFA(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	user, token, err := h.services.AuthService.LoginMFA(ctx, req.Email, req.Password, req.Code, clientAddress(r))
	if err != nil {
		status := statusFromError(err)
		log.Err(err).Msg("mfa login rejected")
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, loginResponse{Token: token.SignedString, User: user}, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, okUser := utils.GetUserIDFromContext(ctx)
	sessionID, okSession := utils.GetSessionIDFromContext(ctx)
	if !okUser || !okSession {
		log.Error().Msg("password change reached without session guard")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	err := h.services.AuthService.ChangePassword(ctx, userID, sessionID, req.OldPassword, req.NewPassword, clientAddress(r))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		default:
			status := statusFromError(err)
			log.Err(err).Msg("password change rejected")
			http.Error(w, http.StatusText(status), status)
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	sessionID, ok := utils.GetSessionIDFromContext(ctx)
	if !ok {
		log.Error().Msg("logout reached without session guard")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.AuthService.Logout(ctx, sessionID); err != nil {
		status := statusFromError(err)
		log.Err(err).Msg("logout failed")
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
