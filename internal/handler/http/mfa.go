package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-shop-guard/internal/app"
	"github.com/MKhiriev/go-shop-guard/internal/logger"
	"github.com/MKhiriev/go-shop-guard/internal/service"
	"github.com/MKhiriev/go-shop-guard/internal/utils"
)

// mfaSetupResponse returns the freshly generated TOTP secret and its
// otpauth:// provisioning URL. This is the only moment the secret crosses
// the trust boundary; afterwards it lives encrypted at rest.
type mfaSetupResponse struct {
	Secret          string `json:"secret"`
	ProvisioningURL string `json:"provisioning_url"`
}

type mfaEnableRequest struct {
	Code string `json:"code"`
}

func (h *Handler) mfaSetup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("mfa setup reached without session guard")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	secret, provisioningURL, err := h.services.MFAService.Setup(ctx, userID)
	if err != nil {
		status := statusFromError(err)
		log.Err(err).Msg("error occurred during mfa setup")
		http.Error(w, http.StatusText(status), status)
		return
	}

	utils.WriteJSON(w, mfaSetupResponse{Secret: secret, ProvisioningURL: provisioningURL}, http.StatusOK)
}

func (h *Handler) mfaEnable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("mfa enable reached without session guard")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req mfaEnableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	if err := h.services.MFAService.Enable(ctx, userID, req.Code, clientAddress(r)); err != nil {
		switch {
		case errors.Is(err, service.ErrAuthentication):
			log.Err(err).Msg("mfa enable rejected: code mismatch")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		case errors.Is(err, service.ErrMFANotConfigured):
			log.Err(err).Msg("mfa enable rejected: no pending secret")
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		default:
			status := statusFromError(err)
			log.Err(err).Msg("error occurred during mfa enable")
			http.Error(w, http.StatusText(status), status)
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) mfaDisable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("mfa disable reached without session guard")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.MFAService.Disable(ctx, userID, clientAddress(r)); err != nil {
		status := statusFromError(err)
		log.Err(err).Msg("error occurred during mfa disable")
		http.Error(w, http.StatusText(status), status)
		return
	}

	// Disabling the second factor invalidated every session of the user,
	// including the one that made this request.
	w.WriteHeader(http.StatusNoContent)
}
