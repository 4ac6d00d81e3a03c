package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-shop-guard/internal/app"
	"github.com/MKhiriev/go-shop-guard/internal/logger"
	"github.com/MKhiriev/go-shop-guard/internal/service"
	"github.com/MKhiriev/go-shop-guard/internal/utils"
	"github.com/MKhiriev/go-shop-guard/models"
	"github.com/go-chi/chi/v5"
)

// createOrderRequest carries the checkout payload. The CVV needs its own
// field because [models.PaymentInstrument] never serializes it back out.
// The order number is not accepted from clients; the service mints it.
type createOrderRequest struct {
	TotalCents      int64   `json:"total_cents"`
	ShippingAddress string  `json:"shipping_address"`
	PaymentMethod   string  `json:"payment_method"`
	CardNumber      *string `json:"card_number,omitempty"`
	CardExpiry      *string `json:"card_expiry,omitempty"`
	CardCvv         *string `json:"card_cvv,omitempty"`
	BankAccount     *string `json:"bank_account,omitempty"`
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("order creation reached without session guard")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	order := models.Order{
		UserID:          userID,
		TotalCents:      req.TotalCents,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Payment: models.PaymentInstrument{
			CardNumber:  req.CardNumber,
			CardExpiry:  req.CardExpiry,
			CardCvv:     req.CardCvv,
			BankAccount: req.BankAccount,
		},
	}

	createdOrder, err := h.services.OrderService.CreateOrder(ctx, order, clientAddress(r))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		default:
			status := statusFromError(err)
			log.Err(err).Msg("unexpected error occurred during order creation")
			http.Error(w, http.StatusText(status), status)
			return
		}
	}

	utils.WriteJSON(w, createdOrder, http.StatusCreated)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, okUser := utils.GetUserIDFromContext(ctx)
	role, okRole := utils.GetRoleFromContext(ctx)
	if !okUser || !okRole {
		log.Error().Msg("order read reached without session guard")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		log.Err(err).Msg("invalid order identifier")
		http.Error(w, app.MsgInvalidOrderIdentifier, http.StatusBadRequest)
		return
	}

	order, err := h.services.OrderService.GetOrder(ctx, orderID, userID, role, clientAddress(r))
	if err != nil {
		// A non-owner gets the same answer as a missing order: identifiers
		// are sequential and must not reveal which orders exist.
		if errors.Is(err, service.ErrPermissionDenied) {
			log.Warn().Int64("orderID", orderID).Msg("order read denied")
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		status := statusFromError(err)
		log.Err(err).Msg("order read rejected")
		http.Error(w, http.StatusText(status), status)
		return
	}

	utils.WriteJSON(w, order, http.StatusOK)
}
