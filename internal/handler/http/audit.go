package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/go-shop-guard/internal/app"
	"github.com/MKhiriev/go-shop-guard/internal/logger"
	"github.com/MKhiriev/go-shop-guard/internal/utils"
	"github.com/MKhiriev/go-shop-guard/models"
)

// listAudit serves the administrative audit-log read. Filters arrive as
// query parameters: actor_id, resource_type, resource_id, from, to
// (RFC 3339) and limit. Unset parameters leave the corresponding filter
// dimension unconstrained.
func (h *Handler) listAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	filter, err := auditFilterFromQuery(r)
	if err != nil {
		log.Err(err).Msg("invalid audit filter")
		http.Error(w, app.MsgInvalidAuditFilter, http.StatusBadRequest)
		return
	}

	entries, err := h.services.AuditService.List(ctx, filter)
	if err != nil {
		status := statusFromError(err)
		log.Err(err).Msg("error occurred during reading audit log")
		http.Error(w, http.StatusText(status), status)
		return
	}

	utils.WriteJSON(w, entries, http.StatusOK)
}

func auditFilterFromQuery(r *http.Request) (models.AuditFilter, error) {
	query := r.URL.Query()
	var filter models.AuditFilter

	if raw := query.Get("actor_id"); raw != "" {
		actorID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return models.AuditFilter{}, err
		}
		filter.ActorID = &actorID
	}

	filter.ResourceType = query.Get("resource_type")
	filter.ResourceID = query.Get("resource_id")

	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return models.AuditFilter{}, err
		}
		filter.From = from
	}

	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return models.AuditFilter{}, err
		}
		filter.To = to
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return models.AuditFilter{}, err
		}
		filter.Limit = limit
	}

	return filter, nil
}
