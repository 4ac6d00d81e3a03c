package http

import (
	"net"
	"net/http"

	"github.com/MKhiriev/go-shop-guard/internal/logger"
	"github.com/MKhiriev/go-shop-guard/internal/service"
)

type Handler struct {
	services *service.Services

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// clientAddress returns the transport-level origin of the request. Sessions
// are bound to this value, so it deliberately ignores client-supplied
// headers like X-Forwarded-For.
func clientAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
