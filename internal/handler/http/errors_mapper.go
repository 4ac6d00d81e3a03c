package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-shop-guard/internal/service"
	"github.com/MKhiriev/go-shop-guard/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrAuthentication:      http.StatusUnauthorized,
	service.ErrSessionExpired:      http.StatusUnauthorized,
	service.ErrSessionInvalidated:  http.StatusUnauthorized,
	service.ErrMFANotConfigured:    http.StatusBadRequest,
	service.ErrPermissionDenied:    http.StatusForbidden,
	service.ErrTokenCreationFailed: http.StatusInternalServerError,

	store.ErrEmailAlreadyExists: http.StatusConflict,
	store.ErrUserNotFound:       http.StatusNotFound,
	store.ErrSessionNotFound:    http.StatusUnauthorized,
	store.ErrOrderNotFound:      http.StatusNotFound,
	store.ErrStorageIntegrity:   http.StatusInternalServerError,
	store.ErrAuditNotRecorded:   http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
