package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-shop-guard/internal/logger"
	"github.com/MKhiriev/go-shop-guard/internal/service"
	"github.com/MKhiriev/go-shop-guard/internal/utils"
	"github.com/MKhiriev/go-shop-guard/models"
)

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerFn       func(ctx context.Context, user models.User, password, address string) (models.User, error)
	loginFn          func(ctx context.Context, email, password, address string) (models.User, models.Token, error)
	loginMFAFn       func(ctx context.Context, email, password, code, address string) (models.User, models.Token, error)
	logoutFn         func(ctx context.Context, sessionID string) error
	changePasswordFn func(ctx context.Context, userID int64, sessionID, oldPassword, newPassword, address string) error
}

func (m *mockAuthService) Register(ctx context.Context, user models.User, password, address string) (models.User, error) {
	return m.registerFn(ctx, user, password, address)
}

func (m *mockAuthService) Login(ctx context.Context, email, password, address string) (models.User, models.Token, error) {
	return m.loginFn(ctx, email, password, address)
}

func (m *mockAuthService) LoginMFA(ctx context.Context, email, password, code, address string) (models.User, models.Token, error) {
	return m.loginMFAFn(ctx, email, password, code, address)
}

func (m *mockAuthService) Logout(ctx context.Context, sessionID string) error {
	return m.logoutFn(ctx, sessionID)
}

func (m *mockAuthService) ChangePassword(ctx context.Context, userID int64, sessionID, oldPassword, newPassword, address string) error {
	return m.changePasswordFn(ctx, userID, sessionID, oldPassword, newPassword, address)
}

// ─────────────────────────────────────────────
// Mock SessionGuard
// ─────────────────────────────────────────────

type mockSessionGuard struct {
	authenticateFn func(ctx context.Context, tokenString, originAddress string) (models.Session, models.User, error)
}

func (m *mockSessionGuard) Authenticate(ctx context.Context, tokenString, originAddress string) (models.Session, models.User, error) {
	return m.authenticateFn(ctx, tokenString, originAddress)
}

// ─────────────────────────────────────────────
// Mock MFAService
// ─────────────────────────────────────────────

type mockMFAService struct {
	setupFn   func(ctx context.Context, userID int64) (string, string, error)
	enableFn  func(ctx context.Context, userID int64, code, address string) error
	disableFn func(ctx context.Context, userID int64, address string) error
	verifyFn  func(secret, code string) bool
}

func (m *mockMFAService) Setup(ctx context.Context, userID int64) (string, string, error) {
	return m.setupFn(ctx, userID)
}

func (m *mockMFAService) Enable(ctx context.Context, userID int64, code, address string) error {
	return m.enableFn(ctx, userID, code, address)
}

func (m *mockMFAService) Disable(ctx context.Context, userID int64, address string) error {
	return m.disableFn(ctx, userID, address)
}

func (m *mockMFAService) Verify(secret, code string) bool {
	return m.verifyFn(secret, code)
}

// ─────────────────────────────────────────────
// Mock AccessPolicy
// ─────────────────────────────────────────────

// mockAccessPolicy allows everything unless authorizeFn is overridden.
type mockAccessPolicy struct {
	authorizeFn func(ctx context.Context, actorID int64, role models.Role, capability models.Capability, address string) error
}

func (m *mockAccessPolicy) Authorize(ctx context.Context, actorID int64, role models.Role, capability models.Capability, address string) error {
	if m.authorizeFn == nil {
		return nil
	}
	return m.authorizeFn(ctx, actorID, role, capability, address)
}

func (m *mockAccessPolicy) Allowed(models.Role, models.Capability) bool {
	return true
}

// ─────────────────────────────────────────────
// Mock AuditService
// ─────────────────────────────────────────────

type mockAuditService struct {
	recordDeniedFn func(ctx context.Context, actorID *int64, resourceType, resourceID, address string, detail *string) error
	listFn         func(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error)
}

func (m *mockAuditService) RecordDenied(ctx context.Context, actorID *int64, resourceType, resourceID, address string, detail *string) error {
	return m.recordDeniedFn(ctx, actorID, resourceType, resourceID, address, detail)
}

func (m *mockAuditService) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error) {
	return m.listFn(ctx, filter)
}

// ─────────────────────────────────────────────
// Mock ProfileService
// ─────────────────────────────────────────────

type mockProfileService struct {
	getProfileFn    func(ctx context.Context, userID int64) (models.User, error)
	updateProfileFn func(ctx context.Context, user models.User, address string) (models.User, error)
}

func (m *mockProfileService) GetProfile(ctx context.Context, userID int64) (models.User, error) {
	return m.getProfileFn(ctx, userID)
}

func (m *mockProfileService) UpdateProfile(ctx context.Context, user models.User, address string) (models.User, error) {
	return m.updateProfileFn(ctx, user, address)
}

// ─────────────────────────────────────────────
// Mock OrderService
// ─────────────────────────────────────────────

type mockOrderService struct {
	createOrderFn func(ctx context.Context, order models.Order, address string) (models.Order, error)
	getOrderFn    func(ctx context.Context, orderID, actorID int64, role models.Role, address string) (models.Order, error)
}

func (m *mockOrderService) CreateOrder(ctx context.Context, order models.Order, address string) (models.Order, error) {
	return m.createOrderFn(ctx, order, address)
}

func (m *mockOrderService) GetOrder(ctx context.Context, orderID, actorID int64, role models.Role, address string) (models.Order, error) {
	return m.getOrderFn(ctx, orderID, actorID, role, address)
}

// ─────────────────────────────────────────────
// Shared helpers
// ─────────────────────────────────────────────

// newTestHandlerWith builds a Handler around the given services with a
// nop logger.
func newTestHandlerWith(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()
	return NewHandler(svcs, logger.Nop())
}

// injectNopLogger puts a nop context-scoped logger into the request.
func injectNopLogger(r *http.Request) *http.Request {
	nop := logger.Nop()
	ctx := nop.Logger.WithContext(r.Context())
	return r.WithContext(ctx)
}

// injectIdentity stores the context values normally set by the session
// guard, letting handler tests skip the middleware chain.
func injectIdentity(r *http.Request, userID int64, sessionID string, role models.Role) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, utils.UserIDCtxKey, userID)
	ctx = context.WithValue(ctx, utils.SessionIDCtxKey, sessionID)
	ctx = context.WithValue(ctx, utils.RoleCtxKey, role)
	return r.WithContext(ctx)
}

// serve runs a single handler function against the request and returns the
// recorder.
func serve(handlerFn http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handlerFn.ServeHTTP(rr, injectNopLogger(req))
	return rr
}
