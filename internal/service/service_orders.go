package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-shop-guard/internal/logger"
	"github.com/MKhiriev/go-shop-guard/internal/store"
	"github.com/MKhiriev/go-shop-guard/internal/utils"
	"github.com/MKhiriev/go-shop-guard/internal/validators"
	"github.com/MKhiriev/go-shop-guard/models"
)

// orderService is the concrete implementation of OrderService.
//
// Orders commit together with their CREATE audit entry. Reads enforce
// ownership: a customer only sees their own orders, and a failed ownership
// check is recorded as a denial just like a capability miss.
type orderService struct {
	db              store.Database
	orderRepository store.OrderRepository
	auditRepository store.AuditRepository
	audit           AuditService
	uuidGenerator   *utils.UUIDGenerator
	validator       validators.Validator
	logger          *logger.Logger
}

// NewOrderService constructs an OrderService over the given repository.
func NewOrderService(db store.Database, orders store.OrderRepository, auditRepo store.AuditRepository, audit AuditService, uuidGenerator *utils.UUIDGenerator, logger *logger.Logger) OrderService {
	return &orderService{
		db:              db,
		orderRepository: orders,
		auditRepository: auditRepo,
		audit:           audit,
		uuidGenerator:   uuidGenerator,
		validator:       validators.NewEntityValidator(),
		logger:          logger,
	}
}

// CreateOrder validates and persists a new order, appending the CREATE audit
// entry in the same transaction. The audit detail carries only non-protected
// attributes; payment data and the shipping address never reach the log.
//
// The order number is minted server-side as a UUID; any caller-supplied
// value is discarded.
func (s *orderService) CreateOrder(ctx context.Context, order models.Order, address string) (models.Order, error) {
	log := logger.FromContext(ctx)

	order.OrderNumber = s.uuidGenerator.Generate()
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	if err := s.validator.Validate(ctx, order); err != nil {
		log.Error().Err(err).Msg("invalid order data provided")
		return models.Order{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	var created models.Order
	err := s.db.WithinTransaction(ctx, func(q store.Querier) error {
		var txErr error
		created, txErr = s.orderRepository.CreateOrder(ctx, q, order)
		if txErr != nil {
			return txErr
		}

		detail, txErr := json.Marshal(map[string]any{
			"order_number":   created.OrderNumber,
			"status":         created.Status,
			"total_cents":    created.TotalCents,
			"payment_method": created.PaymentMethod,
		})
		if txErr != nil {
			return txErr
		}
		entry := models.AuditEntry{
			ActorID:      &created.UserID,
			ResourceType: created.TableName(),
			ResourceID:   fmt.Sprintf("%d", created.OrderID),
			Action:       models.AuditActionCreate,
			Detail:       strPointer(string(detail)),
			Address:      address,
			Timestamp:    time.Now(),
		}
		_, txErr = s.auditRepository.Append(ctx, q, entry)
		return txErr
	})
	if err != nil {
		log.Err(err).Int64("userID", order.UserID).Msg("order creation ended with error")
		return models.Order{}, fmt.Errorf("order creation ended with error: %w", err)
	}

	return created, nil
}

// GetOrder returns the order with payment fields decrypted. Customers may
// only read their own orders; admins may read any. A denied read records an
// ACCESS-DENIED entry and returns [ErrPermissionDenied]; the transport layer
// answers it exactly like a missing order so sequential order identifiers do
// not reveal which orders exist.
func (s *orderService) GetOrder(ctx context.Context, orderID, actorID int64, role models.Role, address string) (models.Order, error) {
	log := logger.FromContext(ctx)

	order, err := s.orderRepository.GetOrderByID(ctx, orderID)
	if err != nil {
		return models.Order{}, fmt.Errorf("order lookup failed: %w", err)
	}

	if order.UserID != actorID && role != models.RoleAdmin {
		log.Warn().Int64("orderID", orderID).Int64("actorID", actorID).Msg("order read denied for non-owner")
		if auditErr := s.audit.RecordDenied(ctx, &actorID, order.TableName(), fmt.Sprintf("%d", orderID), address, nil); auditErr != nil {
			return models.Order{}, fmt.Errorf("recording access denial: %w", auditErr)
		}
		return models.Order{}, ErrPermissionDenied
	}

	return order, nil
}
