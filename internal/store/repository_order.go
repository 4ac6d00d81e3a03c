package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-shop-guard/internal/crypto"
	"github.com/MKhiriev/go-shop-guard/internal/logger"
	"github.com/MKhiriev/go-shop-guard/models"
)

// orderRepository is the SQL-backed implementation of [OrderRepository].
//
// The shipping address and every payment instrument field are sealed before
// insert and opened on read; the orders table never holds them in plaintext.
type orderRepository struct {
	logger *logger.Logger
	db     *DB
	codec  *crypto.FieldCodec
}

// NewOrderRepository constructs an [OrderRepository] backed by the provided
// database connection, field codec and logger.
func NewOrderRepository(db *DB, codec *crypto.FieldCodec, logger *logger.Logger) OrderRepository {
	logger.Debug().Msg("creating order repository")
	return &orderRepository{
		db:     db,
		codec:  codec,
		logger: logger,
	}
}

// CreateOrder seals the protected columns and persists a new order,
// returning the input populated with server-assigned fields.
func (r *orderRepository) CreateOrder(ctx context.Context, q Querier, order models.Order) (models.Order, error) {
	log := logger.FromContext(ctx)

	shippingEnc, err := r.codec.Seal(order.ShippingAddress)
	if err != nil {
		return models.Order{}, fmt.Errorf("sealing shipping address: %w", err)
	}
	cardNumberEnc, err := r.codec.SealOptional(order.Payment.CardNumber)
	if err != nil {
		return models.Order{}, fmt.Errorf("sealing card number: %w", err)
	}
	cardExpiryEnc, err := r.codec.SealOptional(order.Payment.CardExpiry)
	if err != nil {
		return models.Order{}, fmt.Errorf("sealing card expiry: %w", err)
	}
	cardCvvEnc, err := r.codec.SealOptional(order.Payment.CardCvv)
	if err != nil {
		return models.Order{}, fmt.Errorf("sealing card cvv: %w", err)
	}
	bankAccountEnc, err := r.codec.SealOptional(order.Payment.BankAccount)
	if err != nil {
		return models.Order{}, fmt.Errorf("sealing bank account: %w", err)
	}

	row := q.QueryRowContext(ctx, createOrder,
		order.UserID, order.OrderNumber, order.Status, order.TotalCents,
		shippingEnc, order.PaymentMethod,
		cardNumberEnc, cardExpiryEnc, cardCvvEnc, bankAccountEnc)

	if err := row.Scan(&order.OrderID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		log.Err(err).Str("func", "*orderRepository.CreateOrder").Msg("error: scanning error")
		return models.Order{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return order, nil
}

// GetOrderByID retrieves an order by its primary key, opening the sealed
// columns before returning.
//
// Error handling:
//   - No matching row → [ErrOrderNotFound].
//   - A sealed column fails to open → [ErrStorageIntegrity].
func (r *orderRepository) GetOrderByID(ctx context.Context, orderID int64) (models.Order, error) {
	log := logger.FromContext(ctx)

	var (
		order          models.Order
		shippingEnc    []byte
		cardNumberEnc  []byte
		cardExpiryEnc  []byte
		cardCvvEnc     []byte
		bankAccountEnc []byte
	)

	err := r.db.QueryRowContext(ctx, getOrderByID, orderID).Scan(
		&order.OrderID, &order.UserID, &order.OrderNumber, &order.Status, &order.TotalCents,
		&shippingEnc, &order.PaymentMethod,
		&cardNumberEnc, &cardExpiryEnc, &cardCvvEnc, &bankAccountEnc,
		&order.CreatedAt, &order.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*orderRepository.GetOrderByID").Msg("error: scanning error")
		return models.Order{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if order.ShippingAddress, err = r.codec.Open(shippingEnc); err != nil {
		return models.Order{}, fmt.Errorf("%w: shipping address for order %d", ErrStorageIntegrity, order.OrderID)
	}
	if order.Payment.CardNumber, err = r.codec.OpenOptional(cardNumberEnc); err != nil {
		return models.Order{}, fmt.Errorf("%w: card number for order %d", ErrStorageIntegrity, order.OrderID)
	}
	if order.Payment.CardExpiry, err = r.codec.OpenOptional(cardExpiryEnc); err != nil {
		return models.Order{}, fmt.Errorf("%w: card expiry for order %d", ErrStorageIntegrity, order.OrderID)
	}
	if order.Payment.CardCvv, err = r.codec.OpenOptional(cardCvvEnc); err != nil {
		return models.Order{}, fmt.Errorf("%w: card cvv for order %d", ErrStorageIntegrity, order.OrderID)
	}
	if order.Payment.BankAccount, err = r.codec.OpenOptional(bankAccountEnc); err != nil {
		return models.Order{}, fmt.Errorf("%w: bank account for order %d", ErrStorageIntegrity, order.OrderID)
	}

	return order, nil
}
