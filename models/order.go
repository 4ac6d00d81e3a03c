// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// OrderStatus is the closed set of lifecycle states an order moves through.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is one of the enumerated order states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// PaymentInstrument holds the payment details captured at checkout.
// All fields are protected attributes, encrypted at the persistence
// boundary; a nil pointer means the field was never supplied (e.g. a card
// payment carries no bank account). The instrument is owned exclusively by
// its order and is immutable after creation.
type PaymentInstrument struct {
	CardNumber  *string `json:"card_number,omitempty"`
	CardExpiry  *string `json:"card_expiry,omitempty"`
	CardCvv     *string `json:"-"`
	BankAccount *string `json:"bank_account,omitempty"`
}

// Order represents a customer purchase. Business composition of the order
// (items, totals) is owned by the surrounding storefront; this model carries
// only what crosses the data-protection boundary: ownership, lifecycle state
// and the encrypted shipping and payment attributes.
type Order struct {
	// OrderID is the internal unique identifier of the order.
	OrderID int64 `json:"-"`

	// UserID is the owning account.
	UserID int64 `json:"-"`

	// OrderNumber is the public unique identifier of the order.
	OrderNumber string `json:"order_number"`

	Status OrderStatus `json:"status"`

	// TotalCents is the order total in minor currency units.
	TotalCents int64 `json:"total_cents"`

	// ShippingAddress is a protected attribute, encrypted at rest.
	ShippingAddress string `json:"shipping_address"`

	// PaymentMethod names the payment channel (e.g. "card",
	// "bank_transfer", "cash_on_delivery"). Non-sensitive.
	PaymentMethod string `json:"payment_method"`

	// Payment holds the encrypted payment details, if any.
	Payment PaymentInstrument `json:"payment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table associated with the
// Order model.
func (o Order) TableName() string {
	return "orders"
}
