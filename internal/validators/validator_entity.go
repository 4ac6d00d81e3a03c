package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-shop-guard/models"
)

const (
	FieldUserID          = "user_id"
	FieldEmail           = "email"
	FieldUsername        = "username"
	FieldRole            = "role"
	FieldOrderNumber     = "order_number"
	FieldTotalCents      = "total_cents"
	FieldShippingAddress = "shipping_address"
	FieldPaymentMethod   = "payment_method"
	FieldOrderStatus     = "status"
)

// EntityValidator validates the domain entities crossing the service
// boundary: user accounts and orders. Protected attributes (phone, address,
// payment details) are deliberately not validated here: a nil pointer means
// "absent" and any supplied value, including the empty string, is legal.
type EntityValidator struct {
}

func NewEntityValidator() Validator {
	return &EntityValidator{}
}

func (v *EntityValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.User:
		return v.validateUser(ctx, value, fields...)
	case *models.User:
		return v.validateUser(ctx, *value, fields...)

	case models.Order:
		return v.validateOrder(ctx, value, fields...)
	case *models.Order:
		return v.validateOrder(ctx, *value, fields...)

	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *EntityValidator) validateUser(_ context.Context, user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldEmail, FieldUsername, FieldRole}
	}

	for _, field := range fields {
		switch field {
		case FieldUserID:
			if user.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldEmail:
			if user.Email == "" {
				return ErrEmptyEmail
			}
		case FieldUsername:
			if user.Username == "" {
				return ErrEmptyUsername
			}
		case FieldRole:
			if !user.Role.Valid() {
				return ErrInvalidRole
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}

	return nil
}

func (v *EntityValidator) validateOrder(_ context.Context, order models.Order, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldOrderNumber, FieldTotalCents, FieldShippingAddress, FieldPaymentMethod, FieldOrderStatus}
	}

	for _, field := range fields {
		switch field {
		case FieldUserID:
			if order.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldOrderNumber:
			if order.OrderNumber == "" {
				return ErrEmptyOrderNumber
			}
		case FieldTotalCents:
			if order.TotalCents <= 0 {
				return ErrNonPositiveTotal
			}
		case FieldShippingAddress:
			if order.ShippingAddress == "" {
				return ErrEmptyShippingAddress
			}
		case FieldPaymentMethod:
			if order.PaymentMethod == "" {
				return ErrEmptyPaymentMethod
			}
		case FieldOrderStatus:
			if !order.Status.Valid() {
				return ErrInvalidOrderStatus
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}

	return nil
}
