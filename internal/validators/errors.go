package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID        = errors.New("invalid user ID")
	ErrEmptyEmail           = errors.New("email is required")
	ErrEmptyUsername        = errors.New("username is required")
	ErrInvalidRole          = errors.New("invalid role")
	ErrEmptyOrderNumber     = errors.New("order number is required")
	ErrNonPositiveTotal     = errors.New("order total must be positive")
	ErrEmptyShippingAddress = errors.New("shipping address is required")
	ErrEmptyPaymentMethod   = errors.New("payment method is required")
	ErrInvalidOrderStatus   = errors.New("invalid order status")
)
