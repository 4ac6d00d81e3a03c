package validators

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-shop-guard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOrder() models.Order {
	return models.Order{
		UserID:          42,
		OrderNumber:     "ORD-1001",
		TotalCents:      12999,
		ShippingAddress: "221B Baker Street",
		PaymentMethod:   "card",
		Status:          models.OrderStatusPending,
	}
}

func TestEntityValidator_User_TableTest(t *testing.T) {
	v := NewEntityValidator()

	tests := []struct {
		name    string
		mutate  func(u *models.User)
		fields  []string
		wantErr error
	}{
		{
			name:   "valid user, all fields",
			mutate: func(u *models.User) {},
		},
		{
			name:    "zero user ID",
			mutate:  func(u *models.User) { u.UserID = 0 },
			wantErr: ErrInvalidUserID,
		},
		{
			name:    "empty email",
			mutate:  func(u *models.User) { u.Email = "" },
			wantErr: ErrEmptyEmail,
		},
		{
			name:    "empty username",
			mutate:  func(u *models.User) { u.Username = "" },
			wantErr: ErrEmptyUsername,
		},
		{
			name:    "unknown role",
			mutate:  func(u *models.User) { u.Role = "superuser" },
			wantErr: ErrInvalidRole,
		},
		{
			name:   "scoped validation skips unset fields",
			mutate: func(u *models.User) { u.UserID = 0; u.Email = "" },
			fields: []string{FieldUsername, FieldRole},
		},
		{
			name:    "unknown field name",
			mutate:  func(u *models.User) {},
			fields:  []string{"password"},
			wantErr: ErrUnknownField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := models.User{
				UserID:   42,
				Email:    "alice@example.com",
				Username: "alice",
				Role:     models.RoleCustomer,
			}
			tt.mutate(&user)

			err := v.Validate(context.Background(), user, tt.fields...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEntityValidator_Order_TableTest(t *testing.T) {
	v := NewEntityValidator()

	tests := []struct {
		name    string
		mutate  func(o *models.Order)
		wantErr error
	}{
		{
			name:   "valid order",
			mutate: func(o *models.Order) {},
		},
		{
			name:    "missing owner",
			mutate:  func(o *models.Order) { o.UserID = 0 },
			wantErr: ErrInvalidUserID,
		},
		{
			name:    "empty order number",
			mutate:  func(o *models.Order) { o.OrderNumber = "" },
			wantErr: ErrEmptyOrderNumber,
		},
		{
			name:    "zero total",
			mutate:  func(o *models.Order) { o.TotalCents = 0 },
			wantErr: ErrNonPositiveTotal,
		},
		{
			name:    "negative total",
			mutate:  func(o *models.Order) { o.TotalCents = -100 },
			wantErr: ErrNonPositiveTotal,
		},
		{
			name:    "empty shipping address",
			mutate:  func(o *models.Order) { o.ShippingAddress = "" },
			wantErr: ErrEmptyShippingAddress,
		},
		{
			name:    "empty payment method",
			mutate:  func(o *models.Order) { o.PaymentMethod = "" },
			wantErr: ErrEmptyPaymentMethod,
		},
		{
			name:    "unknown status",
			mutate:  func(o *models.Order) { o.Status = "teleported" },
			wantErr: ErrInvalidOrderStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := validOrder()
			tt.mutate(&order)

			err := v.Validate(context.Background(), order)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEntityValidator_PointerAndUnsupported(t *testing.T) {
	v := NewEntityValidator()

	order := validOrder()
	require.NoError(t, v.Validate(context.Background(), &order))

	err := v.Validate(context.Background(), "not an entity")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
