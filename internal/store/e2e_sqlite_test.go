package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-shop-guard/internal/config"
	"github.com/MKhiriev/go-shop-guard/internal/logger"
	"github.com/MKhiriev/go-shop-guard/models"
)

// The goose migrations are written against PostgreSQL (BIGSERIAL, BYTEA), so
// this end-to-end suite carries its own equivalent SQLite schema. Statements
// in sql_queries.go run unchanged on both engines.
const sqliteSchema = `
CREATE TABLE users (
    user_id        INTEGER PRIMARY KEY AUTOINCREMENT,
    email          TEXT NOT NULL UNIQUE,
    username       TEXT NOT NULL UNIQUE,
    password_hash  TEXT NOT NULL,
    first_name     TEXT NOT NULL DEFAULT '',
    last_name      TEXT NOT NULL DEFAULT '',
    role           TEXT NOT NULL DEFAULT 'customer',
    active         BOOLEAN NOT NULL DEFAULT TRUE,
    phone_enc      BLOB,
    address_enc    BLOB,
    mfa_enabled    BOOLEAN NOT NULL DEFAULT FALSE,
    mfa_secret_enc BLOB,
    created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE sessions (
    session_id    TEXT PRIMARY KEY,
    user_id       INTEGER NOT NULL REFERENCES users (user_id),
    bound_address TEXT NOT NULL,
    created_at    DATETIME NOT NULL,
    last_seen     DATETIME NOT NULL,
    valid         BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE orders (
    order_id             INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id              INTEGER NOT NULL REFERENCES users (user_id),
    order_number         TEXT NOT NULL UNIQUE,
    status               TEXT NOT NULL DEFAULT 'pending',
    total_cents          INTEGER NOT NULL,
    shipping_address_enc BLOB NOT NULL,
    payment_method       TEXT NOT NULL,
    card_number_enc      BLOB,
    card_expiry_enc      BLOB,
    card_cvv_enc         BLOB,
    bank_account_enc     BLOB,
    created_at           DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at           DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE audit_logs (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    actor_id      INTEGER,
    resource_type TEXT NOT NULL,
    resource_id   TEXT NOT NULL,
    action        TEXT NOT NULL,
    detail        TEXT,
    address       TEXT NOT NULL DEFAULT '',
    ts            DATETIME NOT NULL
);
`

func newSQLiteStorages(t *testing.T) (*DB, Storages) {
	t.Helper()

	ctx := context.Background()
	db, err := NewConnectSQLite(ctx, config.DB{DSN: ":memory:"}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ExecContext(ctx, sqliteSchema)
	require.NoError(t, err)

	return db, NewStorages(db, newTestCodec(t), logger.Nop())
}

func seedUser(t *testing.T, db *DB, storages Storages, phone, address *string) models.User {
	t.Helper()

	user, err := storages.UserRepository.CreateUser(context.Background(), db, models.User{
		Email:        "alice@example.com",
		Username:     "alice",
		PasswordHash: "$2a$10$hash",
		FirstName:    "Alice",
		Role:         models.RoleCustomer,
		Active:       true,
		Phone:        phone,
		Address:      address,
	})
	require.NoError(t, err)
	return user
}

// TestSQLite_ProtectedAttributesAtRest drives the full write path into a
// real database and checks the at-rest guarantee: protected attributes
// round-trip intact while their stored bytes carry no plaintext.
func TestSQLite_ProtectedAttributesAtRest(t *testing.T) {
	db, storages := newSQLiteStorages(t)
	ctx := context.Background()

	phone := "+1-555-0100"
	address := "221B Baker Street"
	created := seedUser(t, db, storages, &phone, &address)
	require.NotZero(t, created.UserID)

	reloaded, err := storages.UserRepository.GetUserByID(ctx, created.UserID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.Phone)
	assert.Equal(t, phone, *reloaded.Phone)
	require.NotNil(t, reloaded.Address)
	assert.Equal(t, address, *reloaded.Address)

	var phoneEnc, addressEnc []byte
	err = db.QueryRowContext(ctx, `SELECT phone_enc, address_enc FROM users WHERE user_id = $1`, created.UserID).
		Scan(&phoneEnc, &addressEnc)
	require.NoError(t, err)

	assert.NotContains(t, string(phoneEnc), "555-0100")
	assert.NotContains(t, string(addressEnc), "Baker")
	// nonce (12) + tag (16) overhead on top of the plaintext
	assert.Greater(t, len(phoneEnc), len(phone))
}

// TestSQLite_TamperedColumnFailsClosed flips bytes in a stored ciphertext
// and expects the read to surface an integrity failure, not data.
func TestSQLite_TamperedColumnFailsClosed(t *testing.T) {
	db, storages := newSQLiteStorages(t)
	ctx := context.Background()

	phone := "+1-555-0100"
	created := seedUser(t, db, storages, &phone, nil)

	_, err := db.ExecContext(ctx, `UPDATE users SET phone_enc = X'00112233445566778899AABBCCDDEEFF0011223344556677' WHERE user_id = $1`, created.UserID)
	require.NoError(t, err)

	_, err = storages.UserRepository.GetUserByID(ctx, created.UserID)
	assert.ErrorIs(t, err, ErrStorageIntegrity)
}

// TestSQLite_OrderPaymentAtRest checks that every payment attribute of an
// order is sealed in storage and opens back to the original values.
func TestSQLite_OrderPaymentAtRest(t *testing.T) {
	db, storages := newSQLiteStorages(t)
	ctx := context.Background()

	owner := seedUser(t, db, storages, nil, nil)

	cardNumber := "4111111111111111"
	cardExpiry := "12/30"
	cardCvv := "123"
	created, err := storages.OrderRepository.CreateOrder(ctx, db, models.Order{
		UserID:          owner.UserID,
		OrderNumber:     "ORD-1001",
		Status:          models.OrderStatusPending,
		TotalCents:      12999,
		ShippingAddress: "221B Baker Street",
		PaymentMethod:   "card",
		Payment: models.PaymentInstrument{
			CardNumber: &cardNumber,
			CardExpiry: &cardExpiry,
			CardCvv:    &cardCvv,
		},
	})
	require.NoError(t, err)

	reloaded, err := storages.OrderRepository.GetOrderByID(ctx, created.OrderID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.Payment.CardNumber)
	assert.Equal(t, cardNumber, *reloaded.Payment.CardNumber)
	require.NotNil(t, reloaded.Payment.CardCvv)
	assert.Equal(t, cardCvv, *reloaded.Payment.CardCvv)
	assert.Nil(t, reloaded.Payment.BankAccount)

	var shippingEnc, cardEnc []byte
	err = db.QueryRowContext(ctx, `SELECT shipping_address_enc, card_number_enc FROM orders WHERE order_id = $1`, created.OrderID).
		Scan(&shippingEnc, &cardEnc)
	require.NoError(t, err)
	assert.NotContains(t, string(shippingEnc), "Baker")
	assert.NotContains(t, string(cardEnc), "4111")
}

// TestSQLite_SessionInvalidateIsCAS verifies that only one caller observes
// the valid -> invalid flip on a real database.
func TestSQLite_SessionInvalidateIsCAS(t *testing.T) {
	db, storages := newSQLiteStorages(t)
	ctx := context.Background()

	owner := seedUser(t, db, storages, nil, nil)
	now := time.Now().UTC().Truncate(time.Second)

	_, err := storages.SessionRepository.CreateSession(ctx, models.Session{
		SessionID:    "11111111-1111-1111-1111-111111111111",
		UserID:       owner.UserID,
		BoundAddress: "203.0.113.5",
		CreatedAt:    now,
		LastSeen:     now,
		Valid:        true,
	})
	require.NoError(t, err)

	flipped, err := storages.SessionRepository.Invalidate(ctx, "11111111-1111-1111-1111-111111111111")
	require.NoError(t, err)
	assert.True(t, flipped)

	flipped, err = storages.SessionRepository.Invalidate(ctx, "11111111-1111-1111-1111-111111111111")
	require.NoError(t, err)
	assert.False(t, flipped, "second invalidation must not observe the flip")
}

// TestSQLite_AuditAppendAndList appends entries through the repository and
// reads them back with a filter, checking insertion order is preserved.
func TestSQLite_AuditAppendAndList(t *testing.T) {
	db, storages := newSQLiteStorages(t)
	ctx := context.Background()

	owner := seedUser(t, db, storages, nil, nil)
	base := time.Now().UTC().Truncate(time.Second)

	for i, action := range []models.AuditAction{models.AuditActionCreate, models.AuditActionUpdate, models.AuditActionAccessDenied} {
		_, err := storages.AuditRepository.Append(ctx, db, models.AuditEntry{
			ActorID:      &owner.UserID,
			ResourceType: "User",
			ResourceID:   "1",
			Action:       action,
			Address:      "203.0.113.5",
			Timestamp:    base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	entries, err := storages.AuditRepository.List(ctx, models.AuditFilter{ActorID: &owner.UserID})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// newest first
	assert.Equal(t, models.AuditActionAccessDenied, entries[0].Action)
	assert.Equal(t, models.AuditActionCreate, entries[2].Action)
}

// TestSQLite_TransactionRollsBackOnAuditFailure is the storage-level half of
// the write-and-audit atomicity rule: when the second statement of a
// transaction fails, the first is rolled back.
func TestSQLite_TransactionRollsBackOnAuditFailure(t *testing.T) {
	db, storages := newSQLiteStorages(t)
	ctx := context.Background()

	owner := seedUser(t, db, storages, nil, nil)

	err := db.WithinTransaction(ctx, func(q Querier) error {
		if _, txErr := storages.OrderRepository.CreateOrder(ctx, q, models.Order{
			UserID:          owner.UserID,
			OrderNumber:     "ORD-2002",
			Status:          models.OrderStatusPending,
			TotalCents:      500,
			ShippingAddress: "somewhere",
			PaymentMethod:   "cash_on_delivery",
		}); txErr != nil {
			return txErr
		}

		// simulated audit failure
		return errors.New("audit append failed")
	})
	require.Error(t, err)

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count))
	assert.Zero(t, count, "order insert must roll back with the failed audit append")
}
