package store

// Queries use $N placeholders and CURRENT_TIMESTAMP so the same statements
// run on both PostgreSQL and SQLite.
const (
	createUser = `INSERT INTO users (email, username, password_hash, first_name, last_name, role, active, phone_enc, address_enc)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    RETURNING user_id, created_at, updated_at;`

	findUserByEmail = `SELECT user_id, email, username, password_hash, first_name, last_name, role, active, phone_enc, address_enc, mfa_enabled, mfa_secret_enc, created_at, updated_at
    FROM users
    WHERE email = $1;`

	getUserByID = `SELECT user_id, email, username, password_hash, first_name, last_name, role, active, phone_enc, address_enc, mfa_enabled, mfa_secret_enc, created_at, updated_at
    FROM users
    WHERE user_id = $1;`

	updateUserProfile = `UPDATE users
    SET username = $1, first_name = $2, last_name = $3, phone_enc = $4, address_enc = $5, updated_at = CURRENT_TIMESTAMP
    WHERE user_id = $6;`

	setUserMFA = `UPDATE users
    SET mfa_enabled = $1, mfa_secret_enc = $2, updated_at = CURRENT_TIMESTAMP
    WHERE user_id = $3;`

	updateUserPassword = `UPDATE users
    SET password_hash = $1, updated_at = CURRENT_TIMESTAMP
    WHERE user_id = $2;`

	createSession = `INSERT INTO sessions (session_id, user_id, bound_address, created_at, last_seen, valid)
    VALUES ($1, $2, $3, $4, $5, TRUE);`

	getSession = `SELECT session_id, user_id, bound_address, created_at, last_seen, valid
    FROM sessions
    WHERE session_id = $1;`

	touchSession = `UPDATE sessions
    SET last_seen = $1
    WHERE session_id = $2 AND valid = TRUE;`

	// compare-and-set: only one caller observes the valid -> invalid flip
	invalidateSession = `UPDATE sessions
    SET valid = FALSE
    WHERE session_id = $1 AND valid = TRUE;`

	invalidateUserSessions = `UPDATE sessions
    SET valid = FALSE
    WHERE user_id = $1 AND valid = TRUE;`

	invalidateOtherUserSessions = `UPDATE sessions
    SET valid = FALSE
    WHERE user_id = $1 AND valid = TRUE AND session_id <> $2;`

	deleteStaleSessions = `DELETE FROM sessions
    WHERE valid = FALSE OR last_seen < $1 OR created_at < $2;`

	createOrder = `INSERT INTO orders (user_id, order_number, status, total_cents, shipping_address_enc, payment_method, card_number_enc, card_expiry_enc, card_cvv_enc, bank_account_enc)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    RETURNING order_id, created_at, updated_at;`

	getOrderByID = `SELECT order_id, user_id, order_number, status, total_cents, shipping_address_enc, payment_method, card_number_enc, card_expiry_enc, card_cvv_enc, bank_account_enc, created_at, updated_at
    FROM orders
    WHERE order_id = $1;`

	appendAuditEntry = `INSERT INTO audit_logs (actor_id, resource_type, resource_id, action, detail, address, ts)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING id;`
)
