package store

import (
	"github.com/MKhiriev/go-shop-guard/internal/crypto"
	"github.com/MKhiriev/go-shop-guard/internal/logger"
)

// NewStorages wires every repository to the given database handle. The
// field codec is shared by the repositories that seal protected columns.
func NewStorages(db *DB, codec *crypto.FieldCodec, logger *logger.Logger) Storages {
	return Storages{
		UserRepository:    NewUserRepository(db, codec, logger),
		SessionRepository: NewSessionRepository(db, logger),
		OrderRepository:   NewOrderRepository(db, codec, logger),
		AuditRepository:   NewAuditRepository(db, logger),
	}
}
