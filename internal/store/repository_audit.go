package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-shop-guard/internal/logger"
	"github.com/MKhiriev/go-shop-guard/models"
)

// auditRepository is the SQL-backed implementation of [AuditRepository].
//
// The audit_logs table is append-only: the repository exposes no update or
// delete operations and the migrations grant it none. Append takes a
// [Querier] so the caller can put the audit write inside the same
// transaction as the business write it describes.
type auditRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAuditRepository constructs an [AuditRepository] backed by the provided
// database connection and logger.
func NewAuditRepository(db *DB, logger *logger.Logger) AuditRepository {
	logger.Debug().Msg("creating audit repository")
	return &auditRepository{
		db:     db,
		logger: logger,
	}
}

// Append inserts a single audit entry and returns it with the assigned ID.
// A driver error, or an insert that stores nothing, yields
// [ErrAuditNotRecorded] so the surrounding transaction aborts.
func (r *auditRepository) Append(ctx context.Context, q Querier, entry models.AuditEntry) (models.AuditEntry, error) {
	log := logger.FromContext(ctx)

	row := q.QueryRowContext(ctx, appendAuditEntry,
		entry.ActorID, entry.ResourceType, entry.ResourceID, entry.Action,
		entry.Detail, entry.Address, entry.Timestamp)

	if err := row.Scan(&entry.ID); err != nil {
		log.Err(err).Str("func", "*auditRepository.Append").Msg("error: audit insert failed")
		return models.AuditEntry{}, fmt.Errorf("%w: %w", ErrAuditNotRecorded, err)
	}

	return entry, nil
}

// List reads audit entries matching the filter, newest first. Zero-valued
// filter fields are ignored; an empty filter returns the most recent entries
// up to the filter limit (or a default of 100).
func (r *auditRepository) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error) {
	log := logger.FromContext(ctx)

	builder := sq.Select("id", "actor_id", "resource_type", "resource_id", "action", "detail", "address", "ts").
		From(models.AuditEntry{}.TableName()).
		OrderBy("ts DESC", "id DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.ActorID != nil {
		builder = builder.Where(sq.Eq{"actor_id": *filter.ActorID})
	}
	if filter.ResourceType != "" {
		builder = builder.Where(sq.Eq{"resource_type": filter.ResourceType})
	}
	if filter.ResourceID != "" {
		builder = builder.Where(sq.Eq{"resource_id": filter.ResourceID})
	}
	if !filter.From.IsZero() {
		builder = builder.Where(sq.GtOrEq{"ts": filter.From})
	}
	if !filter.To.IsZero() {
		builder = builder.Where(sq.Lt{"ts": filter.To})
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 100
	}
	builder = builder.Limit(limit)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*auditRepository.List").Msg("error: executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		var entry models.AuditEntry
		if err := rows.Scan(&entry.ID, &entry.ActorID, &entry.ResourceType, &entry.ResourceID,
			&entry.Action, &entry.Detail, &entry.Address, &entry.Timestamp); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}
