package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/asafarviv55/attendance-system-backend/internal/models"
)

// AuditRepository appends to the audit_log table. The table is append-only;
// no update or delete statements exist anywhere in the codebase.
type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Append(ctx context.Context, entry models.AuditLogEntry) error {
	const query = `
		INSERT INTO audit_log (id, user_id, action, details, timestamp)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Action,
		entry.Details,
		entry.Timestamp,
	)
	return err
}

func (r *AuditRepository) List(ctx context.Context, limit, offset int) ([]models.AuditLogEntry, error) {
	const query = `
		SELECT id, user_id, action, details, timestamp
		FROM audit_log
		ORDER BY timestamp DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.AuditLogEntry
	for rows.Next() {
		var entry models.AuditLogEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Action,
			&entry.Details,
			&entry.Timestamp,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
