package models

import "time"

// AuditLogEntry is append-only; entries are never updated or deleted.
type AuditLogEntry struct {
	ID        string
	UserID    string
	Action    string
	Details   string
	Timestamp time.Time
}
