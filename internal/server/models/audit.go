package models

import "time"

// AuditEvent is an append-only record of a state-changing vault operation.
type AuditEvent struct {
	ID        string
	EventType string
	Actor     string
	Subject   string
	CreatedAt time.Time
}
