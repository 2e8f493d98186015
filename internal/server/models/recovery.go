package models

import "time"

// RecoveryRequest is a pending or completed ownership recovery. At most one
// row may be active at a time; approvals hang off it by request ID.
type RecoveryRequest struct {
	ID        string
	NewOwner  string
	Active    bool
	CreatedAt time.Time
}

type RecoveryApproval struct {
	RequestID  string
	Guardian   string
	ApprovedAt time.Time
}
