// Package common defines shared constants and sentinel errors used across
// the KeyWarden engine, service, and transport layers. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Principal and guardian-set errors.
	ErrInvalidPrincipal      = errors.New("invalid principal")
	ErrAlreadyGuardian       = errors.New("already a guardian")
	ErrNotGuardian           = errors.New("not a guardian")
	ErrOwnerCannotBeGuardian = errors.New("owner cannot be a guardian")

	// Recovery state machine errors.
	ErrInsufficientGuardians = errors.New("insufficient guardians")
	ErrRecoveryAlreadyActive = errors.New("recovery already active")
	ErrNoActiveRecovery      = errors.New("no active recovery")
	ErrAlreadyApproved       = errors.New("already approved")
	ErrInsufficientApprovals = errors.New("insufficient approvals")

	// Batch execution errors.
	ErrArrayLengthMismatch = errors.New("array length mismatch")
	ErrReentrantCall       = errors.New("reentrant call")
	ErrCallFailed          = errors.New("call failed")
	ErrPaused              = errors.New("account paused")
)
