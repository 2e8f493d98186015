package engine

import (
	"context"
	"sort"
	"time"

	"github.com/dkovalenko/keywarden/internal/common"
	"github.com/dkovalenko/keywarden/internal/principal"
)

// minRecoveryGuardians is the quorum floor: recovery is structurally
// disabled while fewer guardians are enrolled.
const minRecoveryGuardians = 3

// recoveryRequest is the singleton in-flight recovery. There is at most one
// active request at a time; it is overwritten on the next initiation, so no
// history is kept here beyond the most recent request.
type recoveryRequest struct {
	newOwner  principal.Principal
	approvals map[principal.Principal]struct{}
	createdAt time.Time
	active    bool
}

func newRecoveryRequest(newOwner principal.Principal, createdAt time.Time) *recoveryRequest {
	return &recoveryRequest{
		newOwner:  newOwner,
		approvals: make(map[principal.Principal]struct{}),
		createdAt: createdAt,
		active:    true,
	}
}

// RecoveryInfo is a point-in-time snapshot of the most recent recovery
// request. Approvals are sorted by address for deterministic output.
type RecoveryInfo struct {
	Active    bool
	NewOwner  principal.Principal
	Approvals []principal.Principal
	CreatedAt time.Time
	// Threshold is the approval bar as of the snapshot, computed from the
	// current guardian count (not the count at initiation).
	Threshold int
}

// Threshold returns the number of distinct guardian approvals required to
// execute a pending recovery: two-thirds of guardianCount, floored.
func Threshold(guardianCount int) int {
	return 2 * guardianCount / 3
}

func (e *Engine) pending() bool {
	return e.request != nil && e.request.active
}

// RecoveryInfo returns a snapshot of the most recent request, regardless of
// state.
func (e *Engine) RecoveryInfo() RecoveryInfo {
	info := RecoveryInfo{Threshold: Threshold(e.guardians.Count())}
	if e.request == nil {
		return info
	}
	info.Active = e.request.active
	info.NewOwner = e.request.newOwner
	info.CreatedAt = e.request.createdAt
	info.Approvals = make([]principal.Principal, 0, len(e.request.approvals))
	for a := range e.request.approvals {
		info.Approvals = append(info.Approvals, a)
	}
	sort.Slice(info.Approvals, func(i, j int) bool {
		return info.Approvals[i].Compare(info.Approvals[j]) < 0
	})
	return info
}

// InitiateRecovery starts a recovery toward newOwner. Guardians only, and
// only while no request is active. Any previous request data is discarded.
func (e *Engine) InitiateRecovery(ctx context.Context, caller, newOwner principal.Principal) error {
	if !e.guardians.Contains(caller) {
		return common.ErrorUnauthorized
	}
	if newOwner.IsZero() {
		return common.ErrInvalidPrincipal
	}
	if e.pending() {
		return common.ErrRecoveryAlreadyActive
	}
	if e.guardians.Count() < minRecoveryGuardians {
		return common.ErrInsufficientGuardians
	}

	e.request = newRecoveryRequest(newOwner, e.now())
	e.emit(ctx, EventRecoveryInitiated, caller, newOwner)
	return nil
}

// ApproveRecovery records the caller's approval of the active request.
// Each guardian can approve at most once per request.
func (e *Engine) ApproveRecovery(ctx context.Context, caller principal.Principal) error {
	if !e.guardians.Contains(caller) {
		return common.ErrorUnauthorized
	}
	if !e.pending() {
		return common.ErrNoActiveRecovery
	}
	if _, ok := e.request.approvals[caller]; ok {
		return common.ErrAlreadyApproved
	}

	e.request.approvals[caller] = struct{}{}
	e.emit(ctx, EventRecoveryApproved, caller, e.request.newOwner)
	return nil
}

// ExecuteRecovery finalizes the active request, transferring ownership to
// the requested new owner.
//
// Any caller may execute; the operation is intentionally open. The
// threshold is recomputed from the guardian count at this moment, not the
// count recorded at initiation, so guardian-set changes made mid-flight
// raise or lower the effective bar. Approvals recorded by since-removed
// guardians still count.
func (e *Engine) ExecuteRecovery(ctx context.Context, caller principal.Principal) (principal.Principal, error) {
	if !e.pending() {
		return principal.Zero, common.ErrNoActiveRecovery
	}
	if len(e.request.approvals) < Threshold(e.guardians.Count()) {
		return principal.Zero, common.ErrInsufficientApprovals
	}

	newOwner := e.request.newOwner
	e.access.transferOwnership(newOwner)
	e.request.active = false

	// The new owner must not remain a guardian.
	if e.guardians.Contains(newOwner) {
		_ = e.guardians.remove(newOwner)
	}

	e.emit(ctx, EventRecoveryExecuted, caller, newOwner)
	e.emit(ctx, EventOwnershipTransferred, caller, newOwner)
	return newOwner, nil
}

// CancelRecovery aborts the active request without touching ownership.
// Owner only.
func (e *Engine) CancelRecovery(ctx context.Context, caller principal.Principal) error {
	if !e.access.IsOwner(caller) {
		return common.ErrorUnauthorized
	}
	if !e.pending() {
		return common.ErrNoActiveRecovery
	}
	e.request.active = false
	return nil
}
