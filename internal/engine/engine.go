// Package engine implements the ownership-recovery and privileged-execution
// core for a single-principal account: guardian-set management, the
// threshold-approval recovery state machine, and the reentrancy-guarded
// atomic batch executor.
//
// An Engine instance exclusively owns its state. It performs no I/O of its
// own besides batch sub-calls through the configured Invoker, and it is not
// safe for concurrent use; the service layer serializes operations so that
// each public operation runs as one indivisible unit.
package engine

import (
	"context"
	"time"

	"github.com/dkovalenko/keywarden/internal/common"
	"github.com/dkovalenko/keywarden/internal/principal"
)

// Config carries the initial (or restored) engine state and its
// collaborators. Owner is required; everything else is optional.
type Config struct {
	Owner     principal.Principal
	Paused    bool
	Guardians []principal.Principal
	// Recovery restores a pending request; ignored unless Recovery.Active.
	Recovery *RecoveryInfo
	Invoker  Invoker
	Sink     Sink
	// Now is the clock used for event and request timestamps.
	// Defaults to time.Now.
	Now func() time.Time
}

// Engine is one account's authorization engine.
type Engine struct {
	access    *AccessRegistry
	guardians *GuardianSet
	request   *recoveryRequest
	invoker   Invoker
	sink      Sink
	now       func() time.Time
	inCall    bool
}

// New builds an engine from cfg, validating restored state with the same
// rules as live mutations (no zero or duplicate guardians, owner never a
// guardian).
func New(cfg Config) (*Engine, error) {
	access, err := NewAccessRegistry(cfg.Owner)
	if err != nil {
		return nil, err
	}
	access.setPaused(cfg.Paused)

	e := &Engine{
		access:    access,
		guardians: NewGuardianSet(),
		invoker:   cfg.Invoker,
		sink:      cfg.Sink,
		now:       cfg.Now,
	}
	if e.sink == nil {
		e.sink = NopSink{}
	}
	if e.now == nil {
		e.now = time.Now
	}

	for _, g := range cfg.Guardians {
		if g.IsZero() {
			return nil, common.ErrInvalidPrincipal
		}
		if access.IsOwner(g) {
			return nil, common.ErrOwnerCannotBeGuardian
		}
		if err := e.guardians.add(g); err != nil {
			return nil, err
		}
	}

	if cfg.Recovery != nil && cfg.Recovery.Active {
		if cfg.Recovery.NewOwner.IsZero() {
			return nil, common.ErrInvalidPrincipal
		}
		req := newRecoveryRequest(cfg.Recovery.NewOwner, cfg.Recovery.CreatedAt)
		for _, a := range cfg.Recovery.Approvals {
			req.approvals[a] = struct{}{}
		}
		e.request = req
	}

	return e, nil
}

// Owner returns the current account owner.
func (e *Engine) Owner() principal.Principal {
	return e.access.Owner()
}

// Paused reports the account's paused flag.
func (e *Engine) Paused() bool {
	return e.access.Paused()
}

// Guardians returns a copy of the guardian list. Enumeration order is
// unspecified after removals.
func (e *Engine) Guardians() []principal.Principal {
	return e.guardians.List()
}

// GuardianCount returns the number of guardians.
func (e *Engine) GuardianCount() int {
	return e.guardians.Count()
}

// IsGuardian reports whether p is currently a guardian.
func (e *Engine) IsGuardian(p principal.Principal) bool {
	return e.guardians.Contains(p)
}

// AddGuardian enrolls a new guardian. Owner only.
func (e *Engine) AddGuardian(ctx context.Context, caller, guardian principal.Principal) error {
	if !e.access.IsOwner(caller) {
		return common.ErrorUnauthorized
	}
	if guardian.IsZero() {
		return common.ErrInvalidPrincipal
	}
	if e.access.IsOwner(guardian) {
		return common.ErrOwnerCannotBeGuardian
	}
	if err := e.guardians.add(guardian); err != nil {
		return err
	}
	e.emit(ctx, EventGuardianAdded, caller, guardian)
	return nil
}

// RemoveGuardian removes a guardian. Owner only.
func (e *Engine) RemoveGuardian(ctx context.Context, caller, guardian principal.Principal) error {
	if !e.access.IsOwner(caller) {
		return common.ErrorUnauthorized
	}
	if err := e.guardians.remove(guardian); err != nil {
		return err
	}
	e.emit(ctx, EventGuardianRemoved, caller, guardian)
	return nil
}

// SetPaused flips the account's paused flag. Owner only.
func (e *Engine) SetPaused(ctx context.Context, caller principal.Principal, paused bool) error {
	if !e.access.IsOwner(caller) {
		return common.ErrorUnauthorized
	}
	e.access.setPaused(paused)
	return nil
}
