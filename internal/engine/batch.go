package engine

import (
	"context"
	"fmt"

	"github.com/dkovalenko/keywarden/internal/common"
	"github.com/dkovalenko/keywarden/internal/principal"
)

// Call is one step of a batch: an opaque payload delivered to an external
// target, optionally carrying native value. The engine does not interpret
// payloads; which protocol the target implements is the invoker's concern.
type Call struct {
	Target  principal.Principal
	Value   uint64
	Payload []byte
}

// Invoker dispatches batch sub-calls to external targets. Begin opens a
// unit of work whose effects become visible only on Commit; Rollback must
// undo everything invoked so far.
type Invoker interface {
	Begin(ctx context.Context) (CallTx, error)
}

// CallTx is one in-flight batch on the external side.
type CallTx interface {
	Invoke(ctx context.Context, call Call) ([]byte, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// CallFailedError reports the first failing step of a batch. The index is
// preserved so callers can diagnose without re-deriving it. Matches
// common.ErrCallFailed under errors.Is.
type CallFailedError struct {
	Index int
	Err   error
}

func (e *CallFailedError) Error() string {
	return fmt.Sprintf("call %d failed: %v", e.Index, e.Err)
}

func (e *CallFailedError) Unwrap() error { return e.Err }

func (e *CallFailedError) Is(target error) bool { return target == common.ErrCallFailed }

// ExecuteBatch runs the (target, value, payload) triples strictly in input
// order as one all-or-nothing unit. Owner only, rejected while paused, and
// the three sequences must have equal length.
//
// The reentrancy lock is held for the duration of the call: a sub-call that
// re-enters the engine's privileged mutating surface fails with
// ErrReentrantCall. That is a logic error in the batch, never a transient
// condition, so it must not be retried. The lock is released on every exit
// path.
func (e *Engine) ExecuteBatch(ctx context.Context, caller principal.Principal, targets []principal.Principal, values []uint64, payloads [][]byte) ([][]byte, error) {
	if !e.access.IsOwner(caller) {
		return nil, common.ErrorUnauthorized
	}
	if e.access.Paused() {
		return nil, common.ErrPaused
	}
	if len(targets) != len(values) || len(targets) != len(payloads) {
		return nil, common.ErrArrayLengthMismatch
	}
	if e.invoker == nil {
		return nil, common.ErrorInternal
	}

	if e.inCall {
		return nil, common.ErrReentrantCall
	}
	e.inCall = true
	defer func() { e.inCall = false }()

	tx, err := e.invoker.Begin(ctx)
	if err != nil {
		return nil, err
	}

	results := make([][]byte, 0, len(targets))
	for i := range targets {
		out, err := tx.Invoke(ctx, Call{Target: targets[i], Value: values[i], Payload: payloads[i]})
		if err != nil {
			_ = tx.Rollback(ctx)
			return nil, &CallFailedError{Index: i, Err: err}
		}
		results = append(results, out)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return results, nil
}
