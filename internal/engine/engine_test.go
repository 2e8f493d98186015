package engine

import (
	"context"
	"testing"
	"time"

	"github.com/dkovalenko/keywarden/internal/common"
	"github.com/dkovalenko/keywarden/internal/principal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// addr builds a deterministic test principal.
func addr(n byte) principal.Principal {
	var p principal.Principal
	p[principal.Size-1] = n
	return p
}

var testClock = func() time.Time {
	return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
}

// captureSink records emitted events in order.
type captureSink struct {
	events []Event
}

func (s *captureSink) Emit(_ context.Context, ev Event) {
	s.events = append(s.events, ev)
}

func (s *captureSink) types() []EventType {
	out := make([]EventType, len(s.events))
	for i, ev := range s.events {
		out[i] = ev.Type
	}
	return out
}

func newTestEngine(t *testing.T, owner principal.Principal, guardians ...principal.Principal) (*Engine, *captureSink) {
	t.Helper()
	sink := &captureSink{}
	e, err := New(Config{
		Owner:     owner,
		Guardians: guardians,
		Sink:      sink,
		Now:       testClock,
	})
	require.NoError(t, err)
	return e, sink
}

func TestNew_RejectsZeroOwner(t *testing.T) {
	_, err := New(Config{Owner: principal.Zero})
	assert.ErrorIs(t, err, common.ErrInvalidPrincipal)
}

func TestNew_RejectsBadRestoredGuardians(t *testing.T) {
	owner := addr(1)

	_, err := New(Config{Owner: owner, Guardians: []principal.Principal{principal.Zero}})
	assert.ErrorIs(t, err, common.ErrInvalidPrincipal)

	_, err = New(Config{Owner: owner, Guardians: []principal.Principal{owner}})
	assert.ErrorIs(t, err, common.ErrOwnerCannotBeGuardian)

	_, err = New(Config{Owner: owner, Guardians: []principal.Principal{addr(2), addr(2)}})
	assert.ErrorIs(t, err, common.ErrAlreadyGuardian)
}

func TestNew_RestoresPendingRecovery(t *testing.T) {
	owner := addr(1)
	e, err := New(Config{
		Owner:     owner,
		Guardians: []principal.Principal{addr(2), addr(3), addr(4)},
		Recovery: &RecoveryInfo{
			Active:    true,
			NewOwner:  addr(9),
			Approvals: []principal.Principal{addr(2), addr(3)},
			CreatedAt: testClock(),
		},
		Now: testClock,
	})
	require.NoError(t, err)

	info := e.RecoveryInfo()
	assert.True(t, info.Active)
	assert.Equal(t, addr(9), info.NewOwner)
	assert.Len(t, info.Approvals, 2)

	// Restored approvals carry over into execution.
	newOwner, err := e.ExecuteRecovery(context.Background(), addr(5))
	require.NoError(t, err)
	assert.Equal(t, addr(9), newOwner)
	assert.Equal(t, addr(9), e.Owner())
}

func TestAddGuardian(t *testing.T) {
	owner := addr(1)
	g := addr(2)

	t.Run("success", func(t *testing.T) {
		e, sink := newTestEngine(t, owner)
		require.NoError(t, e.AddGuardian(context.Background(), owner, g))
		assert.True(t, e.IsGuardian(g))
		assert.Equal(t, 1, e.GuardianCount())
		assert.Equal(t, []EventType{EventGuardianAdded}, sink.types())
	})

	t.Run("unauthorized", func(t *testing.T) {
		e, _ := newTestEngine(t, owner)
		err := e.AddGuardian(context.Background(), addr(9), g)
		assert.ErrorIs(t, err, common.ErrorUnauthorized)
		assert.Equal(t, 0, e.GuardianCount())
	})

	t.Run("zero principal", func(t *testing.T) {
		e, _ := newTestEngine(t, owner)
		err := e.AddGuardian(context.Background(), owner, principal.Zero)
		assert.ErrorIs(t, err, common.ErrInvalidPrincipal)
	})

	t.Run("owner cannot be guardian", func(t *testing.T) {
		e, _ := newTestEngine(t, owner)
		err := e.AddGuardian(context.Background(), owner, owner)
		assert.ErrorIs(t, err, common.ErrOwnerCannotBeGuardian)
	})

	t.Run("duplicate", func(t *testing.T) {
		e, _ := newTestEngine(t, owner, g)
		err := e.AddGuardian(context.Background(), owner, g)
		assert.ErrorIs(t, err, common.ErrAlreadyGuardian)
		assert.Equal(t, 1, e.GuardianCount())
	})
}

func TestRemoveGuardian(t *testing.T) {
	owner := addr(1)

	t.Run("swap remove keeps set consistent", func(t *testing.T) {
		e, sink := newTestEngine(t, owner, addr(2), addr(3), addr(4))

		require.NoError(t, e.RemoveGuardian(context.Background(), owner, addr(2)))

		assert.False(t, e.IsGuardian(addr(2)))
		assert.Equal(t, 2, e.GuardianCount())
		// Last element swapped into the removed slot.
		assert.Equal(t, []principal.Principal{addr(4), addr(3)}, e.Guardians())
		assert.Equal(t, []EventType{EventGuardianRemoved}, sink.types())
	})

	t.Run("unauthorized", func(t *testing.T) {
		e, _ := newTestEngine(t, owner, addr(2))
		err := e.RemoveGuardian(context.Background(), addr(2), addr(2))
		assert.ErrorIs(t, err, common.ErrorUnauthorized)
	})

	t.Run("not a guardian", func(t *testing.T) {
		e, _ := newTestEngine(t, owner)
		err := e.RemoveGuardian(context.Background(), owner, addr(2))
		assert.ErrorIs(t, err, common.ErrNotGuardian)
	})

	t.Run("remove then add different principal leaves no duplicates", func(t *testing.T) {
		e, _ := newTestEngine(t, owner, addr(2), addr(3))

		require.NoError(t, e.RemoveGuardian(context.Background(), owner, addr(2)))
		require.NoError(t, e.AddGuardian(context.Background(), owner, addr(5)))

		members := e.Guardians()
		seen := make(map[principal.Principal]bool)
		for _, m := range members {
			assert.False(t, seen[m], "duplicate member %s", m)
			seen[m] = true
		}
		assert.Equal(t, 2, len(members))
	})
}

// Owner never appears in the member list after any successful add/remove
// sequence, including across an ownership transfer.
func TestGuardianSet_OwnerNeverMember(t *testing.T) {
	owner := addr(1)
	ctx := context.Background()
	e, _ := newTestEngine(t, owner, addr(2), addr(3), addr(4))

	require.NoError(t, e.RemoveGuardian(ctx, owner, addr(3)))
	require.NoError(t, e.AddGuardian(ctx, owner, addr(5)))
	require.NoError(t, e.AddGuardian(ctx, owner, addr(6)))
	require.NoError(t, e.RemoveGuardian(ctx, owner, addr(2)))

	for _, m := range e.Guardians() {
		assert.NotEqual(t, e.Owner(), m)
	}
}

func TestSetPaused(t *testing.T) {
	owner := addr(1)
	e, _ := newTestEngine(t, owner)

	assert.False(t, e.Paused())
	require.NoError(t, e.SetPaused(context.Background(), owner, true))
	assert.True(t, e.Paused())

	err := e.SetPaused(context.Background(), addr(9), false)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.True(t, e.Paused())
}
