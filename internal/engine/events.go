package engine

import (
	"context"
	"time"

	"github.com/dkovalenko/keywarden/internal/principal"
)

// EventType identifies a notification emitted on a successful mutation.
type EventType string

const (
	EventGuardianAdded        EventType = "GuardianAdded"
	EventGuardianRemoved      EventType = "GuardianRemoved"
	EventRecoveryInitiated    EventType = "RecoveryInitiated"
	EventRecoveryApproved     EventType = "RecoveryApproved"
	EventRecoveryExecuted     EventType = "RecoveryExecuted"
	EventOwnershipTransferred EventType = "OwnershipTransferred"
)

// Event is a notification about a successful state mutation.
// Subject is the principal the event is about (the guardian added or
// removed, or the new owner); it is Zero when not applicable.
type Event struct {
	Type    EventType
	Actor   principal.Principal
	Subject principal.Principal
	At      time.Time
}

// Sink receives events synchronously, in emission order.
type Sink interface {
	Emit(ctx context.Context, ev Event)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Emit(context.Context, Event) {}

func (e *Engine) emit(ctx context.Context, t EventType, actor, subject principal.Principal) {
	e.sink.Emit(ctx, Event{Type: t, Actor: actor, Subject: subject, At: e.now()})
}
