// Package services contains server-side business logic. This file implements
// VaultService, which fronts the in-memory authorization engine and keeps the
// database in sync with every successful mutation.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dkovalenko/keywarden/internal/common"
	"github.com/dkovalenko/keywarden/internal/dbx"
	"github.com/dkovalenko/keywarden/internal/engine"
	"github.com/dkovalenko/keywarden/internal/logging"
	"github.com/dkovalenko/keywarden/internal/principal"
	"github.com/dkovalenko/keywarden/internal/server/config"
	"github.com/dkovalenko/keywarden/internal/server/models"
	"github.com/dkovalenko/keywarden/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// Audit event types as persisted in audit_events.event_type.
const (
	auditGuardianAdded     = "guardian_added"
	auditGuardianRemoved   = "guardian_removed"
	auditRecoveryInitiated = "recovery_initiated"
	auditRecoveryApproved  = "recovery_approved"
	auditRecoveryExecuted  = "recovery_executed"
	auditRecoveryCancelled = "recovery_cancelled"
	auditBatchExecuted     = "batch_executed"
	auditPausedChanged     = "paused_changed"
)

// Archiver copies an audit event to long-term storage.
type Archiver interface {
	ArchiveEvent(ctx context.Context, event *models.AuditEvent) error
}

// AccountInfo is a read-model snapshot of the vault's top-level state.
type AccountInfo struct {
	Owner         principal.Principal
	Paused        bool
	GuardianCount int
}

// VaultService owns the engine instance and serializes all access to it.
// The engine is the fast path; the database is authoritative. Every
// successful engine mutation is persisted in one transaction together with
// its audit record, and if that transaction fails the engine is rebuilt
// from the database so the two never drift.
type VaultService struct {
	mu          sync.Mutex
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
	logger      logging.Logger
	archiver    Archiver

	engine *engine.Engine
	// recoveryID is the row ID of the active recovery request, empty when none.
	recoveryID string
}

// NewVaultService constructs a VaultService. Call Restore before serving.
func NewVaultService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger, archiver Archiver) *VaultService {
	return &VaultService{
		db:          db,
		repomanager: m,
		config:      cfg,
		logger:      logger,
		archiver:    archiver,
	}
}

// logSink writes engine events to the structured log.
type logSink struct {
	logger logging.Logger
}

func (s *logSink) Emit(ctx context.Context, ev engine.Event) {
	s.logger.Info(ctx, "engine event",
		"type", string(ev.Type), "actor", ev.Actor.String(), "subject", ev.Subject.String())
}

// Restore loads the vault state from the database and builds the engine.
// When the database holds no account yet and cfg.OwnerAddress is set, the
// vault is bootstrapped with that owner.
func (s *VaultService) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restoreLocked(ctx)
}

func (s *VaultService) restoreLocked(ctx context.Context) error {
	accountRepo := s.repomanager.Accounts(s.db)

	account, err := accountRepo.Get(ctx)
	if errors.Is(err, common.ErrorNotFound) {
		account, err = s.bootstrap(ctx)
	}
	if err != nil {
		return err
	}

	owner, err := principal.Parse(account.Owner)
	if err != nil {
		return fmt.Errorf("stored owner invalid: %w", err)
	}

	guardianRows, err := s.repomanager.Guardians(s.db).List(ctx)
	if err != nil {
		return err
	}
	guardianList := make([]principal.Principal, 0, len(guardianRows))
	for _, g := range guardianRows {
		p, err := principal.Parse(g.Address)
		if err != nil {
			return fmt.Errorf("stored guardian invalid: %w", err)
		}
		guardianList = append(guardianList, p)
	}

	cfg := engine.Config{
		Owner:     owner,
		Paused:    account.Paused,
		Guardians: guardianList,
		Invoker:   NewExecBridge(s.config.UpstreamExecURL),
		Sink:      &logSink{logger: s.logger},
	}

	recoveryID := ""
	recoveryRepo := s.repomanager.Recoveries(s.db)
	req, err := recoveryRepo.GetActive(ctx)
	switch {
	case err == nil:
		newOwner, err := principal.Parse(req.NewOwner)
		if err != nil {
			return fmt.Errorf("stored recovery target invalid: %w", err)
		}
		approvalRows, err := recoveryRepo.ListApprovals(ctx, req.ID)
		if err != nil {
			return err
		}
		approvals := make([]principal.Principal, 0, len(approvalRows))
		for _, a := range approvalRows {
			p, err := principal.Parse(a)
			if err != nil {
				return fmt.Errorf("stored approval invalid: %w", err)
			}
			approvals = append(approvals, p)
		}
		cfg.Recovery = &engine.RecoveryInfo{
			Active:    true,
			NewOwner:  newOwner,
			Approvals: approvals,
			CreatedAt: req.CreatedAt,
		}
		recoveryID = req.ID
	case errors.Is(err, common.ErrorNotFound):
		// no pending recovery
	default:
		return err
	}

	eng, err := engine.New(cfg)
	if err != nil {
		return err
	}

	s.engine = eng
	s.recoveryID = recoveryID
	s.logger.Info(ctx, "vault state restored",
		"owner", owner.String(), "guardians", len(guardianList), "recovery_active", recoveryID != "")
	return nil
}

func (s *VaultService) bootstrap(ctx context.Context) (*models.Account, error) {
	if s.config.OwnerAddress == "" {
		return nil, errors.New("no account in database and no initial owner configured")
	}
	owner, err := principal.Parse(s.config.OwnerAddress)
	if err != nil {
		return nil, fmt.Errorf("initial owner invalid: %w", err)
	}

	if err := s.repomanager.Accounts(s.db).Create(ctx, owner.String()); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "vault bootstrapped", "owner", owner.String())
	return &models.Account{ID: 1, Owner: owner.String()}, nil
}

// persist runs fn in one database transaction and hands back the audit
// events it queued. On transaction failure the engine is rebuilt from the
// database, discarding the in-memory mutation that could not be saved.
func (s *VaultService) persist(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX, queue *auditQueue) error) error {
	queue := &auditQueue{}
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := fn(ctx, tx, queue); err != nil {
			return err
		}
		auditRepo := s.repomanager.Audit(tx)
		for _, ev := range queue.events {
			if err := auditRepo.Append(ctx, ev); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error(ctx, "persist failed, rebuilding engine from database", "error", err)
		if rerr := s.restoreLocked(ctx); rerr != nil {
			s.logger.Error(ctx, "engine rebuild failed", "error", rerr)
		}
		return common.ErrorInternal
	}

	s.archive(ctx, queue.events)
	return nil
}

// archive best-effort copies committed audit events to the archiver.
func (s *VaultService) archive(ctx context.Context, events []*models.AuditEvent) {
	if s.archiver == nil {
		return
	}
	for _, ev := range events {
		if err := s.archiver.ArchiveEvent(ctx, ev); err != nil {
			s.logger.Warn(ctx, "audit archive failed", "event_id", ev.ID, "error", err)
		}
	}
}

type auditQueue struct {
	events []*models.AuditEvent
}

func (q *auditQueue) add(eventType string, actor, subject principal.Principal) {
	subj := ""
	if !subject.IsZero() {
		subj = subject.String()
	}
	q.events = append(q.events, &models.AuditEvent{
		ID:        uuid.NewString(),
		EventType: eventType,
		Actor:     actor.String(),
		Subject:   subj,
		CreatedAt: time.Now(),
	})
}

// AddGuardian enrolls a guardian and returns the resulting guardian count.
func (s *VaultService) AddGuardian(ctx context.Context, caller, guardian principal.Principal) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.engine.AddGuardian(ctx, caller, guardian); err != nil {
		return 0, err
	}
	err := s.persist(ctx, func(ctx context.Context, tx dbx.DBTX, queue *auditQueue) error {
		if err := s.repomanager.Guardians(tx).Add(ctx, guardian.String()); err != nil {
			return err
		}
		queue.add(auditGuardianAdded, caller, guardian)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return s.engine.GuardianCount(), nil
}

// RemoveGuardian removes a guardian and returns the resulting guardian count.
func (s *VaultService) RemoveGuardian(ctx context.Context, caller, guardian principal.Principal) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.engine.RemoveGuardian(ctx, caller, guardian); err != nil {
		return 0, err
	}
	err := s.persist(ctx, func(ctx context.Context, tx dbx.DBTX, queue *auditQueue) error {
		if err := s.repomanager.Guardians(tx).Remove(ctx, guardian.String()); err != nil {
			return err
		}
		queue.add(auditGuardianRemoved, caller, guardian)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return s.engine.GuardianCount(), nil
}

// SetPaused flips the paused flag.
func (s *VaultService) SetPaused(ctx context.Context, caller principal.Principal, paused bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.engine.SetPaused(ctx, caller, paused); err != nil {
		return err
	}
	return s.persist(ctx, func(ctx context.Context, tx dbx.DBTX, queue *auditQueue) error {
		if err := s.repomanager.Accounts(tx).SetPaused(ctx, paused); err != nil {
			return err
		}
		queue.add(auditPausedChanged, caller, principal.Zero)
		return nil
	})
}

// InitiateRecovery opens a recovery request toward newOwner.
func (s *VaultService) InitiateRecovery(ctx context.Context, caller, newOwner principal.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.engine.InitiateRecovery(ctx, caller, newOwner); err != nil {
		return err
	}
	id := uuid.NewString()
	err := s.persist(ctx, func(ctx context.Context, tx dbx.DBTX, queue *auditQueue) error {
		req := &models.RecoveryRequest{
			ID:        id,
			NewOwner:  newOwner.String(),
			CreatedAt: s.engine.RecoveryInfo().CreatedAt,
		}
		if err := s.repomanager.Recoveries(tx).Create(ctx, req); err != nil {
			return err
		}
		queue.add(auditRecoveryInitiated, caller, newOwner)
		return nil
	})
	if err != nil {
		return err
	}
	s.recoveryID = id
	return nil
}

// ApproveRecovery records the caller's approval and returns the approval
// count alongside the threshold currently in force.
func (s *VaultService) ApproveRecovery(ctx context.Context, caller principal.Principal) (approvals, threshold int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.engine.ApproveRecovery(ctx, caller); err != nil {
		return 0, 0, err
	}
	info := s.engine.RecoveryInfo()
	err = s.persist(ctx, func(ctx context.Context, tx dbx.DBTX, queue *auditQueue) error {
		if err := s.repomanager.Recoveries(tx).AddApproval(ctx, s.recoveryID, caller.String()); err != nil {
			return err
		}
		queue.add(auditRecoveryApproved, caller, info.NewOwner)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return len(info.Approvals), info.Threshold, nil
}

// ExecuteRecovery finalizes the pending recovery and returns the new owner.
func (s *VaultService) ExecuteRecovery(ctx context.Context, caller principal.Principal) (principal.Principal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info := s.engine.RecoveryInfo()
	wasGuardian := info.Active && s.engine.IsGuardian(info.NewOwner)

	newOwner, err := s.engine.ExecuteRecovery(ctx, caller)
	if err != nil {
		return principal.Zero, err
	}

	id := s.recoveryID
	err = s.persist(ctx, func(ctx context.Context, tx dbx.DBTX, queue *auditQueue) error {
		if err := s.repomanager.Accounts(tx).SetOwner(ctx, newOwner.String()); err != nil {
			return err
		}
		if err := s.repomanager.Recoveries(tx).Deactivate(ctx, id); err != nil {
			return err
		}
		if wasGuardian {
			if err := s.repomanager.Guardians(tx).Remove(ctx, newOwner.String()); err != nil {
				return err
			}
		}
		queue.add(auditRecoveryExecuted, caller, newOwner)
		return nil
	})
	if err != nil {
		return principal.Zero, err
	}
	s.recoveryID = ""
	return newOwner, nil
}

// CancelRecovery aborts the pending recovery.
func (s *VaultService) CancelRecovery(ctx context.Context, caller principal.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.engine.CancelRecovery(ctx, caller); err != nil {
		return err
	}
	id := s.recoveryID
	err := s.persist(ctx, func(ctx context.Context, tx dbx.DBTX, queue *auditQueue) error {
		if err := s.repomanager.Recoveries(tx).Deactivate(ctx, id); err != nil {
			return err
		}
		queue.add(auditRecoveryCancelled, caller, principal.Zero)
		return nil
	})
	if err != nil {
		return err
	}
	s.recoveryID = ""
	return nil
}

// ExecuteBatch runs the call triples through the engine's atomic batch
// executor. Only the audit record touches the database; the calls themselves
// settle on the external execution service.
func (s *VaultService) ExecuteBatch(ctx context.Context, caller principal.Principal, targets []principal.Principal, values []uint64, payloads [][]byte) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results, err := s.engine.ExecuteBatch(ctx, caller, targets, values, payloads)
	if err != nil {
		return nil, err
	}
	// The batch has already settled externally, so a bookkeeping failure
	// must not fail the call; persist logs and rebuilds on its own.
	_ = s.persist(ctx, func(ctx context.Context, tx dbx.DBTX, queue *auditQueue) error {
		queue.add(auditBatchExecuted, caller, principal.Zero)
		return nil
	})
	return results, nil
}

// GetGuardians returns the current guardian list.
func (s *VaultService) GetGuardians(ctx context.Context) []principal.Principal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Guardians()
}

// GetRecoveryInfo returns a snapshot of the most recent recovery request.
func (s *VaultService) GetRecoveryInfo(ctx context.Context) engine.RecoveryInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.RecoveryInfo()
}

// GetAccountInfo returns the owner, paused flag, and guardian count.
func (s *VaultService) GetAccountInfo(ctx context.Context) AccountInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return AccountInfo{
		Owner:         s.engine.Owner(),
		Paused:        s.engine.Paused(),
		GuardianCount: s.engine.GuardianCount(),
	}
}

// AuditTrail returns the newest audit events, capped at limit.
func (s *VaultService) AuditTrail(ctx context.Context, limit int) ([]*models.AuditEvent, error) {
	return s.repomanager.Audit(s.db).ListRecent(ctx, limit)
}
