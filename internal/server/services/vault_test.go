package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dkovalenko/keywarden/internal/common"
	"github.com/dkovalenko/keywarden/internal/dbx"
	"github.com/dkovalenko/keywarden/internal/logging"
	"github.com/dkovalenko/keywarden/internal/principal"
	"github.com/dkovalenko/keywarden/internal/server/config"
	"github.com/dkovalenko/keywarden/internal/server/models"
	"github.com/dkovalenko/keywarden/internal/server/repositories/accounts"
	"github.com/dkovalenko/keywarden/internal/server/repositories/audit"
	"github.com/dkovalenko/keywarden/internal/server/repositories/guardians"
	"github.com/dkovalenko/keywarden/internal/server/repositories/recoveries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addr(n byte) principal.Principal {
	var p principal.Principal
	p[19] = n
	return p
}

// --- in-memory repositories ---

type memAccounts struct {
	account *models.Account
}

func (r *memAccounts) Get(ctx context.Context) (*models.Account, error) {
	if r.account == nil {
		return nil, common.ErrorNotFound
	}
	cp := *r.account
	return &cp, nil
}

func (r *memAccounts) Create(ctx context.Context, owner string) error {
	r.account = &models.Account{ID: 1, Owner: owner, UpdatedAt: time.Now()}
	return nil
}

func (r *memAccounts) SetOwner(ctx context.Context, owner string) error {
	r.account.Owner = owner
	return nil
}

func (r *memAccounts) SetPaused(ctx context.Context, paused bool) error {
	r.account.Paused = paused
	return nil
}

type memGuardians struct {
	rows []*models.Guardian
}

func (r *memGuardians) List(ctx context.Context) ([]*models.Guardian, error) {
	out := make([]*models.Guardian, len(r.rows))
	copy(out, r.rows)
	return out, nil
}

func (r *memGuardians) Add(ctx context.Context, address string) error {
	r.rows = append(r.rows, &models.Guardian{Address: address, AddedAt: time.Now()})
	return nil
}

func (r *memGuardians) Remove(ctx context.Context, address string) error {
	for i := range r.rows {
		if r.rows[i].Address == address {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

type memRecoveries struct {
	requests  []*models.RecoveryRequest
	approvals map[string][]string
}

func (r *memRecoveries) GetActive(ctx context.Context) (*models.RecoveryRequest, error) {
	for _, req := range r.requests {
		if req.Active {
			cp := *req
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memRecoveries) Create(ctx context.Context, req *models.RecoveryRequest) error {
	cp := *req
	cp.Active = true
	r.requests = append(r.requests, &cp)
	return nil
}

func (r *memRecoveries) Deactivate(ctx context.Context, id string) error {
	for _, req := range r.requests {
		if req.ID == id && req.Active {
			req.Active = false
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r *memRecoveries) AddApproval(ctx context.Context, requestID string, guardian string) error {
	if r.approvals == nil {
		r.approvals = make(map[string][]string)
	}
	r.approvals[requestID] = append(r.approvals[requestID], guardian)
	return nil
}

func (r *memRecoveries) ListApprovals(ctx context.Context, requestID string) ([]string, error) {
	return r.approvals[requestID], nil
}

type memAudit struct {
	events []*models.AuditEvent
}

func (r *memAudit) Append(ctx context.Context, event *models.AuditEvent) error {
	cp := *event
	r.events = append(r.events, &cp)
	return nil
}

func (r *memAudit) ListRecent(ctx context.Context, limit int) ([]*models.AuditEvent, error) {
	out := make([]*models.AuditEvent, len(r.events))
	copy(out, r.events)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// memManager vends the same in-memory repositories regardless of the DBTX;
// transaction boundaries are exercised through sqlmock Begin/Commit pairs.
type memManager struct {
	accounts   *memAccounts
	guardians  *memGuardians
	recoveries *memRecoveries
	audit      *memAudit
}

func newMemManager() *memManager {
	return &memManager{
		accounts:   &memAccounts{},
		guardians:  &memGuardians{},
		recoveries: &memRecoveries{},
		audit:      &memAudit{},
	}
}

func (m *memManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

func (m *memManager) Accounts(db dbx.DBTX) accounts.Repository     { return m.accounts }
func (m *memManager) Guardians(db dbx.DBTX) guardians.Repository   { return m.guardians }
func (m *memManager) Recoveries(db dbx.DBTX) recoveries.Repository { return m.recoveries }
func (m *memManager) Audit(db dbx.DBTX) audit.Repository           { return m.audit }

type recordingArchiver struct {
	archived []*models.AuditEvent
	err      error
}

func (a *recordingArchiver) ArchiveEvent(ctx context.Context, event *models.AuditEvent) error {
	if a.err != nil {
		return a.err
	}
	a.archived = append(a.archived, event)
	return nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// expectTx queues n Begin/Commit pairs on the mock, one per persist call.
func expectTx(mock sqlmock.Sqlmock, n int) {
	for i := 0; i < n; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}
}

func newTestService(t *testing.T, owner principal.Principal) (*VaultService, *memManager, sqlmock.Sqlmock, *recordingArchiver) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	m := newMemManager()
	arch := &recordingArchiver{}
	cfg := &config.Config{
		OwnerAddress:    owner.String(),
		UpstreamExecURL: "http://127.0.0.1:0/",
	}

	svc := NewVaultService(db, m, cfg, testLogger(), arch)
	require.NoError(t, svc.Restore(context.Background()))
	return svc, m, mock, arch
}

func TestRestore_BootstrapsWhenEmpty(t *testing.T) {
	svc, m, _, _ := newTestService(t, addr(1))

	info := svc.GetAccountInfo(context.Background())
	assert.Equal(t, addr(1), info.Owner)
	assert.False(t, info.Paused)
	assert.Equal(t, 0, info.GuardianCount)

	require.NotNil(t, m.accounts.account)
	assert.Equal(t, addr(1).String(), m.accounts.account.Owner)
}

func TestRestore_FailsWithoutOwner(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewVaultService(db, newMemManager(), &config.Config{}, testLogger(), nil)
	require.Error(t, svc.Restore(context.Background()))
}

func TestAddGuardian_PersistsAndAudits(t *testing.T) {
	ctx := context.Background()
	svc, m, mock, arch := newTestService(t, addr(1))
	expectTx(mock, 1)

	count, err := svc.AddGuardian(ctx, addr(1), addr(2))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.Len(t, m.guardians.rows, 1)
	assert.Equal(t, addr(2).String(), m.guardians.rows[0].Address)

	require.Len(t, m.audit.events, 1)
	assert.Equal(t, auditGuardianAdded, m.audit.events[0].EventType)
	assert.Equal(t, addr(1).String(), m.audit.events[0].Actor)
	assert.Equal(t, addr(2).String(), m.audit.events[0].Subject)

	require.Len(t, arch.archived, 1)
	assert.Equal(t, m.audit.events[0].ID, arch.archived[0].ID)
}

func TestAddGuardian_UnauthorizedDoesNotTouchDB(t *testing.T) {
	ctx := context.Background()
	svc, m, _, _ := newTestService(t, addr(1))

	_, err := svc.AddGuardian(ctx, addr(9), addr(2))
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.Empty(t, m.guardians.rows)
	assert.Empty(t, m.audit.events)
}

func TestAddGuardian_TxFailureRebuildsEngine(t *testing.T) {
	ctx := context.Background()
	svc, m, mock, _ := newTestService(t, addr(1))

	// First guardian sticks.
	expectTx(mock, 1)
	_, err := svc.AddGuardian(ctx, addr(1), addr(2))
	require.NoError(t, err)

	// Second guardian: transaction fails to commit; the in-memory engine
	// must be rebuilt from the rows that actually persisted.
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(sql.ErrConnDone)

	// The mem repo mutation happens before commit and would leak; drop the
	// row as a real rolled-back transaction would.
	_, err = svc.AddGuardian(ctx, addr(1), addr(3))
	require.ErrorIs(t, err, common.ErrorInternal)
	_ = m.guardians.Remove(ctx, addr(3).String())
	require.NoError(t, svc.Restore(ctx))

	info := svc.GetAccountInfo(ctx)
	assert.Equal(t, 1, info.GuardianCount)
}

func TestRecoveryLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, m, mock, _ := newTestService(t, addr(1))

	expectTx(mock, 3) // three AddGuardian calls
	for _, g := range []principal.Principal{addr(2), addr(3), addr(4)} {
		_, err := svc.AddGuardian(ctx, addr(1), g)
		require.NoError(t, err)
	}

	expectTx(mock, 1)
	require.NoError(t, svc.InitiateRecovery(ctx, addr(2), addr(7)))
	require.NotEmpty(t, svc.recoveryID)

	active, err := m.recoveries.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, addr(7).String(), active.NewOwner)

	expectTx(mock, 2)
	approvals, threshold, err := svc.ApproveRecovery(ctx, addr(2))
	require.NoError(t, err)
	assert.Equal(t, 1, approvals)
	assert.Equal(t, 2, threshold)

	approvals, _, err = svc.ApproveRecovery(ctx, addr(3))
	require.NoError(t, err)
	assert.Equal(t, 2, approvals)

	expectTx(mock, 1)
	newOwner, err := svc.ExecuteRecovery(ctx, addr(9))
	require.NoError(t, err)
	assert.Equal(t, addr(7), newOwner)
	assert.Empty(t, svc.recoveryID)

	info := svc.GetAccountInfo(ctx)
	assert.Equal(t, addr(7), info.Owner)

	_, err = m.recoveries.GetActive(ctx)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, addr(7).String(), m.accounts.account.Owner)
}

func TestRecovery_RestoreResumesPendingRequest(t *testing.T) {
	ctx := context.Background()
	svc, m, mock, _ := newTestService(t, addr(1))

	expectTx(mock, 4)
	for _, g := range []principal.Principal{addr(2), addr(3), addr(4)} {
		_, err := svc.AddGuardian(ctx, addr(1), g)
		require.NoError(t, err)
	}
	require.NoError(t, svc.InitiateRecovery(ctx, addr(2), addr(7)))

	expectTx(mock, 1)
	_, _, err := svc.ApproveRecovery(ctx, addr(2))
	require.NoError(t, err)

	// Fresh service over the same stores: the pending request and its
	// approval must survive the restart.
	db, mock2, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc2 := NewVaultService(db, &memManager{
		accounts:   m.accounts,
		guardians:  m.guardians,
		recoveries: m.recoveries,
		audit:      m.audit,
	}, &config.Config{UpstreamExecURL: "http://127.0.0.1:0/"}, testLogger(), nil)
	require.NoError(t, svc2.Restore(ctx))

	info := svc2.GetRecoveryInfo(ctx)
	assert.True(t, info.Active)
	assert.Equal(t, addr(7), info.NewOwner)
	require.Len(t, info.Approvals, 1)
	assert.Equal(t, addr(2), info.Approvals[0])

	expectTx(mock2, 1)
	_, _, err = svc2.ApproveRecovery(ctx, addr(3))
	require.NoError(t, err)
}

func TestCancelRecovery(t *testing.T) {
	ctx := context.Background()
	svc, m, mock, _ := newTestService(t, addr(1))

	expectTx(mock, 4)
	for _, g := range []principal.Principal{addr(2), addr(3), addr(4)} {
		_, err := svc.AddGuardian(ctx, addr(1), g)
		require.NoError(t, err)
	}
	require.NoError(t, svc.InitiateRecovery(ctx, addr(2), addr(7)))

	expectTx(mock, 1)
	require.NoError(t, svc.CancelRecovery(ctx, addr(1)))
	assert.Empty(t, svc.recoveryID)

	_, err := m.recoveries.GetActive(ctx)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSetPaused_Persists(t *testing.T) {
	ctx := context.Background()
	svc, m, mock, _ := newTestService(t, addr(1))
	expectTx(mock, 1)

	require.NoError(t, svc.SetPaused(ctx, addr(1), true))
	assert.True(t, m.accounts.account.Paused)
	assert.True(t, svc.GetAccountInfo(ctx).Paused)
}

func TestExecuteBatch_ThroughBridge(t *testing.T) {
	ctx := context.Background()

	var invoked []string
	mux := http.NewServeMux()
	mux.HandleFunc("/tx/begin", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tx_id":"t1"}`))
	})
	mux.HandleFunc("/tx/invoke", func(w http.ResponseWriter, r *http.Request) {
		invoked = append(invoked, "invoke")
		w.Write([]byte(`{"result":"b2s="}`))
	})
	mux.HandleFunc("/tx/commit", func(w http.ResponseWriter, r *http.Request) {
		invoked = append(invoked, "commit")
		w.Write([]byte(`{}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m := newMemManager()
	cfg := &config.Config{OwnerAddress: addr(1).String(), UpstreamExecURL: srv.URL}
	svc := NewVaultService(db, m, cfg, testLogger(), nil)
	require.NoError(t, svc.Restore(ctx))

	expectTx(mock, 1)
	results, err := svc.ExecuteBatch(ctx, addr(1),
		[]principal.Principal{addr(5)}, []uint64{10}, [][]byte{[]byte("ping")})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, []string{"invoke", "commit"}, invoked)

	require.Len(t, m.audit.events, 1)
	assert.Equal(t, auditBatchExecuted, m.audit.events[0].EventType)
}

func TestArchiveFailure_DoesNotFailOperation(t *testing.T) {
	ctx := context.Background()
	svc, _, mock, arch := newTestService(t, addr(1))
	arch.err = context.DeadlineExceeded
	expectTx(mock, 1)

	_, err := svc.AddGuardian(ctx, addr(1), addr(2))
	require.NoError(t, err)
}

func TestAuditTrail_ReadsThroughRepo(t *testing.T) {
	ctx := context.Background()
	svc, m, mock, _ := newTestService(t, addr(1))
	expectTx(mock, 2)

	_, err := svc.AddGuardian(ctx, addr(1), addr(2))
	require.NoError(t, err)
	_, err = svc.RemoveGuardian(ctx, addr(1), addr(2))
	require.NoError(t, err)

	events, err := svc.AuditTrail(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Len(t, m.audit.events, 2)
}
