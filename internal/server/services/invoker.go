package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dkovalenko/keywarden/internal/engine"
)

// ExecBridge dispatches batch sub-calls to an external execution service
// over HTTP. The service exposes a transactional surface: begin opens a
// staging transaction, invoke stages one call, and commit/rollback settle
// or discard the whole batch. It implements engine.Invoker.
type ExecBridge struct {
	baseURL string
	client  *http.Client
}

// NewExecBridge builds a bridge for the given base URL.
func NewExecBridge(baseURL string) *ExecBridge {
	return &ExecBridge{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Begin opens a staging transaction on the execution service.
func (b *ExecBridge) Begin(ctx context.Context) (engine.CallTx, error) {
	var out struct {
		TxID string `json:"tx_id"`
	}
	if err := b.post(ctx, "/tx/begin", nil, &out); err != nil {
		return nil, err
	}
	if out.TxID == "" {
		return nil, fmt.Errorf("exec bridge: begin returned empty tx_id")
	}
	return &execBridgeTx{bridge: b, txID: out.TxID}, nil
}

func (b *ExecBridge) post(ctx context.Context, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("exec bridge: %s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type execBridgeTx struct {
	bridge *ExecBridge
	txID   string
}

func (t *execBridgeTx) Invoke(ctx context.Context, call engine.Call) ([]byte, error) {
	in := struct {
		TxID    string `json:"tx_id"`
		Target  string `json:"target"`
		Value   uint64 `json:"value"`
		Payload []byte `json:"payload,omitempty"`
	}{
		TxID:    t.txID,
		Target:  call.Target.String(),
		Value:   call.Value,
		Payload: call.Payload,
	}
	var out struct {
		Result []byte `json:"result,omitempty"`
	}
	if err := t.bridge.post(ctx, "/tx/invoke", in, &out); err != nil {
		return nil, err
	}
	return out.Result, nil
}

func (t *execBridgeTx) Commit(ctx context.Context) error {
	in := struct {
		TxID string `json:"tx_id"`
	}{TxID: t.txID}
	return t.bridge.post(ctx, "/tx/commit", in, nil)
}

func (t *execBridgeTx) Rollback(ctx context.Context) error {
	in := struct {
		TxID string `json:"tx_id"`
	}{TxID: t.txID}
	return t.bridge.post(ctx, "/tx/rollback", in, nil)
}
