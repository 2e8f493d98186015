// Package vaultproto defines the wire messages and service stubs for the
// KeyWarden vault API. The messages are hand-maintained and travel over
// gRPC with a JSON codec; keep field names stable.
package vaultproto

type AddGuardianRequest struct {
	Guardian string `json:"guardian,omitempty"`
}

type AddGuardianResponse struct {
	GuardianCount int32 `json:"guardian_count,omitempty"`
}

type RemoveGuardianRequest struct {
	Guardian string `json:"guardian,omitempty"`
}

type RemoveGuardianResponse struct {
	GuardianCount int32 `json:"guardian_count,omitempty"`
}

type InitiateRecoveryRequest struct {
	NewOwner string `json:"new_owner,omitempty"`
}

type InitiateRecoveryResponse struct{}

type ApproveRecoveryRequest struct{}

type ApproveRecoveryResponse struct {
	Approvals int32 `json:"approvals,omitempty"`
	Threshold int32 `json:"threshold,omitempty"`
}

type ExecuteRecoveryRequest struct{}

type ExecuteRecoveryResponse struct {
	NewOwner string `json:"new_owner,omitempty"`
}

type CancelRecoveryRequest struct{}

type CancelRecoveryResponse struct{}

type SetPausedRequest struct {
	Paused bool `json:"paused"`
}

type SetPausedResponse struct{}

type ExecuteBatchRequest struct {
	// Parallel arrays; all three must have equal length.
	Targets  []string `json:"targets,omitempty"`
	Values   []uint64 `json:"values,omitempty"`
	Payloads [][]byte `json:"payloads,omitempty"`
}

type ExecuteBatchResponse struct {
	Results [][]byte `json:"results,omitempty"`
}

type GetGuardiansRequest struct{}

type GetGuardiansResponse struct {
	Guardians []string `json:"guardians,omitempty"`
}

type GetRecoveryInfoRequest struct{}

type GetRecoveryInfoResponse struct {
	Active           bool     `json:"active"`
	NewOwner         string   `json:"new_owner,omitempty"`
	Approvals        []string `json:"approvals,omitempty"`
	CreatedAtRfc3339 string   `json:"created_at_rfc3339,omitempty"`
	Threshold        int32    `json:"threshold,omitempty"`
}

type GetAccountInfoRequest struct{}

type GetAccountInfoResponse struct {
	Owner         string `json:"owner,omitempty"`
	Paused        bool   `json:"paused"`
	GuardianCount int32  `json:"guardian_count,omitempty"`
}
