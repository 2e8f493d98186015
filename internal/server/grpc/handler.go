package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dkovalenko/keywarden/internal/common"
	"github.com/dkovalenko/keywarden/internal/engine"
	"github.com/dkovalenko/keywarden/internal/principal"
	pb "github.com/dkovalenko/keywarden/internal/proto"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// mapError translates service/engine errors into gRPC status codes.
func mapError(err error) error {
	var callFailed *engine.CallFailedError
	if errors.As(err, &callFailed) {
		return status.Error(codes.Aborted, callFailed.Error())
	}

	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.PermissionDenied, "unauthorized")
	case errors.Is(err, common.ErrInvalidPrincipal),
		errors.Is(err, common.ErrArrayLengthMismatch):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrAlreadyGuardian),
		errors.Is(err, common.ErrAlreadyApproved):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, common.ErrNotGuardian):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrOwnerCannotBeGuardian),
		errors.Is(err, common.ErrInsufficientGuardians),
		errors.Is(err, common.ErrRecoveryAlreadyActive),
		errors.Is(err, common.ErrNoActiveRecovery),
		errors.Is(err, common.ErrInsufficientApprovals),
		errors.Is(err, common.ErrReentrantCall),
		errors.Is(err, common.ErrPaused):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func (s *GRPCServer) caller(ctx context.Context) (principal.Principal, error) {
	p, ok := callerFromContext(ctx)
	if !ok {
		return principal.Zero, status.Error(codes.Unauthenticated, "missing token")
	}
	return p, nil
}

func (s *GRPCServer) AddGuardian(ctx context.Context, req *pb.AddGuardianRequest) (*pb.AddGuardianResponse, error) {

	caller, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	guardian, err := principal.Parse(req.Guardian)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "bad guardian address")
	}

	count, err := s.vault.AddGuardian(ctx, caller, guardian)
	if err != nil {
		s.logger.Error(ctx, "AddGuardian failed", "error", err)
		return nil, mapError(err)
	}

	s.logger.Info(ctx, "guardian added", "guardian", guardian.String())
	return &pb.AddGuardianResponse{GuardianCount: int32(count)}, nil
}

func (s *GRPCServer) RemoveGuardian(ctx context.Context, req *pb.RemoveGuardianRequest) (*pb.RemoveGuardianResponse, error) {

	caller, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	guardian, err := principal.Parse(req.Guardian)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "bad guardian address")
	}

	count, err := s.vault.RemoveGuardian(ctx, caller, guardian)
	if err != nil {
		s.logger.Error(ctx, "RemoveGuardian failed", "error", err)
		return nil, mapError(err)
	}

	s.logger.Info(ctx, "guardian removed", "guardian", guardian.String())
	return &pb.RemoveGuardianResponse{GuardianCount: int32(count)}, nil
}

func (s *GRPCServer) InitiateRecovery(ctx context.Context, req *pb.InitiateRecoveryRequest) (*pb.InitiateRecoveryResponse, error) {

	caller, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	newOwner, err := principal.Parse(req.NewOwner)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "bad new owner address")
	}

	if err := s.vault.InitiateRecovery(ctx, caller, newOwner); err != nil {
		s.logger.Error(ctx, "InitiateRecovery failed", "error", err)
		return nil, mapError(err)
	}

	s.logger.Info(ctx, "recovery initiated", "new_owner", newOwner.String())
	return &pb.InitiateRecoveryResponse{}, nil
}

func (s *GRPCServer) ApproveRecovery(ctx context.Context, req *pb.ApproveRecoveryRequest) (*pb.ApproveRecoveryResponse, error) {

	caller, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	approvals, threshold, err := s.vault.ApproveRecovery(ctx, caller)
	if err != nil {
		s.logger.Error(ctx, "ApproveRecovery failed", "error", err)
		return nil, mapError(err)
	}

	return &pb.ApproveRecoveryResponse{
		Approvals: int32(approvals),
		Threshold: int32(threshold),
	}, nil
}

func (s *GRPCServer) ExecuteRecovery(ctx context.Context, req *pb.ExecuteRecoveryRequest) (*pb.ExecuteRecoveryResponse, error) {

	caller, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	newOwner, err := s.vault.ExecuteRecovery(ctx, caller)
	if err != nil {
		s.logger.Error(ctx, "ExecuteRecovery failed", "error", err)
		return nil, mapError(err)
	}

	s.logger.Info(ctx, "recovery executed", "new_owner", newOwner.String())
	return &pb.ExecuteRecoveryResponse{NewOwner: newOwner.String()}, nil
}

func (s *GRPCServer) CancelRecovery(ctx context.Context, req *pb.CancelRecoveryRequest) (*pb.CancelRecoveryResponse, error) {

	caller, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.vault.CancelRecovery(ctx, caller); err != nil {
		s.logger.Error(ctx, "CancelRecovery failed", "error", err)
		return nil, mapError(err)
	}

	return &pb.CancelRecoveryResponse{}, nil
}

func (s *GRPCServer) SetPaused(ctx context.Context, req *pb.SetPausedRequest) (*pb.SetPausedResponse, error) {

	caller, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.vault.SetPaused(ctx, caller, req.Paused); err != nil {
		s.logger.Error(ctx, "SetPaused failed", "error", err)
		return nil, mapError(err)
	}

	s.logger.Info(ctx, "paused flag changed", "paused", req.Paused)
	return &pb.SetPausedResponse{}, nil
}

func (s *GRPCServer) ExecuteBatch(ctx context.Context, req *pb.ExecuteBatchRequest) (*pb.ExecuteBatchResponse, error) {

	caller, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	// Length mismatches are rejected by the engine; only the addresses
	// need parsing up front.
	targets := make([]principal.Principal, 0, len(req.Targets))
	for _, t := range req.Targets {
		p, err := principal.Parse(t)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, "bad target address")
		}
		targets = append(targets, p)
	}

	results, err := s.vault.ExecuteBatch(ctx, caller, targets, req.Values, req.Payloads)
	if err != nil {
		s.logger.Error(ctx, "ExecuteBatch failed", "error", err)
		return nil, mapError(err)
	}

	s.logger.Info(ctx, "batch executed", "calls", len(targets))
	return &pb.ExecuteBatchResponse{Results: results}, nil
}

func (s *GRPCServer) GetGuardians(ctx context.Context, req *pb.GetGuardiansRequest) (*pb.GetGuardiansResponse, error) {

	list := s.vault.GetGuardians(ctx)
	out := make([]string, 0, len(list))
	for _, g := range list {
		out = append(out, g.String())
	}
	return &pb.GetGuardiansResponse{Guardians: out}, nil
}

func (s *GRPCServer) GetRecoveryInfo(ctx context.Context, req *pb.GetRecoveryInfoRequest) (*pb.GetRecoveryInfoResponse, error) {
	return recoveryInfoResponse(s.vault.GetRecoveryInfo(ctx)), nil
}

// recoveryInfoResponse carries the whole snapshot, active or not, so a
// cancelled or executed request stays inspectable. CreatedAt is zero only
// when no request was ever initiated.
func recoveryInfoResponse(info engine.RecoveryInfo) *pb.GetRecoveryInfoResponse {
	resp := &pb.GetRecoveryInfoResponse{
		Active:    info.Active,
		NewOwner:  info.NewOwner.String(),
		Threshold: int32(info.Threshold),
	}
	if !info.CreatedAt.IsZero() {
		resp.CreatedAtRfc3339 = info.CreatedAt.Format(time.RFC3339)
	}
	for _, a := range info.Approvals {
		resp.Approvals = append(resp.Approvals, a.String())
	}
	return resp
}

func (s *GRPCServer) GetAccountInfo(ctx context.Context, req *pb.GetAccountInfoRequest) (*pb.GetAccountInfoResponse, error) {

	info := s.vault.GetAccountInfo(ctx)
	return &pb.GetAccountInfoResponse{
		Owner:         info.Owner.String(),
		Paused:        info.Paused,
		GuardianCount: int32(info.GuardianCount),
	}, nil
}
