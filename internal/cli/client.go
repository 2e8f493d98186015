// Package cli implements the keywarden command-line client: a thin gRPC
// wrapper plus subcommand dispatch for vault administration.
package cli

import (
	"context"
	"errors"

	"github.com/dkovalenko/keywarden/internal/common"
	pb "github.com/dkovalenko/keywarden/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// GRPCClient wraps the vault service client, attaching the access token to
// every outgoing call.
type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.VaultServiceClient
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if s.accessToken != "" {
		ctx = withAccessToken(ctx, s.accessToken)
	}

	return invoker(ctx, method, req, reply, cc, opts...)
}

// newClientConn is a test seam for grpc.NewClient.
var newClientConn = func(target string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	return grpc.NewClient(target, opts...)
}

// NewVaultClient dials the vault endpoint. The token may be empty for
// query-only usage.
func NewVaultClient(endpointURL, accessToken string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, accessToken: accessToken}
	if err := c.initGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) initGRPCClient() error {

	pb.EnsureJSONCodec()

	conn, err := newClientConn(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(pb.JSONCodecName)),
	)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewVaultServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// mapError converts a gRPC status into a plain error with the server's
// message, so command output stays readable.
func (s *GRPCClient) mapError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	return errors.New(st.Message())
}

func (s *GRPCClient) AddGuardian(ctx context.Context, guardian string) (int32, error) {
	resp, err := s.client.AddGuardian(ctx, &pb.AddGuardianRequest{Guardian: guardian})
	if err != nil {
		return 0, s.mapError(err)
	}
	return resp.GuardianCount, nil
}

func (s *GRPCClient) RemoveGuardian(ctx context.Context, guardian string) (int32, error) {
	resp, err := s.client.RemoveGuardian(ctx, &pb.RemoveGuardianRequest{Guardian: guardian})
	if err != nil {
		return 0, s.mapError(err)
	}
	return resp.GuardianCount, nil
}

func (s *GRPCClient) InitiateRecovery(ctx context.Context, newOwner string) error {
	_, err := s.client.InitiateRecovery(ctx, &pb.InitiateRecoveryRequest{NewOwner: newOwner})
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) ApproveRecovery(ctx context.Context) (approvals, threshold int32, err error) {
	resp, err := s.client.ApproveRecovery(ctx, &pb.ApproveRecoveryRequest{})
	if err != nil {
		return 0, 0, s.mapError(err)
	}
	return resp.Approvals, resp.Threshold, nil
}

func (s *GRPCClient) ExecuteRecovery(ctx context.Context) (string, error) {
	resp, err := s.client.ExecuteRecovery(ctx, &pb.ExecuteRecoveryRequest{})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.NewOwner, nil
}

func (s *GRPCClient) CancelRecovery(ctx context.Context) error {
	_, err := s.client.CancelRecovery(ctx, &pb.CancelRecoveryRequest{})
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) SetPaused(ctx context.Context, paused bool) error {
	_, err := s.client.SetPaused(ctx, &pb.SetPausedRequest{Paused: paused})
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) ExecuteBatch(ctx context.Context, targets []string, values []uint64, payloads [][]byte) ([][]byte, error) {
	resp, err := s.client.ExecuteBatch(ctx, &pb.ExecuteBatchRequest{
		Targets:  targets,
		Values:   values,
		Payloads: payloads,
	})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Results, nil
}

func (s *GRPCClient) GetGuardians(ctx context.Context) ([]string, error) {
	resp, err := s.client.GetGuardians(ctx, &pb.GetGuardiansRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Guardians, nil
}

func (s *GRPCClient) GetRecoveryInfo(ctx context.Context) (*pb.GetRecoveryInfoResponse, error) {
	resp, err := s.client.GetRecoveryInfo(ctx, &pb.GetRecoveryInfoRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) GetAccountInfo(ctx context.Context) (*pb.GetAccountInfoResponse, error) {
	resp, err := s.client.GetAccountInfo(ctx, &pb.GetAccountInfoRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}
