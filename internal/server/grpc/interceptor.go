package grpc

import (
	"context"

	"github.com/dkovalenko/keywarden/internal/common"
	"github.com/dkovalenko/keywarden/internal/principal"
	pb "github.com/dkovalenko/keywarden/internal/proto"
	"github.com/dkovalenko/keywarden/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const principalKey ctxKey = "principal"

// publicMethods are read-only queries that do not require a caller identity.
var publicMethods = map[string]struct{}{
	pb.VaultService_GetGuardians_FullMethodName:    {},
	pb.VaultService_GetRecoveryInfo_FullMethodName: {},
	pb.VaultService_GetAccountInfo_FullMethodName:  {},
}

// accessTokenInterceptor resolves the caller's principal from the
// access_token metadata entry and stores it in the request context. Query
// methods pass through without a token; everything else is rejected with
// Unauthenticated when the token is missing or invalid.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if _, ok := publicMethods[info.FullMethod]; !ok {

		var accessToken string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			values := md.Get(common.AccessTokenHeaderName)
			if len(values) > 0 {
				accessToken = values[0]
			}
		}
		if len(accessToken) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing token")
		}

		p, err := auth.GetPrincipalFromToken(accessToken, s.jwtSecret)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}

		ctx = context.WithValue(ctx, principalKey, p)
	}

	return handler(ctx, req)
}

// callerFromContext returns the principal stored by the interceptor.
func callerFromContext(ctx context.Context) (principal.Principal, bool) {
	p, ok := ctx.Value(principalKey).(principal.Principal)
	return p, ok
}
