package vaultproto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	VaultService_AddGuardian_FullMethodName      = "/keywarden.vault.v1.VaultService/AddGuardian"
	VaultService_RemoveGuardian_FullMethodName   = "/keywarden.vault.v1.VaultService/RemoveGuardian"
	VaultService_InitiateRecovery_FullMethodName = "/keywarden.vault.v1.VaultService/InitiateRecovery"
	VaultService_ApproveRecovery_FullMethodName  = "/keywarden.vault.v1.VaultService/ApproveRecovery"
	VaultService_ExecuteRecovery_FullMethodName  = "/keywarden.vault.v1.VaultService/ExecuteRecovery"
	VaultService_CancelRecovery_FullMethodName   = "/keywarden.vault.v1.VaultService/CancelRecovery"
	VaultService_SetPaused_FullMethodName        = "/keywarden.vault.v1.VaultService/SetPaused"
	VaultService_ExecuteBatch_FullMethodName     = "/keywarden.vault.v1.VaultService/ExecuteBatch"
	VaultService_GetGuardians_FullMethodName     = "/keywarden.vault.v1.VaultService/GetGuardians"
	VaultService_GetRecoveryInfo_FullMethodName  = "/keywarden.vault.v1.VaultService/GetRecoveryInfo"
	VaultService_GetAccountInfo_FullMethodName   = "/keywarden.vault.v1.VaultService/GetAccountInfo"
)

type VaultServiceClient interface {
	AddGuardian(ctx context.Context, in *AddGuardianRequest, opts ...grpc.CallOption) (*AddGuardianResponse, error)
	RemoveGuardian(ctx context.Context, in *RemoveGuardianRequest, opts ...grpc.CallOption) (*RemoveGuardianResponse, error)
	InitiateRecovery(ctx context.Context, in *InitiateRecoveryRequest, opts ...grpc.CallOption) (*InitiateRecoveryResponse, error)
	ApproveRecovery(ctx context.Context, in *ApproveRecoveryRequest, opts ...grpc.CallOption) (*ApproveRecoveryResponse, error)
	ExecuteRecovery(ctx context.Context, in *ExecuteRecoveryRequest, opts ...grpc.CallOption) (*ExecuteRecoveryResponse, error)
	CancelRecovery(ctx context.Context, in *CancelRecoveryRequest, opts ...grpc.CallOption) (*CancelRecoveryResponse, error)
	SetPaused(ctx context.Context, in *SetPausedRequest, opts ...grpc.CallOption) (*SetPausedResponse, error)
	ExecuteBatch(ctx context.Context, in *ExecuteBatchRequest, opts ...grpc.CallOption) (*ExecuteBatchResponse, error)
	GetGuardians(ctx context.Context, in *GetGuardiansRequest, opts ...grpc.CallOption) (*GetGuardiansResponse, error)
	GetRecoveryInfo(ctx context.Context, in *GetRecoveryInfoRequest, opts ...grpc.CallOption) (*GetRecoveryInfoResponse, error)
	GetAccountInfo(ctx context.Context, in *GetAccountInfoRequest, opts ...grpc.CallOption) (*GetAccountInfoResponse, error)
}

type vaultServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewVaultServiceClient(cc grpc.ClientConnInterface) VaultServiceClient {
	return &vaultServiceClient{cc: cc}
}

func (c *vaultServiceClient) AddGuardian(ctx context.Context, in *AddGuardianRequest, opts ...grpc.CallOption) (*AddGuardianResponse, error) {
	out := new(AddGuardianResponse)
	if err := c.cc.Invoke(ctx, VaultService_AddGuardian_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *vaultServiceClient) RemoveGuardian(ctx context.Context, in *RemoveGuardianRequest, opts ...grpc.CallOption) (*RemoveGuardianResponse, error) {
	out := new(RemoveGuardianResponse)
	if err := c.cc.Invoke(ctx, VaultService_RemoveGuardian_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *vaultServiceClient) InitiateRecovery(ctx context.Context, in *InitiateRecoveryRequest, opts ...grpc.CallOption) (*InitiateRecoveryResponse, error) {
	out := new(InitiateRecoveryResponse)
	if err := c.cc.Invoke(ctx, VaultService_InitiateRecovery_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *vaultServiceClient) ApproveRecovery(ctx context.Context, in *ApproveRecoveryRequest, opts ...grpc.CallOption) (*ApproveRecoveryResponse, error) {
	out := new(ApproveRecoveryResponse)
	if err := c.cc.Invoke(ctx, VaultService_ApproveRecovery_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *vaultServiceClient) ExecuteRecovery(ctx context.Context, in *ExecuteRecoveryRequest, opts ...grpc.CallOption) (*ExecuteRecoveryResponse, error) {
	out := new(ExecuteRecoveryResponse)
	if err := c.cc.Invoke(ctx, VaultService_ExecuteRecovery_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *vaultServiceClient) CancelRecovery(ctx context.Context, in *CancelRecoveryRequest, opts ...grpc.CallOption) (*CancelRecoveryResponse, error) {
	out := new(CancelRecoveryResponse)
	if err := c.cc.Invoke(ctx, VaultService_CancelRecovery_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *vaultServiceClient) SetPaused(ctx context.Context, in *SetPausedRequest, opts ...grpc.CallOption) (*SetPausedResponse, error) {
	out := new(SetPausedResponse)
	if err := c.cc.Invoke(ctx, VaultService_SetPaused_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *vaultServiceClient) ExecuteBatch(ctx context.Context, in *ExecuteBatchRequest, opts ...grpc.CallOption) (*ExecuteBatchResponse, error) {
	out := new(ExecuteBatchResponse)
	if err := c.cc.Invoke(ctx, VaultService_ExecuteBatch_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *vaultServiceClient) GetGuardians(ctx context.Context, in *GetGuardiansRequest, opts ...grpc.CallOption) (*GetGuardiansResponse, error) {
	out := new(GetGuardiansResponse)
	if err := c.cc.Invoke(ctx, VaultService_GetGuardians_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *vaultServiceClient) GetRecoveryInfo(ctx context.Context, in *GetRecoveryInfoRequest, opts ...grpc.CallOption) (*GetRecoveryInfoResponse, error) {
	out := new(GetRecoveryInfoResponse)
	if err := c.cc.Invoke(ctx, VaultService_GetRecoveryInfo_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *vaultServiceClient) GetAccountInfo(ctx context.Context, in *GetAccountInfoRequest, opts ...grpc.CallOption) (*GetAccountInfoResponse, error) {
	out := new(GetAccountInfoResponse)
	if err := c.cc.Invoke(ctx, VaultService_GetAccountInfo_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

type VaultServiceServer interface {
	AddGuardian(context.Context, *AddGuardianRequest) (*AddGuardianResponse, error)
	RemoveGuardian(context.Context, *RemoveGuardianRequest) (*RemoveGuardianResponse, error)
	InitiateRecovery(context.Context, *InitiateRecoveryRequest) (*InitiateRecoveryResponse, error)
	ApproveRecovery(context.Context, *ApproveRecoveryRequest) (*ApproveRecoveryResponse, error)
	ExecuteRecovery(context.Context, *ExecuteRecoveryRequest) (*ExecuteRecoveryResponse, error)
	CancelRecovery(context.Context, *CancelRecoveryRequest) (*CancelRecoveryResponse, error)
	SetPaused(context.Context, *SetPausedRequest) (*SetPausedResponse, error)
	ExecuteBatch(context.Context, *ExecuteBatchRequest) (*ExecuteBatchResponse, error)
	GetGuardians(context.Context, *GetGuardiansRequest) (*GetGuardiansResponse, error)
	GetRecoveryInfo(context.Context, *GetRecoveryInfoRequest) (*GetRecoveryInfoResponse, error)
	GetAccountInfo(context.Context, *GetAccountInfoRequest) (*GetAccountInfoResponse, error)
	mustEmbedUnimplementedVaultServiceServer()
}

type UnimplementedVaultServiceServer struct{}

func (UnimplementedVaultServiceServer) AddGuardian(context.Context, *AddGuardianRequest) (*AddGuardianResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AddGuardian not implemented")
}
func (UnimplementedVaultServiceServer) RemoveGuardian(context.Context, *RemoveGuardianRequest) (*RemoveGuardianResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RemoveGuardian not implemented")
}
func (UnimplementedVaultServiceServer) InitiateRecovery(context.Context, *InitiateRecoveryRequest) (*InitiateRecoveryResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method InitiateRecovery not implemented")
}
func (UnimplementedVaultServiceServer) ApproveRecovery(context.Context, *ApproveRecoveryRequest) (*ApproveRecoveryResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ApproveRecovery not implemented")
}
func (UnimplementedVaultServiceServer) ExecuteRecovery(context.Context, *ExecuteRecoveryRequest) (*ExecuteRecoveryResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ExecuteRecovery not implemented")
}
func (UnimplementedVaultServiceServer) CancelRecovery(context.Context, *CancelRecoveryRequest) (*CancelRecoveryResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CancelRecovery not implemented")
}
func (UnimplementedVaultServiceServer) SetPaused(context.Context, *SetPausedRequest) (*SetPausedResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SetPaused not implemented")
}
func (UnimplementedVaultServiceServer) ExecuteBatch(context.Context, *ExecuteBatchRequest) (*ExecuteBatchResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ExecuteBatch not implemented")
}
func (UnimplementedVaultServiceServer) GetGuardians(context.Context, *GetGuardiansRequest) (*GetGuardiansResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetGuardians not implemented")
}
func (UnimplementedVaultServiceServer) GetRecoveryInfo(context.Context, *GetRecoveryInfoRequest) (*GetRecoveryInfoResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetRecoveryInfo not implemented")
}
func (UnimplementedVaultServiceServer) GetAccountInfo(context.Context, *GetAccountInfoRequest) (*GetAccountInfoResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAccountInfo not implemented")
}
func (UnimplementedVaultServiceServer) mustEmbedUnimplementedVaultServiceServer() {}

func RegisterVaultServiceServer(s grpc.ServiceRegistrar, srv VaultServiceServer) {
	s.RegisterService(&VaultService_ServiceDesc, srv)
}

func _VaultService_AddGuardian_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(AddGuardianRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServiceServer).AddGuardian(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: VaultService_AddGuardian_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(VaultServiceServer).AddGuardian(ctx, req.(*AddGuardianRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VaultService_RemoveGuardian_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(RemoveGuardianRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServiceServer).RemoveGuardian(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: VaultService_RemoveGuardian_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(VaultServiceServer).RemoveGuardian(ctx, req.(*RemoveGuardianRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VaultService_InitiateRecovery_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(InitiateRecoveryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServiceServer).InitiateRecovery(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: VaultService_InitiateRecovery_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(VaultServiceServer).InitiateRecovery(ctx, req.(*InitiateRecoveryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VaultService_ApproveRecovery_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ApproveRecoveryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServiceServer).ApproveRecovery(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: VaultService_ApproveRecovery_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(VaultServiceServer).ApproveRecovery(ctx, req.(*ApproveRecoveryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VaultService_ExecuteRecovery_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ExecuteRecoveryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServiceServer).ExecuteRecovery(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: VaultService_ExecuteRecovery_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(VaultServiceServer).ExecuteRecovery(ctx, req.(*ExecuteRecoveryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VaultService_CancelRecovery_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CancelRecoveryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServiceServer).CancelRecovery(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: VaultService_CancelRecovery_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(VaultServiceServer).CancelRecovery(ctx, req.(*CancelRecoveryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VaultService_SetPaused_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SetPausedRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServiceServer).SetPaused(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: VaultService_SetPaused_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(VaultServiceServer).SetPaused(ctx, req.(*SetPausedRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VaultService_ExecuteBatch_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ExecuteBatchRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServiceServer).ExecuteBatch(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: VaultService_ExecuteBatch_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(VaultServiceServer).ExecuteBatch(ctx, req.(*ExecuteBatchRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VaultService_GetGuardians_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetGuardiansRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServiceServer).GetGuardians(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: VaultService_GetGuardians_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(VaultServiceServer).GetGuardians(ctx, req.(*GetGuardiansRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VaultService_GetRecoveryInfo_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetRecoveryInfoRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServiceServer).GetRecoveryInfo(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: VaultService_GetRecoveryInfo_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(VaultServiceServer).GetRecoveryInfo(ctx, req.(*GetRecoveryInfoRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VaultService_GetAccountInfo_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetAccountInfoRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServiceServer).GetAccountInfo(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: VaultService_GetAccountInfo_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(VaultServiceServer).GetAccountInfo(ctx, req.(*GetAccountInfoRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var VaultService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "keywarden.vault.v1.VaultService",
	HandlerType: (*VaultServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "AddGuardian", Handler: _VaultService_AddGuardian_Handler},
		{MethodName: "RemoveGuardian", Handler: _VaultService_RemoveGuardian_Handler},
		{MethodName: "InitiateRecovery", Handler: _VaultService_InitiateRecovery_Handler},
		{MethodName: "ApproveRecovery", Handler: _VaultService_ApproveRecovery_Handler},
		{MethodName: "ExecuteRecovery", Handler: _VaultService_ExecuteRecovery_Handler},
		{MethodName: "CancelRecovery", Handler: _VaultService_CancelRecovery_Handler},
		{MethodName: "SetPaused", Handler: _VaultService_SetPaused_Handler},
		{MethodName: "ExecuteBatch", Handler: _VaultService_ExecuteBatch_Handler},
		{MethodName: "GetGuardians", Handler: _VaultService_GetGuardians_Handler},
		{MethodName: "GetRecoveryInfo", Handler: _VaultService_GetRecoveryInfo_Handler},
		{MethodName: "GetAccountInfo", Handler: _VaultService_GetAccountInfo_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "internal/proto/vault.proto",
}
