// Package grpcapi declares the samqfsui.v1.Console gRPC service. Messages
// are protobuf well-known types: requests and responses carry the same JSON
// objects as the HTTP API, wrapped in structpb.Struct.
package grpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "samqfsui.v1.Console"

const (
	Console_GetServerInfo_FullMethodName      = "/samqfsui.v1.Console/GetServerInfo"
	Console_ListPresets_FullMethodName        = "/samqfsui.v1.Console/ListPresets"
	Console_PlanPopup_FullMethodName          = "/samqfsui.v1.Console/PlanPopup"
	Console_ValidateRange_FullMethodName      = "/samqfsui.v1.Console/ValidateRange"
	Console_ValidateField_FullMethodName      = "/samqfsui.v1.Console/ValidateField"
	Console_CreateOperation_FullMethodName    = "/samqfsui.v1.Console/CreateOperation"
	Console_RecordHostResult_FullMethodName   = "/samqfsui.v1.Console/RecordHostResult"
	Console_GetOperationStatus_FullMethodName = "/samqfsui.v1.Console/GetOperationStatus"
)

type ConsoleServer interface {
	GetServerInfo(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	ListPresets(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	PlanPopup(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ValidateRange(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ValidateField(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateOperation(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// RecordHostResult expects "operation_id" next to the host result fields.
	RecordHostResult(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// GetOperationStatus expects "operation_id".
	GetOperationStatus(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedConsoleServer can be embedded to keep forward compatibility.
type UnimplementedConsoleServer struct{}

func (UnimplementedConsoleServer) GetServerInfo(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetServerInfo not implemented")
}
func (UnimplementedConsoleServer) ListPresets(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ListPresets not implemented")
}
func (UnimplementedConsoleServer) PlanPopup(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method PlanPopup not implemented")
}
func (UnimplementedConsoleServer) ValidateRange(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ValidateRange not implemented")
}
func (UnimplementedConsoleServer) ValidateField(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ValidateField not implemented")
}
func (UnimplementedConsoleServer) CreateOperation(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateOperation not implemented")
}
func (UnimplementedConsoleServer) RecordHostResult(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method RecordHostResult not implemented")
}
func (UnimplementedConsoleServer) GetOperationStatus(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetOperationStatus not implemented")
}

func RegisterConsoleServer(s grpc.ServiceRegistrar, srv ConsoleServer) {
	s.RegisterService(&Console_ServiceDesc, srv)
}

func unaryHandler[Req any](fullMethod string, call func(ConsoleServer, context.Context, *Req) (*structpb.Struct, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ConsoleServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ConsoleServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var Console_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ConsoleServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetServerInfo", Handler: unaryHandler(Console_GetServerInfo_FullMethodName, ConsoleServer.GetServerInfo)},
		{MethodName: "ListPresets", Handler: unaryHandler(Console_ListPresets_FullMethodName, ConsoleServer.ListPresets)},
		{MethodName: "PlanPopup", Handler: unaryHandler(Console_PlanPopup_FullMethodName, ConsoleServer.PlanPopup)},
		{MethodName: "ValidateRange", Handler: unaryHandler(Console_ValidateRange_FullMethodName, ConsoleServer.ValidateRange)},
		{MethodName: "ValidateField", Handler: unaryHandler(Console_ValidateField_FullMethodName, ConsoleServer.ValidateField)},
		{MethodName: "CreateOperation", Handler: unaryHandler(Console_CreateOperation_FullMethodName, ConsoleServer.CreateOperation)},
		{MethodName: "RecordHostResult", Handler: unaryHandler(Console_RecordHostResult_FullMethodName, ConsoleServer.RecordHostResult)},
		{MethodName: "GetOperationStatus", Handler: unaryHandler(Console_GetOperationStatus_FullMethodName, ConsoleServer.GetOperationStatus)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "samqfsui/v1/console.proto",
}

type ConsoleClient interface {
	GetServerInfo(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListPresets(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	PlanPopup(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ValidateRange(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ValidateField(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	CreateOperation(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	RecordHostResult(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetOperationStatus(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type consoleClient struct {
	cc grpc.ClientConnInterface
}

func NewConsoleClient(cc grpc.ClientConnInterface) ConsoleClient {
	return &consoleClient{cc: cc}
}

func (c *consoleClient) invoke(ctx context.Context, method string, in any, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *consoleClient) GetServerInfo(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, Console_GetServerInfo_FullMethodName, in, opts)
}

func (c *consoleClient) ListPresets(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, Console_ListPresets_FullMethodName, in, opts)
}

func (c *consoleClient) PlanPopup(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, Console_PlanPopup_FullMethodName, in, opts)
}

func (c *consoleClient) ValidateRange(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, Console_ValidateRange_FullMethodName, in, opts)
}

func (c *consoleClient) ValidateField(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, Console_ValidateField_FullMethodName, in, opts)
}

func (c *consoleClient) CreateOperation(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, Console_CreateOperation_FullMethodName, in, opts)
}

func (c *consoleClient) RecordHostResult(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, Console_RecordHostResult_FullMethodName, in, opts)
}

func (c *consoleClient) GetOperationStatus(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, Console_GetOperationStatus_FullMethodName, in, opts)
}
