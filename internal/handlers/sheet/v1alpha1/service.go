package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "coc.api.v1alpha1.SheetService"

// Method names, as passed to grpc.ClientConn.Invoke
const (
	MethodCreateSheet    = "/" + ServiceName + "/CreateSheet"
	MethodGetSheet       = "/" + ServiceName + "/GetSheet"
	MethodCreateVersion  = "/" + ServiceName + "/CreateVersion"
	MethodRollback       = "/" + ServiceName + "/Rollback"
	MethodHistory        = "/" + ServiceName + "/History"
	MethodDiff           = "/" + ServiceName + "/Diff"
	MethodExportSnapshot = "/" + ServiceName + "/ExportSnapshot"
	MethodImportSnapshot = "/" + ServiceName + "/ImportSnapshot"
	MethodExportVTT      = "/" + ServiceName + "/ExportVTT"
	MethodExportVTTBulk  = "/" + ServiceName + "/ExportVTTBulk"
	MethodRollAbilities  = "/" + ServiceName + "/RollAbilities"
	MethodAttachImage    = "/" + ServiceName + "/AttachImage"
	MethodListImages     = "/" + ServiceName + "/ListImages"
	MethodPromoteImage   = "/" + ServiceName + "/PromoteImage"
	MethodDeleteImage    = "/" + ServiceName + "/DeleteImage"
)

// SheetServiceServer is the server API for the sheet service. Requests and
// responses are JSON objects carried as google.protobuf.Struct.
type SheetServiceServer interface {
	CreateSheet(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetSheet(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	CreateVersion(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Rollback(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	History(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Diff(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ExportSnapshot(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ImportSnapshot(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ExportVTT(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ExportVTTBulk(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	RollAbilities(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	AttachImage(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListImages(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	PromoteImage(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	DeleteImage(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(srv SheetServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

// unary adapts a server method to a grpc.MethodDesc, running the interceptor
// chain the same way generated code does
func unary(name string, call unaryCall) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(
			srv any,
			ctx context.Context,
			dec func(any) error,
			interceptor grpc.UnaryServerInterceptor,
		) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(SheetServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(SheetServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// SheetServiceDesc is the grpc.ServiceDesc for the sheet service. Payloads
// are structpb.Struct, so there is no proto file descriptor to advertise.
var SheetServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SheetServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("CreateSheet", SheetServiceServer.CreateSheet),
		unary("GetSheet", SheetServiceServer.GetSheet),
		unary("CreateVersion", SheetServiceServer.CreateVersion),
		unary("Rollback", SheetServiceServer.Rollback),
		unary("History", SheetServiceServer.History),
		unary("Diff", SheetServiceServer.Diff),
		unary("ExportSnapshot", SheetServiceServer.ExportSnapshot),
		unary("ImportSnapshot", SheetServiceServer.ImportSnapshot),
		unary("ExportVTT", SheetServiceServer.ExportVTT),
		unary("ExportVTTBulk", SheetServiceServer.ExportVTTBulk),
		unary("RollAbilities", SheetServiceServer.RollAbilities),
		unary("AttachImage", SheetServiceServer.AttachImage),
		unary("ListImages", SheetServiceServer.ListImages),
		unary("PromoteImage", SheetServiceServer.PromoteImage),
		unary("DeleteImage", SheetServiceServer.DeleteImage),
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterSheetServiceServer registers the sheet service on a gRPC server
func RegisterSheetServiceServer(s grpc.ServiceRegistrar, srv SheetServiceServer) {
	s.RegisterService(&SheetServiceDesc, srv)
}
