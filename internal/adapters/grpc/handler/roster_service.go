package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// RosterServiceName は勤続情報参照サービスの完全修飾名です。
const RosterServiceName = "serviceaward.v1.RosterService"

const (
	listTeamMethod           = "ListTeam"
	listEmployeesMethod      = "ListEmployees"
	getHierarchyLevelsMethod = "GetHierarchyLevels"
	getEmployeeMethod        = "GetEmployee"
)

// FullMethod は gRPC のフルメソッド名を返します。
func FullMethod(method string) string {
	return "/" + RosterServiceName + "/" + method
}

// RosterServiceServer は RosterService のサーバー側インターフェースです。
// メッセージは google.protobuf.Struct で受け渡します。
type RosterServiceServer interface {
	ListTeam(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListEmployees(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetHierarchyLevels(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetEmployee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// RosterServiceDesc は RosterService の grpc.ServiceDesc です。
var RosterServiceDesc = grpc.ServiceDesc{
	ServiceName: RosterServiceName,
	HandlerType: (*RosterServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: listTeamMethod, Handler: unaryHandler(listTeamMethod, RosterServiceServer.ListTeam)},
		{MethodName: listEmployeesMethod, Handler: unaryHandler(listEmployeesMethod, RosterServiceServer.ListEmployees)},
		{MethodName: getHierarchyLevelsMethod, Handler: unaryHandler(getHierarchyLevelsMethod, RosterServiceServer.GetHierarchyLevels)},
		{MethodName: getEmployeeMethod, Handler: unaryHandler(getEmployeeMethod, RosterServiceServer.GetEmployee)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "serviceaward/v1/roster.proto",
}

// RegisterRosterServiceServer は srv を gRPC サーバーに登録します。
func RegisterRosterServiceServer(s grpc.ServiceRegistrar, srv RosterServiceServer) {
	s.RegisterService(&RosterServiceDesc, srv)
}

type rosterMethod func(RosterServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(method string, call rosterMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(RosterServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: FullMethod(method),
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(RosterServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}
