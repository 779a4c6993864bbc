package handler

import (
	"bytes"
	"context"
	"net"
	"testing"

	"github.com/ogurasousui/service-award/internal/core/employee"
	"github.com/ogurasousui/service-award/internal/core/roster"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

func startRosterServer(t *testing.T, uc employee.UseCase, logger logrus.FieldLogger) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(LoggingUnaryInterceptor(logger)))
	RegisterRosterServiceServer(srv, NewEmployeeGrpcHandler(uc))

	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func TestRosterService_ListTeamOverBufconn(t *testing.T) {
	t.Parallel()

	stub := &stubEmployeeUseCase{teamOut: &employee.ListResult{
		Employees: []roster.AnnotatedRecord{annotated(2, "Bob", 4, 0)},
		Total:     1,
	}}
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	conn := startRosterServer(t, stub, logger)

	req, err := structpb.NewStruct(map[string]any{"manager_email": "alice@example.com"})
	require.NoError(t, err)

	var header metadata.MD
	resp := new(structpb.Struct)
	err = conn.Invoke(context.Background(), FullMethod(listTeamMethod), req, resp, grpc.Header(&header))
	require.NoError(t, err)

	require.Equal(t, "alice@example.com", stub.teamInput.ManagerEmail)
	require.EqualValues(t, 1, resp.GetFields()["total"].GetNumberValue())
	rows := resp.GetFields()["employees"].GetListValue().GetValues()
	require.Len(t, rows, 1)
	require.Equal(t, "Bob", rows[0].GetStructValue().GetFields()["employee_name"].GetStringValue())

	require.Len(t, header.Get(RequestIDHeader), 1)
	require.NotEmpty(t, header.Get(RequestIDHeader)[0])
}

func TestRosterService_ErrorCodeOverBufconn(t *testing.T) {
	t.Parallel()

	stub := &stubEmployeeUseCase{getErr: employee.ErrEmployeeNotFound}
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	conn := startRosterServer(t, stub, logger)

	req, err := structpb.NewStruct(map[string]any{"id": 42})
	require.NoError(t, err)

	err = conn.Invoke(context.Background(), FullMethod(getEmployeeMethod), req, new(structpb.Struct))
	require.Error(t, err)
	require.Equal(t, codes.NotFound, status.Code(err))
	require.EqualValues(t, 42, stub.getInput.ID)
}

func TestLoggingUnaryInterceptor_PropagatesRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	interceptor := LoggingUnaryInterceptor(logger)
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDHeader, "req-123"))
	info := &grpc.UnaryServerInfo{FullMethod: FullMethod(listEmployeesMethod)}

	resp, err := interceptor(ctx, "in", info, func(ctx context.Context, req any) (any, error) {
		return "out", nil
	})
	require.NoError(t, err)
	require.Equal(t, "out", resp)

	out := buf.String()
	require.Contains(t, out, `"request_id":"req-123"`)
	require.Contains(t, out, `"code":"OK"`)
	require.Contains(t, out, FullMethod(listEmployeesMethod))
}

func TestLoggingUnaryInterceptor_LogsFailures(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	interceptor := LoggingUnaryInterceptor(logger)
	info := &grpc.UnaryServerInfo{FullMethod: FullMethod(getEmployeeMethod)}

	_, err := interceptor(context.Background(), "in", info, func(ctx context.Context, req any) (any, error) {
		return nil, status.Error(codes.NotFound, "missing")
	})
	require.Equal(t, codes.NotFound, status.Code(err))

	out := buf.String()
	require.Contains(t, out, `"level":"warning"`)
	require.Contains(t, out, `"code":"NotFound"`)
	require.Contains(t, out, `"request_id"`)
}
