package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/ogurasousui/service-award/internal/adapters/grpc/handler"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Server は gRPC サーバーのライフサイクルを管理します。
type Server struct {
	listenAddr string
	grpcServer *grpc.Server
	health     *health.Server
	logger     logrus.FieldLogger
}

// Options は Server 構築時の追加設定です。
type Options struct {
	EnableReflection bool
	ServerOptions    []grpc.ServerOption
}

// New は指定されたアドレスで待ち受ける gRPC サーバーを構築します。
func New(listenAddr string, roster handler.RosterServiceServer, logger logrus.FieldLogger, opts Options) *Server {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}

	serverOpts := append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(handler.LoggingUnaryInterceptor(logger)),
	}, opts.ServerOptions...)
	srv := grpc.NewServer(serverOpts...)

	handler.RegisterRosterServiceServer(srv, roster)

	healthSrv := health.NewServer()
	healthSrv.SetServingStatus(handler.RosterServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, healthSrv)

	if opts.EnableReflection {
		reflection.Register(srv)
	}

	return &Server{
		listenAddr: listenAddr,
		grpcServer: srv,
		health:     healthSrv,
		logger:     logger,
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると GracefulStop します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve は与えられたリスナーで待ち受けます。
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		s.logger.WithField("addr", lis.Addr().String()).Info("gRPC server listening")
		if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("serve gRPC: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.GracefulStop()
		return nil
	})

	return g.Wait()
}

// GracefulStop はヘルスチェックを NOT_SERVING に切り替えてからサーバーを安全に停止します。
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}
