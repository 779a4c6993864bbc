package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/ogurasousui/service-award/internal/adapters/grpc/handler"
	"github.com/ogurasousui/service-award/internal/adapters/repository/postgres"
	"github.com/ogurasousui/service-award/internal/core/employee"
	"github.com/ogurasousui/service-award/internal/platform/config"
	pg "github.com/ogurasousui/service-award/internal/platform/db/postgres"
	"github.com/ogurasousui/service-award/internal/platform/logging"
	"github.com/ogurasousui/service-award/internal/platform/server"
	"github.com/sirupsen/logrus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logrus.Fatalf("failed to load .env: %v", err)
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging, os.Stderr)
	if err != nil {
		logrus.Fatalf("failed to initialize logger: %v", err)
	}

	loc, err := cfg.Roster.LoadLocation()
	if err != nil {
		logger.Fatalf("failed to load roster time zone: %v", err)
	}

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database pool: %v", err)
	}
	defer dbPool.Close()

	employeeRepo := postgres.NewEmployeeRepository(dbPool)
	txManager := pg.NewTransactionManager(dbPool)
	employeeSvc := employee.NewService(employeeRepo, nil, txManager,
		employee.WithLocation(loc),
		employee.WithLogger(logger),
	)

	grpcServer := server.New(cfg.Server.ListenAddr, handler.NewEmployeeGrpcHandler(employeeSvc), logger, server.Options{
		EnableReflection: cfg.Server.EnableReflection,
	})

	logger.WithFields(logrus.Fields{
		"addr":      cfg.Server.ListenAddr,
		"time_zone": loc.String(),
	}).Info("starting service-award")

	if err := grpcServer.Run(ctx); err != nil {
		logger.Fatalf("server stopped with error: %v", err)
	}
	logger.Info("server stopped")
}
