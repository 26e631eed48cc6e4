package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/example/joyashop/gateway"
	"github.com/example/joyashop/pkg/config"
	"github.com/example/joyashop/pkg/discovery"
	"github.com/example/joyashop/pkg/repository"
	"github.com/example/joyashop/pkg/service"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	logger, err := buildLogger(&cfg.Log)
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting API server",
		zap.String("name", cfg.Server.Name),
		zap.String("address", cfg.Server.Addr()))

	// MongoDB
	mongo, err := repository.NewMongo(&cfg.MongoDB)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := mongo.Ping(ctx); err != nil {
		cancel()
		logger.Fatal("MongoDB ping failed", zap.Error(err))
	}
	if err := mongo.EnsureIndexes(ctx); err != nil {
		cancel()
		logger.Fatal("Failed to create indexes", zap.Error(err))
	}
	cancel()
	logger.Info("MongoDB connected")

	// Redis product cache
	cache := repository.NewRedisCache(&cfg.Redis)
	if err := cache.Ping(context.Background()); err != nil {
		logger.Warn("Redis connection failed, product reads go straight to MongoDB", zap.Error(err))
	} else {
		logger.Info("Redis connected")
	}

	// Repositories and services
	products := repository.NewProductRepository(mongo)
	categories := repository.NewCategoryRepository(mongo)
	carts := repository.NewCartRepository(mongo)
	orders := repository.NewOrderRepository(mongo)
	users := repository.NewUserRepository(mongo)

	catalogSvc := service.NewCatalogService(products, categories, cache, logger)
	cartsSvc := service.NewCartsService(carts, products, logger)
	ordersSvc := service.NewOrdersService(orders, products, users,
		service.NewSimulatedGateway(cfg.Payment.ApprovalRate), logger)
	usersSvc := service.NewUsersService(users, logger)

	// Optional etcd registration
	var registry *discovery.Registry
	if len(cfg.Etcd.Endpoints) > 0 {
		registry, err = discovery.NewRegistry(&cfg.Etcd)
		if err != nil {
			logger.Warn("Failed to connect to etcd, continuing without registration", zap.Error(err))
		} else {
			instance := discovery.Instance{
				Name: cfg.Server.Name,
				Host: cfg.Server.Host,
				Port: cfg.Server.Port,
			}
			if err := registry.Register(context.Background(), instance); err != nil {
				logger.Warn("Failed to register in etcd", zap.Error(err))
			} else {
				logger.Info("Registered in etcd", zap.String("name", cfg.Server.Name))
			}
		}
	}

	gw := gateway.NewGateway(cfg, logger, catalogSvc, cartsSvc, ordersSvc, usersSvc)
	gw.SetupRoutes()

	serverErr := make(chan error, 1)
	go func() {
		if err := gw.Start(); err != nil {
			serverErr <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("Received shutdown signal")
	case err := <-serverErr:
		logger.Fatal("Server error", zap.Error(err))
	}

	if registry != nil {
		if err := registry.Deregister(context.Background(), discovery.Instance{
			Name: cfg.Server.Name,
			Host: cfg.Server.Host,
			Port: cfg.Server.Port,
		}); err != nil {
			logger.Error("Failed to deregister", zap.Error(err))
		}
		registry.Close()
	}
	cache.Close()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := mongo.Close(shutdownCtx); err != nil {
		logger.Error("Failed to close MongoDB connection", zap.Error(err))
	}

	logger.Info("Server stopped")
}

func buildLogger(cfg *config.LogConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Encoding != "" {
		zc.Encoding = cfg.Encoding
	}
	if len(cfg.OutputPaths) > 0 {
		zc.OutputPaths = cfg.OutputPaths
	}
	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		zc.Level = level
	}
	return zc.Build()
}
