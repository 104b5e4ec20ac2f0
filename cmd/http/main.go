package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"providercard-service/internal/app/config"
	"providercard-service/internal/app/delivery/http/controllers"
	"providercard-service/internal/app/delivery/http/middlewares"
	"providercard-service/internal/app/delivery/http/routers"
	"providercard-service/internal/app/drivers/database"
	"providercard-service/internal/app/drivers/logger"
	"providercard-service/internal/app/drivers/messaging"
	"providercard-service/internal/app/drivers/storage"
	"providercard-service/internal/app/services/core/baseline"
	"providercard-service/internal/app/services/core/probes"
	"providercard-service/internal/app/services/core/reconciliation"
	"providercard-service/internal/app/services/core/registry"
	"providercard-service/internal/app/services/core/search"
	"providercard-service/internal/app/services/fhir"
	"providercard-service/internal/app/services/shared/probequeue"
	redisrepo "providercard-service/internal/app/services/shared/redis"
	miniostorage "providercard-service/internal/app/services/shared/storage"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	mongoClient := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitConn := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		MongoClient:    mongoClient,
		Redis:          redisClient,
		RabbitMQ:       rabbitConn,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	wireTheApp(bootstrap, minioClient)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", internalConfig.App.Port),
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Error during dependency shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func wireTheApp(bootstrap *config.Bootstrap, minioClient *minio.Client) {
	// Shared services
	redisRepository := redisrepo.NewRedisRepository(bootstrap.Redis)
	probeQueue, err := probequeue.NewService(bootstrap.RabbitMQ, bootstrap.Logger, bootstrap.InternalConfig.Probe.BatchSize)
	if err != nil {
		log.Fatalf("Failed to initialize probe queue: %v", err)
	}
	objectStorage := miniostorage.NewMinioStorage(minioClient)

	// Middlewares
	httpMiddlewares := &middlewares.Middlewares{
		Log:            bootstrap.Logger,
		InternalConfig: bootstrap.InternalConfig,
	}

	// Registry
	registryRepository := registry.NewRegistryMongoRepository(bootstrap.MongoClient, bootstrap.DriverConfig.MongoDB.DbName)
	registryUsecase := registry.NewRegistryUsecase(registryRepository, redisRepository, bootstrap.InternalConfig, bootstrap.Logger)

	// Baseline
	baselineRepository := baseline.NewBaselineMongoRepository(bootstrap.MongoClient, bootstrap.DriverConfig.MongoDB.DbName)

	// Search
	directoryClient := fhir.NewDirectorySearchClient(bootstrap.InternalConfig, bootstrap.Logger)
	reconciliationService := reconciliation.NewReconciliationService(bootstrap.Logger)
	searchUsecase := search.NewSearchUsecase(registryUsecase, baselineRepository, directoryClient, reconciliationService, bootstrap.Logger)
	searchController := controllers.NewSearchController(bootstrap.Logger, searchUsecase)

	// Probes
	probeUsecase := probes.NewProbeUsecase(registryRepository, probeQueue, objectStorage, bootstrap.InternalConfig, bootstrap.Logger)
	registryController := controllers.NewRegistryController(bootstrap.Logger, registryUsecase, probeUsecase)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, httpMiddlewares, searchController, registryController)
}
