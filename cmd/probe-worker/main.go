package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"providercard-service/internal/app/config"
	"providercard-service/internal/app/drivers/database"
	"providercard-service/internal/app/drivers/logger"
	"providercard-service/internal/app/drivers/messaging"
	"providercard-service/internal/app/drivers/storage"
	"providercard-service/internal/app/services/core/probes"
	"providercard-service/internal/app/services/core/registry"
	"providercard-service/internal/app/services/shared/locker"
	"providercard-service/internal/app/services/shared/probequeue"
	redisrepo "providercard-service/internal/app/services/shared/redis"
	miniostorage "providercard-service/internal/app/services/shared/storage"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	mongoClient := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitConn := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)

	redisRepository := redisrepo.NewRedisRepository(redisClient)
	lockerService := locker.NewLockService(redisRepository, zapLogger)
	probeQueue, err := probequeue.NewService(rabbitConn, zapLogger, internalConfig.Probe.BatchSize)
	if err != nil {
		log.Fatalf("Failed to initialize probe queue: %v", err)
	}
	objectStorage := miniostorage.NewMinioStorage(minioClient)

	registryRepository := registry.NewRegistryMongoRepository(mongoClient, driverConfig.MongoDB.DbName)
	probeUsecase := probes.NewProbeUsecase(registryRepository, probeQueue, objectStorage, internalConfig, zapLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker := probes.NewWorker(zapLogger, internalConfig, lockerService, probeQueue, probeUsecase)
	stopWorker := worker.Start(ctx)

	bootstrap := &config.Bootstrap{
		MongoClient:    mongoClient,
		Redis:          redisClient,
		RabbitMQ:       rabbitConn,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
		WorkerStop:     stopWorker,
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer shutdownCancel()

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Error during dependency shutdown: %v", err)
	}

	log.Println("Probe worker exiting")
}
