package main

import (
	"context"
	"log"

	"medstaff-backend/controller"
	"medstaff-backend/dal"
	"medstaff-backend/infrastructure"
	"medstaff-backend/models"
	"medstaff-backend/utils"
	"medstaff-backend/utils/logger"
	"medstaff-backend/worker"

	"github.com/gin-gonic/gin"
)

var config *models.Config

func Init() {
	var err error
	config, err = utils.GetConfig()
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	Init()

	ctx := context.Background()
	appLogger := logger.NewLogger(config.LogLevel, config.LogFormat)
	appLogger.Infof("Starting %s %s (%s)", config.AppName, config.AppVersion, config.AppEnv)

	dbclient, err := dal.NewDynamoDBClient(config, appLogger)
	if err != nil {
		appLogger.Fatalf("Failed to initialize DynamoDB client: %v", err)
	}
	if err := infrastructure.EnsureTables(ctx, dbclient, config, appLogger); err != nil {
		appLogger.Fatalf("Failed to provision tables: %v", err)
	}

	r := gin.New()
	c := controller.NewController(ctx, config, appLogger)

	// Start server (this is blocking)
	go func() {
		if err := c.RegisterRoutes(ctx, config, r, config.BasePath); err != nil {
			appLogger.Fatalf("Server failed: %v", err)
		}
	}()

	if config.WorkerEnabled {
		recheckWorker, err := worker.NewService(ctx, config, logger.NewLogger(config.LogLevel, config.LogFormat))
		if err != nil {
			appLogger.Fatalf("Failed to create recheck worker: %v", err)
		}
		if err := recheckWorker.StartInBackground(); err != nil {
			appLogger.Fatalf("Failed to start recheck worker: %v", err)
		}
	}

	// Keep main goroutine alive
	select {}
}
