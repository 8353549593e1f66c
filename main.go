package main

import (
	"fmt"
	"log"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/guidingv/iconify-style-consistent-icons/app/models"
	"github.com/guidingv/iconify-style-consistent-icons/app/repository"
	"github.com/guidingv/iconify-style-consistent-icons/internal/pkg/cache"
	"github.com/guidingv/iconify-style-consistent-icons/internal/pkg/database"
	"github.com/guidingv/iconify-style-consistent-icons/internal/pkg/env"
	"github.com/guidingv/iconify-style-consistent-icons/internal/pkg/exporter"
	"github.com/guidingv/iconify-style-consistent-icons/internal/pkg/jobqueue"
	"github.com/guidingv/iconify-style-consistent-icons/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	repository.InitializeFactory(database.GetDB())
	exporter.SetupRunner(exporter.DefaultTickInterval, persistBatchResult)
	jobqueue.GetManager().Start()

	app := fiber.New(fiber.Config{
		BodyLimit: 16 * 1024 * 1024,
	})
	app.Use(recover.New(), logger.New())
	app.Get("/metrics", monitor.New())

	// SWAGGER / OPENAPI
	openAPICfg := swagger.Config{
		BasePath: "/docs/api/",
		FilePath: "./public/docs/v1/openapi.yml",
		Path:     "v1",
	}
	app.Use(swagger.New(openAPICfg))

	// ROUTER
	router.InstallRouter(app)

	return app
}

// persistBatchResult stores finished export runs and queues their delivery
func persistBatchResult(result exporter.ExportResult) {
	record := &models.ExportRecord{
		BatchID:          result.BatchID,
		Success:          result.Success,
		ProcessedCount:   result.ProcessedCount,
		TotalCount:       result.TotalCount,
		ArchiveSizeBytes: result.ArchiveSizeBytes,
	}
	if err := repository.GetGlobalFactory().GetExportRecordRepository().Create(record); err != nil {
		log.Printf("failed to persist export record for batch %s: %v", result.BatchID, err)
		return
	}

	queue := jobqueue.GetManager().GetQueue()
	if _, err := queue.EnqueueArchiveDeliveryJob(result.BatchID, result.ArchiveSizeBytes, result.ProcessedCount); err != nil {
		log.Printf("failed to enqueue delivery for batch %s: %v", result.BatchID, err)
	}
}
