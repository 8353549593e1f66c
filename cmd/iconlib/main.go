package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
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

	// Repositories before anything that persists
	repository.InitializeFactory(database.GetDB())

	// Batch runner: persists finished runs and hands them to delivery
	exporter.SetupRunner(tickInterval(), onBatchComplete)

	// Background jobs (delivery, re-audits, counter flush)
	jobqueue.GetManager().Start()

	// Define possible base paths
	basePaths := []string{
		"./",     // Current directory
		"../../", // From cmd/iconlib to project root
	}

	// Find the correct base path
	basePath := ""
	for _, path := range basePaths {
		if _, err := os.Stat(path + "public"); !os.IsNotExist(err) {
			basePath = path
			break
		}
	}

	if basePath == "" {
		panic("Could not find project root directory")
	}

	// init fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: 16 * 1024 * 1024, // SVG payloads stay small
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			"admin": env.GetEnv("METRICS_PASSWORD", "test"),
		},
	}), monitor.New())

	// SWAGGER / OPENAPI
	openAPICfg := swagger.Config{
		BasePath: "/docs/api/",
		FilePath: basePath + "public/docs/v1/openapi.yml",
		Path:     "v1",
	}
	app.Use(swagger.New(openAPICfg))

	// ROUTER
	router.InstallRouter(app)

	return app
}

// tickInterval reads the batch tick cadence from EXPORT_TICK_MS
func tickInterval() time.Duration {
	ms, err := strconv.Atoi(env.GetEnv("EXPORT_TICK_MS", "250"))
	if err != nil || ms <= 0 {
		return exporter.DefaultTickInterval
	}
	return time.Duration(ms) * time.Millisecond
}

// onBatchComplete persists the terminal result of an export batch and
// enqueues its archive delivery
func onBatchComplete(result exporter.ExportResult) {
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
