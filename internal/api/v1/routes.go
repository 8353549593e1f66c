package apiv1

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterHandlers attaches all v1 routes to the given router group
func RegisterHandlers(router fiber.Router, s *APIServer) {
	router.Get("/ping", s.GetPing)

	// Icons
	router.Get("/icons", s.ListIcons)
	router.Post("/icons", s.CreateIcon)
	router.Get("/icons/:uuid", s.GetIcon)
	router.Patch("/icons/:uuid", s.UpdateIcon)
	router.Delete("/icons/:uuid", s.DeleteIcon)
	router.Get("/icons/:uuid/download", s.DownloadIcon)
	router.Get("/tags", s.ListTags)

	// Collections
	router.Get("/collections", s.ListCollections)
	router.Post("/collections", s.CreateCollection)
	router.Get("/collections/:id", s.GetCollection)
	router.Patch("/collections/:id", s.UpdateCollection)
	router.Delete("/collections/:id", s.DeleteCollection)
	router.Post("/collections/:id/icons", s.AddCollectionIcon)
	router.Delete("/collections/:id/icons/:uuid", s.RemoveCollectionIcon)
	router.Get("/collections/:id/audit", s.AuditCollection)
	router.Post("/collections/:id/audit", s.EnqueueCollectionAudit)
	router.Post("/collections/:id/fixes", s.ApplyCollectionFix)

	// Export
	router.Get("/export/presets", s.ListExportPresets)
	router.Post("/export/presets/:key", s.ApplyExportPreset)
	router.Get("/export/config", s.GetExportConfig)
	router.Patch("/export/config", s.UpdateExportConfig)
	router.Post("/export/estimate", s.EstimateExport)
	router.Post("/export/batches", s.StartExportBatch)
	router.Get("/export/batches/:id", s.GetExportBatch)
	router.Delete("/export/batches/:id", s.ResetExportBatch)
	router.Get("/export/results/:batchId", s.GetExportResult)

	// Jobs
	router.Get("/queue/stats", s.GetQueueStats)
	router.Get("/queue/jobs/:id", s.GetJob)
	router.Post("/queue/cleanup", s.CleanupQueueKeys)
}
