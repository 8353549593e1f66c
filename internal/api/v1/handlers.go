package apiv1

import (
	"github.com/gofiber/fiber/v2"

	// Delegate to existing controllers to keep behavior consistent
	"github.com/guidingv/iconify-style-consistent-icons/app/controllers"
)

// Pong is the ping endpoint response body
type Pong struct {
	Ping string `json:"ping"`
}

// APIServer implements the v1 API surface
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// Icons

func (s *APIServer) ListIcons(c *fiber.Ctx) error   { return controllers.HandleListIcons(c) }
func (s *APIServer) CreateIcon(c *fiber.Ctx) error  { return controllers.HandleCreateIcon(c) }
func (s *APIServer) GetIcon(c *fiber.Ctx) error     { return controllers.HandleGetIcon(c) }
func (s *APIServer) UpdateIcon(c *fiber.Ctx) error  { return controllers.HandleUpdateIcon(c) }
func (s *APIServer) DeleteIcon(c *fiber.Ctx) error  { return controllers.HandleDeleteIcon(c) }
func (s *APIServer) DownloadIcon(c *fiber.Ctx) error { return controllers.HandleDownloadIcon(c) }
func (s *APIServer) ListTags(c *fiber.Ctx) error    { return controllers.HandleListTags(c) }

// Collections

func (s *APIServer) ListCollections(c *fiber.Ctx) error  { return controllers.HandleListCollections(c) }
func (s *APIServer) CreateCollection(c *fiber.Ctx) error { return controllers.HandleCreateCollection(c) }
func (s *APIServer) GetCollection(c *fiber.Ctx) error    { return controllers.HandleGetCollection(c) }
func (s *APIServer) UpdateCollection(c *fiber.Ctx) error { return controllers.HandleUpdateCollection(c) }
func (s *APIServer) DeleteCollection(c *fiber.Ctx) error { return controllers.HandleDeleteCollection(c) }

func (s *APIServer) AddCollectionIcon(c *fiber.Ctx) error {
	return controllers.HandleAddCollectionIcon(c)
}

func (s *APIServer) RemoveCollectionIcon(c *fiber.Ctx) error {
	return controllers.HandleRemoveCollectionIcon(c)
}

// AuditCollection runs the consistency audit synchronously
func (s *APIServer) AuditCollection(c *fiber.Ctx) error {
	return controllers.HandleAuditCollection(c)
}

// EnqueueCollectionAudit schedules a background re-audit
func (s *APIServer) EnqueueCollectionAudit(c *fiber.Ctx) error {
	return controllers.HandleEnqueueCollectionAudit(c)
}

// ApplyCollectionFix applies one of the one-click fixes
func (s *APIServer) ApplyCollectionFix(c *fiber.Ctx) error {
	return controllers.HandleApplyCollectionFix(c)
}

// Export

func (s *APIServer) ListExportPresets(c *fiber.Ctx) error {
	return controllers.HandleListExportPresets(c)
}

func (s *APIServer) GetExportConfig(c *fiber.Ctx) error {
	return controllers.HandleGetExportConfig(c)
}

func (s *APIServer) ApplyExportPreset(c *fiber.Ctx) error {
	return controllers.HandleApplyExportPreset(c)
}

func (s *APIServer) UpdateExportConfig(c *fiber.Ctx) error {
	return controllers.HandleUpdateExportConfig(c)
}

func (s *APIServer) EstimateExport(c *fiber.Ctx) error {
	return controllers.HandleEstimateExport(c)
}

func (s *APIServer) StartExportBatch(c *fiber.Ctx) error {
	return controllers.HandleStartExportBatch(c)
}

func (s *APIServer) GetExportBatch(c *fiber.Ctx) error {
	return controllers.HandleGetExportBatch(c)
}

func (s *APIServer) ResetExportBatch(c *fiber.Ctx) error {
	return controllers.HandleResetExportBatch(c)
}

func (s *APIServer) GetExportResult(c *fiber.Ctx) error {
	return controllers.HandleGetExportResult(c)
}

// Jobs

func (s *APIServer) GetQueueStats(c *fiber.Ctx) error { return controllers.HandleGetQueueStats(c) }
func (s *APIServer) GetJob(c *fiber.Ctx) error        { return controllers.HandleGetJob(c) }

func (s *APIServer) CleanupQueueKeys(c *fiber.Ctx) error {
	return controllers.HandleCleanupQueueKeys(c)
}
