package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/guidingv/iconify-style-consistent-icons/app/repository"
	"github.com/guidingv/iconify-style-consistent-icons/internal/pkg/cache"
	"github.com/guidingv/iconify-style-consistent-icons/internal/pkg/exporter"
)

const (
	exportConfigKeyFormat = "export:config:%s"
	exportConfigTTL       = 24 * time.Hour

	// Header clients use to keep independent export configurations
	exportSessionHeader  = "X-Export-Session"
	defaultExportSession = "default"
)

// exportSession resolves the configuration session for a request
func exportSession(c *fiber.Ctx) string {
	if s := c.Get(exportSessionHeader); s != "" {
		return s
	}
	return defaultExportSession
}

// loadExportConfig returns the stored configuration for a session, or the
// default web preset when none has been saved yet.
func loadExportConfig(session string) *exporter.ExportConfig {
	key := fmt.Sprintf(exportConfigKeyFormat, session)
	data, err := cache.Get(key)
	if err != nil || data == "" {
		return exporter.DefaultConfig()
	}

	var cfg exporter.ExportConfig
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		log.Warnf("[Export] Dropping unreadable config for session %s: %v", session, err)
		return exporter.DefaultConfig()
	}
	return &cfg
}

// saveExportConfig persists a session configuration in Redis
func saveExportConfig(session string, cfg *exporter.ExportConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return cache.Set(fmt.Sprintf(exportConfigKeyFormat, session), string(data), exportConfigTTL)
}

// HandleListExportPresets returns the available configuration presets
func HandleListExportPresets(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"presets": exporter.PresetKeys()})
}

// HandleGetExportConfig returns the active configuration for the session
func HandleGetExportConfig(c *fiber.Ctx) error {
	return c.JSON(loadExportConfig(exportSession(c)))
}

// HandleApplyExportPreset merges a named preset into the session configuration
func HandleApplyExportPreset(c *fiber.Ctx) error {
	session := exportSession(c)
	cfg := loadExportConfig(session)

	key := exporter.ProfileKey(c.Params("key"))
	if err := cfg.ApplyPreset(key); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown_preset", "message": err.Error()})
	}

	if err := saveExportConfig(session, cfg); err != nil {
		log.Errorf("[Export] Failed to save config for session %s: %v", session, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
	}
	return c.JSON(cfg)
}

// HandleUpdateExportConfig applies a single field update to the session
// configuration. Any successful update switches the profile to custom.
func HandleUpdateExportConfig(c *fiber.Ctx) error {
	var req struct {
		Path  string      `json:"path"`
		Value interface{} `json:"value"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}
	if req.Path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "path missing"})
	}

	session := exportSession(c)
	cfg := loadExportConfig(session)

	if err := cfg.UpdateField(req.Path, req.Value); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_update", "message": err.Error()})
	}

	if err := saveExportConfig(session, cfg); err != nil {
		log.Errorf("[Export] Failed to save config for session %s: %v", session, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
	}
	return c.JSON(cfg)
}

// selectionRequest is the icon selection payload shared by estimate and
// batch endpoints. Byte sizes come from the stored icons when UUIDs are
// given, otherwise from the inline assets.
type selectionRequest struct {
	IconUUIDs []string         `json:"icon_uuids"`
	Assets    []exporter.Asset `json:"assets"`
}

// resolveSelection turns a selection request into exporter assets
func resolveSelection(req selectionRequest) ([]exporter.Asset, error) {
	selection := make([]exporter.Asset, 0, len(req.IconUUIDs)+len(req.Assets))

	if len(req.IconUUIDs) > 0 {
		iconRepo := repository.GetGlobalFactory().GetIconRepository()
		for _, uuid := range req.IconUUIDs {
			icon, err := iconRepo.GetByUUID(uuid)
			if err != nil {
				return nil, fmt.Errorf("icon %s not found", uuid)
			}
			selection = append(selection, exporter.Asset{
				ID:       icon.UUID,
				Name:     icon.Name,
				ByteSize: icon.FileSize,
				Tags:     icon.TagNames(),
			})
		}
	}

	selection = append(selection, req.Assets...)
	return selection, nil
}

// HandleEstimateExport computes the size estimate for a selection under
// the session configuration
func HandleEstimateExport(c *fiber.Ctx) error {
	var req selectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	selection, err := resolveSelection(req)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": err.Error()})
	}

	cfg := loadExportConfig(exportSession(c))
	return c.JSON(exporter.Aggregate(selection, cfg))
}

// HandleStartExportBatch validates the session configuration and launches
// an export batch for the selection
func HandleStartExportBatch(c *fiber.Ctx) error {
	var req selectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	selection, err := resolveSelection(req)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": err.Error()})
	}

	cfg := loadExportConfig(exportSession(c))
	batch, err := exporter.GetRunner().Launch(selection, cfg)
	if err != nil {
		if errors.Is(err, exporter.ErrInvalidConfiguration) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_configuration", "message": err.Error()})
		}
		log.Errorf("[Export] Failed to launch batch: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
	}

	log.Infof("[Export] Launched batch %s with %d items", batch.ID, len(selection))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"batch_id": batch.ID,
		"state":    batch.Snapshot(),
	})
}

// HandleGetExportBatch returns the published progress for a batch
func HandleGetExportBatch(c *fiber.Ctx) error {
	batchID := c.Params("id")
	if batchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "batch id missing"})
	}

	state, err := exporter.GetBatchState(batchID)
	if err != nil || state == nil {
		// Fall back to the live batch before reporting not found
		if batch, ok := exporter.GetRunner().Get(batchID); ok {
			snapshot := batch.Snapshot()
			return c.JSON(fiber.Map{"batch_id": batchID, "status": batch.Status(), "state": snapshot})
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "batch not found"})
	}

	status, err := exporter.GetBatchStatus(batchID)
	if err != nil {
		status = exporter.BatchIdle
	}
	return c.JSON(fiber.Map{"batch_id": batchID, "status": status, "state": state})
}

// HandleResetExportBatch resets a running batch back to zero progress
func HandleResetExportBatch(c *fiber.Ctx) error {
	batchID := c.Params("id")
	if batchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "batch id missing"})
	}

	if !exporter.GetRunner().Reset(batchID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "no running batch with this id"})
	}

	log.Infof("[Export] Batch %s reset", batchID)
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleGetExportResult returns the persisted result of a completed batch
func HandleGetExportResult(c *fiber.Ctx) error {
	batchID := c.Params("batchId")
	if batchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "batch id missing"})
	}

	record, err := repository.GetGlobalFactory().GetExportRecordRepository().GetByBatchID(batchID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "export result not found"})
	}
	return c.JSON(record)
}
