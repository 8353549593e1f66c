package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/guidingv/iconify-style-consistent-icons/app/models"
	"github.com/guidingv/iconify-style-consistent-icons/app/repository"
	metrics "github.com/guidingv/iconify-style-consistent-icons/internal/pkg/metrics/counter"
)

// pagination reads offset/limit query params with sane bounds
func pagination(c *fiber.Ctx) (int, int) {
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return offset, limit
}

// HandleListIcons returns icons, paginated and optionally filtered by tag
// or search query
func HandleListIcons(c *fiber.Ctx) error {
	iconRepo := repository.GetGlobalFactory().GetIconRepository()
	offset, limit := pagination(c)

	if query := c.Query("q"); query != "" {
		icons, err := iconRepo.Search(query)
		if err != nil {
			log.Errorf("[Icon] Search failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
		}
		return c.JSON(fiber.Map{"icons": icons, "count": len(icons)})
	}

	if tag := c.Query("tag"); tag != "" {
		icons, err := iconRepo.GetByTag(tag, offset, limit)
		if err != nil {
			log.Errorf("[Icon] Tag lookup failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
		}
		return c.JSON(fiber.Map{"icons": icons, "count": len(icons)})
	}

	icons, err := iconRepo.List(offset, limit)
	if err != nil {
		log.Errorf("[Icon] List failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
	}

	total, _ := iconRepo.Count()
	return c.JSON(fiber.Map{"icons": icons, "count": len(icons), "total": total})
}

// HandleCreateIcon stores a new icon with its tags
func HandleCreateIcon(c *fiber.Ctx) error {
	var req struct {
		Name         string   `json:"name"`
		SVGContent   string   `json:"svg_content"`
		StrokeWeight *float64 `json:"stroke_weight"`
		GridAligned  *bool    `json:"grid_aligned"`
		Tags         []string `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	icon := &models.Icon{
		Name:         req.Name,
		SVGContent:   req.SVGContent,
		StrokeWeight: req.StrokeWeight,
		GridAligned:  req.GridAligned,
	}
	if err := icon.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}

	repos := repository.GetGlobalRepositories()
	for _, name := range req.Tags {
		tag, err := repos.Tag.FindOrCreate(name)
		if err != nil {
			log.Errorf("[Icon] Failed to resolve tag %s: %v", name, err)
			continue
		}
		icon.Tags = append(icon.Tags, *tag)
	}

	if err := repos.Icon.Create(icon); err != nil {
		log.Errorf("[Icon] Create failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
	}

	log.Infof("[Icon] Created icon %s (%s)", icon.Name, icon.UUID)
	return c.Status(fiber.StatusCreated).JSON(icon)
}

// HandleGetIcon returns a single icon by UUID
func HandleGetIcon(c *fiber.Ctx) error {
	uuid := c.Params("uuid")
	if uuid == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "uuid missing"})
	}

	icon, err := repository.GetGlobalFactory().GetIconRepository().GetByUUID(uuid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "icon not found"})
	}
	return c.JSON(icon)
}

// HandleUpdateIcon updates icon fields by UUID
func HandleUpdateIcon(c *fiber.Ctx) error {
	uuid := c.Params("uuid")
	iconRepo := repository.GetGlobalFactory().GetIconRepository()

	icon, err := iconRepo.GetByUUID(uuid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "icon not found"})
	}

	var req struct {
		Name         *string  `json:"name"`
		SVGContent   *string  `json:"svg_content"`
		StrokeWeight *float64 `json:"stroke_weight"`
		GridAligned  *bool    `json:"grid_aligned"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	if req.Name != nil {
		icon.Name = *req.Name
	}
	if req.SVGContent != nil {
		icon.SVGContent = *req.SVGContent
		icon.FileSize = int64(len(*req.SVGContent))
	}
	if req.StrokeWeight != nil {
		icon.StrokeWeight = req.StrokeWeight
	}
	if req.GridAligned != nil {
		icon.GridAligned = req.GridAligned
	}

	if err := icon.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}
	if err := iconRepo.Update(icon); err != nil {
		log.Errorf("[Icon] Update failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
	}
	return c.JSON(icon)
}

// HandleDeleteIcon removes an icon by UUID
func HandleDeleteIcon(c *fiber.Ctx) error {
	uuid := c.Params("uuid")
	iconRepo := repository.GetGlobalFactory().GetIconRepository()

	icon, err := iconRepo.GetByUUID(uuid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "icon not found"})
	}

	if err := iconRepo.Delete(icon.ID); err != nil {
		log.Errorf("[Icon] Delete failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
	}

	log.Infof("[Icon] Deleted icon %s (%s)", icon.Name, icon.UUID)
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDownloadIcon serves the raw SVG markup and counts the download
func HandleDownloadIcon(c *fiber.Ctx) error {
	uuid := c.Params("uuid")
	icon, err := repository.GetGlobalFactory().GetIconRepository().GetByUUID(uuid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "icon not found"})
	}

	// Counted in Redis, flushed to the DB in batches
	if err := metrics.AddIconDownload(icon.ID); err != nil {
		log.Warnf("[Icon] Failed to count download for %s: %v", icon.UUID, err)
	}

	c.Set(fiber.HeaderContentType, "image/svg+xml")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+icon.Name+`.svg"`)
	return c.SendString(icon.SVGContent)
}

// HandleListTags returns all known tags
func HandleListTags(c *fiber.Ctx) error {
	tags, err := repository.GetGlobalFactory().GetTagRepository().GetAll()
	if err != nil {
		log.Errorf("[Icon] Tag list failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
	}
	return c.JSON(fiber.Map{"tags": tags})
}
