package controllers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/guidingv/iconify-style-consistent-icons/app/models"
	"github.com/guidingv/iconify-style-consistent-icons/app/repository"
	"github.com/guidingv/iconify-style-consistent-icons/internal/pkg/audit"
	"github.com/guidingv/iconify-style-consistent-icons/internal/pkg/database"
	"github.com/guidingv/iconify-style-consistent-icons/internal/pkg/jobqueue"
	metrics "github.com/guidingv/iconify-style-consistent-icons/internal/pkg/metrics/counter"
)

// collectionID parses the numeric id route param
func collectionID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// HandleListCollections returns collections, paginated
func HandleListCollections(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetCollectionRepository()
	offset, limit := pagination(c)

	var (
		collections []models.Collection
		err         error
	)
	if c.QueryBool("public") {
		collections, err = repo.GetPublic(offset, limit)
	} else {
		collections, err = repo.List(offset, limit)
	}
	if err != nil {
		log.Errorf("[Collection] List failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
	}

	total, _ := repo.Count()
	return c.JSON(fiber.Map{"collections": collections, "count": len(collections), "total": total})
}

// HandleCreateCollection stores a new collection
func HandleCreateCollection(c *fiber.Ctx) error {
	var req struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		IsPublic    bool     `json:"is_public"`
		IconUUIDs   []string `json:"icon_uuids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	collection := &models.Collection{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	}
	if err := collection.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}

	repos := repository.GetGlobalRepositories()
	if err := repos.Collection.Create(collection); err != nil {
		log.Errorf("[Collection] Create failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
	}

	for _, uuid := range req.IconUUIDs {
		icon, err := repos.Icon.GetByUUID(uuid)
		if err != nil {
			log.Warnf("[Collection] Skipping unknown icon %s", uuid)
			continue
		}
		if err := repos.Collection.AddIcon(collection.ID, icon.ID); err != nil {
			log.Errorf("[Collection] Failed to add icon %s: %v", uuid, err)
		}
	}

	log.Infof("[Collection] Created collection %s (id %d)", collection.Name, collection.ID)
	return c.Status(fiber.StatusCreated).JSON(collection)
}

// HandleGetCollection returns a collection with its icons in display order
func HandleGetCollection(c *fiber.Ctx) error {
	id, err := collectionID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid collection id"})
	}

	collection, err := repository.GetGlobalFactory().GetCollectionRepository().GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "collection not found"})
	}
	return c.JSON(collection)
}

// HandleGetSharedCollection resolves a public share link and counts the view
func HandleGetSharedCollection(c *fiber.Ctx) error {
	shareLink := c.Params("sharelink")
	repo := repository.GetGlobalFactory().GetCollectionRepository()

	collection, err := repo.GetByShareLink(shareLink)
	if err != nil || !collection.IsPublic {
		// Do not leak existence of private collections
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "collection not found"})
	}

	if err := metrics.AddCollectionView(collection.ID); err != nil {
		log.Warnf("[Collection] Failed to count view for %d: %v", collection.ID, err)
	}
	return c.JSON(collection)
}

// HandleUpdateCollection updates collection metadata
func HandleUpdateCollection(c *fiber.Ctx) error {
	id, err := collectionID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid collection id"})
	}

	repo := repository.GetGlobalFactory().GetCollectionRepository()
	collection, err := repo.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "collection not found"})
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		IsPublic    *bool   `json:"is_public"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	if req.Name != nil {
		collection.Name = *req.Name
	}
	if req.Description != nil {
		collection.Description = *req.Description
	}
	if req.IsPublic != nil {
		collection.IsPublic = *req.IsPublic
	}

	if err := collection.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}
	if err := repo.Update(collection); err != nil {
		log.Errorf("[Collection] Update failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
	}
	return c.JSON(collection)
}

// HandleDeleteCollection removes a collection and its memberships
func HandleDeleteCollection(c *fiber.Ctx) error {
	id, err := collectionID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid collection id"})
	}

	repo := repository.GetGlobalFactory().GetCollectionRepository()
	if _, err := repo.GetByID(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "collection not found"})
	}
	if err := repo.Delete(id); err != nil {
		log.Errorf("[Collection] Delete failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleAddCollectionIcon appends an icon to the collection order
func HandleAddCollectionIcon(c *fiber.Ctx) error {
	id, err := collectionID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid collection id"})
	}

	var req struct {
		IconUUID string `json:"icon_uuid"`
	}
	if err := c.BodyParser(&req); err != nil || req.IconUUID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	repos := repository.GetGlobalRepositories()
	icon, err := repos.Icon.GetByUUID(req.IconUUID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "icon not found"})
	}
	if err := repos.Collection.AddIcon(id, icon.ID); err != nil {
		log.Errorf("[Collection] AddIcon failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleRemoveCollectionIcon removes an icon from the collection
func HandleRemoveCollectionIcon(c *fiber.Ctx) error {
	id, err := collectionID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid collection id"})
	}

	repos := repository.GetGlobalRepositories()
	icon, err := repos.Icon.GetByUUID(c.Params("uuid"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "icon not found"})
	}
	if err := repos.Collection.RemoveIcon(id, icon.ID); err != nil {
		log.Errorf("[Collection] RemoveIcon failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleAuditCollection runs the consistency audit and returns the report
func HandleAuditCollection(c *fiber.Ctx) error {
	id, err := collectionID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid collection id"})
	}

	// Serve the last background audit when the client asks for it
	if c.QueryBool("cached") {
		if result, err := jobqueue.GetCachedAuditResult(id); err == nil {
			return c.JSON(result)
		}
	}

	collection, err := repository.GetGlobalFactory().GetCollectionRepository().GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "collection not found"})
	}

	result := audit.Run(auditInput(collection))
	return c.JSON(result)
}

// HandleEnqueueCollectionAudit schedules a background re-audit
func HandleEnqueueCollectionAudit(c *fiber.Ctx) error {
	id, err := collectionID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid collection id"})
	}

	job, err := jobqueue.GetManager().GetQueue().EnqueueCollectionAuditJob(id)
	if err != nil {
		log.Errorf("[Collection] Failed to enqueue audit for %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"job_id": job.ID})
}

// HandleApplyCollectionFix applies a one-click fix and persists the
// rewritten collection
func HandleApplyCollectionFix(c *fiber.Ctx) error {
	id, err := collectionID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid collection id"})
	}

	var req struct {
		Kind      string   `json:"kind"`
		TargetIDs []string `json:"target_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	repo := repository.GetGlobalFactory().GetCollectionRepository()
	collection, err := repo.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "collection not found"})
	}

	fixed, err := audit.ApplyFix(auditInput(collection), audit.FixKind(req.Kind), req.TargetIDs)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown_fix", "message": err.Error()})
	}

	if err := persistFixedCollection(collection, fixed); err != nil {
		log.Errorf("[Collection] Failed to persist fix %s for %d: %v", req.Kind, id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
	}

	log.Infof("[Collection] Applied fix %s to collection %d", req.Kind, id)

	// Return the fresh state including the post-fix audit
	collection, err = repo.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
	}
	return c.JSON(fiber.Map{
		"collection": collection,
		"audit":      audit.Run(auditInput(collection)),
	})
}

// auditInput maps a stored collection onto the auditor's input type
func auditInput(c *models.Collection) audit.Collection {
	icons := make([]audit.Icon, 0, len(c.Icons))
	for _, icon := range c.Icons {
		icons = append(icons, audit.Icon{
			ID:           icon.UUID,
			Name:         icon.Name,
			SVGContent:   icon.SVGContent,
			StrokeWeight: icon.StrokeWeight,
			GridAligned:  icon.GridAligned,
		})
	}
	return audit.Collection{
		ID:    fmt.Sprintf("%d", c.ID),
		Name:  c.Name,
		Icons: icons,
	}
}

// persistFixedCollection writes an auditor-rewritten collection back:
// membership follows the fixed icon list, stroke weights and grid flags
// are updated on the icons themselves.
func persistFixedCollection(stored *models.Collection, fixed audit.Collection) error {
	db := database.GetDB()
	repos := repository.GetGlobalRepositories()

	kept := make(map[string]audit.Icon, len(fixed.Icons))
	for _, icon := range fixed.Icons {
		kept[icon.ID] = icon
	}

	for _, icon := range stored.Icons {
		fixedIcon, ok := kept[icon.UUID]
		if !ok {
			// Dropped by deduplication
			if err := repos.Collection.RemoveIcon(stored.ID, icon.ID); err != nil {
				return err
			}
			continue
		}

		changed := false
		if fixedIcon.StrokeWeight != nil &&
			(icon.StrokeWeight == nil || *icon.StrokeWeight != *fixedIcon.StrokeWeight) {
			icon.StrokeWeight = fixedIcon.StrokeWeight
			changed = true
		}
		if fixedIcon.GridAligned != nil &&
			(icon.GridAligned == nil || *icon.GridAligned != *fixedIcon.GridAligned) {
			icon.GridAligned = fixedIcon.GridAligned
			changed = true
		}
		if changed {
			if err := db.Save(&icon).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
