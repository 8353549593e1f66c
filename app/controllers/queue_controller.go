package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/guidingv/iconify-style-consistent-icons/app/repository"
	"github.com/guidingv/iconify-style-consistent-icons/internal/pkg/jobqueue"
)

// Key prefixes the cleanup endpoint is allowed to touch. Everything
// else (sessions, counters, live batch state) stays off limits.
var cleanableKeyPrefixes = []string{
	"job:",
	"export:batch:state:",
	"export:batch:status:",
	"collection:audit:result:",
}

// HandleGetQueueStats reports queue depth and per-status job counts
func HandleGetQueueStats(c *fiber.Ctx) error {
	queue := jobqueue.GetManager().GetQueue()

	stats, err := queue.GetJobStats(c.Context())
	if err != nil {
		log.Errorf("[JobQueue] Failed to read job stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
	}

	repo := repository.GetGlobalFactory().GetQueueRepository()
	queueLen, err := repo.GetListLength(jobqueue.JobQueueKey)
	if err != nil {
		log.Errorf("[JobQueue] Failed to read queue length: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
	}
	processingLen, err := repo.GetListLength(jobqueue.JobProcessingKey)
	if err != nil {
		log.Errorf("[JobQueue] Failed to read processing length: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
	}

	return c.JSON(fiber.Map{
		"queued":     queueLen,
		"processing": processingLen,
		"jobs":       stats,
		"running":    jobqueue.GetManager().IsRunning(),
	})
}

// HandleGetJob returns a single job by id
func HandleGetJob(c *fiber.Ctx) error {
	jobID := c.Params("id")
	if jobID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "missing job id"})
	}

	job, err := jobqueue.GetManager().GetQueue().GetJob(c.Context(), jobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "job not found"})
	}
	return c.JSON(job)
}

// HandleCleanupQueueKeys deletes finished job records and stale batch
// snapshots matching the requested patterns
func HandleCleanupQueueKeys(c *fiber.Ctx) error {
	var req struct {
		Patterns []string `json:"patterns"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid request body"})
	}
	if len(req.Patterns) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "no patterns given"})
	}

	for _, pattern := range req.Patterns {
		if !isCleanablePattern(pattern) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "forbidden_pattern",
				"message": "pattern outside cleanable key space: " + pattern,
			})
		}
	}

	repo := repository.GetGlobalFactory().GetQueueRepository()
	keys, err := repo.FindKeysByPatterns(req.Patterns)
	if err != nil {
		log.Errorf("[JobQueue] Key scan failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
	}

	deleted, err := repo.DeleteKeys(keys)
	if err != nil {
		log.Errorf("[JobQueue] Key cleanup failed after %d deletions: %v", deleted, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
	}

	log.Infof("[JobQueue] Cleaned up %d keys for %d patterns", deleted, len(req.Patterns))
	return c.JSON(fiber.Map{"deleted": deleted})
}

func isCleanablePattern(pattern string) bool {
	for _, prefix := range cleanableKeyPrefixes {
		if strings.HasPrefix(pattern, prefix) {
			return true
		}
	}
	return false
}
