package jobqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/guidingv/iconify-style-consistent-icons/app/models"
	"github.com/guidingv/iconify-style-consistent-icons/app/repository"
	"github.com/guidingv/iconify-style-consistent-icons/internal/pkg/audit"
	"github.com/guidingv/iconify-style-consistent-icons/internal/pkg/cache"
)

const (
	auditResultKeyFormat = "collection:audit:result:%d"
	auditResultTTL       = 1 * time.Hour
)

// processCollectionAuditJob runs the consistency audit for a collection
// and caches the resulting report.
func (q *Queue) processCollectionAuditJob(ctx context.Context, job *Job) error {
	// Parse the job payload
	payload, err := CollectionAuditJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("failed to parse collection audit job payload: %w", err)
	}

	log.Infof("[Audit] Processing audit job for collection %d", payload.CollectionID)

	// Load the collection with its icons in display order
	collection, err := repository.GetGlobalFactory().GetCollectionRepository().GetByID(payload.CollectionID)
	if err != nil {
		return fmt.Errorf("failed to load collection %d: %w", payload.CollectionID, err)
	}

	result := audit.Run(auditCollection(collection))

	// Cache the report so the API can serve it without recomputing
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal audit result: %w", err)
	}
	key := fmt.Sprintf(auditResultKeyFormat, collection.ID)
	if err := cache.Set(key, string(data), auditResultTTL); err != nil {
		return fmt.Errorf("failed to cache audit result: %w", err)
	}

	log.Infof("[Audit] Collection %d audited: score %d, %d issues",
		collection.ID, result.ReadinessScore, result.TotalIssueCount)

	return nil
}

// GetCachedAuditResult returns the last cached audit report for a
// collection, or nil when none is available.
func GetCachedAuditResult(collectionID uint) (*audit.Result, error) {
	key := fmt.Sprintf(auditResultKeyFormat, collectionID)
	data, err := cache.Get(key)
	if err != nil || data == "" {
		return nil, err
	}

	var result audit.Result
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal audit result: %w", err)
	}
	return &result, nil
}

// auditCollection maps a stored collection onto the auditor's input type
func auditCollection(c *models.Collection) audit.Collection {
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
