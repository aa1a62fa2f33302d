package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/tradekart/backend/internal/domain/catalog"
	"github.com/tradekart/backend/internal/domain/shared"
)

// CatalogActivityLogger writes a structured log line for every catalog
// mutation event. It is the audit trail for category management.
type CatalogActivityLogger struct {
	logger *zap.Logger
}

// NewCatalogActivityLogger creates a new CatalogActivityLogger
func NewCatalogActivityLogger(logger *zap.Logger) *CatalogActivityLogger {
	return &CatalogActivityLogger{logger: logger}
}

// EventTypes returns the catalog mutation events this handler records
func (h *CatalogActivityLogger) EventTypes() []string {
	return []string{
		catalog.EventTypeCategoryCreated,
		catalog.EventTypeCategoryUpdated,
		catalog.EventTypeCategoryDeleted,
		catalog.EventTypeCategoriesReordered,
	}
}

// Handle records the event
func (h *CatalogActivityLogger) Handle(ctx context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.Time("occurred_at", event.OccurredAt()),
	}

	switch e := event.(type) {
	case *catalog.CategoryCreatedEvent:
		fields = append(fields,
			zap.String("category_id", e.CategoryID.String()),
			zap.String("name", e.Name),
			zap.String("slug", e.Slug),
		)
		if e.ParentID != nil {
			fields = append(fields, zap.String("parent_id", e.ParentID.String()))
		}
	case *catalog.CategoryUpdatedEvent:
		fields = append(fields,
			zap.String("category_id", e.CategoryID.String()),
			zap.String("name", e.Name),
			zap.Strings("changed_fields", e.ChangedFields),
		)
	case *catalog.CategoryDeletedEvent:
		fields = append(fields,
			zap.String("category_id", e.CategoryID.String()),
			zap.String("name", e.Name),
		)
	case *catalog.CategoriesReorderedEvent:
		fields = append(fields, zap.Int("category_count", len(e.CategoryIDs)))
	default:
		fields = append(fields, zap.String("aggregate_id", event.AggregateID().String()))
	}

	h.logger.Info(event.EventType(), fields...)
	return nil
}

var _ shared.EventHandler = (*CatalogActivityLogger)(nil)
