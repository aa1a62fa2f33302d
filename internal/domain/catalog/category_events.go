package catalog

import (
	"github.com/google/uuid"
	"github.com/tradekart/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeCategory = "Category"

// Event type constants
const (
	EventTypeCategoryCreated     = "CategoryCreated"
	EventTypeCategoryUpdated     = "CategoryUpdated"
	EventTypeCategoryDeleted     = "CategoryDeleted"
	EventTypeCategoriesReordered = "CategoriesReordered"
)

// CategoryCreatedEvent is published when a new category is created
type CategoryCreatedEvent struct {
	shared.BaseDomainEvent
	CategoryID uuid.UUID  `json:"category_id"`
	Name       string     `json:"name"`
	Slug       string     `json:"slug"`
	ParentID   *uuid.UUID `json:"parent_id,omitempty"`
}

// NewCategoryCreatedEvent creates a new CategoryCreatedEvent
func NewCategoryCreatedEvent(category *Category) *CategoryCreatedEvent {
	return &CategoryCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCategoryCreated, AggregateTypeCategory, category.ID),
		CategoryID:      category.ID,
		Name:            category.Name,
		Slug:            category.Slug,
		ParentID:        category.ParentID,
	}
}

// CategoryUpdatedEvent is published when a category is updated.
// ChangedFields names the fields that were modified by the mutation.
type CategoryUpdatedEvent struct {
	shared.BaseDomainEvent
	CategoryID    uuid.UUID `json:"category_id"`
	Name          string    `json:"name"`
	ChangedFields []string  `json:"changed_fields"`
}

// NewCategoryUpdatedEvent creates a new CategoryUpdatedEvent
func NewCategoryUpdatedEvent(category *Category, changedFields []string) *CategoryUpdatedEvent {
	return &CategoryUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCategoryUpdated, AggregateTypeCategory, category.ID),
		CategoryID:      category.ID,
		Name:            category.Name,
		ChangedFields:   changedFields,
	}
}

// CategoryDeletedEvent is published when a category is deleted
type CategoryDeletedEvent struct {
	shared.BaseDomainEvent
	CategoryID uuid.UUID  `json:"category_id"`
	Name       string     `json:"name"`
	ParentID   *uuid.UUID `json:"parent_id,omitempty"`
}

// NewCategoryDeletedEvent creates a new CategoryDeletedEvent
func NewCategoryDeletedEvent(category *Category) *CategoryDeletedEvent {
	return &CategoryDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCategoryDeleted, AggregateTypeCategory, category.ID),
		CategoryID:      category.ID,
		Name:            category.Name,
		ParentID:        category.ParentID,
	}
}

// CategoriesReorderedEvent is published when a batch reorder succeeds.
// It is not tied to a single aggregate, so the aggregate ID is zero.
type CategoriesReorderedEvent struct {
	shared.BaseDomainEvent
	CategoryIDs []uuid.UUID `json:"category_ids"`
}

// NewCategoriesReorderedEvent creates a new CategoriesReorderedEvent
func NewCategoriesReorderedEvent(categoryIDs []uuid.UUID) *CategoriesReorderedEvent {
	return &CategoriesReorderedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCategoriesReordered, AggregateTypeCategory, uuid.Nil),
		CategoryIDs:     categoryIDs,
	}
}
