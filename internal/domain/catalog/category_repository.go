package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/tradekart/backend/internal/domain/shared"
)

// DisplayOrderUpdate is one (category, position) pair of a batch reorder
type DisplayOrderUpdate struct {
	CategoryID   uuid.UUID
	DisplayOrder int
}

// CategoryRepository defines the interface for category persistence.
// Implementations must honor a transaction handle carried in the context
// (see shared.TransactionManager) so that validation reads and writes of one
// mutation share a single transaction.
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindAll returns every category as a flat, unordered list.
	// Ordering is the tree builder's job.
	FindAll(ctx context.Context) ([]Category, error)

	// FindFiltered finds categories matching the filter (search, status,
	// pagination, sorting)
	FindFiltered(ctx context.Context, filter shared.Filter) ([]Category, error)

	// FindChildren finds all direct children of a category, in sibling order
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// Delete deletes a category
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts all categories
	Count(ctx context.Context) (int64, error)

	// CountFiltered counts categories matching the filter
	CountFiltered(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsSiblingName checks whether another category with the same name
	// (case-insensitive) exists under the same parent. excludeID, when
	// non-nil, ignores that category so updates can keep their own name.
	ExistsSiblingName(ctx context.Context, name string, parentID *uuid.UUID, excludeID *uuid.UUID) (bool, error)

	// SlugExists checks whether a slug is already taken (case-insensitive),
	// optionally excluding one category
	SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)

	// HasChildren checks if a category has any children, active or not
	HasChildren(ctx context.Context, categoryID uuid.UUID) (bool, error)

	// ExistingIDs reports which of the given IDs reference existing
	// categories
	ExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error)

	// UpdateDisplayOrders applies all display-order updates as one batch.
	// Within a transaction either every pair is written or none is.
	UpdateDisplayOrders(ctx context.Context, updates []DisplayOrderUpdate) error
}
