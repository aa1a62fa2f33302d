package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the product reads the category subsystem needs.
// Like CategoryRepository, implementations must honor a transaction handle
// carried in the context.
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// CountAvailableByCategory returns the number of available products per
	// category ID. Categories without available products are absent from the
	// map. Counts are direct, not recursive.
	CountAvailableByCategory(ctx context.Context) (map[uuid.UUID]int64, error)

	// CountAvailableForCategory counts the available products directly
	// attached to one category
	CountAvailableForCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)

	// CountByCategory counts every product attached to a category, available
	// or not. Used by the deletion guard.
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}
