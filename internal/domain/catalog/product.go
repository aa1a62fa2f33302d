package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradekart/backend/internal/domain/shared"
)

// Product is the category-facing view of a catalog product. Each product
// belongs to exactly one category; only available products contribute to
// category product counts. Full product management lives outside this
// subsystem — the category code only ever reads these rows.
type Product struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"type:varchar(255);not null"`
	SKU         string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IsAvailable bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product attached to a category
func NewProduct(name, sku string, categoryID uuid.UUID, price decimal.Decimal) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Product name cannot be empty")
	}
	if sku == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Product SKU cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Product price cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		SKU:               sku,
		CategoryID:        categoryID,
		Price:             price,
		IsAvailable:       true,
	}, nil
}
