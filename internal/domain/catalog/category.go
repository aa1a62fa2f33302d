package catalog

import (
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/tradekart/backend/internal/domain/shared"
)

// MaxIconLength is the maximum number of characters in a category icon
const MaxIconLength = 10

// MaxNameLength is the maximum number of characters in a category name
const MaxNameLength = 255

// colorPattern matches a six-digit hex color code such as "#1A2B3C"
var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Category represents a node in the product category tree.
// The tree is stored as a parent reference per node; ordering among siblings
// is controlled by DisplayOrder with name as the tie-breaker.
type Category struct {
	shared.BaseAggregateRoot
	Name            string     `gorm:"type:varchar(255);not null;index"`
	Slug            string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	Description     string     `gorm:"type:text"`
	MetaTitle       string     `gorm:"type:varchar(255)"`
	MetaDescription string     `gorm:"type:text"`
	Icon            string     `gorm:"type:varchar(100)"`
	Color           string     `gorm:"type:varchar(7)"`
	Image           string     `gorm:"type:varchar(500)"`
	ParentID        *uuid.UUID `gorm:"type:uuid;index"`
	DisplayOrder    int        `gorm:"not null;default:0"`
	IsActive        bool       `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category. The slug is expected to be already
// derived and unique-ified by the caller (see CategoryService); parentID may
// be nil for a root category.
func NewCategory(name, slug string, parentID *uuid.UUID) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	category := &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug,
		ParentID:          parentID,
		IsActive:          true,
	}

	category.AddDomainEvent(NewCategoryCreatedEvent(category))

	return category, nil
}

// Rename changes the category name
func (c *Category) Rename(name string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}
	c.Name = name
	c.touch()
	return nil
}

// SetSlug replaces the category slug. Uniqueness is the caller's concern.
func (c *Category) SetSlug(slug string) {
	c.Slug = slug
	c.touch()
}

// SetDescription sets the free-text description
func (c *Category) SetDescription(description string) {
	c.Description = description
	c.touch()
}

// SetMeta sets the SEO meta title and description
func (c *Category) SetMeta(title, description string) {
	c.MetaTitle = title
	c.MetaDescription = description
	c.touch()
}

// SetIcon sets the icon identifier
func (c *Category) SetIcon(icon string) error {
	if err := validateIcon(icon); err != nil {
		return err
	}
	c.Icon = icon
	c.touch()
	return nil
}

// SetColor sets the display color
func (c *Category) SetColor(color string) error {
	if err := validateColor(color); err != nil {
		return err
	}
	c.Color = color
	c.touch()
	return nil
}

// SetImage stores the image URL verbatim. The URL is produced by an external
// upload service and never interpreted here.
func (c *Category) SetImage(url string) {
	c.Image = url
	c.touch()
}

// SetDisplayOrder sets the position among siblings
func (c *Category) SetDisplayOrder(order int) {
	c.DisplayOrder = order
	c.touch()
}

// SetActive toggles the active flag. An inactive category stays in the tree;
// consuming surfaces decide what to do with it.
func (c *Category) SetActive(active bool) {
	c.IsActive = active
	c.touch()
}

// SetParent re-parents the category. Cycle prevention is enforced by the
// CategoryService before this is called.
func (c *Category) SetParent(parentID *uuid.UUID) {
	c.ParentID = parentID
	c.touch()
}

// IsRoot returns true if this is a root category
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

func (c *Category) touch() {
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// validateCategoryName validates the category name
func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewDomainError(shared.CodeValidation, "Category name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return shared.NewDomainError(shared.CodeValidation, "Category name cannot exceed 255 characters")
	}
	return nil
}

// validateIcon validates the icon identifier
func validateIcon(icon string) error {
	if icon == "" {
		return nil
	}
	if utf8.RuneCountInString(icon) > MaxIconLength {
		return shared.NewDomainError(shared.CodeValidation, "Category icon cannot exceed 10 characters")
	}
	return nil
}

// validateColor validates the display color
func validateColor(color string) error {
	if color == "" {
		return nil
	}
	if !colorPattern.MatchString(color) {
		return shared.NewDomainError(shared.CodeValidation, "Category color must be a hex code like #RRGGBB")
	}
	return nil
}
