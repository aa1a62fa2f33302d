package catalog

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/tradekart/backend/internal/domain/catalog"
)

// OptionalUUID is a UUID field that distinguishes an absent JSON key from an
// explicit null. encoding/json nils out a settable pointer on null before the
// value's own UnmarshalJSON runs, so presence has to be tracked inside the
// value itself rather than with a pointer.
type OptionalUUID struct {
	UUID  uuid.UUID
	Valid bool // Valid is false for an explicit null
	Set   bool // Set is false when the key was absent
}

// UnmarshalJSON implements json.Unmarshaler. It only runs when the key is
// present, which is what records presence.
func (o *OptionalUUID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.UUID = uuid.Nil
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.UUID); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// MarshalJSON implements json.Marshaler
func (o OptionalUUID) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.UUID)
}

// CreateCategoryRequest represents a request to create a new category
type CreateCategoryRequest struct {
	Name            string     `json:"name" binding:"required,min=1,max=255"`
	Slug            string     `json:"slug" binding:"omitempty,max=255"`
	Description     string     `json:"description"`
	MetaTitle       string     `json:"meta_title" binding:"omitempty,max=255"`
	MetaDescription string     `json:"meta_description"`
	Icon            string     `json:"icon" binding:"omitempty,max=10"`
	Color           string     `json:"color" binding:"omitempty,hexcolor"`
	Image           string     `json:"image" binding:"omitempty,max=500"`
	ParentID        *uuid.UUID `json:"parent_id"`
	DisplayOrder    *int       `json:"display_order"`
	IsActive        *bool      `json:"is_active"`
}

// UpdateCategoryRequest represents a request to update a category. Every
// field is optional; absent fields are left unchanged. ParentID uses
// OptionalUUID so an explicit JSON null moves the category to the root while
// an absent key leaves the parent alone.
type UpdateCategoryRequest struct {
	Name            *string      `json:"name" binding:"omitempty,min=1,max=255"`
	Slug            *string      `json:"slug" binding:"omitempty,max=255"`
	Description     *string      `json:"description"`
	MetaTitle       *string      `json:"meta_title" binding:"omitempty,max=255"`
	MetaDescription *string      `json:"meta_description"`
	Icon            *string      `json:"icon" binding:"omitempty,max=10"`
	Color           *string      `json:"color" binding:"omitempty,hexcolor"`
	Image           *string      `json:"image" binding:"omitempty,max=500"`
	ParentID        OptionalUUID `json:"parent_id"`
	DisplayOrder    *int         `json:"display_order"`
	IsActive        *bool        `json:"is_active"`
}

// ReorderItem is one (category, position) pair of a reorder request
type ReorderItem struct {
	ID           uuid.UUID `json:"id" binding:"required"`
	DisplayOrder int       `json:"display_order"`
}

// ReorderCategoriesRequest represents a request to reposition categories.
// Categories not listed keep their current display order.
type ReorderCategoriesRequest struct {
	Items []ReorderItem `json:"items" binding:"required,min=1,dive"`
}

// CategoryListFilter represents filter options for the flat category list
type CategoryListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Slug            string     `json:"slug"`
	Description     string     `json:"description"`
	MetaTitle       string     `json:"meta_title"`
	MetaDescription string     `json:"meta_description"`
	Icon            string     `json:"icon"`
	Color           string     `json:"color"`
	Image           string     `json:"image"`
	ParentID        *uuid.UUID `json:"parent_id"`
	DisplayOrder    int        `json:"display_order"`
	IsActive        bool       `json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	Version         int        `json:"version"`
}

// CategorySummary is a shallow reference to a related category
type CategorySummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// CategoryDetailResponse is the single-category view: the category itself
// plus its direct available-product count and parent/children summaries
type CategoryDetailResponse struct {
	CategoryResponse
	ProductCount int64             `json:"product_count"`
	Parent       *CategorySummary  `json:"parent"`
	Children     []CategorySummary `json:"children"`
}

// CategoryListResponse represents a list item for categories
type CategoryListResponse struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Slug         string     `json:"slug"`
	Icon         string     `json:"icon"`
	Color        string     `json:"color"`
	ParentID     *uuid.UUID `json:"parent_id"`
	DisplayOrder int        `json:"display_order"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:              c.ID,
		Name:            c.Name,
		Slug:            c.Slug,
		Description:     c.Description,
		MetaTitle:       c.MetaTitle,
		MetaDescription: c.MetaDescription,
		Icon:            c.Icon,
		Color:           c.Color,
		Image:           c.Image,
		ParentID:        c.ParentID,
		DisplayOrder:    c.DisplayOrder,
		IsActive:        c.IsActive,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
		Version:         c.Version,
	}
}

// ToCategorySummary converts a domain Category to CategorySummary
func ToCategorySummary(c *catalog.Category) CategorySummary {
	return CategorySummary{
		ID:   c.ID,
		Name: c.Name,
		Slug: c.Slug,
	}
}

// ToCategoryListResponse converts a domain Category to CategoryListResponse
func ToCategoryListResponse(c *catalog.Category) CategoryListResponse {
	return CategoryListResponse{
		ID:           c.ID,
		Name:         c.Name,
		Slug:         c.Slug,
		Icon:         c.Icon,
		Color:        c.Color,
		ParentID:     c.ParentID,
		DisplayOrder: c.DisplayOrder,
		IsActive:     c.IsActive,
		CreatedAt:    c.CreatedAt,
	}
}

// ToCategoryListResponses converts a slice of domain Categories to
// CategoryListResponses
func ToCategoryListResponses(categories []catalog.Category) []CategoryListResponse {
	responses := make([]CategoryListResponse, len(categories))
	for i, c := range categories {
		responses[i] = ToCategoryListResponse(&c)
	}
	return responses
}
