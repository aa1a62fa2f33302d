package catalog

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradekart/backend/internal/domain/shared"
)

func TestNewCategory(t *testing.T) {
	t.Run("creates root category with valid inputs", func(t *testing.T) {
		category, err := NewCategory("Grocery", "grocery", nil)
		require.NoError(t, err)
		require.NotNil(t, category)

		assert.Equal(t, "Grocery", category.Name)
		assert.Equal(t, "grocery", category.Slug)
		assert.Nil(t, category.ParentID)
		assert.True(t, category.IsRoot())
		assert.True(t, category.IsActive)
		assert.NotEmpty(t, category.ID)
	})

	t.Run("creates child category under parent", func(t *testing.T) {
		parentID := uuid.New()
		category, err := NewCategory("Snacks", "snacks", &parentID)
		require.NoError(t, err)

		require.NotNil(t, category.ParentID)
		assert.Equal(t, parentID, *category.ParentID)
		assert.False(t, category.IsRoot())
	})

	t.Run("publishes CategoryCreated event", func(t *testing.T) {
		category, err := NewCategory("Grocery", "grocery", nil)
		require.NoError(t, err)

		events := category.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeCategoryCreated, events[0].EventType())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCategory("", "grocery", nil)
		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("fails with name too long", func(t *testing.T) {
		_, err := NewCategory(strings.Repeat("a", MaxNameLength+1), "grocery", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed 255 characters")
	})
}

func TestCategoryRename(t *testing.T) {
	category, _ := NewCategory("Grocery", "grocery", nil)
	category.ClearDomainEvents()

	t.Run("changes name and bumps version", func(t *testing.T) {
		originalVersion := category.GetVersion()
		err := category.Rename("Groceries")
		require.NoError(t, err)

		assert.Equal(t, "Groceries", category.Name)
		assert.Equal(t, originalVersion+1, category.GetVersion())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		err := category.Rename("")
		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
	})
}

func TestCategorySetIcon(t *testing.T) {
	category, _ := NewCategory("Grocery", "grocery", nil)

	t.Run("accepts short icon", func(t *testing.T) {
		require.NoError(t, category.SetIcon("cart"))
		assert.Equal(t, "cart", category.Icon)
	})

	t.Run("accepts empty icon", func(t *testing.T) {
		require.NoError(t, category.SetIcon(""))
	})

	t.Run("accepts emoji counted in runes", func(t *testing.T) {
		require.NoError(t, category.SetIcon("🛒🛒🛒🛒🛒🛒🛒🛒🛒🛒"))
	})

	t.Run("fails when longer than ten characters", func(t *testing.T) {
		err := category.SetIcon("shoppingcart")
		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
	})
}

func TestCategorySetColor(t *testing.T) {
	category, _ := NewCategory("Grocery", "grocery", nil)

	tests := []struct {
		name    string
		color   string
		wantErr bool
	}{
		{"valid lowercase", "#a1b2c3", false},
		{"valid uppercase", "#A1B2C3", false},
		{"empty clears", "", false},
		{"missing hash", "a1b2c3", true},
		{"too short", "#abc", true},
		{"non hex digits", "#12345g", true},
		{"too long", "#1234567", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := category.SetColor(tt.color)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCategorySetParent(t *testing.T) {
	category, _ := NewCategory("Snacks", "snacks", nil)

	t.Run("attaches to parent", func(t *testing.T) {
		parentID := uuid.New()
		category.SetParent(&parentID)
		require.NotNil(t, category.ParentID)
		assert.Equal(t, parentID, *category.ParentID)
	})

	t.Run("detaches to root", func(t *testing.T) {
		category.SetParent(nil)
		assert.Nil(t, category.ParentID)
		assert.True(t, category.IsRoot())
	})
}

func TestCategorySetActive(t *testing.T) {
	category, _ := NewCategory("Grocery", "grocery", nil)
	originalVersion := category.GetVersion()

	category.SetActive(false)
	assert.False(t, category.IsActive)
	assert.Equal(t, originalVersion+1, category.GetVersion())

	category.SetActive(true)
	assert.True(t, category.IsActive)
}

func TestCategoryEvents(t *testing.T) {
	parentID := uuid.New()
	category, _ := NewCategory("Snacks", "snacks", &parentID)

	t.Run("CategoryCreatedEvent has correct fields", func(t *testing.T) {
		events := category.GetDomainEvents()
		require.Len(t, events, 1)

		event, ok := events[0].(*CategoryCreatedEvent)
		require.True(t, ok)

		assert.Equal(t, category.ID, event.CategoryID)
		assert.Equal(t, category.Name, event.Name)
		assert.Equal(t, category.Slug, event.Slug)
		assert.Equal(t, category.ParentID, event.ParentID)
		assert.Equal(t, EventTypeCategoryCreated, event.EventType())
		assert.Equal(t, AggregateTypeCategory, event.AggregateType())
		assert.Equal(t, category.ID, event.AggregateID())
	})

	t.Run("CategoryUpdatedEvent carries changed fields", func(t *testing.T) {
		event := NewCategoryUpdatedEvent(category, []string{"name", "parentId"})
		assert.Equal(t, category.ID, event.CategoryID)
		assert.Equal(t, []string{"name", "parentId"}, event.ChangedFields)
		assert.Equal(t, EventTypeCategoryUpdated, event.EventType())
	})

	t.Run("CategoryDeletedEvent has correct fields", func(t *testing.T) {
		event := NewCategoryDeletedEvent(category)
		assert.Equal(t, category.ID, event.CategoryID)
		assert.Equal(t, category.Name, event.Name)
		assert.Equal(t, category.ParentID, event.ParentID)
		assert.Equal(t, EventTypeCategoryDeleted, event.EventType())
	})

	t.Run("CategoriesReorderedEvent lists affected ids", func(t *testing.T) {
		ids := []uuid.UUID{uuid.New(), uuid.New()}
		event := NewCategoriesReorderedEvent(ids)
		assert.Equal(t, ids, event.CategoryIDs)
		assert.Equal(t, EventTypeCategoriesReordered, event.EventType())
	})
}

func TestValidateCategoryName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid name", "Electronics", false},
		{"valid with spaces and ampersand", "Rice & Grains", false},
		{"valid unicode", "Épicerie 食品", false},
		{"empty", "", true},
		{"max length", strings.Repeat("a", MaxNameLength), false},
		{"too long", strings.Repeat("a", MaxNameLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCategoryName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
