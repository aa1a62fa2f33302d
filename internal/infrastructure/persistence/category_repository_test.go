package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tradekart/backend/internal/domain/catalog"
	"github.com/tradekart/backend/internal/domain/shared"
)

// newMockCategoryRepository creates a GormCategoryRepository with a mocked SQL connection
func newMockCategoryRepository(t *testing.T) (*GormCategoryRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormCategoryRepository(gormDB), mock, mockDB
}

func TestNewGormCategoryRepository(t *testing.T) {
	t.Run("creates repository with valid DB", func(t *testing.T) {
		repo, _, mockDB := newMockCategoryRepository(t)
		defer mockDB.Close()

		assert.NotNil(t, repo)
		assert.NotNil(t, repo.db)
	})
}

func TestGormCategoryRepository_FindByID(t *testing.T) {
	t.Run("finds existing category", func(t *testing.T) {
		repo, mock, mockDB := newMockCategoryRepository(t)
		defer mockDB.Close()

		categoryID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "slug", "display_order", "is_active"}).
			AddRow(categoryID, "Grocery", "grocery", 0, true)

		mock.ExpectQuery(`SELECT \* FROM "categories" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(categoryID, 1).
			WillReturnRows(rows)

		category, err := repo.FindByID(context.Background(), categoryID)

		assert.NoError(t, err)
		assert.NotNil(t, category)
		assert.Equal(t, categoryID, category.ID)
		assert.Equal(t, "Grocery", category.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent category", func(t *testing.T) {
		repo, mock, mockDB := newMockCategoryRepository(t)
		defer mockDB.Close()

		categoryID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "categories" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(categoryID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		category, err := repo.FindByID(context.Background(), categoryID)

		assert.Error(t, err)
		assert.Nil(t, category)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCategoryRepository_FindAll(t *testing.T) {
	t.Run("returns flat unordered list", func(t *testing.T) {
		repo, mock, mockDB := newMockCategoryRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "name", "slug", "display_order", "is_active"}).
			AddRow(uuid.New(), "Grocery", "grocery", 0, true).
			AddRow(uuid.New(), "Snacks", "snacks", 1, true)

		mock.ExpectQuery(`SELECT \* FROM "categories"`).
			WillReturnRows(rows)

		categories, err := repo.FindAll(context.Background())

		assert.NoError(t, err)
		assert.Len(t, categories, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCategoryRepository_ExistsSiblingName(t *testing.T) {
	t.Run("matches case-insensitively under a parent", func(t *testing.T) {
		repo, mock, mockDB := newMockCategoryRepository(t)
		defer mockDB.Close()

		parentID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "categories" WHERE LOWER\(name\) = LOWER\(\$1\) AND parent_id = \$2`).
			WithArgs("Snacks", parentID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsSiblingName(context.Background(), "Snacks", &parentID, nil)

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("treats root siblings as one group", func(t *testing.T) {
		repo, mock, mockDB := newMockCategoryRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "categories" WHERE LOWER\(name\) = LOWER\(\$1\) AND parent_id IS NULL`).
			WithArgs("Snacks").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsSiblingName(context.Background(), "Snacks", nil, nil)

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("excludes the given category", func(t *testing.T) {
		repo, mock, mockDB := newMockCategoryRepository(t)
		defer mockDB.Close()

		excludeID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "categories" WHERE LOWER\(name\) = LOWER\(\$1\) AND parent_id IS NULL AND id <> \$2`).
			WithArgs("Snacks", excludeID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsSiblingName(context.Background(), "Snacks", nil, &excludeID)

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCategoryRepository_SlugExists(t *testing.T) {
	t.Run("matches slug case-insensitively", func(t *testing.T) {
		repo, mock, mockDB := newMockCategoryRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "categories" WHERE LOWER\(slug\) = LOWER\(\$1\)`).
			WithArgs("snacks").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.SlugExists(context.Background(), "snacks", nil)

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCategoryRepository_HasChildren(t *testing.T) {
	t.Run("reports children", func(t *testing.T) {
		repo, mock, mockDB := newMockCategoryRepository(t)
		defer mockDB.Close()

		categoryID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "categories" WHERE parent_id = \$1`).
			WithArgs(categoryID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		hasChildren, err := repo.HasChildren(context.Background(), categoryID)

		assert.NoError(t, err)
		assert.True(t, hasChildren)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCategoryRepository_ExistingIDs(t *testing.T) {
	t.Run("reports which ids exist", func(t *testing.T) {
		repo, mock, mockDB := newMockCategoryRepository(t)
		defer mockDB.Close()

		known := uuid.New()
		unknown := uuid.New()

		mock.ExpectQuery(`SELECT "id" FROM "categories" WHERE id IN \(\$1,\$2\)`).
			WithArgs(known, unknown).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(known))

		existing, err := repo.ExistingIDs(context.Background(), []uuid.UUID{known, unknown})

		assert.NoError(t, err)
		assert.True(t, existing[known])
		assert.False(t, existing[unknown])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty input skips the query", func(t *testing.T) {
		repo, mock, mockDB := newMockCategoryRepository(t)
		defer mockDB.Close()

		existing, err := repo.ExistingIDs(context.Background(), nil)

		assert.NoError(t, err)
		assert.Empty(t, existing)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCategoryRepository_UpdateDisplayOrders(t *testing.T) {
	t.Run("updates each listed category", func(t *testing.T) {
		repo, mock, mockDB := newMockCategoryRepository(t)
		defer mockDB.Close()

		first := uuid.New()
		second := uuid.New()

		mock.ExpectExec(`UPDATE "categories" SET "display_order"=\$1,"updated_at"=\$2 WHERE id = \$3`).
			WithArgs(2, sqlmock.AnyArg(), first).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "categories" SET "display_order"=\$1,"updated_at"=\$2 WHERE id = \$3`).
			WithArgs(1, sqlmock.AnyArg(), second).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateDisplayOrders(context.Background(), []catalog.DisplayOrderUpdate{
			{CategoryID: first, DisplayOrder: 2},
			{CategoryID: second, DisplayOrder: 1},
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row surfaces not found", func(t *testing.T) {
		repo, mock, mockDB := newMockCategoryRepository(t)
		defer mockDB.Close()

		missing := uuid.New()

		mock.ExpectExec(`UPDATE "categories" SET "display_order"=\$1,"updated_at"=\$2 WHERE id = \$3`).
			WithArgs(5, sqlmock.AnyArg(), missing).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateDisplayOrders(context.Background(), []catalog.DisplayOrderUpdate{
			{CategoryID: missing, DisplayOrder: 5},
		})

		assert.Error(t, err)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCategoryRepository_Delete(t *testing.T) {
	t.Run("deletes existing category", func(t *testing.T) {
		repo, mock, mockDB := newMockCategoryRepository(t)
		defer mockDB.Close()

		categoryID := uuid.New()

		mock.ExpectExec(`DELETE FROM "categories" WHERE id = \$1`).
			WithArgs(categoryID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), categoryID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when nothing deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockCategoryRepository(t)
		defer mockDB.Close()

		categoryID := uuid.New()

		mock.ExpectExec(`DELETE FROM "categories" WHERE id = \$1`).
			WithArgs(categoryID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), categoryID)

		assert.Error(t, err)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
