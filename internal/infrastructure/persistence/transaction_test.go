package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockTransactionManager(t *testing.T) (*GormTransactionManager, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormTransactionManager(gormDB), mock, mockDB
}

func TestGormTransactionManager_Do(t *testing.T) {
	t.Run("commits when fn succeeds", func(t *testing.T) {
		manager, mock, mockDB := newMockTransactionManager(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectCommit()

		called := false
		err := manager.Do(context.Background(), func(ctx context.Context) error {
			called = true
			assert.NotNil(t, txFrom(ctx))
			return nil
		})

		assert.NoError(t, err)
		assert.True(t, called)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when fn fails", func(t *testing.T) {
		manager, mock, mockDB := newMockTransactionManager(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("boom")
		err := manager.Do(context.Background(), func(ctx context.Context) error {
			return boom
		})

		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nested Do joins the outer transaction", func(t *testing.T) {
		manager, mock, mockDB := newMockTransactionManager(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectCommit()

		err := manager.Do(context.Background(), func(outer context.Context) error {
			outerTx := txFrom(outer)
			return manager.Do(outer, func(inner context.Context) error {
				assert.Same(t, outerTx, txFrom(inner))
				return nil
			})
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDBFrom(t *testing.T) {
	t.Run("falls back to the base DB without a transaction", func(t *testing.T) {
		_, _, mockDB := newMockTransactionManager(t)
		defer mockDB.Close()

		dialector := postgres.New(postgres.Config{
			Conn:       mockDB,
			DriverName: "postgres",
		})
		gormDB, err := gorm.Open(dialector, &gorm.Config{SkipDefaultTransaction: true})
		require.NoError(t, err)

		db := dbFrom(context.Background(), gormDB)
		assert.NotNil(t, db)
	})
}
