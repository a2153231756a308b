package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUnitOfWork_DoCommitAndRollback(t *testing.T) {
	db := newTestDB(t)
	createDerivationCounterTable(t, db)
	u := &UnitOfWorkImpl{db: db}

	// commit path
	err := u.Do(context.Background(), func(ctx context.Context) error {
		return GetDB(ctx, db).Exec("INSERT INTO derivation_counters(network, next_index) VALUES (?,?)", "ETH_MAINNET", 1).Error
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Table("derivation_counters").Count(&count).Error)
	require.Equal(t, int64(1), count)

	// rollback path
	err = u.Do(context.Background(), func(ctx context.Context) error {
		if err := GetDB(ctx, db).Exec("INSERT INTO derivation_counters(network, next_index) VALUES (?,?)", "BSC_MAINNET", 1).Error; err != nil {
			return err
		}
		return errors.New("force rollback")
	})
	require.Error(t, err)

	require.NoError(t, db.Table("derivation_counters").Count(&count).Error)
	require.Equal(t, int64(1), count, "second insert must be rolled back")
}

func TestUnitOfWork_GetDB(t *testing.T) {
	db := newTestDB(t)
	u := &UnitOfWorkImpl{db: db}

	plainDB := u.GetDB(context.Background())
	require.Equal(t, db, plainDB)

	tx := db.Begin()
	txCtx := context.WithValue(context.Background(), txKey, tx)
	require.Equal(t, tx, u.GetDB(txCtx))
	tx.Rollback()
}

func TestUnitOfWork_WithLock(t *testing.T) {
	db := newTestDB(t)
	createWebhookLogTable(t, db)
	u := &UnitOfWorkImpl{db: db}

	// on sqlite the lock is a no-op but the callback still runs in a tx
	err := u.WithLock(context.Background(), "deposit:"+uuid.New().String(), func(ctx context.Context) error {
		_, ok := ctx.Value(txKey).(*gorm.DB)
		require.True(t, ok, "callback must run inside a transaction")
		return nil
	})
	require.NoError(t, err)

	err = u.WithLock(context.Background(), "k", func(ctx context.Context) error {
		return errors.New("boom")
	})
	require.Error(t, err)
}

func TestUnitOfWork_DoBeginFailure(t *testing.T) {
	db := newTestDB(t)
	u := &UnitOfWorkImpl{db: db}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	err = u.Do(context.Background(), func(ctx context.Context) error {
		_ = ctx
		return nil
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to begin transaction")
}

func TestUnitOfWork_DoCommitFailure_WithHook(t *testing.T) {
	db := newTestDB(t)
	createDerivationCounterTable(t, db)
	u := &UnitOfWorkImpl{db: db}

	origCommit := commitTx
	t.Cleanup(func() { commitTx = origCommit })
	commitTx = func(tx *gorm.DB) error {
		tx.Rollback()
		return errors.New("simulated commit failure")
	}

	err := u.Do(context.Background(), func(ctx context.Context) error {
		return nil
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to commit transaction")
}
