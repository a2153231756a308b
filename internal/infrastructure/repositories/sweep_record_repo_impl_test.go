package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"coin-custody.backend/internal/domain/entities"
	domainerrors "coin-custody.backend/internal/domain/errors"
)

func newTestSweepRecord(orderID uuid.UUID) *entities.SweepRecord {
	return &entities.SweepRecord{
		ID:             uuid.New(),
		DepositOrderID: orderID,
		Network:        entities.NetworkEthereum,
		FromAddress:    "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B",
		ToAddress:      "0x00000000219ab540356cBB839Cbe05303d7705Fa",
		Amount:         "49580000000000000",
		GasPrice:       "20000000000",
		Status:         entities.SweepRecordStatusPending,
	}
}

func TestSweepRecordRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createSweepRecordTable(t, db)
	repo := NewSweepRecordRepository(db)
	ctx := context.Background()

	orderID := uuid.New()
	rec := newTestSweepRecord(orderID)
	require.NoError(t, repo.Create(ctx, rec))

	got, err := repo.GetByDepositOrderID(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, rec.ID, got.ID)
	require.Equal(t, entities.SweepRecordStatusPending, got.Status)
	require.Equal(t, "49580000000000000", got.Amount)

	_, err = repo.GetByDepositOrderID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestSweepRecordRepository_OneRecordPerOrder(t *testing.T) {
	db := newTestDB(t)
	createSweepRecordTable(t, db)
	repo := NewSweepRecordRepository(db)
	ctx := context.Background()

	orderID := uuid.New()
	require.NoError(t, repo.Create(ctx, newTestSweepRecord(orderID)))
	require.Error(t, repo.Create(ctx, newTestSweepRecord(orderID)))
}

func TestSweepRecordRepository_UpdateAndListByStatus(t *testing.T) {
	db := newTestDB(t)
	createSweepRecordTable(t, db)
	repo := NewSweepRecordRepository(db)
	ctx := context.Background()

	rec := newTestSweepRecord(uuid.New())
	require.NoError(t, repo.Create(ctx, rec))
	require.NoError(t, repo.Create(ctx, newTestSweepRecord(uuid.New())))

	rec.Status = entities.SweepRecordStatusConfirmed
	rec.TxHash = null.StringFrom("0xsweep")
	rec.Attempts = 1
	rec.ConfirmedAt = null.TimeFrom(time.Now())
	require.NoError(t, repo.Update(ctx, rec))

	pending, err := repo.ListByStatus(ctx, entities.SweepRecordStatusPending, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, entities.SweepRecordStatusConfirmed, got.Status)
	require.Equal(t, "0xsweep", got.TxHash.String)
	require.True(t, got.ConfirmedAt.Valid)
}
