package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"coin-custody.backend/internal/domain/entities"
)

func TestWebhookLogRepository_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	createWebhookLogTable(t, db)
	repo := NewWebhookLogRepository(db)
	ctx := context.Background()

	matched := &entities.WebhookLog{
		ID:             uuid.New(),
		Source:         "chain-monitor",
		Payload:        `{"txHash":"0xabc"}`,
		Signature:      "sig",
		Processed:      true,
		TxHash:         null.StringFrom("0xabc"),
		DepositOrderID: null.StringFrom(uuid.New().String()),
		ReceivedAt:     time.Now().Add(-time.Minute),
	}
	require.NoError(t, repo.Create(ctx, matched))

	orphan := &entities.WebhookLog{
		ID:              uuid.New(),
		Source:          "chain-monitor",
		Payload:         `{"txHash":"0xdef"}`,
		Processed:       false,
		ProcessingError: null.StringFrom("no order for address"),
		TxHash:          null.StringFrom("0xdef"),
		ReceivedAt:      time.Now(),
	}
	require.NoError(t, repo.Create(ctx, orphan))

	logs, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	// newest first
	require.Equal(t, orphan.ID, logs[0].ID)
	require.Equal(t, "no order for address", logs[0].ProcessingError.String)
	require.False(t, logs[0].DepositOrderID.Valid)
	require.True(t, logs[1].Processed)
	require.True(t, logs[1].DepositOrderID.Valid)
}
