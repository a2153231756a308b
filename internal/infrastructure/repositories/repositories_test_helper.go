package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createDepositOrderTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE deposit_orders (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		fiat_amount TEXT NOT NULL,
		locked_crypto_amount TEXT NOT NULL,
		locked_rate TEXT NOT NULL,
		currency TEXT NOT NULL,
		network TEXT NOT NULL,
		deposit_address TEXT NOT NULL,
		derivation_index INTEGER NOT NULL,
		derivation_path TEXT NOT NULL,
		private_key_encrypted TEXT NOT NULL,
		status TEXT NOT NULL,
		tx_hash TEXT,
		confirmations INTEGER NOT NULL DEFAULT 0,
		required_confirmations INTEGER NOT NULL,
		received_amount TEXT,
		underpaid BOOLEAN NOT NULL DEFAULT 0,
		overpaid BOOLEAN NOT NULL DEFAULT 0,
		manual_review BOOLEAN NOT NULL DEFAULT 0,
		swept BOOLEAN NOT NULL DEFAULT 0,
		quote_expires_at DATETIME NOT NULL,
		expires_at DATETIME NOT NULL,
		confirmed_at DATETIME,
		completed_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE(network, derivation_index)
	);`)
}

func createWalletTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE wallets (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		balance TEXT NOT NULL DEFAULT '0',
		withdrawable_balance TEXT NOT NULL DEFAULT '0',
		total_deposited TEXT NOT NULL DEFAULT '0',
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createLedgerEntryTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE ledger_entries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		type TEXT NOT NULL,
		amount TEXT NOT NULL,
		network TEXT NOT NULL,
		tx_hash TEXT NOT NULL,
		deposit_order_id TEXT NOT NULL,
		verified BOOLEAN NOT NULL DEFAULT 0,
		verified_at DATETIME,
		created_at DATETIME,
		UNIQUE(deposit_order_id, tx_hash)
	);`)
}

func createSweepRecordTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE sweep_records (
		id TEXT PRIMARY KEY,
		deposit_order_id TEXT NOT NULL UNIQUE,
		network TEXT NOT NULL,
		from_address TEXT NOT NULL,
		to_address TEXT NOT NULL,
		amount TEXT NOT NULL,
		gas_price TEXT NOT NULL,
		tx_hash TEXT,
		status TEXT NOT NULL,
		error TEXT,
		attempts INTEGER NOT NULL DEFAULT 0,
		confirmed_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createDerivationCounterTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE derivation_counters (
		network TEXT PRIMARY KEY,
		next_index INTEGER NOT NULL DEFAULT 0
	);`)
}

func createWebhookLogTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE webhook_logs (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		payload TEXT NOT NULL,
		signature TEXT,
		processed BOOLEAN NOT NULL DEFAULT 0,
		processing_error TEXT,
		tx_hash TEXT,
		deposit_order_id TEXT,
		received_at DATETIME NOT NULL
	);`)
}
