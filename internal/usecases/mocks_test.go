package usecases_test

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"coin-custody.backend/internal/domain/entities"
	"coin-custody.backend/internal/usecases"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

func (m *MockUnitOfWork) WithLock(ctx context.Context, key string, f func(context.Context) error) error {
	m.Called(ctx, key, f)
	return f(ctx)
}

// Mock DepositOrderRepository
type MockDepositOrderRepository struct {
	mock.Mock
}

func (m *MockDepositOrderRepository) Create(ctx context.Context, order *entities.DepositOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockDepositOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.DepositOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DepositOrder), args.Error(1)
}

func (m *MockDepositOrderRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.DepositOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DepositOrder), args.Error(1)
}

func (m *MockDepositOrderRepository) GetByDepositAddress(ctx context.Context, network entities.Network, address string) (*entities.DepositOrder, error) {
	args := m.Called(ctx, network, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DepositOrder), args.Error(1)
}

func (m *MockDepositOrderRepository) GetByDepositAddressForUpdate(ctx context.Context, network entities.Network, address string) (*entities.DepositOrder, error) {
	args := m.Called(ctx, network, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DepositOrder), args.Error(1)
}

func (m *MockDepositOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.DepositOrder, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.DepositOrder), args.Get(1).(int64), args.Error(2)
}

func (m *MockDepositOrderRepository) ListByStatus(ctx context.Context, status entities.DepositOrderStatus, limit int) ([]*entities.DepositOrder, error) {
	args := m.Called(ctx, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DepositOrder), args.Error(1)
}

func (m *MockDepositOrderRepository) ListSweepable(ctx context.Context, network entities.Network, limit int) ([]*entities.DepositOrder, error) {
	args := m.Called(ctx, network, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DepositOrder), args.Error(1)
}

func (m *MockDepositOrderRepository) Update(ctx context.Context, order *entities.DepositOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockDepositOrderRepository) ExpireStale(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Mock WalletRepository
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) Create(ctx context.Context, wallet *entities.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

func (m *MockWalletRepository) Update(ctx context.Context, wallet *entities.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

// Mock LedgerEntryRepository
type MockLedgerEntryRepository struct {
	mock.Mock
}

func (m *MockLedgerEntryRepository) Create(ctx context.Context, entry *entities.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerEntryRepository) GetByOrderAndTxHash(ctx context.Context, orderID uuid.UUID, txHash string) (*entities.LedgerEntry, error) {
	args := m.Called(ctx, orderID, txHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LedgerEntry), args.Error(1)
}

func (m *MockLedgerEntryRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.LedgerEntry, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.LedgerEntry), args.Get(1).(int64), args.Error(2)
}

// Mock SweepRecordRepository
type MockSweepRecordRepository struct {
	mock.Mock
}

func (m *MockSweepRecordRepository) Create(ctx context.Context, record *entities.SweepRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockSweepRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.SweepRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SweepRecord), args.Error(1)
}

func (m *MockSweepRecordRepository) GetByDepositOrderID(ctx context.Context, orderID uuid.UUID) (*entities.SweepRecord, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SweepRecord), args.Error(1)
}

func (m *MockSweepRecordRepository) ListByStatus(ctx context.Context, status entities.SweepRecordStatus, limit int) ([]*entities.SweepRecord, error) {
	args := m.Called(ctx, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SweepRecord), args.Error(1)
}

func (m *MockSweepRecordRepository) Update(ctx context.Context, record *entities.SweepRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// Mock DerivationCounterRepository
type MockDerivationCounterRepository struct {
	mock.Mock
}

func (m *MockDerivationCounterRepository) NextIndex(ctx context.Context, network entities.Network) (int64, error) {
	args := m.Called(ctx, network)
	return args.Get(0).(int64), args.Error(1)
}

// Mock WebhookLogRepository
type MockWebhookLogRepository struct {
	mock.Mock
}

func (m *MockWebhookLogRepository) Create(ctx context.Context, log *entities.WebhookLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockWebhookLogRepository) ListRecent(ctx context.Context, limit int) ([]*entities.WebhookLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.WebhookLog), args.Error(1)
}

// Mock PriceFeed
type MockPriceFeed struct {
	mock.Mock
}

func (m *MockPriceFeed) GetPriceUSD(ctx context.Context, currency entities.Currency) (decimal.Decimal, error) {
	args := m.Called(ctx, currency)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// Mock ChainClient
type MockChainClient struct {
	mock.Mock
}

func (m *MockChainClient) ChainID() *big.Int {
	args := m.Called()
	return args.Get(0).(*big.Int)
}

func (m *MockChainClient) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockChainClient) GetTokenBalance(ctx context.Context, tokenAddress, ownerAddress string) (*big.Int, error) {
	args := m.Called(ctx, tokenAddress, ownerAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockChainClient) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockChainClient) PendingNonceAt(ctx context.Context, address string) (uint64, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockChainClient) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockChainClient) GetTransactionReceipt(ctx context.Context, txHash string) (*types.Receipt, error) {
	args := m.Called(ctx, txHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Receipt), args.Error(1)
}

func (m *MockChainClient) GetBlockNumber(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

// Mock ChainClientFactory
type MockChainClientFactory struct {
	mock.Mock
}

func (m *MockChainClientFactory) GetClient(network entities.Network) (usecases.ChainClient, error) {
	args := m.Called(network)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(usecases.ChainClient), args.Error(1)
}
