package usecases

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"

	"coin-custody.backend/internal/domain/entities"
	"coin-custody.backend/internal/infrastructure/blockchain"
)

// PriceFeed quotes USD prices for depositable assets.
type PriceFeed interface {
	GetPriceUSD(ctx context.Context, currency entities.Currency) (decimal.Decimal, error)
}

// ChainClient is the subset of EVM node operations the usecases need.
type ChainClient interface {
	ChainID() *big.Int
	GetBalance(ctx context.Context, address string) (*big.Int, error)
	GetTokenBalance(ctx context.Context, tokenAddress, ownerAddress string) (*big.Int, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, address string) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	GetTransactionReceipt(ctx context.Context, txHash string) (*types.Receipt, error)
	GetBlockNumber(ctx context.Context) (uint64, error)
}

// ChainClientFactory hands out one client per network.
type ChainClientFactory interface {
	GetClient(network entities.Network) (ChainClient, error)
}

type clientFactoryAdapter struct {
	factory *blockchain.ClientFactory
}

// NewChainClientFactory wraps the concrete factory behind the usecase-facing
// interface.
func NewChainClientFactory(factory *blockchain.ClientFactory) ChainClientFactory {
	return &clientFactoryAdapter{factory: factory}
}

func (a *clientFactoryAdapter) GetClient(network entities.Network) (ChainClient, error) {
	return a.factory.GetClient(network)
}
