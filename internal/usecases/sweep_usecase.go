package usecases

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"coin-custody.backend/internal/config"
	"coin-custody.backend/internal/domain/entities"
	domainerrors "coin-custody.backend/internal/domain/errors"
	"coin-custody.backend/internal/domain/repositories"
	"coin-custody.backend/pkg/hdwallet"
	"coin-custody.backend/pkg/logger"
	"coin-custody.backend/pkg/utils"
	"coin-custody.backend/pkg/vault"
)

// SweepUsecase forwards settled deposits from their one-time hot addresses
// to cold storage.
type SweepUsecase struct {
	orderRepo repositories.DepositOrderRepository
	sweepRepo repositories.SweepRecordRepository
	uow       repositories.UnitOfWork
	clients   ChainClientFactory
	keyVault  *vault.Vault
	networks  map[string]config.NetworkConfig
}

// NewSweepUsecase creates a new sweep usecase
func NewSweepUsecase(
	orderRepo repositories.DepositOrderRepository,
	sweepRepo repositories.SweepRecordRepository,
	uow repositories.UnitOfWork,
	clients ChainClientFactory,
	keyVault *vault.Vault,
	networks map[string]config.NetworkConfig,
) *SweepUsecase {
	return &SweepUsecase{
		orderRepo: orderRepo,
		sweepRepo: sweepRepo,
		uow:       uow,
		clients:   clients,
		keyVault:  keyVault,
		networks:  networks,
	}
}

// sweepPlan is one prepared forwarding transfer: the transaction target plus
// the amount of the asset actually moved.
type sweepPlan struct {
	to       ethcommon.Address
	value    *big.Int
	amount   *big.Int
	gasPrice *big.Int
	gasLimit uint64
	data     []byte
}

// SweepEligibleOrders scans every configured network for completed orders
// whose addresses still hold funds and forwards them. Per-order failures are
// recorded and skipped, never aborting the pass.
func (u *SweepUsecase) SweepEligibleOrders(ctx context.Context) error {
	for _, network := range entities.AllNetworks() {
		netCfg, ok := u.networks[string(network)]
		if !ok || netCfg.ColdWalletAddress == "" {
			continue
		}

		orders, err := u.orderRepo.ListSweepable(ctx, network, sweepBatchSize)
		if err != nil {
			return err
		}

		for _, order := range orders {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := u.sweepOrder(ctx, order, netCfg); err != nil {
				logger.Error(ctx, "sweep failed",
					zap.String("order_id", order.ID.String()),
					zap.String("network", string(order.Network)),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

// sweepOrder moves the order's deposited asset to the network's cold wallet.
// A FAILED record from an earlier pass is retried with a fresh fee estimate;
// a PENDING or CONFIRMED record means the funds are already on their way.
func (u *SweepUsecase) sweepOrder(ctx context.Context, order *entities.DepositOrder, netCfg config.NetworkConfig) error {
	existing, err := u.sweepRepo.GetByDepositOrderID(ctx, order.ID)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}
		existing = nil
	} else if existing.Status != entities.SweepRecordStatusFailed {
		return u.markSwept(ctx, order)
	}

	curCfg, ok := order.Currency.Config()
	if !ok {
		return fmt.Errorf("no asset config for currency %q", order.Currency)
	}

	client, err := u.clients.GetClient(order.Network)
	if err != nil {
		return err
	}

	var plan *sweepPlan
	if curCfg.ContractAddress != "" {
		plan, err = u.planTokenSweep(ctx, client, order, netCfg, curCfg)
	} else {
		plan, err = u.planNativeSweep(ctx, client, order, netCfg)
	}
	if err != nil || plan == nil {
		return err
	}

	nonce, err := client.PendingNonceAt(ctx, order.DepositAddress)
	if err != nil {
		return err
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &plan.to,
		Value:    plan.value,
		Gas:      plan.gasLimit,
		GasPrice: plan.gasPrice,
		Data:     plan.data,
	})

	txHash, err := u.signAndBroadcast(ctx, client, order, tx)

	record := u.sweepRecordFor(order, existing, netCfg.ColdWalletAddress, plan)
	if err != nil {
		record.Status = entities.SweepRecordStatusFailed
		record.Error = null.StringFrom(err.Error())
		record.TxHash = null.String{}
		if perr := u.saveSweepRecord(ctx, record, existing != nil); perr != nil {
			return perr
		}
		return fmt.Errorf("%w: %v", domainerrors.ErrSweepFailed, err)
	}

	record.Status = entities.SweepRecordStatusPending
	record.TxHash = null.StringFrom(txHash)
	record.Error = null.String{}

	return u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.saveSweepRecord(txCtx, record, existing != nil); err != nil {
			return err
		}
		order.Swept = true
		return u.orderRepo.Update(txCtx, order)
	})
}

// planNativeSweep prepares a value transfer of the address's full balance
// minus gas. Returns nil when the balance is below the network threshold or
// cannot cover the fee.
func (u *SweepUsecase) planNativeSweep(ctx context.Context, client ChainClient, order *entities.DepositOrder, netCfg config.NetworkConfig) (*sweepPlan, error) {
	balance, err := client.GetBalance(ctx, order.DepositAddress)
	if err != nil {
		return nil, err
	}

	threshold, ok := new(big.Int).SetString(netCfg.SweepThresholdWei, 10)
	if !ok {
		return nil, fmt.Errorf("bad sweep threshold %q", netCfg.SweepThresholdWei)
	}
	if balance.Cmp(threshold) < 0 {
		return nil, nil
	}

	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, err
	}

	gasCost := new(big.Int).Mul(gasPrice, big.NewInt(SweepGasLimit))
	amount := new(big.Int).Sub(balance, gasCost)
	if amount.Sign() <= 0 {
		logger.Warn(ctx, "balance does not cover sweep gas",
			zap.String("order_id", order.ID.String()),
			zap.String("balance", balance.String()),
			zap.String("gas_cost", gasCost.String()),
		)
		return nil, nil
	}

	return &sweepPlan{
		to:       ethcommon.HexToAddress(netCfg.ColdWalletAddress),
		value:    amount,
		amount:   amount,
		gasPrice: gasPrice,
		gasLimit: SweepGasLimit,
	}, nil
}

// planTokenSweep prepares an ERC-20 transfer of the address's full token
// balance to cold storage. The deposit address pays the gas from its native
// balance; a dry address surfaces as a broadcast failure and is retried.
func (u *SweepUsecase) planTokenSweep(ctx context.Context, client ChainClient, order *entities.DepositOrder, netCfg config.NetworkConfig, curCfg entities.CurrencyConfig) (*sweepPlan, error) {
	balance, err := client.GetTokenBalance(ctx, curCfg.ContractAddress, order.DepositAddress)
	if err != nil {
		return nil, err
	}
	if balance.Sign() <= 0 {
		return nil, nil
	}

	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, err
	}

	cold := ethcommon.HexToAddress(netCfg.ColdWalletAddress)
	return &sweepPlan{
		to:       ethcommon.HexToAddress(curCfg.ContractAddress),
		value:    big.NewInt(0),
		amount:   balance,
		gasPrice: gasPrice,
		gasLimit: TokenSweepGasLimit,
		data:     erc20TransferData(cold, balance),
	}, nil
}

// erc20TransferData builds transfer(address,uint256) calldata.
func erc20TransferData(to ethcommon.Address, amount *big.Int) []byte {
	data := make([]byte, 0, 68)
	data = append(data, 0xa9, 0x05, 0x9c, 0xbb)
	data = append(data, ethcommon.LeftPadBytes(to.Bytes(), 32)...)
	data = append(data, ethcommon.LeftPadBytes(amount.Bytes(), 32)...)
	return data
}

// sweepRecordFor reuses a FAILED record for the retry, bumping its attempt
// count; the unique index on deposit_order_id allows only one row per order.
func (u *SweepUsecase) sweepRecordFor(order *entities.DepositOrder, existing *entities.SweepRecord, coldAddress string, plan *sweepPlan) *entities.SweepRecord {
	if existing != nil {
		existing.FromAddress = order.DepositAddress
		existing.ToAddress = coldAddress
		existing.Amount = plan.amount.String()
		existing.GasPrice = plan.gasPrice.String()
		existing.Attempts++
		return existing
	}
	return &entities.SweepRecord{
		ID:             utils.GenerateUUIDv7(),
		DepositOrderID: order.ID,
		Network:        order.Network,
		FromAddress:    order.DepositAddress,
		ToAddress:      coldAddress,
		Amount:         plan.amount.String(),
		GasPrice:       plan.gasPrice.String(),
		Attempts:       1,
	}
}

func (u *SweepUsecase) saveSweepRecord(ctx context.Context, record *entities.SweepRecord, retry bool) error {
	if retry {
		return u.sweepRepo.Update(ctx, record)
	}
	return u.sweepRepo.Create(ctx, record)
}

// signAndBroadcast decrypts the order's key just long enough to sign the
// transfer. The plaintext key never leaves this function.
func (u *SweepUsecase) signAndBroadcast(ctx context.Context, client ChainClient, order *entities.DepositOrder, tx *types.Transaction) (string, error) {
	keyHex, err := u.keyVault.Decrypt(order.PrivateKeyEncrypted)
	if err != nil {
		return "", fmt.Errorf("key decryption failed: %w", err)
	}
	defer vault.Zero(keyHex)

	privKey, err := hdwallet.ParsePrivateKeyHex(string(keyHex))
	if err != nil {
		return "", err
	}
	defer func() {
		if privKey != nil && privKey.D != nil {
			privKey.D.SetInt64(0)
		}
	}()

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(client.ChainID()), privKey)
	if err != nil {
		return "", fmt.Errorf("signing failed: %w", err)
	}

	if err := client.SendTransaction(ctx, signed); err != nil {
		return "", fmt.Errorf("broadcast failed: %w", err)
	}

	logger.Info(ctx, "sweep broadcast",
		zap.String("order_id", order.ID.String()),
		zap.String("tx_hash", signed.Hash().Hex()),
		zap.String("currency", string(order.Currency)),
	)
	return signed.Hash().Hex(), nil
}

// ConfirmPendingSweeps checks broadcast sweeps for inclusion and finalizes
// their records. A reverted sweep puts its order back in the sweepable set
// so the next pass rebuilds and rebroadcasts it.
func (u *SweepUsecase) ConfirmPendingSweeps(ctx context.Context) error {
	records, err := u.sweepRepo.ListByStatus(ctx, entities.SweepRecordStatusPending, sweepBatchSize)
	if err != nil {
		return err
	}

	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !record.TxHash.Valid {
			continue
		}

		client, err := u.clients.GetClient(record.Network)
		if err != nil {
			return err
		}

		receipt, err := client.GetTransactionReceipt(ctx, record.TxHash.String)
		if err != nil {
			// not mined yet
			continue
		}

		if receipt.Status == types.ReceiptStatusSuccessful {
			record.Status = entities.SweepRecordStatusConfirmed
			record.ConfirmedAt = null.TimeFrom(time.Now())
			if err := u.sweepRepo.Update(ctx, record); err != nil {
				return err
			}
		} else {
			record.Status = entities.SweepRecordStatusFailed
			record.Error = null.StringFrom("transaction reverted")
			if err := u.reopenRevertedSweep(ctx, record); err != nil {
				return err
			}
		}

		logger.Info(ctx, "sweep finalized",
			zap.String("sweep_id", record.ID.String()),
			zap.String("tx_hash", record.TxHash.String),
			zap.String("status", string(record.Status)),
		)
	}
	return nil
}

// reopenRevertedSweep persists the FAILED record and clears the order's swept
// flag in one transaction, making the order eligible for a retry.
func (u *SweepUsecase) reopenRevertedSweep(ctx context.Context, record *entities.SweepRecord) error {
	return u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.sweepRepo.Update(txCtx, record); err != nil {
			return err
		}
		order, err := u.orderRepo.GetByID(txCtx, record.DepositOrderID)
		if err != nil {
			return err
		}
		order.Swept = false
		return u.orderRepo.Update(txCtx, order)
	})
}

func (u *SweepUsecase) markSwept(ctx context.Context, order *entities.DepositOrder) error {
	if order.Swept {
		return nil
	}
	order.Swept = true
	return u.orderRepo.Update(ctx, order)
}
