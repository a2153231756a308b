package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"coin-custody.backend/internal/domain/entities"
	domainerrors "coin-custody.backend/internal/domain/errors"
	"coin-custody.backend/internal/domain/repositories"
	"coin-custody.backend/pkg/hdwallet"
	"coin-custody.backend/pkg/logger"
	"coin-custody.backend/pkg/utils"
	"coin-custody.backend/pkg/vault"
)

// DepositOrderUsecase handles deposit order business logic
type DepositOrderUsecase struct {
	orderRepo   repositories.DepositOrderRepository
	counterRepo repositories.DerivationCounterRepository
	uow         repositories.UnitOfWork
	priceFeed   PriceFeed
	wallet      *hdwallet.Wallet
	keyVault    *vault.Vault

	quoteLockWindow time.Duration
	maxFiatAmount   decimal.Decimal
	confirmationsOf func(network entities.Network) int
}

// NewDepositOrderUsecase creates a new deposit order usecase
func NewDepositOrderUsecase(
	orderRepo repositories.DepositOrderRepository,
	counterRepo repositories.DerivationCounterRepository,
	uow repositories.UnitOfWork,
	priceFeed PriceFeed,
	wallet *hdwallet.Wallet,
	keyVault *vault.Vault,
	quoteLockWindow time.Duration,
	maxFiatAmount float64,
) *DepositOrderUsecase {
	return &DepositOrderUsecase{
		orderRepo:       orderRepo,
		counterRepo:     counterRepo,
		uow:             uow,
		priceFeed:       priceFeed,
		wallet:          wallet,
		keyVault:        keyVault,
		quoteLockWindow: quoteLockWindow,
		maxFiatAmount:   decimal.NewFromFloat(maxFiatAmount),
	}
}

// SetConfirmationsOverride installs a per-network confirmation override,
// falling back to the chain defaults when the function returns 0.
func (u *DepositOrderUsecase) SetConfirmationsOverride(f func(network entities.Network) int) {
	u.confirmationsOf = f
}

// CreateDepositOrder quotes a fiat amount at the current spot price, derives
// a fresh deposit address and persists the price-locked order. The
// derivation index claim and the order insert commit atomically.
func (u *DepositOrderUsecase) CreateDepositOrder(ctx context.Context, userID uuid.UUID, fiatAmountStr string, currency entities.Currency) (*entities.DepositOrder, error) {
	fiatAmount, err := decimal.NewFromString(fiatAmountStr)
	if err != nil {
		return nil, domainerrors.BadRequest("amount must be a decimal number")
	}
	if fiatAmount.LessThan(decimal.NewFromFloat(MinFiatAmountUSD)) {
		return nil, domainerrors.BadRequest("amount is below the minimum deposit")
	}
	if fiatAmount.GreaterThan(u.maxFiatAmount) {
		return nil, domainerrors.BadRequest("amount exceeds the maximum deposit")
	}

	curCfg, ok := currency.Config()
	if !ok {
		return nil, domainerrors.BadRequest("currency is not depositable")
	}
	netCfg, _ := curCfg.Network.Config()

	rate, err := u.priceFeed.GetPriceUSD(ctx, currency)
	if err != nil {
		if errors.Is(err, domainerrors.ErrPriceUnavailable) {
			return nil, domainerrors.ServiceUnavailable("price feed is temporarily unavailable", err)
		}
		return nil, err
	}

	cryptoAmount := convertFiatToCrypto(fiatAmount, rate, curCfg.Decimals)
	if cryptoAmount.LessThanOrEqual(decimal.Zero) {
		return nil, domainerrors.BadRequest("amount rounds to zero at the current price")
	}

	confirmations := netCfg.RequiredConfirmations
	if u.confirmationsOf != nil {
		if n := u.confirmationsOf(curCfg.Network); n > 0 {
			confirmations = n
		}
	}

	now := time.Now()
	order := &entities.DepositOrder{
		ID:                    utils.GenerateUUIDv7(),
		UserID:                userID,
		FiatAmount:            fiatAmount.String(),
		LockedCryptoAmount:    cryptoAmount.String(),
		LockedRate:            rate.String(),
		Currency:              currency,
		Network:               curCfg.Network,
		Status:                entities.DepositOrderStatusPending,
		RequiredConfirmations: confirmations,
		QuoteExpiresAt:        now.Add(u.quoteLockWindow),
		ExpiresAt:             now.Add(u.quoteLockWindow),
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		index, err := u.counterRepo.NextIndex(txCtx, curCfg.Network)
		if err != nil {
			return err
		}

		account, err := u.wallet.DeriveAccount(netCfg.CoinType, index)
		if err != nil {
			return domainerrors.InternalError(fmt.Errorf("address derivation failed: %w", err))
		}
		defer account.Zero()

		encrypted, err := u.keyVault.Encrypt([]byte(account.PrivateKeyHex))
		if err != nil {
			return domainerrors.InternalError(fmt.Errorf("key encryption failed: %w", err))
		}

		order.DepositAddress = account.Address
		order.DerivationIndex = index
		order.DerivationPath = account.Path
		order.PrivateKeyEncrypted = encrypted

		return u.orderRepo.Create(txCtx, order)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "deposit order created",
		zap.String("order_id", order.ID.String()),
		zap.String("network", string(order.Network)),
		zap.String("currency", string(order.Currency)),
		zap.Int64("derivation_index", order.DerivationIndex),
	)
	return order, nil
}

// GetDepositOrder returns one of the caller's orders. Reading the status of
// a PENDING order past its quote window flips it to EXPIRED first, so a
// caller never sees a stale live quote.
func (u *DepositOrderUsecase) GetDepositOrder(ctx context.Context, userID, orderID uuid.UUID) (*entities.DepositOrder, error) {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainerrors.ErrNotFound
	}

	if order.Status == entities.DepositOrderStatusPending && order.IsQuoteExpired(time.Now()) {
		err = u.uow.Do(ctx, func(txCtx context.Context) error {
			locked, err := u.orderRepo.GetByIDForUpdate(txCtx, orderID)
			if err != nil {
				return err
			}
			// a webhook may have raced us past PENDING
			if locked.Status != entities.DepositOrderStatusPending {
				order = locked
				return nil
			}
			locked.Status = entities.DepositOrderStatusExpired
			if err := u.orderRepo.Update(txCtx, locked); err != nil {
				return err
			}
			order = locked
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return order, nil
}

// ListDepositOrders returns the caller's orders, newest first.
func (u *DepositOrderUsecase) ListDepositOrders(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.DepositOrder, utils.PaginationMeta, error) {
	params := utils.GetPaginationParams(page, limit)
	orders, total, err := u.orderRepo.ListByUser(ctx, userID, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return orders, utils.CalculateMeta(total, params.Page, params.Limit), nil
}

// ExpireStaleOrders sweeps PENDING orders past their window into EXPIRED.
// The status read path already expires lazily; this keeps listings honest.
func (u *DepositOrderUsecase) ExpireStaleOrders(ctx context.Context) (int64, error) {
	n, err := u.orderRepo.ExpireStale(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.Info(ctx, "expired stale deposit orders", zap.Int64("count", n))
	}
	return n, nil
}
