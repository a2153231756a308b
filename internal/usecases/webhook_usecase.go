package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"coin-custody.backend/internal/domain/entities"
	domainerrors "coin-custody.backend/internal/domain/errors"
	"coin-custody.backend/internal/domain/repositories"
	"coin-custody.backend/pkg/logger"
	"coin-custody.backend/pkg/utils"
)

// WebhookUsecase processes transaction notifications from the chain monitor.
// Delivery is at-least-once, so every effect here must be idempotent.
type WebhookUsecase struct {
	orderRepo  repositories.DepositOrderRepository
	walletRepo repositories.WalletRepository
	ledgerRepo repositories.LedgerEntryRepository
	logRepo    repositories.WebhookLogRepository
	uow        repositories.UnitOfWork
}

// NewWebhookUsecase creates a new webhook usecase
func NewWebhookUsecase(
	orderRepo repositories.DepositOrderRepository,
	walletRepo repositories.WalletRepository,
	ledgerRepo repositories.LedgerEntryRepository,
	logRepo repositories.WebhookLogRepository,
	uow repositories.UnitOfWork,
) *WebhookUsecase {
	return &WebhookUsecase{
		orderRepo:  orderRepo,
		walletRepo: walletRepo,
		ledgerRepo: ledgerRepo,
		logRepo:    logRepo,
		uow:        uow,
	}
}

// HandleTransactionNotification applies one observed deposit to its order.
// Events that carry a valid signature but cannot be applied (unknown
// address, malformed amount) are logged and acknowledged with a nil error so
// the provider stops redelivering them; only infrastructure failures
// propagate and trigger a retry.
func (u *WebhookUsecase) HandleTransactionNotification(ctx context.Context, notif *entities.TransactionNotification, rawPayload, signature string) error {
	wlog := &entities.WebhookLog{
		ID:         utils.GenerateUUIDv7(),
		Source:     webhookSource,
		Payload:    rawPayload,
		Signature:  signature,
		TxHash:     null.StringFrom(notif.TxHash),
		ReceivedAt: time.Now(),
	}

	if !notif.Network.IsSupported() {
		wlog.ProcessingError = null.StringFrom("unsupported network " + string(notif.Network))
		return u.writeLog(ctx, wlog)
	}

	received, err := decimal.NewFromString(notif.Amount)
	if err != nil || received.LessThanOrEqual(decimal.Zero) {
		wlog.ProcessingError = null.StringFrom("malformed amount " + notif.Amount)
		return u.writeLog(ctx, wlog)
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		order, err := u.orderRepo.GetByDepositAddressForUpdate(txCtx, notif.Network, notif.Address)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				wlog.ProcessingError = null.StringFrom("no order for address " + notif.Address)
				return u.logRepo.Create(txCtx, wlog)
			}
			return err
		}
		wlog.DepositOrderID = null.StringFrom(order.ID.String())

		// replayed delivery of an already credited transaction
		if _, err := u.ledgerRepo.GetByOrderAndTxHash(txCtx, order.ID, notif.TxHash); err == nil {
			wlog.Processed = true
			wlog.ProcessingError = null.StringFrom("duplicate delivery, already credited")
			return u.logRepo.Create(txCtx, wlog)
		} else if !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}

		if order.Status.IsTerminal() && order.Status != entities.DepositOrderStatusCompleted {
			wlog.ProcessingError = null.StringFrom("order in terminal status " + string(order.Status))
			return u.logRepo.Create(txCtx, wlog)
		}

		locked, err := decimal.NewFromString(order.LockedCryptoAmount)
		if err != nil {
			return err
		}

		wasExpired := order.Status == entities.DepositOrderStatusExpired

		order.TxHash = null.StringFrom(notif.TxHash)
		order.ReceivedAmount = null.StringFrom(received.String())
		order.Confirmations = notif.Confirmations
		order.Underpaid = received.LessThan(locked)
		order.Overpaid = received.GreaterThan(locked)
		if wasExpired {
			// funds landed after the quote window; credit but flag for review
			order.ManualReview = true
		}

		switch {
		case order.Underpaid:
			// never credit a short payment automatically
			if order.Status.CanTransitionTo(entities.DepositOrderStatusConfirming) {
				order.Status = entities.DepositOrderStatusConfirming
			}
			order.ManualReview = true
			if !order.ConfirmedAt.Valid {
				order.ConfirmedAt = null.TimeFrom(time.Now())
			}
			wlog.Processed = true
			wlog.ProcessingError = null.StringFrom("underpaid: received " + received.String() + " of " + locked.String())

		case notif.Confirmations < order.RequiredConfirmations:
			if order.Status.CanTransitionTo(entities.DepositOrderStatusConfirming) {
				order.Status = entities.DepositOrderStatusConfirming
			}
			if !order.ConfirmedAt.Valid {
				order.ConfirmedAt = null.TimeFrom(time.Now())
			}
			wlog.Processed = true

		default:
			if err := u.completeAndCredit(txCtx, order, received); err != nil {
				return err
			}
			wlog.Processed = true
		}

		if err := u.orderRepo.Update(txCtx, order); err != nil {
			return err
		}
		return u.logRepo.Create(txCtx, wlog)
	})
	if err != nil {
		logger.Error(ctx, "webhook processing failed",
			zap.String("tx_hash", notif.TxHash),
			zap.String("address", notif.Address),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// completeAndCredit moves the order to COMPLETED and credits the user's
// wallet with the USD value of what was actually received, priced at the
// locked rate. The ledger row, wallet credit and status change share the
// surrounding transaction.
func (u *WebhookUsecase) completeAndCredit(txCtx context.Context, order *entities.DepositOrder, received decimal.Decimal) error {
	rate, err := decimal.NewFromString(order.LockedRate)
	if err != nil {
		return err
	}
	usdValue := convertCryptoToFiat(received, rate)

	wallet, err := u.ensureWallet(txCtx, order)
	if err != nil {
		return err
	}

	balance, err := decimal.NewFromString(wallet.Balance)
	if err != nil {
		return err
	}
	withdrawable, err := decimal.NewFromString(wallet.WithdrawableBalance)
	if err != nil {
		return err
	}
	deposited, err := decimal.NewFromString(wallet.TotalDeposited)
	if err != nil {
		return err
	}

	wallet.Balance = balance.Add(usdValue).String()
	wallet.WithdrawableBalance = withdrawable.Add(usdValue).String()
	wallet.TotalDeposited = deposited.Add(usdValue).String()
	if err := u.walletRepo.Update(txCtx, wallet); err != nil {
		return err
	}

	now := time.Now()
	entry := &entities.LedgerEntry{
		ID:             utils.GenerateUUIDv7(),
		UserID:         order.UserID,
		Type:           entities.LedgerEntryTypeDeposit,
		Amount:         usdValue.String(),
		Network:        order.Network,
		TxHash:         order.TxHash.String,
		DepositOrderID: order.ID,
		Verified:       true,
		VerifiedAt:     null.TimeFrom(now),
		CreatedAt:      now,
	}
	if err := u.ledgerRepo.Create(txCtx, entry); err != nil {
		return err
	}

	order.Status = entities.DepositOrderStatusCompleted
	if !order.ConfirmedAt.Valid {
		order.ConfirmedAt = null.TimeFrom(now)
	}
	order.CompletedAt = null.TimeFrom(now)

	logger.Info(txCtx, "deposit credited",
		zap.String("order_id", order.ID.String()),
		zap.String("tx_hash", order.TxHash.String),
		zap.String("usd_value", usdValue.String()),
		zap.Bool("overpaid", order.Overpaid),
		zap.Bool("manual_review", order.ManualReview),
	)
	return nil
}

func (u *WebhookUsecase) ensureWallet(txCtx context.Context, order *entities.DepositOrder) (*entities.Wallet, error) {
	wallet, err := u.walletRepo.GetByUserIDForUpdate(txCtx, order.UserID)
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	wallet = &entities.Wallet{
		ID:                  utils.GenerateUUIDv7(),
		UserID:              order.UserID,
		Balance:             "0",
		WithdrawableBalance: "0",
		TotalDeposited:      "0",
	}
	if err := u.walletRepo.Create(txCtx, wallet); err != nil {
		return nil, err
	}
	return wallet, nil
}

// RecordRejectedDelivery keeps the audit trail for deliveries that failed
// signature verification. The payload is stored unparsed; repeated rejections
// from one source are the signal security monitoring watches for.
func (u *WebhookUsecase) RecordRejectedDelivery(ctx context.Context, rawPayload, signature, reason string) {
	logger.Warn(ctx, "webhook rejected",
		zap.String("reason", reason),
		zap.Int("payload_bytes", len(rawPayload)),
	)

	wlog := &entities.WebhookLog{
		ID:              utils.GenerateUUIDv7(),
		Source:          webhookSource,
		Payload:         rawPayload,
		Signature:       signature,
		ProcessingError: null.StringFrom(reason),
		ReceivedAt:      time.Now(),
	}
	// best effort: the 401 goes out regardless
	_ = u.writeLog(ctx, wlog)
}

func (u *WebhookUsecase) writeLog(ctx context.Context, wlog *entities.WebhookLog) error {
	if err := u.logRepo.Create(ctx, wlog); err != nil {
		logger.Error(ctx, "webhook log write failed", zap.Error(err))
		return err
	}
	return nil
}
