package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"coin-custody.backend/internal/domain/entities"
	domainerrors "coin-custody.backend/internal/domain/errors"
	"coin-custody.backend/internal/domain/repositories"
	"coin-custody.backend/pkg/utils"
)

// WalletUsecase exposes the custodial ledger to the API surface.
type WalletUsecase struct {
	walletRepo repositories.WalletRepository
	ledgerRepo repositories.LedgerEntryRepository
}

// NewWalletUsecase creates a new wallet usecase
func NewWalletUsecase(walletRepo repositories.WalletRepository, ledgerRepo repositories.LedgerEntryRepository) *WalletUsecase {
	return &WalletUsecase{
		walletRepo: walletRepo,
		ledgerRepo: ledgerRepo,
	}
}

// GetBalance returns the user's wallet. Users who have never completed a
// deposit get an empty wallet view rather than a 404.
func (u *WalletUsecase) GetBalance(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	wallet, err := u.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return &entities.Wallet{
				UserID:              userID,
				Balance:             "0",
				WithdrawableBalance: "0",
				TotalDeposited:      "0",
			}, nil
		}
		return nil, err
	}
	return wallet, nil
}

// ListTransactions returns the user's ledger entries, newest first.
func (u *WalletUsecase) ListTransactions(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.LedgerEntry, utils.PaginationMeta, error) {
	params := utils.GetPaginationParams(page, limit)
	entries, total, err := u.ledgerRepo.ListByUser(ctx, userID, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return entries, utils.CalculateMeta(total, params.Page, params.Limit), nil
}
