package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"coin-custody.backend/internal/domain/entities"
	domainerrors "coin-custody.backend/internal/domain/errors"
	"coin-custody.backend/internal/interfaces/http/middleware"
	"coin-custody.backend/internal/interfaces/http/response"
	"coin-custody.backend/internal/usecases"
	"coin-custody.backend/pkg/utils"
)

type walletService interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.LedgerEntry, utils.PaginationMeta, error)
}

// WalletHandler handles wallet endpoints
type WalletHandler struct {
	walletUsecase walletService
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletUsecase *usecases.WalletUsecase) *WalletHandler {
	return &WalletHandler{walletUsecase: walletUsecase}
}

// GetBalance returns the caller's custodial balance
// GET /api/v1/wallet
func (h *WalletHandler) GetBalance(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	wallet, err := h.walletUsecase.GetBalance(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"wallet": wallet})
}

// ListTransactions lists the caller's ledger entries
// GET /api/v1/wallet/transactions
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var params utils.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid pagination parameters"))
		return
	}

	entries, meta, err := h.walletUsecase.ListTransactions(c.Request.Context(), userID, params.Page, params.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	if entries == nil {
		entries = []*entities.LedgerEntry{}
	}

	response.Success(c, http.StatusOK, gin.H{
		"transactions": entries,
		"pagination":   meta,
	})
}
