package handlers

import (
	"context"
	"errors"
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

type depositOrderService interface {
	CreateDepositOrder(ctx context.Context, userID uuid.UUID, fiatAmount string, currency entities.Currency) (*entities.DepositOrder, error)
	GetDepositOrder(ctx context.Context, userID, orderID uuid.UUID) (*entities.DepositOrder, error)
	ListDepositOrders(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.DepositOrder, utils.PaginationMeta, error)
}

// DepositOrderHandler handles deposit order endpoints
type DepositOrderHandler struct {
	depositUsecase depositOrderService
}

// NewDepositOrderHandler creates a new deposit order handler
func NewDepositOrderHandler(depositUsecase *usecases.DepositOrderUsecase) *DepositOrderHandler {
	return &DepositOrderHandler{depositUsecase: depositUsecase}
}

// CreateDepositOrder creates a price-locked deposit order
// POST /api/v1/deposit-orders
func (h *DepositOrderHandler) CreateDepositOrder(c *gin.Context) {
	var input struct {
		Amount   string `json:"amount" binding:"required"`
		Currency string `json:"currency" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	order, err := h.depositUsecase.CreateDepositOrder(c.Request.Context(), userID, input.Amount, entities.Currency(input.Currency))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"order": order})
}

// GetDepositOrder returns one of the caller's deposit orders
// GET /api/v1/deposit-orders/:id
func (h *DepositOrderHandler) GetDepositOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid order ID"))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	order, err := h.depositUsecase.GetDepositOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("Deposit order not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"order": order})
}

// GetDepositOrderStatus returns the polling view of an order
// GET /api/v1/deposit-orders/:id/status
func (h *DepositOrderHandler) GetDepositOrderStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid order ID"))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	order, err := h.depositUsecase.GetDepositOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("Deposit order not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"id":                    order.ID,
		"status":                order.Status,
		"confirmations":         order.Confirmations,
		"requiredConfirmations": order.RequiredConfirmations,
		"txHash":                order.TxHash,
		"receivedAmount":        order.ReceivedAmount,
		"expiresAt":             order.ExpiresAt,
	})
}

// ListDepositOrders lists the caller's deposit orders
// GET /api/v1/deposit-orders
func (h *DepositOrderHandler) ListDepositOrders(c *gin.Context) {
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

	orders, meta, err := h.depositUsecase.ListDepositOrders(c.Request.Context(), userID, params.Page, params.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	if orders == nil {
		orders = []*entities.DepositOrder{}
	}

	response.Success(c, http.StatusOK, gin.H{
		"orders":     orders,
		"pagination": meta,
	})
}
