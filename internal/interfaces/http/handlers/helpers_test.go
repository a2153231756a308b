package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"coin-custody.backend/internal/domain/entities"
	"coin-custody.backend/internal/interfaces/http/middleware"
	"coin-custody.backend/pkg/logger"
	"coin-custody.backend/pkg/utils"
)

// newAuthedRouter returns a router that injects the given user into the gin
// context the way AuthMiddleware would.
func newAuthedRouter(userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger.Init("development")
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	})
	return r
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger.Init("development")
	return gin.New()
}

type mockDepositOrderService struct {
	mock.Mock
}

func (m *mockDepositOrderService) CreateDepositOrder(ctx context.Context, userID uuid.UUID, fiatAmount string, currency entities.Currency) (*entities.DepositOrder, error) {
	args := m.Called(ctx, userID, fiatAmount, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DepositOrder), args.Error(1)
}

func (m *mockDepositOrderService) GetDepositOrder(ctx context.Context, userID, orderID uuid.UUID) (*entities.DepositOrder, error) {
	args := m.Called(ctx, userID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DepositOrder), args.Error(1)
}

func (m *mockDepositOrderService) ListDepositOrders(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.DepositOrder, utils.PaginationMeta, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, utils.PaginationMeta{}, args.Error(2)
	}
	return args.Get(0).([]*entities.DepositOrder), args.Get(1).(utils.PaginationMeta), args.Error(2)
}

type mockWalletService struct {
	mock.Mock
}

func (m *mockWalletService) GetBalance(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

func (m *mockWalletService) ListTransactions(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.LedgerEntry, utils.PaginationMeta, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, utils.PaginationMeta{}, args.Error(2)
	}
	return args.Get(0).([]*entities.LedgerEntry), args.Get(1).(utils.PaginationMeta), args.Error(2)
}

type mockWebhookService struct {
	mock.Mock
}

func (m *mockWebhookService) HandleTransactionNotification(ctx context.Context, notif *entities.TransactionNotification, rawPayload, signature string) error {
	args := m.Called(ctx, notif, rawPayload, signature)
	return args.Error(0)
}

func (m *mockWebhookService) RecordRejectedDelivery(ctx context.Context, rawPayload, signature, reason string) {
	m.Called(ctx, rawPayload, signature, reason)
}
