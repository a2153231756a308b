package main

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"coin-custody.backend/internal/interfaces/http/handlers"
	"coin-custody.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	depositHandler *handlers.DepositOrderHandler
	walletHandler  *handlers.WalletHandler
	webhookHandler *handlers.WebhookHandler
	networkHandler *handlers.NetworkHandler
	authMiddleware gin.HandlerFunc
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, Idempotency-Key, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine, db *sql.DB) {
	r.GET("/health", func(c *gin.Context) {
		status := "ok"
		code := http.StatusOK
		if err := db.Ping(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status})
	})
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Deposit order routes (protected)
		orders := v1.Group("/deposit-orders")
		orders.Use(d.authMiddleware)
		{
			orders.POST("", middleware.IdempotencyMiddleware(), d.depositHandler.CreateDepositOrder)
			orders.GET("", d.depositHandler.ListDepositOrders)
			orders.GET("/:id", d.depositHandler.GetDepositOrder)
			orders.GET("/:id/status", d.depositHandler.GetDepositOrderStatus)
		}

		// Wallet routes (protected)
		wallet := v1.Group("/wallet")
		wallet.Use(d.authMiddleware)
		{
			wallet.GET("", d.walletHandler.GetBalance)
			wallet.GET("/transactions", d.walletHandler.ListTransactions)
		}

		// Network catalog (public)
		v1.GET("/networks", d.networkHandler.ListNetworks)

		// Webhook for the chain monitor (signature-authenticated)
		webhooks := v1.Group("/webhooks")
		{
			webhooks.POST("/chain", d.webhookHandler.HandleChainWebhook)
		}
	}
}
