package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"coin-custody.backend/internal/config"
	"coin-custody.backend/internal/domain/entities"
	"coin-custody.backend/internal/infrastructure/blockchain"
	"coin-custody.backend/internal/infrastructure/jobs"
	"coin-custody.backend/internal/infrastructure/pricefeed"
	"coin-custody.backend/internal/infrastructure/repositories"
	"coin-custody.backend/internal/interfaces/http/handlers"
	"coin-custody.backend/internal/interfaces/http/middleware"
	"coin-custody.backend/internal/usecases"
	"coin-custody.backend/pkg/hdwallet"
	"coin-custody.backend/pkg/jwt"
	"coin-custody.backend/pkg/logger"
	"coin-custody.backend/pkg/redis"
	"coin-custody.backend/pkg/vault"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Custody secrets: the process cannot derive addresses or open key blobs
	// without them, so fail fast.
	hotWallet, err := hdwallet.New(cfg.Custody.Mnemonic)
	if err != nil {
		return fmt.Errorf("HD_WALLET_MNEMONIC: %w", err)
	}
	keyVault, err := vault.New(cfg.Custody.VaultPassphrase)
	if err != nil {
		return fmt.Errorf("VAULT_PASSPHRASE: %w", err)
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	orderRepo := repositories.NewDepositOrderRepository(db)
	walletRepo := repositories.NewWalletRepository(db)
	ledgerRepo := repositories.NewLedgerEntryRepository(db)
	sweepRepo := repositories.NewSweepRecordRepository(db)
	counterRepo := repositories.NewDerivationCounterRepository(db)
	webhookLogRepo := repositories.NewWebhookLogRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize blockchain client factory and price feed
	clientFactory := blockchain.NewClientFactory(cfg.Networks)
	priceFeed := pricefeed.NewClient(cfg.Custody.PriceCacheTTL)

	// Initialize usecases
	depositUsecase := usecases.NewDepositOrderUsecase(
		orderRepo, counterRepo, uow, priceFeed,
		hotWallet, keyVault,
		cfg.Custody.QuoteLockWindow, cfg.Custody.MaxFiatAmount,
	)
	depositUsecase.SetConfirmationsOverride(func(network entities.Network) int {
		return cfg.Networks[string(network)].ConfirmationsOverride
	})
	webhookUsecase := usecases.NewWebhookUsecase(orderRepo, walletRepo, ledgerRepo, webhookLogRepo, uow)
	sweepUsecase := usecases.NewSweepUsecase(orderRepo, sweepRepo, uow, usecases.NewChainClientFactory(clientFactory), keyVault, cfg.Networks)
	walletUsecase := usecases.NewWalletUsecase(walletRepo, ledgerRepo)

	// Initialize handlers
	depositHandler := handlers.NewDepositOrderHandler(depositUsecase)
	walletHandler := handlers.NewWalletHandler(walletUsecase)
	webhookHandler := handlers.NewWebhookHandler(webhookUsecase, cfg.Networks)
	networkHandler := handlers.NewNetworkHandler()

	authMiddleware := middleware.AuthMiddleware(jwtService)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweepJob := jobs.NewSweepJob(sweepUsecase, cfg.Custody.SweepInterval)
	go sweepJob.Start(ctx)
	expiryJob := jobs.NewOrderExpiryJob(depositUsecase)
	go expiryJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r, sqlDB)
	registerAPIV1Routes(r, routeDeps{
		depositHandler: depositHandler,
		walletHandler:  walletHandler,
		webhookHandler: webhookHandler,
		networkHandler: networkHandler,
		authMiddleware: authMiddleware,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		sweepJob.Stop()
		expiryJob.Stop()
		cancel()
	}()

	log.Printf("🚀 Coin-Custody Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
