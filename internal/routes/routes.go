package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/rupee-pay/rupee_pay/internal/config"
	"github.com/rupee-pay/rupee_pay/internal/middleware"
	"github.com/rupee-pay/rupee_pay/internal/notification"
	"github.com/rupee-pay/rupee_pay/internal/profile"
	"github.com/rupee-pay/rupee_pay/internal/referral"
	"github.com/rupee-pay/rupee_pay/internal/txlog"
	"github.com/rupee-pay/rupee_pay/internal/upi"
	"github.com/rupee-pay/rupee_pay/internal/wallet"
	"github.com/rupee-pay/rupee_pay/internal/withdrawal"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
	Sink   notification.Sink
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Storage backends, in-memory in dev when no database is configured.
	var wallets wallet.Store
	if d.DB != nil {
		wallets = wallet.NewPostgresStore(d.DB, d.Cfg.Currency)
	} else {
		wallets = wallet.NewMemoryStore(d.Cfg.Currency)
	}

	var transactions txlog.Log
	if d.DB != nil {
		transactions = txlog.NewPostgresLog(d.DB)
	} else {
		transactions = txlog.NewMemoryLog()
	}

	var profiles profile.Repository
	if d.DB != nil {
		profiles = profile.NewPostgresRepository(d.DB)
	} else {
		profiles = profile.NewMemoryRepository()
	}

	var referrals referral.Ledger
	if d.DB != nil {
		referrals = referral.NewPostgresLedger(d.DB)
	} else {
		referrals = referral.NewMemoryLedger()
	}

	var withdrawals withdrawal.Repository
	if d.DB != nil {
		withdrawals = withdrawal.NewPostgresRepository(d.DB)
	} else {
		withdrawals = withdrawal.NewMemoryRepository()
	}

	var bindings upi.Repository
	if d.DB != nil {
		bindings = upi.NewPostgresRepository(d.DB)
	} else {
		bindings = upi.NewMemoryRepository()
	}

	// Services and handlers
	walletSvc := wallet.NewService(wallets)
	profileSvc := profile.NewService(profiles, wallets)
	referralSvc := referral.NewService(profileSvc, referrals, wallets, transactions, d.Sink,
		d.Cfg.ReferralReward, d.Cfg.ReferralLinkBase)
	withdrawalSvc := withdrawal.NewService(withdrawals, wallets, transactions, d.Sink,
		d.Cfg.WithdrawalFee, d.Cfg.ResolveBaseURL, d.Cfg.OperatorChatID)
	upiSvc := upi.NewService(bindings)

	walletHandler := wallet.NewHandler(walletSvc)
	txlogHandler := txlog.NewHandler(transactions)
	profileHandler := profile.NewHandler(profileSvc)
	referralHandler := referral.NewHandler(referralSvc)
	withdrawalHandler := withdrawal.NewHandler(withdrawalSvc)
	upiHandler := upi.NewHandler(upiSvc)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	RegisterProfileRoutes(api, profileHandler)
	RegisterWalletRoutes(api, walletHandler, txlogHandler)
	RegisterUPIRoutes(api, upiHandler)
	RegisterReferralRoutes(api, referralHandler)
	RegisterWithdrawalRoutes(api, withdrawalHandler)

	return nil
}
