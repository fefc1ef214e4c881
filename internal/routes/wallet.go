package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rupee-pay/rupee_pay/internal/txlog"
	"github.com/rupee-pay/rupee_pay/internal/wallet"
)

// RegisterWalletRoutes wires wallet balance and transaction history endpoints.
func RegisterWalletRoutes(r fiber.Router, wh *wallet.Handler, th *txlog.Handler) {
	r.Get("/wallet/balance", wh.Balance)
	r.Get("/wallet/transactions", th.List)
}
