package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rupee-pay/rupee_pay/internal/withdrawal"
)

// RegisterWithdrawalRoutes wires withdrawal endpoints. Resolve is a GET
// because operator decisions arrive as message action link clicks.
func RegisterWithdrawalRoutes(r fiber.Router, h *withdrawal.Handler) {
	r.Post("/withdrawals", h.Initiate)
	r.Get("/withdrawals/resolve", h.Resolve)
	r.Get("/withdrawals/history", h.History)
}
