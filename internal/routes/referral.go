package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rupee-pay/rupee_pay/internal/referral"
)

// RegisterReferralRoutes wires referral endpoints.
func RegisterReferralRoutes(r fiber.Router, h *referral.Handler) {
	r.Get("/referrals", h.Summary)
	r.Get("/referrals/users", h.List)
	r.Get("/referrals/join", h.Join)
	r.Post("/referrals/join", h.Join)
}
