package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rupee-pay/rupee_pay/internal/upi"
)

// RegisterUPIRoutes wires the UPI binding endpoint.
func RegisterUPIRoutes(r fiber.Router, h *upi.Handler) {
	r.Get("/upi", h.Bind)
	r.Post("/upi", h.Bind)
}
