package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rupee-pay/rupee_pay/internal/profile"
)

// RegisterProfileRoutes wires user profile endpoints.
func RegisterProfileRoutes(r fiber.Router, h *profile.Handler) {
	r.Get("/users/info", h.Info)
}
