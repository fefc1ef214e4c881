package upi

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the UPI binding endpoint.
type Handler struct {
	service *Service
}

// NewHandler constructs a UPI HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type bindRequest struct {
	ChatID   string `json:"chatId"`
	VPA      string `json:"vpa"`
	BankName string `json:"bank_name"`
}

// Bind reads or updates the caller's UPI binding. Served over GET for
// bot-originated links and POST for the app; both carry the same fields.
func (h *Handler) Bind(c *fiber.Ctx) error {
	req := bindRequest{
		ChatID:   c.Query("chatId"),
		VPA:      c.Query("vpa"),
		BankName: c.Query("bank_name"),
	}
	if c.Method() == fiber.MethodPost {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
	}
	if req.ChatID == "" {
		return fiber.NewError(http.StatusBadRequest, "chatId required")
	}

	b, err := h.service.Bind(c.UserContext(), BindInput{
		ChatID:   req.ChatID,
		VPA:      req.VPA,
		BankName: req.BankName,
	})
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(b)
}
