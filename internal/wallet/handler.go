package wallet

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/rupee-pay/rupee_pay/internal/money"
)

// Handler exposes wallet HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a wallet HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type balanceResponse struct {
	Balance          string `json:"balance"`
	AvailableBalance string `json:"available_balance"`
	PendingBalance   string `json:"pending_balance"`
	Currency         string `json:"currency"`
}

// Balance returns the wallet balance, creating the wallet on first access.
func (h *Handler) Balance(c *fiber.Ctx) error {
	chatID := c.Query("chatId")
	if chatID == "" {
		return fiber.NewError(http.StatusBadRequest, "chatId required")
	}

	w, err := h.service.Balance(c.UserContext(), chatID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(balanceResponse{
		Balance:          money.Format(w.Balance),
		AvailableBalance: money.Format(w.Balance),
		PendingBalance:   money.Format(w.PendingBalance),
		Currency:         w.Currency,
	})
}
