package txlog

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rupee-pay/rupee_pay/internal/money"
)

const defaultPageSize = 20

// Handler exposes transaction history endpoints.
type Handler struct {
	log Log
}

// NewHandler builds a transaction history handler.
func NewHandler(log Log) *Handler {
	return &Handler{log: log}
}

type transactionResponse struct {
	ID          string            `json:"id"`
	Type        string            `json:"type"`
	Amount      string            `json:"amount"`
	Description string            `json:"description"`
	Status      string            `json:"status"`
	Timestamp   time.Time         `json:"timestamp"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// List returns a page of the chat's transactions, newest first.
func (h *Handler) List(c *fiber.Ctx) error {
	chatID := c.Query("chatId")
	if chatID == "" {
		return fiber.NewError(http.StatusBadRequest, "chatId required")
	}
	limit := c.QueryInt("limit", defaultPageSize)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 || offset < 0 {
		return fiber.NewError(http.StatusBadRequest, "invalid pagination")
	}

	entries, total, err := h.log.List(c.UserContext(), chatID, limit, offset)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	payload := make([]transactionResponse, 0, len(entries))
	for _, tx := range entries {
		payload = append(payload, transactionResponse{
			ID:          tx.ID,
			Type:        tx.Type,
			Amount:      money.Format(tx.Amount),
			Description: tx.Description,
			Status:      tx.Status,
			Timestamp:   tx.Timestamp,
			Metadata:    tx.Metadata,
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"transactions": payload,
		"total":        total,
	})
}
