package withdrawal

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rupee-pay/rupee_pay/internal/money"
	"github.com/rupee-pay/rupee_pay/internal/wallet"
)

const defaultPageSize = 20

// Handler exposes withdrawal endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a withdrawal HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type initiateRequest struct {
	ChatID string  `json:"chatId"`
	Amount float64 `json:"amount"`
	VPA    string  `json:"vpa"`
}

type initiateResponse struct {
	WithdrawalID  string `json:"withdrawal_id"`
	Amount        string `json:"amount"`
	Fee           string `json:"fee"`
	NetAmount     string `json:"net_amount"`
	Status        string `json:"status"`
	EstimatedTime string `json:"estimated_time"`
}

// Initiate accepts a payout request and debits the wallet up front.
func (h *Handler) Initiate(c *fiber.Ctx) error {
	var req initiateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.ChatID == "" || req.VPA == "" || req.Amount <= 0 {
		return fiber.NewError(http.StatusBadRequest, "chatId, amount & vpa required")
	}

	result, err := h.service.Initiate(c.UserContext(), InitiateInput{
		ChatID: req.ChatID,
		Amount: money.FromFloat(req.Amount),
		VPA:    req.VPA,
	})
	if err != nil {
		switch {
		case errors.Is(err, wallet.ErrInsufficientFunds):
			return fiber.NewError(http.StatusBadRequest, "insufficient balance")
		case errors.Is(err, ErrInvalidAmount):
			return fiber.NewError(http.StatusBadRequest, "amount must exceed the withdrawal fee")
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusCreated).JSON(initiateResponse{
		WithdrawalID:  result.ID,
		Amount:        money.Format(result.Amount),
		Fee:           money.Format(result.Fee),
		NetAmount:     money.Format(result.NetAmount),
		Status:        result.Status,
		EstimatedTime: result.EstimatedTime,
	})
}

// Resolve applies an operator decision. Served over GET because the decision
// arrives as an action link click; the conditional transition makes double
// clicks safe.
func (h *Handler) Resolve(c *fiber.Ctx) error {
	id := c.Query("id")
	status := c.Query("status")
	if id == "" || status == "" {
		return fiber.NewError(http.StatusBadRequest, "id and status required")
	}

	w, err := h.service.Resolve(c.UserContext(), ResolveInput{
		ID:            id,
		Status:        status,
		TransactionID: c.Query("transaction_id"),
		FailureReason: c.Query("failure_reason"),
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(http.StatusNotFound, "withdrawal not found")
		case errors.Is(err, ErrInvalidState):
			return fiber.NewError(http.StatusConflict, "withdrawal already processed")
		default:
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"id":      w.ID,
		"status":  w.Status,
	})
}

type historyEntry struct {
	ID            string     `json:"id"`
	Amount        string     `json:"amount"`
	Fee           string     `json:"fee"`
	NetAmount     string     `json:"net_amount"`
	Status        string     `json:"status"`
	VPA           string     `json:"vpa"`
	InitiatedAt   time.Time  `json:"initiated_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	TransactionID string     `json:"transaction_id,omitempty"`
	FailureReason string     `json:"failure_reason,omitempty"`
}

// History returns the user's withdrawals, newest first.
func (h *Handler) History(c *fiber.Ctx) error {
	chatID := c.Query("chatId")
	if chatID == "" {
		return fiber.NewError(http.StatusBadRequest, "chatId required")
	}
	limit := c.QueryInt("limit", defaultPageSize)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 || offset < 0 {
		return fiber.NewError(http.StatusBadRequest, "invalid pagination")
	}

	withdrawals, total, err := h.service.History(c.UserContext(), chatID, limit, offset)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	payload := make([]historyEntry, 0, len(withdrawals))
	for _, w := range withdrawals {
		payload = append(payload, historyEntry{
			ID:            w.ID,
			Amount:        money.Format(w.Amount),
			Fee:           money.Format(w.Fee),
			NetAmount:     money.Format(w.NetAmount),
			Status:        w.Status,
			VPA:           w.VPA,
			InitiatedAt:   w.InitiatedAt,
			CompletedAt:   w.CompletedAt,
			TransactionID: w.TransactionID,
			FailureReason: w.FailureReason,
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"total":       total,
		"withdrawals": payload,
	})
}
