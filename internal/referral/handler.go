package referral

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rupee-pay/rupee_pay/internal/money"
)

const defaultPageSize = 20

// Handler exposes referral endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a referral HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type summaryResponse struct {
	Code                  string `json:"code"`
	Link                  string `json:"link"`
	TotalReferrals        int    `json:"total_referrals"`
	SuccessfulReferrals   int    `json:"successful_referrals"`
	TotalEarned           string `json:"total_earned"`
	PendingEarned         string `json:"pending_earned"`
	CommissionPerReferral string `json:"commission_per_referral"`
}

// Summary returns the caller's referral code, invite link and earnings.
func (h *Handler) Summary(c *fiber.Ctx) error {
	chatID := c.Query("chatId")
	if chatID == "" {
		return fiber.NewError(http.StatusBadRequest, "chatId required")
	}

	view, err := h.service.Summary(c.UserContext(), chatID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(summaryResponse{
		Code:                  view.Code,
		Link:                  view.Link,
		TotalReferrals:        view.TotalReferrals,
		SuccessfulReferrals:   view.SuccessfulReferrals,
		TotalEarned:           money.Format(view.TotalEarned),
		PendingEarned:         money.Format(view.PendingEarned),
		CommissionPerReferral: money.Format(view.CommissionPerUser),
	})
}

type referredUserResponse struct {
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	JoinedAt     time.Time `json:"joined_at"`
	EarnedAmount string    `json:"earned_amount"`
	IsActive     bool      `json:"is_active"`
}

// List returns a page of the caller's referred users.
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

	entries, total, err := h.service.List(c.UserContext(), chatID, limit, offset)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	payload := make([]referredUserResponse, 0, len(entries))
	for _, entry := range entries {
		payload = append(payload, referredUserResponse{
			UserID:       entry.UserID,
			Username:     entry.Username,
			JoinedAt:     entry.JoinedAt,
			EarnedAmount: money.Format(entry.EarnedAmount),
			IsActive:     entry.IsActive,
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"referrals": payload,
		"total":     total,
	})
}

type joinRequest struct {
	ChatID   string `json:"chatId"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Ref      string `json:"ref"`
}

// Join links a joining user to an inviter. Accessible by both GET and POST
// because the upstream bot calls it either way.
func (h *Handler) Join(c *fiber.Ctx) error {
	req := joinRequest{
		ChatID:   c.Query("chatId"),
		Username: c.Query("username"),
		Avatar:   c.Query("avatar"),
		Ref:      c.Query("ref"),
	}
	if c.Method() == fiber.MethodPost {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
	}
	if req.ChatID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "chatId required"})
	}

	result, err := h.service.Join(c.UserContext(), JoinInput{
		ChatID:   req.ChatID,
		Username: req.Username,
		Avatar:   req.Avatar,
		Code:     req.Ref,
	})
	if err != nil {
		return c.Status(http.StatusOK).JSON(fiber.Map{"success": false})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success":       true,
		"referral_code": result.ReferralCode,
		"referred_by":   result.ReferredBy,
	})
}
