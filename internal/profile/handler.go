package profile

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes profile endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a profile HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type userResponse struct {
	ChatID       string    `json:"chatId"`
	Username     string    `json:"username"`
	Avatar       string    `json:"avatar"`
	Status       string    `json:"status"`
	ReferralCode string    `json:"referral_code"`
	ReferredBy   string    `json:"referred_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Info returns the caller's profile, creating it on first contact.
func (h *Handler) Info(c *fiber.Ctx) error {
	chatID := c.Query("chatId")
	if chatID == "" {
		return fiber.NewError(http.StatusBadRequest, "chatId required")
	}

	user, err := h.service.Info(c.UserContext(), chatID, c.Query("username"), c.Query("avatar"))
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(userResponse{
		ChatID:       user.ChatID,
		Username:     user.Username,
		Avatar:       user.Avatar,
		Status:       user.Status,
		ReferralCode: user.ReferralCode,
		ReferredBy:   user.ReferredBy,
		CreatedAt:    user.CreatedAt,
	})
}
