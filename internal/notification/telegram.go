package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramNotifier delivers messages through the Telegram Bot API.
type TelegramNotifier struct {
	token  string
	client *http.Client
}

// NewTelegramNotifier constructs a notifier for the given bot token.
func NewTelegramNotifier(token string) *TelegramNotifier {
	return &TelegramNotifier{
		token:  token,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type inlineButton struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

type sendMessageRequest struct {
	ChatID      string `json:"chat_id"`
	Text        string `json:"text"`
	ParseMode   string `json:"parse_mode"`
	ReplyMarkup *struct {
		InlineKeyboard [][]inlineButton `json:"inline_keyboard"`
	} `json:"reply_markup,omitempty"`
}

// Send posts a sendMessage call, attaching actions as an inline keyboard
// with one button per row.
func (n *TelegramNotifier) Send(ctx context.Context, message Message) error {
	payload := sendMessageRequest{
		ChatID:    message.ChatID,
		Text:      message.Text,
		ParseMode: "HTML",
	}
	if len(message.Actions) > 0 {
		keyboard := make([][]inlineButton, 0, len(message.Actions))
		for _, a := range message.Actions {
			keyboard = append(keyboard, []inlineButton{{Text: a.Label, URL: a.URL}})
		}
		payload.ReplyMarkup = &struct {
			InlineKeyboard [][]inlineButton `json:"inline_keyboard"`
		}{InlineKeyboard: keyboard}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode sendMessage: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", telegramAPIBase, n.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("telegram responded %d", resp.StatusCode)
	}
	return nil
}
