package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Button is a single inline-keyboard action. CallbackData comes back through
// the webhook as "action:appointmentId".
type Button struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

// Notifier is the notify(chatId, text, buttons) capability. Delivery is best
// effort everywhere it is used: failures are logged, never propagated into
// appointment state.
type Notifier interface {
	SendMessage(ctx context.Context, chatID string, text string, buttons []Button) error
	AnswerCallback(ctx context.Context, callbackID string, text string) error
}

// TelegramClient talks to the Bot API directly.
type TelegramClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewTelegramClient(baseURL, token string) *TelegramClient {
	return &TelegramClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   strings.TrimSpace(token),
		http: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (t *TelegramClient) SendMessage(
	ctx context.Context,
	chatID string,
	text string,
	buttons []Button,
) error {

	payload := map[string]any{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "Markdown",
	}
	if len(buttons) > 0 {
		payload["reply_markup"] = map[string]any{
			"inline_keyboard": [][]Button{buttons},
		}
	}

	return t.call(ctx, "sendMessage", payload)
}

func (t *TelegramClient) AnswerCallback(
	ctx context.Context,
	callbackID string,
	text string,
) error {

	return t.call(ctx, "answerCallbackQuery", map[string]any{
		"callback_query_id": callbackID,
		"text":              text,
	})
}

func (t *TelegramClient) call(ctx context.Context, method string, payload any) error {
	if t.token == "" {
		return errors.New("telegram bot token not configured")
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/%s", t.baseURL, t.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telegram %s returned %d: %s", method, resp.StatusCode, string(body))
	}
	return nil
}

// NoopNotifier stands in when no bot token is configured (local dev, tests).
type NoopNotifier struct{}

func (NoopNotifier) SendMessage(context.Context, string, string, []Button) error {
	return nil
}

func (NoopNotifier) AnswerCallback(context.Context, string, string) error {
	return nil
}
